package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sajumatch/internal/compat"
	"sajumatch/internal/logging"
)

var (
	matchA string
	matchB string
)

// matchCmd scores one pair
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the compatibility of two people",
	Long: `Each person is given as TYPE:YYYY-MM-DD[:HOUR].

Example:
  sajumatch match --a INTJ:1995-01-01:12 --b ENFP:1990-05-15:8`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchA, "a", "", "First person TYPE:YYYY-MM-DD[:HOUR] (required)")
	matchCmd.Flags().StringVar(&matchB, "b", "", "Second person TYPE:YYYY-MM-DD[:HOUR] (required)")
	matchCmd.MarkFlagRequired("a")
	matchCmd.MarkFlagRequired("b")
}

type matchOutput struct {
	Result compat.Result            `json:"result"`
	Color  string                   `json:"color"`
	Detail [4]compat.PositionDetail `json:"detail"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	a, err := parsePerson(matchA, "")
	if err != nil {
		return fmt.Errorf("--a: %w", err)
	}
	b, err := parsePerson(matchB, "")
	if err != nil {
		return fmt.Errorf("--b: %w", err)
	}

	res, err := compat.Compute(a, b)
	if err != nil {
		return err
	}
	fa, _ := a.FourPillars()
	fb, _ := b.FourPillars()

	logging.Get(logging.CategoryCompat).Debug("%s vs %s: %d", a.TypeCode, b.TypeCode, res.CombinedScore)
	logger.Debug("match scored",
		zap.Int("combined", res.CombinedScore),
		zap.Stringer("tier", res.Tier))

	out := matchOutput{
		Result: res,
		Color:  res.Tier.Color(),
		Detail: compat.Detail(fa, fb),
	}
	if cfg.Output.IsJSON() {
		return writeJSON(out)
	}

	fmt.Printf("%s  %d  %s %s\n", styled(headerStyle, "Compatibility"), res.CombinedScore,
		tierBadge(res.Tier), styled(mutedStyle, fmt.Sprintf("(%d+)", res.Tier.Min())))
	fmt.Printf("  type code %d / pillars %d\n", res.TypeCodeScore, res.PillarScore)
	fmt.Printf("  combination %d  clash %d  generation %d  restraint %d\n",
		res.Combination, res.Clash, res.Generation, res.Restraint)
	fmt.Println()
	fmt.Printf("  %-6s %-10s %-12s %s\n", "", "stem comb", "branch comb", "clash")
	for _, d := range out.Detail {
		fmt.Printf("  %-6s %-10s %-12s %s\n",
			d.Position, yesNo(d.StemCombination), yesNo(d.BranchCombination), yesNo(d.BranchClash))
	}
	return nil
}
