package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sajumatch/internal/element"
	"sajumatch/internal/logging"
	"sajumatch/internal/saju"
)

var (
	birthFlag string
	hourFlag  int
)

// pillarsCmd derives the Four Pillars of one birth moment
var pillarsCmd = &cobra.Command{
	Use:   "pillars",
	Short: "Show the Four Pillars of a birth moment",
	Long: `Derives the year, month, day and hour pillars and their elements.

Example:
  sajumatch pillars --birth 1995-01-01 --hour 12`,
	RunE: runPillars,
}

func init() {
	pillarsCmd.Flags().StringVar(&birthFlag, "birth", "", "Birth date YYYY-MM-DD (required)")
	pillarsCmd.Flags().IntVar(&hourFlag, "hour", 0, "Birth hour 0-23")
	pillarsCmd.MarkFlagRequired("birth")
}

type pillarsOutput struct {
	Birth      string           `json:"birth"`
	Hour       int              `json:"hour"`
	Pillars    saju.FourPillars `json:"pillars"`
	Names      [4]string        `json:"names"`
	Cycle      [4]int           `json:"cycle"`
	Elements   [8]string        `json:"elements"`
	DayElement string           `json:"day_element"`
	Key        string           `json:"key"`
}

func runPillars(cmd *cobra.Command, args []string) error {
	y, m, d, err := parseDate(birthFlag)
	if err != nil {
		return err
	}
	f, err := saju.Compute(y, m, d, hourFlag)
	if err != nil {
		return err
	}
	logging.Get(logging.CategoryPillars).Debug("pillars for %04d-%02d-%02d %02d: %s", y, m, d, hourFlag, f.Key())
	logger.Debug("pillars computed", zap.String("key", f.Key()))

	out := pillarsOutput{
		Birth:      fmt.Sprintf("%04d-%02d-%02d", y, m, d),
		Hour:       hourFlag,
		Pillars:    f,
		DayElement: f.DayElement().String(),
		Key:        f.Key(),
	}
	for i, p := range f.Pillars() {
		out.Names[i] = p.Name()
		// 0 marks a month pillar whose stem and branch parity differ.
		if idx, ok := p.Index(); ok {
			out.Cycle[i] = idx + 1
		}
	}
	for i, e := range f.Elements() {
		out.Elements[i] = e.String()
	}

	if cfg.Output.IsJSON() {
		return writeJSON(out)
	}

	fmt.Println(styled(headerStyle, fmt.Sprintf("Four Pillars for %s %02d:00", out.Birth, hourFlag)))
	for i, p := range f.Pillars() {
		fmt.Printf("  %-6s %s (%s) %s  %s / %s\n",
			saju.Position(i), p.Name(), p.Hanja(), styled(mutedStyle, cycleLabel(out.Cycle[i])),
			elementLabel(p.StemElement()), elementLabel(p.BranchElement()))
	}
	fmt.Printf("  day element: %s %s\n", elementLabel(f.DayElement()), styled(mutedStyle, dayElementNote(f.DayElement())))
	fmt.Printf("  key: %s\n", f.Key())
	return nil
}

func cycleLabel(n int) string {
	if n == 0 {
		return "#--"
	}
	return fmt.Sprintf("#%02d", n)
}

func dayElementNote(e element.Element) string {
	return fmt.Sprintf("(%s %s)", e.Korean(), e.Hanja())
}
