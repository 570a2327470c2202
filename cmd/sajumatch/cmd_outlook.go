package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sajumatch/internal/logging"
	"sajumatch/internal/outlook"
	"sajumatch/internal/saju"
)

var (
	outlookBirth string
	outlookHour  int
	outlookYear  int
	outlookMonth int

	// now is replaced in tests
	now = time.Now
)

// outlookCmd classifies months against a person's day element
var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Show how months relate to a person",
	Long: `Without --month, classifies every remaining month of the current year.

Examples:
  sajumatch outlook --birth 1995-01-01 --hour 12
  sajumatch outlook --birth 1995-01-01 --year 2024 --month 3`,
	RunE: runOutlook,
}

func init() {
	outlookCmd.Flags().StringVar(&outlookBirth, "birth", "", "Birth date YYYY-MM-DD (required)")
	outlookCmd.Flags().IntVar(&outlookHour, "hour", 0, "Birth hour 0-23")
	outlookCmd.Flags().IntVar(&outlookYear, "year", 0, "Target year (default: current)")
	outlookCmd.Flags().IntVar(&outlookMonth, "month", 0, "Target month 1-12 (default: remaining months)")
	outlookCmd.MarkFlagRequired("birth")
}

type outlookOutput struct {
	DayElement string                 `json:"day_element"`
	Months     []outlook.MonthOutlook `json:"months"`
}

func runOutlook(cmd *cobra.Command, args []string) error {
	y, m, d, err := parseDate(outlookBirth)
	if err != nil {
		return err
	}
	f, err := saju.Compute(y, m, d, outlookHour)
	if err != nil {
		return err
	}

	var months []outlook.MonthOutlook
	if outlookMonth != 0 {
		year := outlookYear
		if year == 0 {
			year = now().Year()
		}
		p, err := outlook.MonthPillar(year, outlookMonth)
		if err != nil {
			return err
		}
		rel, err := outlook.ForPerson(f, year, outlookMonth)
		if err != nil {
			return err
		}
		months = []outlook.MonthOutlook{{Year: year, Month: outlookMonth, Pillar: p, Relation: rel}}
	} else {
		ref := now()
		if outlookYear != 0 && outlookYear != ref.Year() {
			ref = time.Date(outlookYear, time.January, 1, 0, 0, 0, 0, time.UTC)
		}
		months, err = outlook.Forecast(f, ref)
		if err != nil {
			return err
		}
	}
	logging.Get(logging.CategoryOutlook).Debug("outlook for day element %s: %d months", f.DayElement(), len(months))

	if cfg.Output.IsJSON() {
		return writeJSON(outlookOutput{DayElement: f.DayElement().String(), Months: months})
	}

	fmt.Printf("%s  day element %s\n", styled(headerStyle, "Monthly outlook"), elementLabel(f.DayElement()))
	for _, mo := range months {
		fmt.Printf("  %04d-%02d  %s (%s)  %s\n",
			mo.Year, mo.Month, mo.Pillar.Name(), mo.Pillar.Hanja(), relationLabel(mo.Relation))
	}
	return nil
}
