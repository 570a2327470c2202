// Package saju derives the Four Pillars of a birth moment from civil
// calendar arithmetic.
//
// Year and month pillars follow calendar year boundaries rather than the
// solar "start of spring" boundary used by full almanacs. This is a known
// simplification and is kept so results stay consistent over time.
package saju

// Calibration constants. They align the cycles with a reference epoch and
// carry no further meaning.
const (
	// DayIndexOffset is added to the Julian Day Number before folding onto
	// the sixty cycle.
	DayIndexOffset = 10
	// YearIndexOffset is added to the calendar year before folding.
	YearIndexOffset = -4
)

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// JulianDayNumber converts a proleptic Gregorian date to its Julian Day Number.
func JulianDayNumber(year, month, day int) int {
	a := floorDiv(14-month, 12)
	y := year + 4800 - a
	m := month + 12*a - 3
	return day +
		floorDiv(153*m+2, 5) +
		365*y +
		floorDiv(y, 4) -
		floorDiv(y, 100) +
		floorDiv(y, 400) -
		32045
}

// DayIndex returns the sixty-cycle position of a date.
func DayIndex(year, month, day int) int {
	return normalizeMod(JulianDayNumber(year, month, day)+DayIndexOffset, CycleLength)
}

// YearPillar returns the pillar of a calendar year.
func YearPillar(year int) Pillar {
	return FromIndex(normalizeMod(year+YearIndexOffset, CycleLength))
}

// MonthPillar returns the pillar of a calendar month. Month 1 maps to
// branch 2 (寅); the stem follows from the year stem.
func MonthPillar(year, month int) Pillar {
	y := YearPillar(year)
	return Pillar{
		Stem:   NewStem(int(y.Stem)*2 + month),
		Branch: NewBranch(month + 1),
	}
}

// DayPillar returns the pillar of a calendar day.
func DayPillar(year, month, day int) Pillar {
	return FromIndex(DayIndex(year, month, day))
}

// HourBranch returns the two-hour branch slot of an hour. Branch 0 covers
// 23:00-00:59 and wraps over midnight.
func HourBranch(hour int) Branch {
	if hour == 0 {
		return 0
	}
	return Branch(normalizeMod(hour+1, 24) / 2)
}

// HourPillar returns the pillar of an hour on a day with the given day stem.
func HourPillar(dayStem Stem, hour int) Pillar {
	b := HourBranch(hour)
	return Pillar{
		Stem:   NewStem(int(dayStem)*2 + int(b)),
		Branch: b,
	}
}

// Compute derives the Four Pillars of a birth moment. The hour pillar is
// derived from the day stem, so the day is always computed first.
func Compute(year, month, day, hour int) (FourPillars, error) {
	if err := Validate(month, day, hour); err != nil {
		return FourPillars{}, err
	}

	dayPillar := DayPillar(year, month, day)
	return FourPillars{
		Year:  YearPillar(year),
		Month: MonthPillar(year, month),
		Day:   dayPillar,
		Hour:  HourPillar(dayPillar.Stem, hour),
	}, nil
}

// MustCompute is Compute for inputs already known to be valid.
func MustCompute(year, month, day, hour int) FourPillars {
	f, err := Compute(year, month, day, hour)
	if err != nil {
		panic(err)
	}
	return f
}
