// Package outlook classifies how a calendar month relates to a person's
// own element (the element of their day stem).
package outlook

import (
	"fmt"
	"time"

	"sajumatch/internal/element"
	"sajumatch/internal/saju"
)

// Anchor day and hour used to synthesise a month's pillars. Only the year
// and month affect the month pillar.
const (
	AnchorDay  = 15
	AnchorHour = 12
)

// Relation is the category of a month relative to the person.
type Relation int

const (
	Neutral Relation = iota
	Harmonious
	FavorableOutgoing
	FavorableIncoming
	CautionOutgoing
	CautionIncoming
)

var relationNames = map[Relation]string{
	Neutral:           "neutral",
	Harmonious:        "harmonious",
	FavorableOutgoing: "favorable-outgoing",
	FavorableIncoming: "favorable-incoming",
	CautionOutgoing:   "caution-outgoing",
	CautionIncoming:   "caution-incoming",
}

func (r Relation) String() string {
	if s, ok := relationNames[r]; ok {
		return s
	}
	return fmt.Sprintf("relation(%d)", int(r))
}

// MarshalText encodes the relation by name.
func (r Relation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Favorable reports whether the month supports the person.
func (r Relation) Favorable() bool {
	return r == Harmonious || r == FavorableOutgoing || r == FavorableIncoming
}

// Classify applies the relation chain to a person element and the two
// elements of a month pillar. The first matching rule wins. Elements are
// folded onto the cycle first, so every input hits one of the five
// relations and Neutral is never returned.
func Classify(person, monthStem, monthBranch element.Element) Relation {
	person = element.Normalize(int(person))
	monthStem = element.Normalize(int(monthStem))
	monthBranch = element.Normalize(int(monthBranch))
	switch {
	case person == monthStem || person == monthBranch:
		return Harmonious
	case element.Generates(person, monthStem) || element.Generates(person, monthBranch):
		return FavorableOutgoing
	case element.Generates(monthStem, person) || element.Generates(monthBranch, person):
		return FavorableIncoming
	case element.Restrains(person, monthStem) || element.Restrains(person, monthBranch):
		return CautionOutgoing
	case element.Restrains(monthStem, person) || element.Restrains(monthBranch, person):
		return CautionIncoming
	default:
		return Neutral
	}
}

// MonthPillar synthesises the month pillar for a target month.
func MonthPillar(year, month int) (saju.Pillar, error) {
	f, err := saju.Compute(year, month, AnchorDay, AnchorHour)
	if err != nil {
		return saju.Pillar{}, err
	}
	return f.Month, nil
}

// MonthlyRelation classifies the target month against a day element.
func MonthlyRelation(dayElement element.Element, year, month int) (Relation, error) {
	p, err := MonthPillar(year, month)
	if err != nil {
		return Neutral, err
	}
	return Classify(dayElement, p.StemElement(), p.BranchElement()), nil
}

// ForPerson classifies the target month against a person's pillars.
func ForPerson(f saju.FourPillars, year, month int) (Relation, error) {
	return MonthlyRelation(f.DayElement(), year, month)
}

// MonthOutlook is one month of a forecast.
type MonthOutlook struct {
	Year     int         `json:"year"`
	Month    int         `json:"month"`
	Pillar   saju.Pillar `json:"pillar"`
	Relation Relation    `json:"relation"`
}

// RemainingMonths lists the months from now's month through December.
func RemainingMonths(now time.Time) []int {
	out := make([]int, 0, 12)
	for m := int(now.Month()); m <= 12; m++ {
		out = append(out, m)
	}
	return out
}

// Forecast classifies each remaining month of now's year. The clock is
// passed in so results are reproducible.
func Forecast(f saju.FourPillars, now time.Time) ([]MonthOutlook, error) {
	year := now.Year()
	months := RemainingMonths(now)
	out := make([]MonthOutlook, 0, len(months))
	for _, m := range months {
		p, err := MonthPillar(year, m)
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", m, err)
		}
		out = append(out, MonthOutlook{
			Year:     year,
			Month:    m,
			Pillar:   p,
			Relation: Classify(f.DayElement(), p.StemElement(), p.BranchElement()),
		})
	}
	return out, nil
}
