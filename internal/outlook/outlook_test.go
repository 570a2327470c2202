package outlook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sajumatch/internal/element"
	"sajumatch/internal/saju"
)

func TestMonthPillarIgnoresAnchors(t *testing.T) {
	p, err := MonthPillar(2024, 3)
	require.NoError(t, err)
	assert.Equal(t, saju.MonthPillar(2024, 3), p)
	assert.Equal(t, saju.Pillar{Stem: 3, Branch: 4}, p)
	assert.Equal(t, element.Fire, p.StemElement())
	assert.Equal(t, element.Earth, p.BranchElement())
}

func TestMonthlyRelation(t *testing.T) {
	// March 2024 is a Fire stem over an Earth branch.
	tests := []struct {
		person element.Element
		want   Relation
	}{
		{element.Fire, Harmonious},
		{element.Earth, Harmonious},
		{element.Wood, FavorableOutgoing},
		{element.Metal, FavorableIncoming},
		{element.Water, CautionOutgoing},
	}
	for _, tt := range tests {
		t.Run(tt.person.String(), func(t *testing.T) {
			got, err := MonthlyRelation(tt.person, 2024, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	assert.Equal(t, Harmonious, Classify(element.Wood, element.Fire, element.Wood),
		"exact match beats generation")
	assert.Equal(t, FavorableOutgoing, Classify(element.Wood, element.Water, element.Fire),
		"outgoing generation beats incoming")
	assert.Equal(t, FavorableIncoming, Classify(element.Wood, element.Water, element.Earth),
		"generation beats restraint")
	assert.Equal(t, CautionOutgoing, Classify(element.Wood, element.Earth, element.Metal),
		"outgoing restraint beats incoming")
	assert.Equal(t, CautionIncoming, Classify(element.Wood, element.Metal, element.Metal))
}

func TestClassifyFoldsElements(t *testing.T) {
	// 5 is Wood and -1 is Water once folded onto the cycle.
	assert.Equal(t, Harmonious, Classify(element.Element(5), element.Wood, element.Wood))
	assert.Equal(t, FavorableIncoming, Classify(element.Wood, element.Element(-1), element.Element(-1)))

	for p := -5; p < 10; p++ {
		for s := -5; s < 10; s++ {
			for b := -5; b < 10; b++ {
				got := Classify(element.Element(p), element.Element(s), element.Element(b))
				assert.NotEqual(t, Neutral, got, "(%d,%d,%d)", p, s, b)
			}
		}
	}
}

func TestMonthlyRelationInvalidMonth(t *testing.T) {
	_, err := MonthlyRelation(element.Wood, 2024, 13)
	assert.ErrorIs(t, err, saju.ErrInvalidDate)
}

func TestForPerson(t *testing.T) {
	f := saju.MustCompute(1995, 1, 1, 12)
	for month := 1; month <= 12; month++ {
		got, err := ForPerson(f, 2025, month)
		require.NoError(t, err)
		want, _ := MonthlyRelation(f.DayElement(), 2025, month)
		assert.Equal(t, want, got)
	}
}

func TestRemainingMonths(t *testing.T) {
	assert.Equal(t, []int{10, 11, 12}, RemainingMonths(time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)))
	assert.Len(t, RemainingMonths(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), 12)
	assert.Equal(t, []int{12}, RemainingMonths(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
}

func TestForecast(t *testing.T) {
	f := saju.MustCompute(1995, 1, 1, 12)
	now := time.Date(2024, 10, 5, 9, 0, 0, 0, time.UTC)

	got, err := Forecast(f, now)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for i, mo := range got {
		assert.Equal(t, 2024, mo.Year)
		assert.Equal(t, 10+i, mo.Month)
		assert.Equal(t, saju.MonthPillar(2024, mo.Month), mo.Pillar)
		want, _ := ForPerson(f, 2024, mo.Month)
		assert.Equal(t, want, mo.Relation)
	}

	again, _ := Forecast(f, now)
	assert.Equal(t, got, again)
}

func TestRelationString(t *testing.T) {
	assert.Equal(t, "harmonious", Harmonious.String())
	assert.Equal(t, "caution-incoming", CautionIncoming.String())
	assert.Equal(t, "neutral", Neutral.String())
	assert.Equal(t, "relation(42)", Relation(42).String())
	assert.True(t, FavorableIncoming.Favorable())
	assert.False(t, CautionOutgoing.Favorable())
}
