package compat

import (
	"fmt"
	"strings"
)

// Tier is a relationship band derived from the combined score. Lower
// values are better.
type Tier int

const (
	TierPerfect Tier = iota + 1
	TierGreat
	TierFine
	TierFriction
	TierVolatile
)

// UnknownTierColor is used for values outside the five tiers.
const UnknownTierColor = "#6b7280"

type tierInfo struct {
	tier   Tier
	min    int
	label  string
	korean string
	color  string
}

// tiers is searched top down; the first band whose minimum is met wins.
var tiers = [...]tierInfo{
	{TierPerfect, 90, "perfect match", "완전 찰떡", "#2563eb"},
	{TierGreat, 70, "great match", "찰떡 궁합", "#16a34a"},
	{TierFine, 50, "fine match", "무난한 사이", "#ca8a04"},
	{TierFriction, 30, "occasional friction", "가끔 삐걱", "#ea580c"},
	{TierVolatile, 0, "volatile", "폭발 주의", "#dc2626"},
}

// TierFor maps a combined score onto its tier.
func TierFor(score int) Tier {
	for _, t := range tiers {
		if score >= t.min {
			return t.tier
		}
	}
	return TierVolatile
}

// Tiers returns every tier, best first.
func Tiers() []Tier {
	out := make([]Tier, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, t.tier)
	}
	return out
}

func (t Tier) info() (tierInfo, bool) {
	if t < TierPerfect || t > TierVolatile {
		return tierInfo{}, false
	}
	return tiers[t-TierPerfect], true
}

// Valid reports whether t is one of the five tiers.
func (t Tier) Valid() bool {
	_, ok := t.info()
	return ok
}

// Min is the lowest combined score that reaches the tier.
func (t Tier) Min() int {
	info, _ := t.info()
	return info.min
}

// Color is the display colour used by visualisations.
func (t Tier) Color() string {
	if info, ok := t.info(); ok {
		return info.color
	}
	return UnknownTierColor
}

// Korean returns the Korean display label.
func (t Tier) Korean() string {
	info, _ := t.info()
	return info.korean
}

func (t Tier) String() string {
	if info, ok := t.info(); ok {
		return info.label
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// BetterThan reports whether t ranks above o.
func (t Tier) BetterThan(o Tier) bool {
	return t < o
}

// ParseTier accepts the English label, the Korean label or the tier number.
func ParseTier(s string) (Tier, error) {
	s = strings.TrimSpace(s)
	for _, t := range tiers {
		if strings.EqualFold(s, t.label) || s == t.korean || s == fmt.Sprint(int(t.tier)) {
			return t.tier, nil
		}
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// MarshalText encodes the tier as its English label.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
