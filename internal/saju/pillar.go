package saju

import (
	"strings"

	"sajumatch/internal/element"
)

// Pillar is an ordered (stem, branch) pair.
type Pillar struct {
	Stem   Stem   `json:"stem" yaml:"stem"`
	Branch Branch `json:"branch" yaml:"branch"`
}

// FromIndex converts a position on the sixty cycle into its pillar.
func FromIndex(index int) Pillar {
	i := normalizeMod(index, CycleLength)
	return Pillar{Stem: Stem(i % StemCount), Branch: Branch(i % BranchCount)}
}

// Index returns the pillar's position on the sixty cycle. Only pairs whose
// stem and branch share parity occur on the cycle; ok is false otherwise.
func (p Pillar) Index() (index int, ok bool) {
	s := normalizeMod(int(p.Stem), StemCount)
	b := normalizeMod(int(p.Branch), BranchCount)
	for i := s; i < CycleLength; i += StemCount {
		if i%BranchCount == b {
			return i, true
		}
	}
	return 0, false
}

// StemElement is the element of the pillar's stem.
func (p Pillar) StemElement() element.Element { return element.OfStem(int(p.Stem)) }

// BranchElement is the element of the pillar's branch.
func (p Pillar) BranchElement() element.Element { return element.OfBranch(int(p.Branch)) }

// Name renders the pillar as two Korean syllables, e.g. "갑자".
func (p Pillar) Name() string { return p.Stem.Name() + p.Branch.Name() }

// Hanja renders the pillar as two Chinese characters, e.g. "甲子".
func (p Pillar) Hanja() string { return p.Stem.Hanja() + p.Branch.Hanja() }

func (p Pillar) String() string { return p.Name() }

// Position identifies one of the four pillars.
type Position int

const (
	PositionYear Position = iota
	PositionMonth
	PositionDay
	PositionHour
)

var positionNames = [4]string{"year", "month", "day", "hour"}

func (p Position) String() string {
	if p < PositionYear || p > PositionHour {
		return "unknown"
	}
	return positionNames[p]
}

// FourPillars is the full decomposition of a birth moment. It is a value
// type and is never mutated after Compute returns it.
type FourPillars struct {
	Year  Pillar `json:"year" yaml:"year"`
	Month Pillar `json:"month" yaml:"month"`
	Day   Pillar `json:"day" yaml:"day"`
	Hour  Pillar `json:"hour" yaml:"hour"`
}

// Pillars returns the four pillars in year, month, day, hour order.
func (f FourPillars) Pillars() [4]Pillar {
	return [4]Pillar{f.Year, f.Month, f.Day, f.Hour}
}

// At returns the pillar at a position.
func (f FourPillars) At(pos Position) Pillar {
	return f.Pillars()[normalizeMod(int(pos), 4)]
}

// Elements flattens the set into eight elements: stem then branch for each
// pillar, in year, month, day, hour order.
func (f FourPillars) Elements() [8]element.Element {
	var out [8]element.Element
	for i, p := range f.Pillars() {
		out[2*i] = p.StemElement()
		out[2*i+1] = p.BranchElement()
	}
	return out
}

// DayElement is the element of the day stem, used as the person's own element.
func (f FourPillars) DayElement() element.Element {
	return f.Day.StemElement()
}

// Key renders the eight characters as one string, usable as a cache key by
// text generators downstream.
func (f FourPillars) Key() string {
	var sb strings.Builder
	for _, p := range f.Pillars() {
		sb.WriteString(p.Name())
	}
	return sb.String()
}
