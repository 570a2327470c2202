package compat

import (
	"sajumatch/internal/element"
	"sajumatch/internal/saju"
)

type pair [2]int

var (
	// stemCombinations are the five stem pairings (天干五合).
	stemCombinations = []pair{{0, 5}, {1, 6}, {2, 7}, {3, 8}, {4, 9}}
	// branchCombinations are the six branch pairings (地支六合).
	branchCombinations = []pair{{0, 1}, {2, 11}, {3, 10}, {4, 9}, {5, 8}, {6, 7}}
	// branchClashes are the six opposing branch pairs (地支六沖).
	branchClashes = []pair{{0, 6}, {1, 7}, {2, 8}, {3, 9}, {4, 10}, {5, 11}}
)

// pairMatch reports whether {a, b} appears in pairs, ignoring order.
func pairMatch(a, b int, pairs []pair) bool {
	if a > b {
		a, b = b, a
	}
	for _, p := range pairs {
		if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
			return true
		}
	}
	return false
}

// PositionDetail records which pair relations fired at one pillar position.
type PositionDetail struct {
	Position          saju.Position `json:"position"`
	StemCombination   bool          `json:"stem_combination"`
	BranchCombination bool          `json:"branch_combination"`
	BranchClash       bool          `json:"branch_clash"`
}

// Detail compares the two sets position by position (year with year, month
// with month, and so on). Positions are never crossed.
func Detail(a, b saju.FourPillars) [4]PositionDetail {
	pa, pb := a.Pillars(), b.Pillars()
	var out [4]PositionDetail
	for i := range pa {
		out[i] = PositionDetail{
			Position:          saju.Position(i),
			StemCombination:   pairMatch(int(pa[i].Stem), int(pb[i].Stem), stemCombinations),
			BranchCombination: pairMatch(int(pa[i].Branch), int(pb[i].Branch), branchCombinations),
			BranchClash:       pairMatch(int(pa[i].Branch), int(pb[i].Branch), branchClashes),
		}
	}
	return out
}

// PillarCounts tallies combinations and clashes across the four positions.
type PillarCounts struct {
	Combination int `json:"combination"`
	Clash       int `json:"clash"`
}

// PillarRelationCounts counts stem and branch combinations and branch
// clashes between two sets.
func PillarRelationCounts(a, b saju.FourPillars) PillarCounts {
	var c PillarCounts
	for _, d := range Detail(a, b) {
		if d.StemCombination {
			c.Combination++
		}
		if d.BranchCombination {
			c.Combination++
		}
		if d.BranchClash {
			c.Clash++
		}
	}
	return c
}

// ElementCounts tallies element relations across the eight positions.
// Identical is informational and does not enter the score.
type ElementCounts struct {
	Generation int `json:"generation"`
	Restraint  int `json:"restraint"`
	Identical  int `json:"identical"`
}

// ElementRelationCounts compares the flattened eight elements of each set
// index by index. Both directions of each relation are checked separately.
func ElementRelationCounts(a, b saju.FourPillars) ElementCounts {
	ea, eb := a.Elements(), b.Elements()
	var c ElementCounts
	for i := range ea {
		x, y := ea[i], eb[i]
		if element.Generates(x, y) || element.Generates(y, x) {
			c.Generation++
		}
		if element.Restrains(x, y) || element.Restrains(y, x) {
			c.Restraint++
		}
		if x == y {
			c.Identical++
		}
	}
	return c
}
