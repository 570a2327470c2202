// Package compat scores the compatibility of two people from their
// personality type codes and their Four Pillars.
//
// All functions are pure and safe for concurrent use.
package compat

import (
	"math"

	"sajumatch/internal/saju"
)

// Pillar score weights. The base is neutral compatibility; each signal
// nudges it up or down.
const (
	PillarBase        = 50
	CombinationWeight = 10
	ClashWeight       = 10
	GenerationWeight  = 5
	RestraintWeight   = 5
)

// PillarResult is the pillar-based sub-score together with its inputs.
type PillarResult struct {
	Score       int `json:"score"`
	Combination int `json:"combination"`
	Clash       int `json:"clash"`
	Generation  int `json:"generation"`
	Restraint   int `json:"restraint"`
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PillarScore combines pair relations and element relations into a 0-100 score.
func PillarScore(a, b saju.FourPillars) PillarResult {
	pc := PillarRelationCounts(a, b)
	ec := ElementRelationCounts(a, b)
	raw := PillarBase +
		pc.Combination*CombinationWeight -
		pc.Clash*ClashWeight +
		ec.Generation*GenerationWeight -
		ec.Restraint*RestraintWeight
	return PillarResult{
		Score:       clamp(raw, 0, 100),
		Combination: pc.Combination,
		Clash:       pc.Clash,
		Generation:  ec.Generation,
		Restraint:   ec.Restraint,
	}
}

// CombinedScore is the unweighted average of the two sub-scores, rounded
// half up.
func CombinedScore(typeScore, pillarScore int) int {
	return int(math.Floor(float64(typeScore+pillarScore)/2 + 0.5))
}

// Result is the full compatibility of one pair. It is computed on demand
// and never stored by this package.
type Result struct {
	TypeCodeScore int  `json:"type_code_score"`
	PillarScore   int  `json:"pillar_score"`
	Combination   int  `json:"combination"`
	Clash         int  `json:"clash"`
	Generation    int  `json:"generation"`
	Restraint     int  `json:"restraint"`
	CombinedScore int  `json:"combined_score"`
	Tier          Tier `json:"tier"`
}

// Score computes the result for two already-derived pillar sets.
func Score(codeA, codeB string, a, b saju.FourPillars) Result {
	typeScore := TypeCodeScore(codeA, codeB)
	pr := PillarScore(a, b)
	combined := CombinedScore(typeScore, pr.Score)
	return Result{
		TypeCodeScore: typeScore,
		PillarScore:   pr.Score,
		Combination:   pr.Combination,
		Clash:         pr.Clash,
		Generation:    pr.Generation,
		Restraint:     pr.Restraint,
		CombinedScore: combined,
		Tier:          TierFor(combined),
	}
}

// Profile is anything that carries a type code and a birth moment.
type Profile interface {
	Code() string
	FourPillars() (saju.FourPillars, error)
}

// Compute derives both pillar sets and scores the pair. It fails only when
// a birth moment is out of range.
func Compute(a, b Profile) (Result, error) {
	fa, err := a.FourPillars()
	if err != nil {
		return Result{}, err
	}
	fb, err := b.FourPillars()
	if err != nil {
		return Result{}, err
	}
	return Score(a.Code(), b.Code(), fa, fb), nil
}
