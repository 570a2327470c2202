package room

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sajumatch/internal/compat"
	"sajumatch/internal/logging"
	"sajumatch/internal/saju"
	"sajumatch/internal/types"
)

// Edge is the compatibility between two participants.
type Edge struct {
	From   string        `json:"from"`
	To     string        `json:"to"`
	Result compat.Result `json:"result"`
	Color  string        `json:"color"`
}

// Other returns the endpoint that is not id.
func (e Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Graph is the complete relationship graph of one room.
type Graph struct {
	RoomID     string              `json:"room_id"`
	Nodes      []types.Person      `json:"nodes"`
	Edges      []Edge              `json:"edges"`
	TierCounts map[compat.Tier]int `json:"tier_counts"`
}

type pairIndex struct{ i, j int }

// BuildGraph scores every unordered pair of participants using at most
// workers goroutines. Edges are ordered by (i, j) in participant order.
// When ctx has a deadline, a build that uses more than half of the
// remaining time is logged as a warning.
func BuildGraph(ctx context.Context, r types.Room, workers int) (*Graph, error) {
	timer := logging.StartTimer(logging.CategoryGraph, "BuildGraph")
	if deadline, ok := ctx.Deadline(); ok {
		budget := time.Until(deadline) / 2
		defer timer.StopWithThreshold(budget)
	} else {
		defer timer.Stop()
	}

	n := len(r.Participants)
	pillars := make([]saju.FourPillars, n)
	for i, p := range r.Participants {
		fp, err := p.FourPillars()
		if err != nil {
			return nil, fmt.Errorf("participant %s: %w", p.ID, err)
		}
		pillars[i] = fp
	}

	pairs := make([]pairIndex, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, pairIndex{i, j})
		}
	}

	if workers < 1 {
		workers = 1
	}

	edges := make([]Edge, len(pairs))
	counts := make(map[compat.Tier]int)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, pr := range pairs {
		k, pr := k, pr
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, b := r.Participants[pr.i], r.Participants[pr.j]
			res := compat.Score(a.TypeCode, b.TypeCode, pillars[pr.i], pillars[pr.j])
			edges[k] = Edge{
				From:   a.ID,
				To:     b.ID,
				Result: res,
				Color:  res.Tier.Color(),
			}

			mu.Lock()
			counts[res.Tier]++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build graph for room %s: %w", r.ID, err)
	}

	logging.Graph("room %s: %d nodes, %d edges", r.ID, n, len(edges))
	if logging.IsCategoryEnabled(logging.CategoryGraph) {
		logging.Get(logging.CategoryGraph).Debug("room %s tiers: %s", r.ID, tierSummary(counts))
	}
	return &Graph{
		RoomID:     r.ID,
		Nodes:      r.Participants,
		Edges:      edges,
		TierCounts: counts,
	}, nil
}

func tierSummary(counts map[compat.Tier]int) string {
	parts := make([]string, 0, len(counts))
	for _, t := range compat.Tiers() {
		if c := counts[t]; c > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", t, c))
		}
	}
	return strings.Join(parts, " ")
}

// Filter returns the edges in the given tier.
func (g *Graph) Filter(tier compat.Tier) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Result.Tier == tier {
			out = append(out, e)
		}
	}
	return out
}

// AtLeast returns the edges whose tier is the given tier or better.
func (g *Graph) AtLeast(tier compat.Tier) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Result.Tier == tier || e.Result.Tier.BetterThan(tier) {
			out = append(out, e)
		}
	}
	return out
}

// EdgesOf returns the edges touching a participant.
func (g *Graph) EdgesOf(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.From == id || e.To == id {
			out = append(out, e)
		}
	}
	return out
}

// Node returns a participant by ID.
func (g *Graph) Node(id string) (types.Person, bool) {
	for _, p := range g.Nodes {
		if p.ID == id {
			return p, true
		}
	}
	return types.Person{}, false
}

// =============================================================================
// RELATIONS
// =============================================================================

// Relation is one participant as seen from the reference participant.
type Relation struct {
	Person types.Person  `json:"person"`
	Result compat.Result `json:"result"`
	Color  string        `json:"color"`
}

// Relations scores the reference participant against every other
// participant. An empty referenceID selects the creator, falling back to
// the first participant. Results are sorted by combined score, best first,
// then by display name.
func Relations(r types.Room, referenceID string) (types.Person, []Relation, error) {
	ref, ok := r.Reference(referenceID)
	if !ok {
		return types.Person{}, nil, fmt.Errorf("participant %q in room %s: %w", referenceID, r.ID, ErrNotFound)
	}

	out := make([]Relation, 0, len(r.Participants))
	for _, p := range r.Participants {
		if p.ID == ref.ID {
			continue
		}
		res, err := compat.Compute(ref, p)
		if err != nil {
			return types.Person{}, nil, fmt.Errorf("participant %s: %w", p.ID, err)
		}
		out = append(out, Relation{Person: p, Result: res, Color: res.Tier.Color()})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Result.CombinedScore != out[j].Result.CombinedScore {
			return out[i].Result.CombinedScore > out[j].Result.CombinedScore
		}
		return out[i].Person.DisplayName() < out[j].Person.DisplayName()
	})
	return ref, out, nil
}
