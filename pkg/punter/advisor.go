package punter

import (
	"fmt"
	"strings"
)

// sideOrder is the deterministic tie-break priority between sides with equal
// accumulated score
var sideOrder = []Side{SideHome, SideAway, SideDraw}

// Advisor fuses the individual strategy verdicts on a match into one final
// recommendation using fixed per-strategy weights
type Advisor struct {
	strategies []Strategy
	weights    map[StrategyID]float64
}

// NewAdvisor builds an advisor over the default strategy set. cfg must
// already be validated.
func NewAdvisor(cfg *Config) *Advisor {
	strategies := DefaultStrategies(cfg)
	weights := make(map[StrategyID]float64, len(strategies))
	for _, s := range strategies {
		weights[s.ID()] = cfg.Weight(s.ID())
	}
	return &Advisor{strategies: strategies, weights: weights}
}

// Evaluate returns every strategy's verdict on the match, in weight order
func (a *Advisor) Evaluate(m *Match, ctx *Context) []Recommendation {
	recs := make([]Recommendation, 0, len(a.strategies))
	for _, s := range a.strategies {
		recs = append(recs, s.Evaluate(m, ctx))
	}
	return recs
}

// Advise runs the whole strategy set and fuses the result
func (a *Advisor) Advise(m *Match, ctx *Context) Recommendation {
	return a.fuse(m.Ref(), a.Evaluate(m, ctx))
}

// fuse combines non-abstaining recommendations: each side accumulates
// Σ weight·confidence over the strategies that chose it, the best side wins,
// and the final confidence is renormalized against the weight of every
// participating (non-abstaining) strategy so that it stays in [0,1].
// Equal scores break HOME > AWAY > DRAW.
func (a *Advisor) fuse(ref string, recs []Recommendation) Recommendation {
	scores := make(map[Side]float64)
	supporters := make(map[Side][]StrategyID)
	participating := 0.0

	for _, r := range recs {
		if r.Abstained() {
			continue
		}
		w := a.weights[r.Strategy]
		participating += w
		scores[r.Side] += w * r.Confidence
		supporters[r.Side] = append(supporters[r.Side], r.Strategy)
	}

	if participating <= 0 {
		return abstain(StrategyWeighted, ref, "all strategies abstained")
	}

	best := SideNone
	bestScore := 0.0
	for _, side := range sideOrder {
		if s, ok := scores[side]; ok && s > bestScore {
			best = side
			bestScore = s
		}
	}

	confidence := bestScore / participating
	if best == SideNone || confidence <= 0 {
		return abstain(StrategyWeighted, ref, "no side accumulated a positive score")
	}

	ids := make([]string, 0, len(supporters[best]))
	for _, id := range supporters[best] {
		ids = append(ids, string(id))
	}
	return Recommendation{
		Strategy:   StrategyWeighted,
		MatchRef:   ref,
		Side:       best,
		Confidence: confidence,
		Rationale:  fmt.Sprintf("weighted score %.3f from %s", confidence, strings.Join(ids, "+")),
		Supporting: supporters[best],
	}
}
