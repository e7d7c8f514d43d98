package punter

import (
	"fmt"
	"strings"

	"github.com/richard-senior/punter/internal/logger"
)

// Prediction is the advisor's view of one upcoming fixture, with the
// individual strategy verdicts that produced it
type Prediction struct {
	Match     *Match
	Advice    Recommendation
	Breakdown []Recommendation
}

// String renders the prediction for the terminal
func (p *Prediction) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Match.Ref())
	if p.Advice.Abstained() {
		fmt.Fprintf(&b, "  no bet: %s\n", p.Advice.Rationale)
	} else {
		fmt.Fprintf(&b, "  bet %s confidence %.2f (%s)\n", p.Advice.Side, p.Advice.Confidence, p.Advice.Rationale)
	}
	for _, r := range p.Breakdown {
		if r.Abstained() {
			fmt.Fprintf(&b, "    %-10s abstains: %s\n", r.Strategy, r.Rationale)
		} else {
			fmt.Fprintf(&b, "    %-10s %s %.2f: %s\n", r.Strategy, r.Side, r.Confidence, r.Rationale)
		}
	}
	return b.String()
}

// PredictUpcoming advises on every structurally valid unplayed fixture in the
// season, in declared order. History windows see only matches already played,
// so a part-played season predicts its remaining rounds.
func (r *Runner) PredictUpcoming(league, season string) ([]*Prediction, error) {
	season, err := ParseSeason(season)
	if err != nil {
		return nil, err
	}
	if !r.repo.HasSeason(league, season) {
		return nil, fmt.Errorf("no matches loaded for %s %s", league, season)
	}

	var prev *Standings
	if prevSeason, err := PreviousSeason(season); err == nil {
		prev = r.seasonStandings(league, prevSeason)
	}
	if prev == nil {
		logger.Info("No previous standings for", league, season, "- top_bottom disabled")
	}
	ctx := NewContext(r.tracker, prev)

	var predictions []*Prediction
	for _, m := range r.repo.SeasonMatches(league, season) {
		if m.HasBeenPlayed() {
			continue
		}
		if err := m.Validate(); err != nil {
			logger.Debug("Skipping fixture:", err)
			continue
		}
		predictions = append(predictions, &Prediction{
			Match:     m,
			Advice:    r.advisor.Advise(m, ctx),
			Breakdown: r.advisor.Evaluate(m, ctx),
		})
	}
	return predictions, nil
}
