package punter

import (
	"fmt"
	"math"
)

// StrategyID identifies one member of the strategy set
type StrategyID string

const (
	StrategyTopBottom StrategyID = "top_bottom"
	StrategyForm      StrategyID = "form"
	StrategyMomentum  StrategyID = "momentum"
	StrategyHomeAway  StrategyID = "home_away"
	StrategyWeighted  StrategyID = "weighted"
)

// Recommendation is a single strategy's verdict on a single match.
// Side NONE with confidence 0 means the strategy abstained.
type Recommendation struct {
	Strategy   StrategyID   `json:"strategy"`
	MatchRef   string       `json:"matchRef"`
	Side       Side         `json:"side"`
	Confidence float64      `json:"confidence"` // in [0,1]
	Rationale  string       `json:"rationale"`
	Supporting []StrategyID `json:"supporting,omitempty"` // set by the advisor only
}

// Abstained reports whether this recommendation declines to pick a side
func (r Recommendation) Abstained() bool {
	return r.Side == SideNone || r.Confidence <= 0
}

func abstain(id StrategyID, ref, reason string) Recommendation {
	return Recommendation{Strategy: id, MatchRef: ref, Side: SideNone, Rationale: reason}
}

// Context bundles the accessors a strategy may consult for one match. Every
// accessor is scoped strictly before the match being evaluated: windows stop
// at the match's ordinal and the only standings available are the previous
// season's final table. Strategies cannot reach past that boundary.
type Context struct {
	tracker  *Tracker
	previous *Standings // previous season's final table, nil when unavailable
}

// NewContext builds an evaluation context. previous may be nil (first tracked
// season, or the previous season could not be completed); the Top-Bottom
// strategy then abstains.
func NewContext(tracker *Tracker, previous *Standings) *Context {
	return &Context{tracker: tracker, previous: previous}
}

// Form returns the team's form window as of the given match
func (c *Context) Form(m *Match, team string, games int) FormWindow {
	return c.tracker.Form(m.League, m.Season, team, m.Ordinal, games)
}

// Momentum returns the team's momentum window as of the given match
func (c *Context) Momentum(m *Match, team string, games int) MomentumWindow {
	return c.tracker.Momentum(m.League, m.Season, team, m.Ordinal, games)
}

// PreviousStandings returns the previous season's final table, or nil
func (c *Context) PreviousStandings() *Standings {
	return c.previous
}

// Strategy is the shared evaluation capability of the strategy set. The set
// is closed (the unexported method seals it): the advisor reasons over every
// member explicitly, so new strategies are added here, not plugged in.
type Strategy interface {
	ID() StrategyID
	Evaluate(m *Match, ctx *Context) Recommendation

	isStrategy()
}

// DefaultStrategies returns the full strategy set configured from cfg, in
// advisor weight order
func DefaultStrategies(cfg *Config) []Strategy {
	return []Strategy{
		MomentumStrategy{Games: cfg.MomentumGames, DrawThreshold: cfg.MomentumDraw},
		FormStrategy{Games: cfg.FormGames, Threshold: cfg.FormThreshold},
		TopBottomStrategy{TopN: cfg.TopN},
		HomeAwayStrategy{Confidence: cfg.HomeConfidence},
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

/////////////////////////////////////////////////////////////////////////
////// Top-Bottom
/////////////////////////////////////////////////////////////////////////

// TopBottomStrategy bets FOR teams that finished in the previous season's top
// N and AGAINST teams that finished in the bottom N without being relegated.
// It knows nothing about the current season.
type TopBottomStrategy struct {
	TopN int
}

func (TopBottomStrategy) ID() StrategyID { return StrategyTopBottom }
func (TopBottomStrategy) isStrategy()    {}

func (s TopBottomStrategy) Evaluate(m *Match, ctx *Context) Recommendation {
	prev := ctx.PreviousStandings()
	if prev == nil {
		return abstain(StrategyTopBottom, m.Ref(), "no previous season standings")
	}
	total := prev.Size()
	home := prev.Find(m.HomeTeam)
	away := prev.Find(m.AwayTeam)

	// FOR bet: exactly one side finished in the top N. A promoted team has
	// no row and so can never qualify.
	homeTop := home != nil && home.Rank <= s.TopN
	awayTop := away != nil && away.Rank <= s.TopN
	if homeTop != awayTop {
		row, side := home, SideHome
		if awayTop {
			row, side = away, SideAway
		}
		// confidence scales with how high the team finished
		conf := clamp01(1.0 - float64(row.Rank)/float64(total))
		return Recommendation{
			Strategy:   StrategyTopBottom,
			MatchRef:   m.Ref(),
			Side:       side,
			Confidence: conf,
			Rationale:  fmt.Sprintf("%s finished rank %d of %d last season", row.Team, row.Rank, total),
		}
	}

	// AGAINST bet: exactly one side finished in the bottom N and survived.
	// Relegated teams are excluded; so is a promoted team freshly occupying
	// a bottom slot (it has no previous-season row at all).
	bottomN := s.TopN
	inBottom := func(r *SeasonStanding) bool {
		return r != nil && !r.Relegated && r.Rank > total-bottomN
	}
	homeBottom := inBottom(home)
	awayBottom := inBottom(away)
	if homeBottom != awayBottom {
		row, side := home, SideAway // back the opponent
		if awayBottom {
			row, side = away, SideHome
		}
		// monotonic in how deep in the bottom zone the opponent sat
		conf := clamp01(0.5 + float64(row.Rank-(total-bottomN))/float64(2*bottomN))
		return Recommendation{
			Strategy:   StrategyTopBottom,
			MatchRef:   m.Ref(),
			Side:       side,
			Confidence: conf,
			Rationale:  fmt.Sprintf("against %s, rank %d of %d last season and not relegated", row.Team, row.Rank, total),
		}
	}

	return abstain(StrategyTopBottom, m.Ref(), "neither or both sides qualify")
}

/////////////////////////////////////////////////////////////////////////
////// Form
/////////////////////////////////////////////////////////////////////////

// FormStrategy backs the side whose trailing form score clears the threshold
// when the other side's does not
type FormStrategy struct {
	Games     int
	Threshold float64
}

func (FormStrategy) ID() StrategyID { return StrategyForm }
func (FormStrategy) isStrategy()    {}

func (s FormStrategy) Evaluate(m *Match, ctx *Context) Recommendation {
	hw := ctx.Form(m, m.HomeTeam, s.Games)
	aw := ctx.Form(m, m.AwayTeam, s.Games)
	return s.decide(m.Ref(), hw, aw)
}

func (s FormStrategy) decide(ref string, hw, aw FormWindow) Recommendation {
	if hw.Insufficient || aw.Insufficient {
		return abstain(StrategyForm, ref, fmt.Sprintf("insufficient history (%d/%d of %d games)", hw.Games, aw.Games, s.Games))
	}

	homeGood := hw.Score >= s.Threshold
	awayGood := aw.Score >= s.Threshold
	if homeGood == awayGood {
		return abstain(StrategyForm, ref, "neither or both sides clear the form threshold")
	}

	w, side := hw, SideHome
	if awayGood {
		w, side = aw, SideAway
	}
	// normalized margin above the threshold
	conf := clamp01((w.Score - s.Threshold) / (1.0 - s.Threshold))
	return Recommendation{
		Strategy:   StrategyForm,
		MatchRef:   ref,
		Side:       side,
		Confidence: conf,
		Rationale:  fmt.Sprintf("%s form %.2f (%s) vs %.2f over last %d", w.Team, w.Score, w.Results, opposite(hw, aw, side).Score, s.Games),
	}
}

func opposite(hw, aw FormWindow, side Side) FormWindow {
	if side == SideHome {
		return aw
	}
	return hw
}

/////////////////////////////////////////////////////////////////////////
////// Momentum
/////////////////////////////////////////////////////////////////////////

// MomentumStrategy compares streak strength. Sides streaking equally hard get
// a draw recommendation; otherwise the hotter side is backed.
type MomentumStrategy struct {
	Games         int
	DrawThreshold float64
}

func (MomentumStrategy) ID() StrategyID { return StrategyMomentum }
func (MomentumStrategy) isStrategy()    {}

func (s MomentumStrategy) Evaluate(m *Match, ctx *Context) Recommendation {
	hw := ctx.Momentum(m, m.HomeTeam, s.Games)
	aw := ctx.Momentum(m, m.AwayTeam, s.Games)
	return s.decide(m.Ref(), hw, aw)
}

func (s MomentumStrategy) decide(ref string, hw, aw MomentumWindow) Recommendation {
	if hw.Insufficient || aw.Insufficient {
		return abstain(StrategyMomentum, ref, fmt.Sprintf("insufficient history (%d/%d of %d games)", hw.Games, aw.Games, s.Games))
	}

	gap := hw.Streak - aw.Streak
	if math.Abs(gap) < s.DrawThreshold {
		// the closer the streaks, the stronger the draw signal
		conf := clamp01(1.0 - math.Abs(gap)/s.DrawThreshold)
		return Recommendation{
			Strategy:   StrategyMomentum,
			MatchRef:   ref,
			Side:       SideDraw,
			Confidence: conf,
			Rationale:  fmt.Sprintf("momentum %.2f vs %.2f, gap %.2f below %.2f", hw.Streak, aw.Streak, math.Abs(gap), s.DrawThreshold),
		}
	}

	side := SideHome
	if gap < 0 {
		side = SideAway
	}
	// 2.0 is the widest possible momentum gap (+1 against -1)
	conf := clamp01(math.Abs(gap) / 2.0)
	return Recommendation{
		Strategy:   StrategyMomentum,
		MatchRef:   ref,
		Side:       side,
		Confidence: conf,
		Rationale:  fmt.Sprintf("momentum %.2f (%s) vs %.2f (%s)", hw.Streak, hw.Results, aw.Streak, aw.Results),
	}
}

/////////////////////////////////////////////////////////////////////////
////// Home-Away
/////////////////////////////////////////////////////////////////////////

// HomeAwayStrategy always backs the home side at a fixed confidence. It is
// the unconditional baseline the other strategies are measured against and
// never abstains.
type HomeAwayStrategy struct {
	Confidence float64
}

func (HomeAwayStrategy) ID() StrategyID { return StrategyHomeAway }
func (HomeAwayStrategy) isStrategy()    {}

func (s HomeAwayStrategy) Evaluate(m *Match, _ *Context) Recommendation {
	return Recommendation{
		Strategy:   StrategyHomeAway,
		MatchRef:   m.Ref(),
		Side:       SideHome,
		Confidence: clamp01(s.Confidence),
		Rationale:  "home advantage baseline",
	}
}
