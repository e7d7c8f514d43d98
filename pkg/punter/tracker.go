package punter

import "strings"

// FormWindow is a rolling points-based view of a team's trailing matches
type FormWindow struct {
	Team      string
	Games     int
	Points    int
	MaxPoints int
	Score     float64 // Points / MaxPoints, 0 when no games
	Results   string  // oldest to newest, e.g. "WWDLW"

	// Insufficient marks a window shorter than the requested lookback.
	// Strategies treat such windows as "no data" and abstain.
	Insufficient bool
}

// MomentumWindow is a signed streak-strength view of a team's trailing matches
type MomentumWindow struct {
	Team    string
	Games   int
	Streak  float64 // roughly [-1, 1]; positive for winning streaks
	Results string

	Insufficient bool
}

// Tracker computes rolling windows on demand from the repository's immutable
// per-team index. Nothing is cached: a window is a pure function of
// (team, ordinal boundary, lookback), which is what keeps reruns
// bit-for-bit identical.
type Tracker struct {
	repo  *Repository
	decay float64
}

// NewTracker creates a tracker over the given repository
func NewTracker(repo *Repository, cfg *Config) *Tracker {
	return &Tracker{repo: repo, decay: cfg.MomentumDecay}
}

// outcome scores a finished match from the team's perspective:
// win +1, draw 0, loss -1
func outcome(m *Match, team string) int {
	switch m.Result() {
	case SideHome:
		if m.HomeTeam == team {
			return 1
		}
		return -1
	case SideAway:
		if m.AwayTeam == team {
			return 1
		}
		return -1
	default:
		return 0
	}
}

// window returns the team's most recent `lookback` played matches strictly
// before the ordinal boundary, oldest first
func (t *Tracker) window(league, season, team string, ordinal, lookback int) []*Match {
	prior := t.repo.TeamMatchesBefore(league, season, team, ordinal)
	if len(prior) > lookback {
		prior = prior[len(prior)-lookback:]
	}
	return prior
}

func resultString(matches []*Match, team string) string {
	var b strings.Builder
	for _, m := range matches {
		switch outcome(m, team) {
		case 1:
			b.WriteByte('W')
		case -1:
			b.WriteByte('L')
		default:
			b.WriteByte('D')
		}
	}
	return b.String()
}

// Form computes the team's form window as of the given ordinal boundary.
// form score = points earned / maximum points available in the window.
func (t *Tracker) Form(league, season, team string, ordinal, lookback int) FormWindow {
	matches := t.window(league, season, team, ordinal, lookback)

	w := FormWindow{
		Team:         team,
		Games:        len(matches),
		Insufficient: len(matches) < lookback,
		Results:      resultString(matches, team),
	}
	for _, m := range matches {
		switch outcome(m, team) {
		case 1:
			w.Points += 3
		case 0:
			w.Points++
		}
	}
	w.MaxPoints = 3 * w.Games
	if w.MaxPoints > 0 {
		w.Score = float64(w.Points) / float64(w.MaxPoints)
	}
	return w
}

// Momentum folds the window's outcome sequence, oldest to newest, into one
// signed streak score:
//
//	streak = streak*decay + outcome*(1-decay)
//
// A run of same-sign results compounds towards +/-1 (n straight wins give
// 1-decay^n), an opposite or drawn result decays the accumulated value, and
// the newest result always carries at least as much weight as any older one.
func (t *Tracker) Momentum(league, season, team string, ordinal, lookback int) MomentumWindow {
	matches := t.window(league, season, team, ordinal, lookback)

	w := MomentumWindow{
		Team:         team,
		Games:        len(matches),
		Insufficient: len(matches) < lookback,
		Results:      resultString(matches, team),
	}
	for _, m := range matches {
		w.Streak = w.Streak*t.decay + float64(outcome(m, team))*(1-t.decay)
	}
	return w
}
