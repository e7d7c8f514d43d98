package punter

import (
	"fmt"
	"time"
)

// Side is the outcome of a match, or the side a recommendation backs
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
	SideDraw Side = "DRAW"
	SideNone Side = "NONE"
)

// Match represents a single canonical fixture as delivered by the cleanser.
// Numeric fields default to -1 so that a valid zero (a 0-0 draw, say) can be
// distinguished from missing data.
type Match struct {
	League   string    `json:"league" column:"league" dbtype:"TEXT NOT NULL" index:"true"`
	Season   string    `json:"season" column:"season" dbtype:"TEXT NOT NULL" index:"true"`
	Round    int       `json:"round" column:"round" dbtype:"INTEGER DEFAULT 0"`
	Date     time.Time `json:"date" column:"date" dbtype:"DATETIME" index:"true"`
	HomeTeam string    `json:"homeTeam" column:"home_team" dbtype:"TEXT NOT NULL"`
	AwayTeam string    `json:"awayTeam" column:"away_team" dbtype:"TEXT NOT NULL"`

	HomeGoals int `json:"homeGoals" column:"home_goals" dbtype:"INTEGER DEFAULT -1"`
	AwayGoals int `json:"awayGoals" column:"away_goals" dbtype:"INTEGER DEFAULT -1"`

	// Decimal odds (>= 1.0), -1.0 when the source carried no price
	HomeOdds float64 `json:"homeOdds" column:"home_odds" dbtype:"REAL DEFAULT -1.0"`
	DrawOdds float64 `json:"drawOdds" column:"draw_odds" dbtype:"REAL DEFAULT -1.0"`
	AwayOdds float64 `json:"awayOdds" column:"away_odds" dbtype:"REAL DEFAULT -1.0"`

	// Ordinal is the match's position in the declared source sequence for its
	// league/season. It is the authoritative ordering for "prior" decisions,
	// breaking same-date ties. Assigned by the Repository on Add.
	Ordinal int `json:"ordinal" column:"ordinal" dbtype:"INTEGER DEFAULT -1" index:"true"`
}

// NewMatch creates a Match with missing-data defaults
func NewMatch() *Match {
	return &Match{
		HomeGoals: -1,
		AwayGoals: -1,
		HomeOdds:  -1.0,
		DrawOdds:  -1.0,
		AwayOdds:  -1.0,
		Ordinal:   -1,
	}
}

// HasBeenPlayed determines if the match has a recorded result
func (m *Match) HasBeenPlayed() bool {
	return m.HomeGoals >= 0 && m.AwayGoals >= 0
}

// Result returns the side that won the match, or SideNone for an unplayed match
func (m *Match) Result() Side {
	if !m.HasBeenPlayed() {
		return SideNone
	}
	switch {
	case m.HomeGoals > m.AwayGoals:
		return SideHome
	case m.HomeGoals < m.AwayGoals:
		return SideAway
	default:
		return SideDraw
	}
}

// OddsFor returns the recorded decimal odds for the given side,
// or -1.0 when the side has no price
func (m *Match) OddsFor(side Side) float64 {
	switch side {
	case SideHome:
		return m.HomeOdds
	case SideAway:
		return m.AwayOdds
	case SideDraw:
		return m.DrawOdds
	default:
		return -1.0
	}
}

// Ref returns a stable human-readable reference for the match
func (m *Match) Ref() string {
	return fmt.Sprintf("%s %s %s v %s (%s)",
		m.League, m.Season, m.HomeTeam, m.AwayTeam, m.Date.Format("2006-01-02"))
}

// Validate checks the structural fields a match must always carry.
// A played/unplayed result is not a structural concern; the Backtest Runner
// decides separately what to do with resultless matches.
func (m *Match) Validate() error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return &MalformedMatchError{Ref: m.Ref(), Reason: "missing team name"}
	}
	if m.HomeTeam == m.AwayTeam {
		return &MalformedMatchError{Ref: m.Ref(), Reason: "home and away teams are the same"}
	}
	if m.Date.IsZero() {
		return &MalformedMatchError{Ref: m.Ref(), Reason: "missing or unparseable date"}
	}
	if m.League == "" || m.Season == "" {
		return &MalformedMatchError{Ref: m.Ref(), Reason: "missing league or season"}
	}
	// one goal recorded without the other is a mangled result, not an upcoming match
	if (m.HomeGoals >= 0) != (m.AwayGoals >= 0) {
		return &MalformedMatchError{Ref: m.Ref(), Reason: "partial result"}
	}
	return nil
}
