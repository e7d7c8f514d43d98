package punter

import (
	"math"
	"sort"
)

// Compile-time check to ensure SeasonStanding implements Persistable
var _ Persistable = (*SeasonStanding)(nil)

// SeasonStanding is one row of a completed season's final table. Immutable
// after computation; consumed by the Top-Bottom strategy for the following
// season.
type SeasonStanding struct {
	League string `json:"league" column:"league" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Season string `json:"season" column:"season" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Team   string `json:"team" column:"team" dbtype:"TEXT NOT NULL" primary:"true"`

	Rank         int  `json:"rank" column:"rank" dbtype:"INTEGER DEFAULT 0"`
	Played       int  `json:"played" column:"played" dbtype:"INTEGER DEFAULT 0"`
	Wins         int  `json:"wins" column:"wins" dbtype:"INTEGER DEFAULT 0"`
	Draws        int  `json:"draws" column:"draws" dbtype:"INTEGER DEFAULT 0"`
	Losses       int  `json:"losses" column:"losses" dbtype:"INTEGER DEFAULT 0"`
	GoalsFor     int  `json:"goalsFor" column:"goals_for" dbtype:"INTEGER DEFAULT 0"`
	GoalsAgainst int  `json:"goalsAgainst" column:"goals_against" dbtype:"INTEGER DEFAULT 0"`
	GoalDiff     int  `json:"goalDiff" column:"goal_diff" dbtype:"INTEGER DEFAULT 0"`
	Points       int  `json:"points" column:"points" dbtype:"INTEGER DEFAULT 0"`
	Relegated    bool `json:"relegated" column:"relegated" dbtype:"INTEGER DEFAULT 0"`
}

func (s *SeasonStanding) TableName() string {
	return "season_standing"
}

func (s *SeasonStanding) PrimaryKey() map[string]any {
	return map[string]any{
		"league": s.League,
		"season": s.Season,
		"team":   s.Team,
	}
}

// Standings is a completed season's final table with by-team lookup
type Standings struct {
	League string
	Season string
	Rows   []*SeasonStanding

	byTeam map[string]*SeasonStanding
}

// Find returns the row for the team, or nil if the team did not play the season
func (s *Standings) Find(team string) *SeasonStanding {
	return s.byTeam[team]
}

// Size returns the number of teams in the table
func (s *Standings) Size() int {
	return len(s.Rows)
}

// BuildStandings derives the season-end table from a completed season's
// matches. Points: win 3, draw 1. Tie-break: points desc, goal difference
// desc, goals scored desc, team name asc — deterministic and stable.
// Returns IncompleteSeasonError when any scheduled match lacks a result.
func BuildStandings(league, season string, matches []*Match, cfg *Config) (*Standings, error) {
	missing := 0
	for _, m := range matches {
		if !m.HasBeenPlayed() {
			missing++
		}
	}
	if missing > 0 {
		return nil, &IncompleteSeasonError{League: league, Season: season, Missing: missing}
	}

	rows := make(map[string]*SeasonStanding)
	row := func(team string) *SeasonStanding {
		r, ok := rows[team]
		if !ok {
			r = &SeasonStanding{League: league, Season: season, Team: team}
			rows[team] = r
		}
		return r
	}

	for _, m := range matches {
		home, away := row(m.HomeTeam), row(m.AwayTeam)
		home.Played++
		away.Played++
		home.GoalsFor += m.HomeGoals
		home.GoalsAgainst += m.AwayGoals
		away.GoalsFor += m.AwayGoals
		away.GoalsAgainst += m.HomeGoals

		switch m.Result() {
		case SideHome:
			home.Wins++
			away.Losses++
			home.Points += 3
		case SideAway:
			away.Wins++
			home.Losses++
			away.Points += 3
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	table := make([]*SeasonStanding, 0, len(rows))
	for _, r := range rows {
		r.GoalDiff = r.GoalsFor - r.GoalsAgainst
		table = append(table, r)
	}

	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})

	spots := RelegationSpots(len(table), cfg)
	byTeam := make(map[string]*SeasonStanding, len(table))
	for i, r := range table {
		r.Rank = i + 1
		r.Relegated = r.Rank > len(table)-spots
		byTeam[r.Team] = r
	}

	return &Standings{League: league, Season: season, Rows: table, byTeam: byTeam}, nil
}

// RelegationSpots returns the number of relegation places for a league of the
// given size: the configured count per 20-team league, scaled proportionally
// and never below 1.
func RelegationSpots(teams int, cfg *Config) int {
	if teams <= 0 {
		return 0
	}
	spots := int(math.Round(float64(cfg.RelegationSpots) * float64(teams) / 20.0))
	if spots < 1 {
		spots = 1
	}
	return spots
}
