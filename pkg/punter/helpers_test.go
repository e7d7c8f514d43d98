package punter

import (
	"time"
)

// played returns a finished match with plausible odds, dated day offsets into
// the season so declared order and date order agree
func played(league, season, home, away string, hg, ag, day int) *Match {
	m := NewMatch()
	m.League = league
	m.Season = season
	m.HomeTeam = home
	m.AwayTeam = away
	m.HomeGoals = hg
	m.AwayGoals = ag
	m.HomeOdds = 2.0
	m.DrawOdds = 3.3
	m.AwayOdds = 3.8
	m.Date = seasonDate(season, day)
	return m
}

// upcoming returns a scheduled match without a result
func upcoming(league, season, home, away string, day int) *Match {
	m := NewMatch()
	m.League = league
	m.Season = season
	m.HomeTeam = home
	m.AwayTeam = away
	m.HomeOdds = 2.0
	m.DrawOdds = 3.3
	m.AwayOdds = 3.8
	m.Date = seasonDate(season, day)
	return m
}

func seasonDate(season string, day int) time.Time {
	year, err := FirstYear(season)
	if err != nil {
		year = 2015
	}
	return time.Date(year, time.August, 1, 15, 0, 0, 0, time.UTC).AddDate(0, 0, day)
}

// fillRepo adds matches in the given (declared) order
func fillRepo(matches ...*Match) *Repository {
	repo := NewRepository()
	for _, m := range matches {
		repo.Add(m)
	}
	return repo
}

// completeTinySeason is a 4-team season where every match is played:
// Pilton and Quorn finish identical on points, goal difference and goals
// scored, as do Ruxley and Sutton. Final order is alphabetical within each
// pair: Pilton, Quorn, Ruxley, Sutton.
func completeTinySeason(league, season string) []*Match {
	return []*Match{
		played(league, season, "Pilton", "Ruxley", 1, 0, 0),
		played(league, season, "Quorn", "Sutton", 1, 0, 1),
		played(league, season, "Pilton", "Quorn", 0, 0, 2),
		played(league, season, "Ruxley", "Sutton", 0, 0, 3),
		played(league, season, "Pilton", "Sutton", 1, 0, 4),
		played(league, season, "Quorn", "Ruxley", 1, 0, 5),
	}
}
