package punter

import (
	"sort"
)

type leagueSeason struct {
	league string
	season string
}

// Repository holds the canonical match records supplied by the cleanser,
// keyed by league and season. Matches keep their declared source order; each
// Add assigns the next ordinal, and that ordinal (not the date alone) is what
// "strictly prior" means everywhere downstream. Once a season is loaded the
// structure is read-only, so concurrent readers need no locking.
type Repository struct {
	matches map[leagueSeason][]*Match
	byTeam  map[leagueSeason]map[string][]*Match
}

// NewRepository creates an empty match repository
func NewRepository() *Repository {
	return &Repository{
		matches: make(map[leagueSeason][]*Match),
		byTeam:  make(map[leagueSeason]map[string][]*Match),
	}
}

// Add appends a match in declared order and assigns its ordinal
func (r *Repository) Add(m *Match) {
	key := leagueSeason{m.League, m.Season}
	m.Ordinal = len(r.matches[key])
	r.matches[key] = append(r.matches[key], m)

	teams := r.byTeam[key]
	if teams == nil {
		teams = make(map[string][]*Match)
		r.byTeam[key] = teams
	}
	teams[m.HomeTeam] = append(teams[m.HomeTeam], m)
	teams[m.AwayTeam] = append(teams[m.AwayTeam], m)
}

// Seasons returns the seasons known for a league, ascending by first year
func (r *Repository) Seasons(league string) []string {
	var seasons []string
	for key := range r.matches {
		if key.league == league {
			seasons = append(seasons, key.season)
		}
	}
	sort.Slice(seasons, func(i, j int) bool {
		yi, erri := FirstYear(seasons[i])
		yj, errj := FirstYear(seasons[j])
		if erri != nil || errj != nil {
			return seasons[i] < seasons[j]
		}
		return yi < yj
	})
	return seasons
}

// Leagues returns all known league names, sorted
func (r *Repository) Leagues() []string {
	seen := make(map[string]bool)
	var leagues []string
	for key := range r.matches {
		if !seen[key.league] {
			seen[key.league] = true
			leagues = append(leagues, key.league)
		}
	}
	sort.Strings(leagues)
	return leagues
}

// SeasonMatches returns the matches of one league season in declared order
func (r *Repository) SeasonMatches(league, season string) []*Match {
	return r.matches[leagueSeason{league, season}]
}

// HasSeason reports whether any matches are loaded for the league season
func (r *Repository) HasSeason(league, season string) bool {
	return len(r.matches[leagueSeason{league, season}]) > 0
}

// TeamMatchesBefore returns the team's played matches with ordinal strictly
// below the given boundary, in declared order. This is the only accessor the
// Form/Momentum Tracker uses, which keeps the no-lookahead invariant in one
// place.
func (r *Repository) TeamMatchesBefore(league, season, team string, ordinal int) []*Match {
	all := r.byTeam[leagueSeason{league, season}][team]
	var prior []*Match
	for _, m := range all {
		if m.Ordinal >= ordinal {
			break
		}
		if m.HasBeenPlayed() {
			prior = append(prior, m)
		}
	}
	return prior
}
