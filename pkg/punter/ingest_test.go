package punter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seasonCSV = `Date,HomeTeam,AwayTeam,FTHG,FTAG,FTR,B365H,B365D,B365A
15/08/2015,Arsenal,Chelsea,2,0,H,2.10,3.40,3.60
16/08/2015,,Spurs,1,1,D,2.00,3.30,3.80
17/08/2015,Leeds,Spurs,,,,1.90,3.50,4.20
18/08/2015,Everton,Watford,0,0,D,2.25,3.20,
`

func TestLoadSeason(t *testing.T) {
	repo := NewRepository()
	loaded, skipped, err := loadSeason(strings.NewReader(seasonCSV), "E0", "2015/16", "bet365", repo)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded)
	assert.Equal(t, 1, skipped) // the row with no home team

	matches := repo.SeasonMatches("E0", "2015/2016")
	require.Len(t, matches, 3)

	first := matches[0]
	assert.Equal(t, "Arsenal", first.HomeTeam)
	assert.Equal(t, "Chelsea", first.AwayTeam)
	assert.Equal(t, 2, first.HomeGoals)
	assert.Equal(t, 0, first.AwayGoals)
	assert.Equal(t, time.Date(2015, 8, 15, 0, 0, 0, 0, time.UTC), first.Date)
	assert.InDelta(t, 2.10, first.HomeOdds, 1e-12)
	assert.InDelta(t, 3.40, first.DrawOdds, 1e-12)
	assert.InDelta(t, 3.60, first.AwayOdds, 1e-12)
	assert.Equal(t, 0, first.Ordinal)

	// scheduled but unplayed survives ingestion
	fixture := matches[1]
	assert.False(t, fixture.HasBeenPlayed())
	assert.Equal(t, -1, fixture.HomeGoals)

	// a blank price stays -1 rather than becoming a bogus zero
	assert.InDelta(t, -1.0, matches[2].AwayOdds, 1e-12)
}

func TestLoadSeasonCSVFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2015.csv")
	require.NoError(t, os.WriteFile(path, []byte(seasonCSV), 0644))

	repo := NewRepository()
	loaded, _, err := LoadSeasonCSV(path, "E0", "2015/2016", "bet365", repo)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded)

	_, _, err = LoadSeasonCSV(filepath.Join(t.TempDir(), "missing.csv"), "E0", "2015/2016", "bet365", repo)
	assert.Error(t, err)
}

func TestLoadSeasonRequiresColumns(t *testing.T) {
	repo := NewRepository()
	_, _, err := loadSeason(strings.NewReader("Date,FTHG,FTAG\n"), "E0", "2015/2016", "bet365", repo)
	assert.ErrorContains(t, err, "HomeTeam")
}

func TestOddsColumns(t *testing.T) {
	h, d, a := oddsColumns(2000, "bet365")
	assert.Equal(t, []string{"LBH", "LBD", "LBA"}, []string{h, d, a})

	h, d, a = oddsColumns(2010, "bet365")
	assert.Equal(t, []string{"B365H", "B365D", "B365A"}, []string{h, d, a})

	h, d, a = oddsColumns(2020, "bet365")
	assert.Equal(t, []string{"B365CH", "B365CD", "B365CA"}, []string{h, d, a})

	h, d, a = oddsColumns(2020, "pinnacle")
	assert.Equal(t, []string{"PSCH", "PSCD", "PSCA"}, []string{h, d, a})
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, -1, parseGoals(""))
	assert.Equal(t, -1, parseGoals("x"))
	assert.Equal(t, 0, parseGoals("0"))
	assert.Equal(t, 3, parseGoals("3"))

	assert.InDelta(t, 2.5, parseOdds("2.5", ""), 1e-12)
	assert.InDelta(t, 1.8, parseOdds("", "1.8"), 1e-12) // fallback column
	assert.InDelta(t, -1.0, parseOdds("", ""), 1e-12)
	assert.InDelta(t, -1.0, parseOdds("0.5", ""), 1e-12) // sub-1.0 is garbage

	assert.True(t, parseDate("nonsense").IsZero())
	assert.Equal(t, 2001, parseDate("19/08/01").Year())
}
