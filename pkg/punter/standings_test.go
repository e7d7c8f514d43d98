package punter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStandingsNameTieBreak(t *testing.T) {
	cfg := DefaultConfig()
	table, err := BuildStandings("E0", "2014/2015", completeTinySeason("E0", "2014/2015"), cfg)
	require.NoError(t, err)
	require.Equal(t, 4, table.Size())

	// both pairs are identical on points, GD and GF; name decides
	order := []string{"Pilton", "Quorn", "Ruxley", "Sutton"}
	for i, team := range order {
		row := table.Rows[i]
		assert.Equal(t, team, row.Team)
		assert.Equal(t, i+1, row.Rank)
	}

	assert.Equal(t, 7, table.Find("Pilton").Points)
	assert.Equal(t, 2, table.Find("Pilton").GoalsFor)
	assert.Equal(t, 1, table.Find("Sutton").Points)
}

func TestBuildStandingsGoalsForTieBreak(t *testing.T) {
	cfg := DefaultConfig()
	// Apton and Brigg both win once and draw twice, both +2 goal difference,
	// but Apton scores more
	matches := []*Match{
		played("E0", "2014/2015", "Apton", "Colne", 3, 1, 0),
		played("E0", "2014/2015", "Brigg", "Dalton", 2, 0, 1),
		played("E0", "2014/2015", "Apton", "Brigg", 0, 0, 2),
		played("E0", "2014/2015", "Colne", "Dalton", 0, 0, 3),
		played("E0", "2014/2015", "Apton", "Dalton", 0, 0, 4),
		played("E0", "2014/2015", "Brigg", "Colne", 0, 0, 5),
	}
	table, err := BuildStandings("E0", "2014/2015", matches, cfg)
	require.NoError(t, err)

	apton, brigg := table.Find("Apton"), table.Find("Brigg")
	require.Equal(t, apton.Points, brigg.Points)
	require.Equal(t, apton.GoalDiff, brigg.GoalDiff)
	assert.Greater(t, apton.GoalsFor, brigg.GoalsFor)
	assert.Equal(t, 1, apton.Rank)
	assert.Equal(t, 2, brigg.Rank)
}

func TestBuildStandingsRelegation(t *testing.T) {
	cfg := DefaultConfig()
	table, err := BuildStandings("E0", "2014/2015", completeTinySeason("E0", "2014/2015"), cfg)
	require.NoError(t, err)

	// 3 spots per 20 teams scales to 1 spot for a 4-team league
	assert.False(t, table.Find("Pilton").Relegated)
	assert.False(t, table.Find("Ruxley").Relegated)
	assert.True(t, table.Find("Sutton").Relegated)
}

func TestBuildStandingsIncompleteSeason(t *testing.T) {
	matches := completeTinySeason("E0", "2014/2015")
	matches = append(matches, upcoming("E0", "2014/2015", "Pilton", "Quorn", 6))

	_, err := BuildStandings("E0", "2014/2015", matches, DefaultConfig())
	require.Error(t, err)
	var ierr *IncompleteSeasonError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 1, ierr.Missing)
	assert.Equal(t, "2014/2015", ierr.Season)
}

func TestRelegationSpots(t *testing.T) {
	cfg := DefaultConfig() // 3 per 20
	assert.Equal(t, 3, RelegationSpots(20, cfg))
	assert.Equal(t, 3, RelegationSpots(18, cfg))
	assert.Equal(t, 4, RelegationSpots(24, cfg))
	assert.Equal(t, 1, RelegationSpots(4, cfg))
	assert.Equal(t, 1, RelegationSpots(2, cfg)) // never below one
	assert.Equal(t, 0, RelegationSpots(0, cfg))
}
