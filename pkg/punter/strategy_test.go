package punter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// previousTable builds the four-team 2014/2015 table used by the Top-Bottom
// tests: Pilton, Quorn, Ruxley, Sutton in rank order, Sutton relegated
func previousTable(t *testing.T) *Standings {
	t.Helper()
	table, err := BuildStandings("E0", "2014/2015", completeTinySeason("E0", "2014/2015"), DefaultConfig())
	require.NoError(t, err)
	return table
}

func TestTopBottomBacksTopFinisher(t *testing.T) {
	s := TopBottomStrategy{TopN: 1}
	ctx := NewContext(nil, previousTable(t))

	m := played("E0", "2015/2016", "Pilton", "Ruxley", 0, 0, 0)
	rec := s.Evaluate(m, ctx)
	require.False(t, rec.Abstained())
	assert.Equal(t, SideHome, rec.Side)
	// rank 1 of 4
	assert.InDelta(t, 0.75, rec.Confidence, 1e-12)

	// same qualifier away from home
	m = played("E0", "2015/2016", "Ruxley", "Pilton", 0, 0, 1)
	rec = s.Evaluate(m, ctx)
	assert.Equal(t, SideAway, rec.Side)
}

func TestTopBottomBetsAgainstSurvivingBottomTeam(t *testing.T) {
	s := TopBottomStrategy{TopN: 2}
	ctx := NewContext(nil, previousTable(t))

	// Ruxley finished third of four (bottom 2) but survived; the promoted
	// side has no previous-season row, so the against-bet fires
	m := played("E0", "2015/2016", "Ruxley", "Newbury", 0, 0, 0)
	rec := s.Evaluate(m, ctx)
	require.False(t, rec.Abstained())
	assert.Equal(t, SideAway, rec.Side)
	assert.InDelta(t, 0.75, rec.Confidence, 1e-12)
}

func TestTopBottomExcludesRelegatedTeams(t *testing.T) {
	s := TopBottomStrategy{TopN: 1}
	ctx := NewContext(nil, previousTable(t))

	// Sutton finished bottom but was relegated; no against-bet against a
	// team that is not even in the league
	m := played("E0", "2015/2016", "Sutton", "Newbury", 0, 0, 0)
	rec := s.Evaluate(m, ctx)
	assert.True(t, rec.Abstained())
}

func TestTopBottomAbstains(t *testing.T) {
	s := TopBottomStrategy{TopN: 2}

	// no previous standings at all
	rec := s.Evaluate(played("E0", "2015/2016", "Pilton", "Quorn", 0, 0, 0), NewContext(nil, nil))
	assert.True(t, rec.Abstained())

	ctx := NewContext(nil, previousTable(t))

	// both sides in the top N
	rec = s.Evaluate(played("E0", "2015/2016", "Pilton", "Quorn", 0, 0, 0), ctx)
	assert.True(t, rec.Abstained())

	// two promoted sides, neither with a previous-season row
	rec = s.Evaluate(played("E0", "2015/2016", "Newbury", "Oundle", 0, 0, 0), ctx)
	assert.True(t, rec.Abstained())
}

func TestFormStrategyDecision(t *testing.T) {
	s := FormStrategy{Games: 5, Threshold: 0.6}

	good := FormWindow{Team: "Hove", Games: 5, Points: 12, MaxPoints: 15, Score: 0.8, Results: "WWWDL"}
	poor := FormWindow{Team: "Acle", Games: 5, Points: 4, MaxPoints: 15, Score: 4.0 / 15.0, Results: "DLLDL"}

	rec := s.decide("ref", good, poor)
	require.False(t, rec.Abstained())
	assert.Equal(t, SideHome, rec.Side)
	// (0.8 - 0.6) / (1 - 0.6)
	assert.InDelta(t, 0.5, rec.Confidence, 1e-12)

	rec = s.decide("ref", poor, good)
	assert.Equal(t, SideAway, rec.Side)

	// both above the threshold: no edge
	rec = s.decide("ref", good, good)
	assert.True(t, rec.Abstained())

	// both below
	rec = s.decide("ref", poor, poor)
	assert.True(t, rec.Abstained())

	// short history on either side
	short := FormWindow{Team: "Bude", Games: 2, Insufficient: true}
	assert.True(t, s.decide("ref", good, short).Abstained())
	assert.True(t, s.decide("ref", short, poor).Abstained())
}

func TestMomentumStrategyDecision(t *testing.T) {
	s := MomentumStrategy{Games: 5, DrawThreshold: 0.1}

	home := MomentumWindow{Team: "Hove", Games: 5, Streak: 0.5}
	away := MomentumWindow{Team: "Acle", Games: 5, Streak: 0.45}

	// gap 0.05 below the 0.1 threshold: draw, confidence 1 - 0.05/0.1
	rec := s.decide("ref", home, away)
	require.False(t, rec.Abstained())
	assert.Equal(t, SideDraw, rec.Side)
	assert.InDelta(t, 0.5, rec.Confidence, 1e-12)

	away.Streak = -0.3
	rec = s.decide("ref", home, away)
	assert.Equal(t, SideHome, rec.Side)
	// gap 0.8 over the widest possible gap of 2.0
	assert.InDelta(t, 0.4, rec.Confidence, 1e-12)

	rec = s.decide("ref", away, home)
	assert.Equal(t, SideAway, rec.Side)

	short := MomentumWindow{Team: "Bude", Games: 1, Insufficient: true}
	assert.True(t, s.decide("ref", home, short).Abstained())
}

func TestHomeAwayNeverAbstains(t *testing.T) {
	s := HomeAwayStrategy{Confidence: 0.46}
	m := played("E0", "2015/2016", "Hove", "Acle", 0, 0, 0)

	// no history, no standings; the baseline still bets home
	repo := NewRepository()
	ctx := NewContext(NewTracker(repo, DefaultConfig()), nil)
	rec := s.Evaluate(m, ctx)
	require.False(t, rec.Abstained())
	assert.Equal(t, SideHome, rec.Side)
	assert.InDelta(t, 0.46, rec.Confidence, 1e-12)
}
