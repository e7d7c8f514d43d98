package punter

import (
	"fmt"
	"strings"

	"github.com/richard-senior/punter/internal/logger"
)

// BetOutcome is the settlement state of a bet
type BetOutcome string

const (
	BetWon  BetOutcome = "WON"
	BetLost BetOutcome = "LOST"
	// BetVoid marks a bet whose recommended side carried no usable odds.
	// Void bets are counted separately and excluded from ROI.
	BetVoid BetOutcome = "VOID"
)

// Compile-time check to ensure Bet implements Persistable
var _ Persistable = (*Bet)(nil)

// Bet is one settled (or voided) wager created by the Backtest Runner
type Bet struct {
	MatchRef string     `json:"matchRef" column:"match_ref" dbtype:"TEXT NOT NULL" primary:"true"`
	Strategy StrategyID `json:"strategy" column:"strategy" dbtype:"TEXT NOT NULL" primary:"true"`
	League   string     `json:"league" column:"league" dbtype:"TEXT NOT NULL" index:"true"`
	Season   string     `json:"season" column:"season" dbtype:"TEXT NOT NULL" index:"true"`
	Side     Side       `json:"side" column:"side" dbtype:"TEXT NOT NULL"`
	Stake    float64    `json:"stake" column:"stake" dbtype:"REAL DEFAULT 0.0"`
	Odds     float64    `json:"odds" column:"odds" dbtype:"REAL DEFAULT -1.0"`
	Outcome  BetOutcome `json:"outcome" column:"outcome" dbtype:"TEXT NOT NULL"`
	Profit   float64    `json:"profit" column:"profit" dbtype:"REAL DEFAULT 0.0"`
}

func (b *Bet) TableName() string {
	return "bet"
}

func (b *Bet) PrimaryKey() map[string]any {
	return map[string]any{
		"match_ref": b.MatchRef,
		"strategy":  string(b.Strategy),
	}
}

// SeasonReport aggregates one season of a backtest
type SeasonReport struct {
	League  string
	Season  string
	Bets    int // settled bets only
	Wins    int
	Voids   int
	Skipped int // malformed or resultless matches
	Staked  float64
	Profit  float64
	WinRate float64 // Wins / Bets
	ROI     float64 // Profit / Staked

	// Disabled lists strategies that could not participate this season
	// (currently only Top-Bottom, when no previous standings exist)
	Disabled []StrategyID
}

// Report is the full outcome of a backtest run. Identical inputs always
// produce an identical report, including its String rendering.
type Report struct {
	League   string
	Strategy StrategyID
	Seasons  []SeasonReport
	Bets     []*Bet

	TotalBets    int
	TotalWins    int
	TotalVoids   int
	TotalSkipped int
	TotalStaked  float64
	TotalProfit  float64
	WinRate      float64
	ROI          float64
}

// String renders the report as the user-facing summary, including the
// skipped and disabled-strategy tallies per season
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "backtest %s strategy=%s\n", r.League, r.Strategy)
	for _, s := range r.Seasons {
		fmt.Fprintf(&b, "  %s: bets=%d wins=%d winrate=%.2f%% staked=%.2f profit=%+.2f roi=%+.2f%% voids=%d skipped=%d",
			s.Season, s.Bets, s.Wins, s.WinRate*100, s.Staked, s.Profit, s.ROI*100, s.Voids, s.Skipped)
		if len(s.Disabled) > 0 {
			ids := make([]string, len(s.Disabled))
			for i, id := range s.Disabled {
				ids[i] = string(id)
			}
			fmt.Fprintf(&b, " disabled=%s", strings.Join(ids, ","))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  overall: bets=%d wins=%d winrate=%.2f%% staked=%.2f profit=%+.2f roi=%+.2f%% voids=%d skipped=%d\n",
		r.TotalBets, r.TotalWins, r.WinRate*100, r.TotalStaked, r.TotalProfit, r.ROI*100, r.TotalVoids, r.TotalSkipped)
	return b.String()
}

// Runner drives the strategy set chronologically over a league's seasons and
// settles every recommendation against the recorded result and odds
type Runner struct {
	repo       *Repository
	cfg        *Config
	tracker    *Tracker
	advisor    *Advisor
	strategies []Strategy

	standings map[string]*Standings // per season, built at each season's end
	attempted map[string]bool
}

// NewRunner validates the configuration and prepares a runner. Configuration
// problems are fatal here, before any computation starts.
func NewRunner(repo *Repository, cfg *Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		repo:       repo,
		cfg:        cfg,
		tracker:    NewTracker(repo, cfg),
		advisor:    NewAdvisor(cfg),
		strategies: DefaultStrategies(cfg),
		standings:  make(map[string]*Standings),
		attempted:  make(map[string]bool),
	}, nil
}

// strategyFor resolves a strategy id to its configured instance; nil means
// the weighted advisor drives the run
func (r *Runner) strategyFor(id StrategyID) (Strategy, error) {
	if id == StrategyWeighted {
		return nil, nil
	}
	for _, s := range r.strategies {
		if s.ID() == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown strategy: %s", id)
}

// seasonStandings returns the cached final table for a league season,
// computing it once from repository data. Returns nil when the season is
// absent or incomplete; that is not fatal, it only disables Top-Bottom
// participation downstream.
func (r *Runner) seasonStandings(league, season string) *Standings {
	key := league + "|" + season
	if r.attempted[key] {
		return r.standings[key]
	}
	r.attempted[key] = true
	if !r.repo.HasSeason(league, season) {
		return nil
	}
	table, err := BuildStandings(league, season, r.repo.SeasonMatches(league, season), r.cfg)
	if err != nil {
		logger.Warn("Cannot build standings for", league, season, err)
		return nil
	}
	r.standings[key] = table
	return table
}

// Run backtests one league over the inclusive season range, driving either a
// single strategy or the weighted advisor
func (r *Runner) Run(league, startSeason, endSeason string, id StrategyID) (*Report, error) {
	start, err := ParseSeason(startSeason)
	if err != nil {
		return nil, err
	}
	end, err := ParseSeason(endSeason)
	if err != nil {
		return nil, err
	}
	startYear, _ := FirstYear(start)
	endYear, _ := FirstYear(end)
	if endYear < startYear {
		return nil, fmt.Errorf("season range %s..%s is reversed", start, end)
	}

	selected, err := r.strategyFor(id)
	if err != nil {
		return nil, err
	}

	var seasons []string
	for _, season := range r.repo.Seasons(league) {
		year, err := FirstYear(season)
		if err != nil {
			continue
		}
		if year >= startYear && year <= endYear {
			seasons = append(seasons, season)
		}
	}
	if len(seasons) == 0 {
		return nil, fmt.Errorf("no seasons loaded for %s in range %s..%s", league, start, end)
	}

	report := &Report{League: league, Strategy: id}

	for _, season := range seasons {
		prevSeason, err := PreviousSeason(season)
		var prev *Standings
		if err == nil {
			prev = r.seasonStandings(league, prevSeason)
		}

		sr := SeasonReport{League: league, Season: season}
		if prev == nil && (id == StrategyWeighted || id == StrategyTopBottom) {
			sr.Disabled = append(sr.Disabled, StrategyTopBottom)
			logger.Info("No previous standings for", league, season, "- top_bottom disabled")
		}

		ctx := NewContext(r.tracker, prev)

		for _, m := range r.repo.SeasonMatches(league, season) {
			if err := m.Validate(); err != nil {
				logger.Debug("Skipping match", err)
				sr.Skipped++
				continue
			}
			if !m.HasBeenPlayed() {
				sr.Skipped++
				continue
			}

			var rec Recommendation
			if selected != nil {
				rec = selected.Evaluate(m, ctx)
			} else {
				rec = r.advisor.Advise(m, ctx)
			}
			if rec.Abstained() {
				continue
			}

			bet := r.settle(m, rec, id)
			report.Bets = append(report.Bets, bet)
			if bet.Outcome == BetVoid {
				sr.Voids++
				continue
			}
			sr.Bets++
			sr.Staked += bet.Stake
			sr.Profit += bet.Profit
			if bet.Outcome == BetWon {
				sr.Wins++
			}
		}

		if sr.Bets > 0 {
			sr.WinRate = float64(sr.Wins) / float64(sr.Bets)
		}
		if sr.Staked > 0 {
			sr.ROI = sr.Profit / sr.Staked
		}
		report.Seasons = append(report.Seasons, sr)

		report.TotalBets += sr.Bets
		report.TotalWins += sr.Wins
		report.TotalVoids += sr.Voids
		report.TotalSkipped += sr.Skipped
		report.TotalStaked += sr.Staked
		report.TotalProfit += sr.Profit

		// make this season's table available for the next season's Top-Bottom
		r.seasonStandings(league, season)
	}

	if report.TotalBets > 0 {
		report.WinRate = float64(report.TotalWins) / float64(report.TotalBets)
	}
	if report.TotalStaked > 0 {
		report.ROI = report.TotalProfit / report.TotalStaked
	}
	return report, nil
}

// settle books a bet at a fixed stake on the recommended side and settles it
// against the recorded result
func (r *Runner) settle(m *Match, rec Recommendation, runAs StrategyID) *Bet {
	bet := &Bet{
		MatchRef: rec.MatchRef,
		Strategy: runAs,
		League:   m.League,
		Season:   m.Season,
		Side:     rec.Side,
		Stake:    r.cfg.Stake,
		Odds:     m.OddsFor(rec.Side),
	}
	if bet.Odds < 1.0 {
		bet.Outcome = BetVoid
		bet.Stake = 0
		bet.Profit = 0
		return bet
	}
	if m.Result() == rec.Side {
		bet.Outcome = BetWon
		bet.Profit = bet.Stake * (bet.Odds - 1.0)
	} else {
		bet.Outcome = BetLost
		bet.Profit = -bet.Stake
	}
	return bet
}
