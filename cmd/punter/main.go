package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/richard-senior/punter/internal/logger"
	"github.com/richard-senior/punter/pkg/punter"
)

func main() {
	var (
		dataDir    = flag.String("data", "data", "directory of per-league season CSV files (<league>/<year>.csv)")
		league     = flag.String("league", "E0", "league code to evaluate")
		start      = flag.String("start", "", "first season of the backtest, e.g. 2015/2016")
		end        = flag.String("end", "", "last season of the backtest (inclusive)")
		strategy   = flag.String("strategy", "weighted", "strategy to run: top_bottom, form, momentum, home_away or weighted")
		configPath = flag.String("config", "", "optional YAML config overriding the defaults")
		dbPath     = flag.String("db", "", "optional SQLite path; when set, bets and standings are persisted")
		provider   = flag.String("provider", "bet365", "odds provider for post-2018 closing prices (bet365 or pinnacle)")
		predict    = flag.String("predict", "", "advise on the unplayed fixtures of this season instead of backtesting")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger.SetShowDateTime(true)
	if *verbose {
		logger.SetLevel(logger.DEBUG)
	}
	logger.Info("Starting github.com/richard-senior/punter")

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("Configuration error:", err)
		os.Exit(1)
	}

	repo := punter.NewRepository()
	if err := loadLeague(*dataDir, *league, *provider, repo); err != nil {
		logger.Error("Data load failed:", err)
		os.Exit(1)
	}

	runner, err := punter.NewRunner(repo, cfg)
	if err != nil {
		logger.Error("Configuration error:", err)
		os.Exit(1)
	}

	if *predict != "" {
		predictions, err := runner.PredictUpcoming(*league, *predict)
		if err != nil {
			logger.Error("Prediction failed:", err)
			os.Exit(1)
		}
		if len(predictions) == 0 {
			logger.Highlight("No unplayed fixtures found for", *league, *predict)
			return
		}
		for _, p := range predictions {
			fmt.Print(p)
		}
		return
	}

	if *start == "" || *end == "" {
		seasons := repo.Seasons(*league)
		if len(seasons) == 0 {
			logger.Error("No seasons loaded for", *league)
			os.Exit(1)
		}
		if *start == "" {
			*start = seasons[0]
		}
		if *end == "" {
			*end = seasons[len(seasons)-1]
		}
	}

	report, err := runner.Run(*league, *start, *end, punter.StrategyID(*strategy))
	if err != nil {
		logger.Error("Backtest failed:", err)
		os.Exit(1)
	}
	fmt.Print(report)

	if *dbPath != "" {
		if err := persist(*dbPath, report); err != nil {
			logger.Error("Persistence failed:", err)
			os.Exit(1)
		}
	}
}

func loadConfig(path string) (*punter.Config, error) {
	if path == "" {
		return punter.DefaultConfig(), nil
	}
	return punter.LoadConfig(path)
}

// loadLeague reads every <year>.csv file under dataDir/league into the
// repository, in season order
func loadLeague(dataDir, league, provider string, repo *punter.Repository) error {
	dir := filepath.Join(dataDir, league)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("cannot read league directory %s: %w", dir, err)
	}

	loaded := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(name, ".csv"))
		if err != nil {
			logger.Warn("Ignoring file with non-year name:", name)
			continue
		}
		season := punter.SeasonForYear(year)
		if _, _, err := punter.LoadSeasonCSV(filepath.Join(dir, name), league, season, provider, repo); err != nil {
			return err
		}
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("no season files found under %s", dir)
	}
	return nil
}

func persist(dbPath string, report *punter.Report) error {
	store, err := punter.OpenStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SaveBets(report.Bets)
}
