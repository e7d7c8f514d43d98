package punter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/richard-senior/punter/internal/logger"
)

// dateFormats covers the layouts seen across football-data season files.
// Older files use two-digit years.
var dateFormats = []string{
	"02/01/2006",
	"02/01/06",
	"2006-01-02",
}

// oddsColumns returns the header names carrying home/draw/away decimal odds
// for the given season start year and provider. Pre-2002 files predate the
// bet365 columns, and from 2019 the files add closing prices, which are the
// truer settlement reference.
func oddsColumns(year int, provider string) (string, string, string) {
	switch {
	case year <= 2001:
		return "LBH", "LBD", "LBA"
	case year <= 2018:
		return "B365H", "B365D", "B365A"
	default:
		if strings.EqualFold(provider, "pinnacle") {
			return "PSCH", "PSCD", "PSCA"
		}
		return "B365CH", "B365CD", "B365CA"
	}
}

// LoadSeasonCSV reads one football-data style season file into the repository,
// in file order. Malformed rows are skipped and counted, never fatal: a single
// mangled line must not sink a whole season. Returns (loaded, skipped).
func LoadSeasonCSV(path, league, season, provider string, repo *Repository) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot open season file %s: %w", path, err)
	}
	defer f.Close()
	return loadSeason(f, league, season, provider, repo)
}

func loadSeason(r io.Reader, league, season, provider string, repo *Repository) (int, int, error) {
	season, err := ParseSeason(season)
	if err != nil {
		return 0, 0, err
	}
	year, err := FirstYear(season)
	if err != nil {
		return 0, 0, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // older files have ragged trailing columns

	header, err := reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("cannot read header for %s %s: %w", league, season, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Date", "HomeTeam", "AwayTeam"} {
		if _, ok := col[required]; !ok {
			return 0, 0, fmt.Errorf("season file for %s %s has no %s column", league, season, required)
		}
	}
	oh, od, oa := oddsColumns(year, provider)

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	loaded, skipped := 0, 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Debug("Skipping unreadable row in", league, season, err)
			skipped++
			continue
		}

		m := NewMatch()
		m.League = league
		m.Season = season
		m.HomeTeam = field(record, "HomeTeam")
		m.AwayTeam = field(record, "AwayTeam")
		m.Date = parseDate(field(record, "Date"))
		m.HomeGoals = parseGoals(field(record, "FTHG"))
		m.AwayGoals = parseGoals(field(record, "FTAG"))
		m.HomeOdds = parseOdds(field(record, oh), field(record, "B365H"))
		m.DrawOdds = parseOdds(field(record, od), field(record, "B365D"))
		m.AwayOdds = parseOdds(field(record, oa), field(record, "B365A"))

		if err := m.Validate(); err != nil {
			logger.Debug("Skipping malformed row:", err)
			skipped++
			continue
		}
		repo.Add(m)
		loaded++
	}

	logger.Info("Loaded", loaded, "matches for", league, season, "(skipped", skipped, ")")
	return loaded, skipped, nil
}

func parseDate(raw string) time.Time {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseGoals maps an absent or unparseable goal count to -1 (not yet played)
func parseGoals(raw string) int {
	if raw == "" {
		return -1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// parseOdds returns the preferred price, falling back to the standard bet365
// columns when the preferred ones are blank, and -1 when no usable price
// exists. Decimal odds below 1.0 are garbage.
func parseOdds(preferred, fallback string) float64 {
	for _, raw := range []string{preferred, fallback} {
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil && v >= 1.0 {
			return v
		}
	}
	return -1.0
}
