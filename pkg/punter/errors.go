package punter

import "fmt"

// IncompleteSeasonError is returned by the Standings Builder when asked to
// compute a table for a season that still has unsettled fixtures
type IncompleteSeasonError struct {
	League  string
	Season  string
	Missing int
}

func (e *IncompleteSeasonError) Error() string {
	return fmt.Sprintf("season %s %s is incomplete: %d match(es) without a result",
		e.League, e.Season, e.Missing)
}

// MalformedMatchError marks a single unusable match record. The Backtest
// Runner skips and tallies these, it never aborts the run for one.
type MalformedMatchError struct {
	Ref    string
	Reason string
}

func (e *MalformedMatchError) Error() string {
	return fmt.Sprintf("malformed match %s: %s", e.Ref, e.Reason)
}

// ConfigurationError is fatal at setup, before any computation starts
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Reason)
}
