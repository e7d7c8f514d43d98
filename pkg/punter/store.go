package punter

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/richard-senior/punter/internal/logger"
	_ "modernc.org/sqlite"
)

// Persistable defines what a struct needs for tag-driven persistence.
// Columns, types, primary keys and indexes come from the struct tags
// (column, dbtype, primary, index).
type Persistable interface {
	TableName() string
	PrimaryKey() map[string]any
}

// Store persists backtest output (bets and season standings) to SQLite
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the database at path and ensures the schema
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Database initialized successfully", path)
	return s, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	if err := s.createTable(&Bet{}); err != nil {
		return fmt.Errorf("failed to create bet table: %w", err)
	}
	if err := s.createTable(&SeasonStanding{}); err != nil {
		return fmt.Errorf("failed to create season standing table: %w", err)
	}
	return nil
}

// createTable creates a table for the given persistable object using struct tags
func (s *Store) createTable(obj Persistable) error {
	tableName := obj.TableName()
	createSQL := generateCreateTableSQL(obj, tableName)

	logger.Debug("Creating table with SQL", createSQL)
	if _, err := s.db.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	for _, query := range generateIndexSQL(obj, tableName) {
		logger.Debug("Creating index with SQL", query)
		if _, err := s.db.Exec(query); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}
	return nil
}

// Save upserts the object keyed on its primary key columns
func (s *Store) Save(obj Persistable) error {
	return save(s.db, obj)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func save(e execer, obj Persistable) error {
	tableName := obj.TableName()
	columns, placeholders, values := getInsertData(obj)

	query := fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	logger.Debug("Save SQL", query)
	if _, err := e.Exec(query, values...); err != nil {
		return fmt.Errorf("failed to save into %s: %w", tableName, err)
	}
	return nil
}

// SaveBets writes a backtest's bets in one transaction
func (s *Store) SaveBets(bets []*Bet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, b := range bets {
		if err := save(tx, b); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bets: %w", err)
	}
	logger.Info("Persisted", len(bets), "bets")
	return nil
}

// SaveStandings writes a season's final table in one transaction
func (s *Store) SaveStandings(table *Standings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, row := range table.Rows {
		if err := save(tx, row); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit standings: %w", err)
	}
	logger.Info("Persisted standings for", table.League, table.Season)
	return nil
}

// LoadBets reads back every persisted bet for a league season, ordered by
// match reference then strategy so reruns compare cleanly
func (s *Store) LoadBets(league, season string) ([]*Bet, error) {
	columns := columnNames(&Bet{})
	query := fmt.Sprintf("SELECT %s FROM bet WHERE league = ? AND season = ? ORDER BY match_ref, strategy",
		strings.Join(columns, ", "))

	rows, err := s.db.Query(query, league, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	var bets []*Bet
	for rows.Next() {
		b := &Bet{}
		if err := scanInto(rows, b); err != nil {
			return nil, err
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

/////////////////////////////////////////////////////////////////////////
////// Tag-driven SQL generation
/////////////////////////////////////////////////////////////////////////

// persistedFields yields the indexes of exported fields carrying a dbtype tag
func persistedFields(objType reflect.Type) []int {
	var fields []int
	for i := 0; i < objType.NumField(); i++ {
		field := objType.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Tag.Get("dbtype") == "" {
			continue
		}
		fields = append(fields, i)
	}
	return fields
}

func columnName(field reflect.StructField) string {
	if name := field.Tag.Get("column"); name != "" {
		return name
	}
	return strings.ToLower(field.Name)
}

func structType(obj any) reflect.Type {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func columnNames(obj any) []string {
	objType := structType(obj)
	var columns []string
	for _, i := range persistedFields(objType) {
		columns = append(columns, columnName(objType.Field(i)))
	}
	return columns
}

// generateCreateTableSQL generates CREATE TABLE SQL from struct tags
func generateCreateTableSQL(obj any, tableName string) string {
	objType := structType(obj)

	var columns []string
	var primaryKeys []string

	for _, i := range persistedFields(objType) {
		field := objType.Field(i)
		dbType := field.Tag.Get("dbtype")
		name := columnName(field)

		if field.Tag.Get("primary") == "true" {
			primaryKeys = append(primaryKeys, name)
			dbType = strings.TrimSpace(strings.ReplaceAll(dbType, "PRIMARY KEY", ""))
		}
		columns = append(columns, fmt.Sprintf("%s %s", name, dbType))
	}

	if len(primaryKeys) > 0 {
		columns = append(columns, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(columns, ", "))
}

// generateIndexSQL generates index creation SQL from struct tags
func generateIndexSQL(obj any, tableName string) []string {
	objType := structType(obj)

	var indexSQL []string
	for _, i := range persistedFields(objType) {
		field := objType.Field(i)
		if field.Tag.Get("index") == "" {
			continue
		}
		name := columnName(field)
		indexName := fmt.Sprintf("idx_%s_%s", tableName, name)
		indexSQL = append(indexSQL,
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)", indexName, tableName, name))
	}
	return indexSQL
}

// getInsertData extracts column names, placeholders, and driver-friendly
// values. Named string types (Side, StrategyID, BetOutcome) are flattened to
// plain strings for the driver.
func getInsertData(obj any) ([]string, []string, []any) {
	objValue := reflect.ValueOf(obj)
	if objValue.Kind() == reflect.Ptr {
		objValue = objValue.Elem()
	}
	objType := objValue.Type()

	var columns []string
	var placeholders []string
	var values []any

	for _, i := range persistedFields(objType) {
		columns = append(columns, columnName(objType.Field(i)))
		placeholders = append(placeholders, "?")
		values = append(values, driverValue(objValue.Field(i)))
	}
	return columns, placeholders, values
}

func driverValue(v reflect.Value) any {
	if t, ok := v.Interface().(time.Time); ok {
		return t
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Bool:
		return v.Bool()
	default:
		return v.Interface()
	}
}

// scanInto scans the current row into the object's persisted fields, in
// columnNames order
func scanInto(rows *sql.Rows, obj any) error {
	objValue := reflect.ValueOf(obj).Elem()
	objType := objValue.Type()

	fields := persistedFields(objType)
	holders := make([]any, len(fields))
	for n, i := range fields {
		f := objValue.Field(i)
		if _, ok := f.Interface().(time.Time); ok {
			holders[n] = new(time.Time)
			continue
		}
		switch f.Kind() {
		case reflect.String:
			holders[n] = new(string)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			holders[n] = new(int64)
		case reflect.Float32, reflect.Float64:
			holders[n] = new(float64)
		case reflect.Bool:
			holders[n] = new(bool)
		default:
			return fmt.Errorf("unsupported field kind %s on %s", f.Kind(), objType.Name())
		}
	}

	if err := rows.Scan(holders...); err != nil {
		return fmt.Errorf("failed to scan row: %w", err)
	}

	for n, i := range fields {
		f := objValue.Field(i)
		switch h := holders[n].(type) {
		case *time.Time:
			f.Set(reflect.ValueOf(*h))
		case *string:
			f.SetString(*h)
		case *int64:
			f.SetInt(*h)
		case *float64:
			f.SetFloat(*h)
		case *bool:
			f.SetBool(*h)
		}
	}
	return nil
}
