package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	raderr "radius/internal/errors"
	"radius/internal/logging"
)

// Store persists analysis runs in a SQLite database. Result payloads
// are stored as zstd-compressed JSON.
type Store struct {
	conn    *sql.DB
	logger  *logging.Logger
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// ListOptions filters and pages a run listing.
type ListOptions struct {
	Component string
	Limit     int
	Offset    int
}

// Open opens or creates the history database at dbPath.
func Open(dbPath string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, raderr.New(raderr.HistoryUnavailable, "failed to create history directory", err)
	}

	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, raderr.New(raderr.HistoryUnavailable, "failed to open history database", err)
	}

	// Set pragmas for performance
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, raderr.New(raderr.HistoryUnavailable, "failed to set pragma", err)
		}
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		_ = conn.Close()
		return nil, raderr.New(raderr.InternalError, "failed to create zstd encoder", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = conn.Close()
		return nil, raderr.New(raderr.InternalError, "failed to create zstd decoder", err)
	}

	store := &Store{
		conn:    conn,
		logger:  logger,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
	}

	if !dbExists {
		logger.Info("creating history database", map[string]interface{}{
			"path": dbPath,
		})
	}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, raderr.New(raderr.HistoryUnavailable, "failed to initialize history schema", err)
	}

	return store, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			component TEXT NOT NULL,
			change_type TEXT NOT NULL,
			created_at TEXT NOT NULL,
			risk_count INTEGER NOT NULL DEFAULT 0,
			max_score REAL NOT NULL DEFAULT 0,
			result BLOB
		);
		CREATE INDEX IF NOT EXISTS idx_runs_component ON runs(component);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection and compression codecs.
func (s *Store) Close() error {
	if s.encoder != nil {
		_ = s.encoder.Close()
	}
	if s.decoder != nil {
		s.decoder.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// SaveRun inserts a completed run.
func (s *Store) SaveRun(run *Run) error {
	var payload []byte
	if run.Result != nil {
		data, err := json.Marshal(run.Result)
		if err != nil {
			return raderr.New(raderr.InternalError, "failed to encode run result", err)
		}
		payload = s.encoder.EncodeAll(data, nil)
	}

	summary := run.summary()
	_, err := s.conn.Exec(`
		INSERT INTO runs (id, component, change_type, created_at, risk_count, max_score, result)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Component,
		run.ChangeType,
		run.CreatedAt.Format(time.RFC3339),
		summary.RiskCount,
		summary.MaxScore,
		payload,
	)
	if err != nil {
		return raderr.New(raderr.HistoryUnavailable, "failed to save run", err)
	}

	s.logger.Debug("saved analysis run", map[string]interface{}{
		"runId":     run.ID,
		"component": run.Component,
	})
	return nil
}

// GetRun retrieves a run by ID, including its full result payload.
// Returns nil when no run matches.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.conn.QueryRow(`
		SELECT id, component, change_type, created_at, result
		FROM runs WHERE id = ?
	`, id)

	var run Run
	var createdAt string
	var payload []byte
	err := row.Scan(&run.ID, &run.Component, &run.ChangeType, &createdAt, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, raderr.New(raderr.HistoryUnavailable, "failed to scan run", err)
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		run.CreatedAt = t
	}
	if len(payload) > 0 {
		data, err := s.decoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, raderr.New(raderr.InternalError, "failed to decompress run result", err)
		}
		if err := json.Unmarshal(data, &run.Result); err != nil {
			return nil, raderr.New(raderr.InternalError, "failed to decode run result", err)
		}
	}
	return &run, nil
}

// ListRuns retrieves run summaries, newest first.
func (s *Store) ListRuns(opts ListOptions) ([]Summary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := `
		SELECT id, component, change_type, created_at, risk_count, max_score
		FROM runs
	`
	var args []interface{}
	if opts.Component != "" {
		query += " WHERE component = ?"
		args = append(args, opts.Component)
	}
	query += " ORDER BY created_at DESC, id LIMIT ? OFFSET ?"
	args = append(args, limit, opts.Offset)

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, raderr.New(raderr.HistoryUnavailable, "failed to list runs", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Component, &sum.ChangeType, &createdAt, &sum.RiskCount, &sum.MaxScore); err != nil {
			return nil, raderr.New(raderr.HistoryUnavailable, "failed to scan run row", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			sum.CreatedAt = t
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, raderr.New(raderr.HistoryUnavailable, "error iterating runs", err)
	}
	return summaries, nil
}

// PruneRuns removes runs older than the given retention period and
// returns how many were deleted.
func (s *Store) PruneRuns(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention).Format(time.RFC3339)

	result, err := s.conn.Exec("DELETE FROM runs WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, raderr.New(raderr.HistoryUnavailable, "failed to prune runs", err)
	}
	return result.RowsAffected()
}

// String describes the store for diagnostics.
func (s *Store) String() string {
	return fmt.Sprintf("history.Store(%s)", s.dbPath)
}
