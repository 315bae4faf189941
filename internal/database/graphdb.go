package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wikigraph/internal/model"
)

// DBFileName is the name of the archive file inside the database directory.
const DBFileName = "wikigraph.db"

// ErrCrawlNotFound is returned when no crawl has the requested id.
var ErrCrawlNotFound = errors.New("crawl not found")

// GraphDB stores crawled graphs in SQLite.
type GraphDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures GraphDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL switches the journal to Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates wikigraph.db inside dbDir.
// With CreateIfNotExists unset, a missing database is an error.
func Open(dbDir string, opts Options) (*GraphDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a new file; mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	gdb := &GraphDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := gdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return gdb, nil
}

// Close closes the database connection.
func (g *GraphDB) Close() error {
	return g.db.Close()
}

// Path returns the database file path.
func (g *GraphDB) Path() string {
	return g.dbPath
}

func (g *GraphDB) createTables() error {
	schema := `
	-- One row per archived crawl
	CREATE TABLE IF NOT EXISTS crawls (
		id TEXT PRIMARY KEY,
		seed TEXT NOT NULL,
		max_depth INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		vertex_count INTEGER NOT NULL,
		record_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_crawls_seed ON crawls(seed);
	CREATE INDEX IF NOT EXISTS idx_crawls_started ON crawls(started_at);

	-- Vertices in discovery order
	CREATE TABLE IF NOT EXISTS vertices (
		crawl_id TEXT NOT NULL REFERENCES crawls(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		page_id TEXT NOT NULL,
		PRIMARY KEY (crawl_id, position)
	);

	-- Edge records in append order; a source may appear more than once
	CREATE TABLE IF NOT EXISTS edge_records (
		crawl_id TEXT NOT NULL REFERENCES crawls(id) ON DELETE CASCADE,
		record INTEGER NOT NULL,
		source TEXT NOT NULL,
		PRIMARY KEY (crawl_id, record)
	);

	CREATE TABLE IF NOT EXISTS edge_links (
		crawl_id TEXT NOT NULL,
		record INTEGER NOT NULL,
		position INTEGER NOT NULL,
		destination TEXT NOT NULL,
		PRIMARY KEY (crawl_id, record, position),
		FOREIGN KEY (crawl_id, record) REFERENCES edge_records(crawl_id, record) ON DELETE CASCADE
	);

	-- Per-level statistics
	CREATE TABLE IF NOT EXISTS levels (
		crawl_id TEXT NOT NULL REFERENCES crawls(id) ON DELETE CASCADE,
		level INTEGER NOT NULL,
		processed INTEGER NOT NULL,
		discovered INTEGER NOT NULL,
		failures INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		total_vertices INTEGER NOT NULL,
		PRIMARY KEY (crawl_id, level)
	);
	`

	_, err := g.db.ExecContext(context.Background(), schema)
	return err
}

// CrawlRecord is the summary row of an archived crawl.
type CrawlRecord struct {
	ID          string
	Seed        string
	MaxDepth    int
	StartedAt   time.Time
	Duration    time.Duration
	VertexCount int
	RecordCount int
}

// Crawl is a complete archived crawl.
type Crawl struct {
	CrawlRecord

	Vertices []string
	Edges    []model.EdgeRecord
	Levels   []model.LevelStats
}

// SaveCrawl stores c in a single transaction and returns its id.
// A new UUID is generated when c.ID is empty. VertexCount and RecordCount
// are derived from the slices.
func (g *GraphDB) SaveCrawl(ctx context.Context, c *Crawl) (id string, err error) {
	id = c.ID
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO crawls (id, seed, max_depth, started_at, duration_ms, vertex_count, record_count)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		c.Seed,
		c.MaxDepth,
		c.StartedAt.UTC().Format(time.RFC3339Nano),
		c.Duration.Milliseconds(),
		len(c.Vertices),
		len(c.Edges),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert crawl: %w", err)
	}

	if err = insertVertices(ctx, tx, id, c.Vertices); err != nil {
		return "", err
	}
	if err = insertEdges(ctx, tx, id, c.Edges); err != nil {
		return "", err
	}
	if err = insertLevels(ctx, tx, id, c.Levels); err != nil {
		return "", err
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit crawl: %w", err)
	}
	return id, nil
}

func insertVertices(ctx context.Context, tx *sql.Tx, id string, vertices []string) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO vertices (crawl_id, position, page_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare vertex insert: %w", err)
	}
	defer stmt.Close()

	for i, v := range vertices {
		if _, err := stmt.ExecContext(ctx, id, i, v); err != nil {
			return fmt.Errorf("failed to insert vertex %q: %w", v, err)
		}
	}
	return nil
}

func insertEdges(ctx context.Context, tx *sql.Tx, id string, edges []model.EdgeRecord) error {
	recStmt, err := tx.PrepareContext(ctx, `INSERT INTO edge_records (crawl_id, record, source) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge record insert: %w", err)
	}
	defer recStmt.Close()

	linkStmt, err := tx.PrepareContext(ctx, `INSERT INTO edge_links (crawl_id, record, position, destination) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge link insert: %w", err)
	}
	defer linkStmt.Close()

	for r, rec := range edges {
		if _, err := recStmt.ExecContext(ctx, id, r, rec.Source); err != nil {
			return fmt.Errorf("failed to insert edge record for %q: %w", rec.Source, err)
		}
		for p, dst := range rec.Links {
			if _, err := linkStmt.ExecContext(ctx, id, r, p, dst); err != nil {
				return fmt.Errorf("failed to insert link %q -> %q: %w", rec.Source, dst, err)
			}
		}
	}
	return nil
}

func insertLevels(ctx context.Context, tx *sql.Tx, id string, levels []model.LevelStats) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO levels (crawl_id, level, processed, discovered, failures, elapsed_ms, total_vertices)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare level insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range levels {
		_, err := stmt.ExecContext(ctx, id, l.Level, l.Processed, l.Discovered, l.Failures,
			l.Elapsed.Milliseconds(), l.TotalVertices)
		if err != nil {
			return fmt.Errorf("failed to insert level %d: %w", l.Level, err)
		}
	}
	return nil
}

// ListCrawls returns all archived crawls, most recent first.
func (g *GraphDB) ListCrawls(ctx context.Context) ([]CrawlRecord, error) {
	rows, err := g.db.QueryContext(ctx, `
	SELECT id, seed, max_depth, started_at, duration_ms, vertex_count, record_count
	FROM crawls
	ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query crawls: %w", err)
	}
	defer rows.Close()

	records := make([]CrawlRecord, 0)
	for rows.Next() {
		rec, err := scanCrawlRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCrawlRecord(row rowScanner) (CrawlRecord, error) {
	var (
		rec        CrawlRecord
		startedAt  string
		durationMS int64
	)
	err := row.Scan(&rec.ID, &rec.Seed, &rec.MaxDepth, &startedAt, &durationMS, &rec.VertexCount, &rec.RecordCount)
	if err != nil {
		return CrawlRecord{}, err
	}
	rec.StartedAt = parseTimestamp(startedAt)
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	return rec, nil
}

// LoadCrawl reads a complete crawl. It returns an error wrapping
// ErrCrawlNotFound for an unknown id.
func (g *GraphDB) LoadCrawl(ctx context.Context, id string) (*Crawl, error) {
	row := g.db.QueryRowContext(ctx, `
	SELECT id, seed, max_depth, started_at, duration_ms, vertex_count, record_count
	FROM crawls WHERE id = ?
	`, id)
	rec, err := scanCrawlRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCrawlNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get crawl: %w", err)
	}

	c := &Crawl{CrawlRecord: rec}
	if c.Vertices, err = g.loadVertices(ctx, id); err != nil {
		return nil, err
	}
	if c.Edges, err = g.loadEdges(ctx, id); err != nil {
		return nil, err
	}
	if c.Levels, err = g.loadLevels(ctx, id); err != nil {
		return nil, err
	}
	return c, nil
}

func (g *GraphDB) loadVertices(ctx context.Context, id string) ([]string, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT page_id FROM vertices WHERE crawl_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query vertices: %w", err)
	}
	defer rows.Close()

	vertices := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		vertices = append(vertices, v)
	}
	return vertices, rows.Err()
}

func (g *GraphDB) loadEdges(ctx context.Context, id string) ([]model.EdgeRecord, error) {
	rows, err := g.db.QueryContext(ctx, `SELECT source FROM edge_records WHERE crawl_id = ? ORDER BY record`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query edge records: %w", err)
	}
	edges := make([]model.EdgeRecord, 0)
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			_ = rows.Close()
			return nil, err
		}
		edges = append(edges, model.EdgeRecord{Source: source, Links: []string{}})
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	// The single connection must be released before the next query.
	rows, err = g.db.QueryContext(ctx, `
	SELECT record, destination FROM edge_links
	WHERE crawl_id = ?
	ORDER BY record, position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query edge links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			record int
			dst    string
		)
		if err := rows.Scan(&record, &dst); err != nil {
			return nil, err
		}
		if record < 0 || record >= len(edges) {
			return nil, fmt.Errorf("edge link references unknown record %d", record)
		}
		edges[record].Links = append(edges[record].Links, dst)
	}
	return edges, rows.Err()
}

func (g *GraphDB) loadLevels(ctx context.Context, id string) ([]model.LevelStats, error) {
	rows, err := g.db.QueryContext(ctx, `
	SELECT level, processed, discovered, failures, elapsed_ms, total_vertices
	FROM levels WHERE crawl_id = ? ORDER BY level
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query levels: %w", err)
	}
	defer rows.Close()

	levels := make([]model.LevelStats, 0)
	for rows.Next() {
		var (
			l         model.LevelStats
			elapsedMS int64
		)
		if err := rows.Scan(&l.Level, &l.Processed, &l.Discovered, &l.Failures, &elapsedMS, &l.TotalVertices); err != nil {
			return nil, err
		}
		l.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

// timestampFormats lists the layouts started_at may be stored in.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseTimestamp returns the zero time when no layout matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
