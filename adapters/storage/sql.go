package storage

import (
	"context"
	"database/sql"
	"embed"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"pottery-cost/core/session"
	"pottery-cost/internal/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// timeLayout is fixed width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLStore keeps sessions in sqlite or postgres
type SQLStore struct {
	db      *sql.DB
	backend Backend
	now     func() time.Time
}

// OpenSQL opens the database, applies migrations and validates connectivity
func OpenSQL(ctx context.Context, backend Backend, dsn string) (*SQLStore, error) {
	var driver, dialect string
	switch backend {
	case BackendSQLite:
		driver, dialect = "sqlite", "sqlite3"
	case BackendPostgres:
		driver, dialect = "postgres", "postgres"
	default:
		return nil, errors.Newf(errors.TypeConfig, "backend %s is not SQL", backend)
	}
	if dsn == "" {
		return nil, errors.New(errors.TypeConfig, "storage dsn is required")
	}

	if backend == BackendSQLite && !isMemoryDSN(dsn) && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, errors.Storage("create database directory", err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Storage("open database", err)
	}

	if backend == BackendSQLite {
		if isMemoryDSN(dsn) {
			// every connection to :memory: is a separate database
			db.SetMaxOpenConns(1)
		}
		if _, err := db.ExecContext(ctx, `
			PRAGMA journal_mode = WAL;
			PRAGMA foreign_keys = ON;
			PRAGMA busy_timeout = 5000;
		`); err != nil {
			db.Close()
			return nil, errors.Storage("set sqlite pragmas", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Storage("ping database", err)
	}

	if err := migrate(ctx, db, dialect); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLStore{db: db, backend: backend, now: time.Now}, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

func migrate(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Storage("set goose dialect", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return errors.Storage("run migrations", err)
	}
	return nil
}

// rebind rewrites ? placeholders as $n for postgres
func (s *SQLStore) rebind(query string) string {
	if s.backend != BackendPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Save implements Store
func (s *SQLStore) Save(ctx context.Context, rec *Record) error {
	if rec.ID != "" && rec.CreatedAt.IsZero() {
		var created string
		err := s.db.QueryRowContext(ctx, s.rebind(`SELECT created_at FROM sessions WHERE id = ?`), rec.ID).Scan(&created)
		if err == nil {
			rec.CreatedAt, _ = time.Parse(timeLayout, created)
		} else if !stderrors.Is(err, sql.ErrNoRows) {
			return errors.Storage("look up session", err)
		}
	}
	if err := stamp(rec, s.now()); err != nil {
		return err
	}

	payload, err := session.Encode(rec.Session)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO sessions (id, name, total_cost, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			total_cost = excluded.total_cost,
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`), rec.ID, rec.Name, rec.TotalCost.String(), string(payload),
		rec.CreatedAt.Format(timeLayout), rec.UpdatedAt.Format(timeLayout))
	if err != nil {
		return errors.Storage("save session", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec              Record
		total, payload   string
		created, updated string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &total, &payload, &created, &updated); err != nil {
		return nil, err
	}

	var err error
	if rec.TotalCost, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("session %s total: %w", rec.ID, err)
	}
	if rec.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("session %s created_at: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("session %s updated_at: %w", rec.ID, err)
	}
	// payloads are written by Encode; fields missing from older rows take defaults
	if rec.Session, _, err = session.Decode([]byte(payload)); err != nil {
		return nil, err
	}
	return &rec, nil
}

const selectColumns = `SELECT id, name, total_cost, payload, created_at, updated_at FROM sessions`

// Get implements Store
func (s *SQLStore) Get(ctx context.Context, id string) (*Record, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, s.rebind(selectColumns+` WHERE id = ?`), id))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFound("session", id)
	}
	if err != nil {
		return nil, errors.Storage("get session", err)
	}
	return rec, nil
}

// likeEscaper makes LIKE wildcards in a name prefix match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// List implements Store
func (s *SQLStore) List(ctx context.Context, filter *ListFilter) ([]*Record, error) {
	if filter == nil {
		filter = &ListFilter{}
	}

	query := selectColumns
	var args []interface{}
	if filter.NamePrefix != "" {
		query += ` WHERE LOWER(name) LIKE ? ESCAPE '\'`
		args = append(args, likeEscaper.Replace(strings.ToLower(filter.NamePrefix))+"%")
	}
	query += ` ORDER BY updated_at DESC, id ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 && s.backend == BackendSQLite {
		query += ` LIMIT -1`
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, errors.Storage("list sessions", err)
	}
	defer rows.Close()

	results := make([]*Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Storage("list sessions", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage("list sessions", err)
	}
	return results, nil
}

// Delete implements Store
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM sessions WHERE id = ?`), id)
	if err != nil {
		return errors.Storage("delete session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Storage("delete session", err)
	}
	if n == 0 {
		return errors.NotFound("session", id)
	}
	return nil
}

// Close implements Store
func (s *SQLStore) Close() error {
	return s.db.Close()
}
