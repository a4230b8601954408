// Package sqlitedb is a single-file link database for go2 deployments that
// do not run Postgres.
package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"go2/internal/db"
	"go2/internal/models"
)

// timeFormat sorts lexically in UTC.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// Store is a link database backed by a single SQLite file. It serves the same
// queries as the Postgres store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and brings its schema up to
// date. Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps the pragmas below in effect and avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	s := &Store{db: sqlDB}
	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA foreign_keys=ON;`,
		`CREATE TABLE IF NOT EXISTS keywords (
			keyword TEXT PRIMARY KEY,
			clicks INTEGER NOT NULL DEFAULT 0,
			created_utc TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS links (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			clicks INTEGER NOT NULL DEFAULT 0,
			created_utc TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS keyword_links (
			keyword TEXT NOT NULL,
			link_id TEXT NOT NULL,
			added_utc TEXT NOT NULL,
			PRIMARY KEY(keyword, link_id),
			FOREIGN KEY(keyword) REFERENCES keywords(keyword) ON DELETE CASCADE,
			FOREIGN KEY(link_id) REFERENCES links(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_keyword_links_link_id ON keyword_links(link_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate sqlite db: %w", err)
		}
	}
	if err := s.addColumnIfMissing("keywords", "behavior", "TEXT NOT NULL DEFAULT 'freshest'"); err != nil {
		return err
	}
	return nil
}

func (s *Store) addColumnIfMissing(table, col, typ string) error {
	_, err := s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, col, typ))
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "duplicate column name") {
		return fmt.Errorf("add column %s.%s: %w", table, col, err)
	}
	return nil
}

const keywordIndexQuery = `
	SELECT k.keyword, k.clicks, k.behavior, l.id, l.url, l.title, l.clicks, l.created_utc
	FROM keywords k
	LEFT JOIN keyword_links kl ON kl.keyword = k.keyword
	LEFT JOIN links l ON l.id = kl.link_id
`

func scanKeywordRows(rows *sql.Rows) (models.KeywordIndex, error) {
	defer rows.Close()

	index := make(models.KeywordIndex)
	for rows.Next() {
		var (
			keyword    string
			clicks     int64
			behavior   string
			linkID     sql.NullString
			url, title sql.NullString
			linkClicks sql.NullInt64
			created    sql.NullString
		)
		if err := rows.Scan(&keyword, &clicks, &behavior, &linkID, &url, &title, &linkClicks, &created); err != nil {
			return nil, err
		}

		list, ok := index[keyword]
		if !ok {
			list = models.NewKeywordList(keyword)
			list.Clicks = clicks
			list.Behavior = behavior
			index[keyword] = list
		}
		if !linkID.Valid {
			continue
		}
		id, err := uuid.Parse(linkID.String)
		if err != nil {
			return nil, fmt.Errorf("invalid link id %q: %w", linkID.String, err)
		}
		link := models.Link{
			ID:     id,
			URL:    url.String,
			Title:  title.String,
			Clicks: linkClicks.Int64,
		}
		if created.Valid {
			link.CreatedAt, err = time.Parse(timeFormat, created.String)
			if err != nil {
				return nil, fmt.Errorf("invalid created time for link %s: %w", id, err)
			}
		}
		list.Add(link)
	}
	return index, rows.Err()
}

// GetKeywordIndex returns every keyword with its links.
func (s *Store) GetKeywordIndex(ctx context.Context) (models.KeywordIndex, error) {
	rows, err := s.db.QueryContext(ctx, keywordIndexQuery+` ORDER BY k.keyword, kl.added_utc`)
	if err != nil {
		return nil, err
	}
	return scanKeywordRows(rows)
}

// GetKeywordList returns a single keyword with its links, or
// db.ErrKeywordNotFound.
func (s *Store) GetKeywordList(ctx context.Context, keyword string) (*models.KeywordList, error) {
	rows, err := s.db.QueryContext(ctx, keywordIndexQuery+` WHERE k.keyword = ? ORDER BY kl.added_utc`, keyword)
	if err != nil {
		return nil, err
	}
	index, err := scanKeywordRows(rows)
	if err != nil {
		return nil, err
	}
	list, ok := index[keyword]
	if !ok {
		return nil, db.ErrKeywordNotFound
	}
	return list, nil
}

// IncrementClicks records a redirect through keyword to the given link.
func (s *Store) IncrementClicks(ctx context.Context, keyword string, linkID uuid.UUID) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE keywords SET clicks = clicks + 1 WHERE keyword = ?`, keyword)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return db.ErrKeywordNotFound
		}

		res, err = tx.ExecContext(ctx, `UPDATE links SET clicks = clicks + 1 WHERE id = ?`, linkID.String())
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return db.ErrLinkNotFound
		}
		return nil
	})
}

// SeedKeywords creates the given keywords and links. Keywords that already
// exist keep their click count; links already coupled by URL are skipped. A
// seed with a behavior overwrites the stored one.
func (s *Store) SeedKeywords(ctx context.Context, seeds []models.Seed) error {
	for _, seed := range seeds {
		err := s.withTx(ctx, func(tx *sql.Tx) error {
			now := time.Now().UTC()
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO keywords (keyword, clicks, created_utc) VALUES (?, ?, ?) ON CONFLICT(keyword) DO NOTHING`,
				seed.Keyword, seed.Clicks, now.Format(timeFormat),
			); err != nil {
				return err
			}

			for i, sl := range seed.Links {
				var existing string
				err := tx.QueryRowContext(ctx, `
					SELECT l.id FROM links l
					JOIN keyword_links kl ON kl.link_id = l.id
					WHERE kl.keyword = ? AND l.url = ?
				`, seed.Keyword, sl.URL).Scan(&existing)
				if err == nil {
					continue
				}
				if !errors.Is(err, sql.ErrNoRows) {
					return err
				}

				// Spread the stamps so links keep their seed order.
				stamp := now.Add(time.Duration(i) * time.Microsecond).Format(timeFormat)
				id := uuid.New().String()
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO links (id, url, title, created_utc) VALUES (?, ?, ?, ?)`,
					id, sl.URL, sl.Title, stamp,
				); err != nil {
					return err
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO keyword_links (keyword, link_id, added_utc) VALUES (?, ?, ?)`,
					seed.Keyword, id, stamp,
				); err != nil {
					return err
				}
			}
			return setSeedBehavior(ctx, tx, seed)
		})
		if err != nil {
			return fmt.Errorf("failed to seed keyword %s: %w", seed.Keyword, err)
		}
	}
	return nil
}

// setSeedBehavior stores the seed's behavior, resolving a pinned URL to the
// ID of the coupled link.
func setSeedBehavior(ctx context.Context, tx *sql.Tx, seed models.Seed) error {
	if seed.Behavior == "" {
		return nil
	}
	behavior := seed.Behavior
	if !models.IsNamedBehavior(behavior) {
		err := tx.QueryRowContext(ctx, `
			SELECT l.id FROM links l
			JOIN keyword_links kl ON kl.link_id = l.id
			WHERE kl.keyword = ? AND l.url = ?
		`, seed.Keyword, seed.Behavior).Scan(&behavior)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("pinned url %q: %w", seed.Behavior, db.ErrLinkNotFound)
		}
		if err != nil {
			return err
		}
	}
	_, err := tx.ExecContext(ctx, `UPDATE keywords SET behavior = ? WHERE keyword = ?`, behavior, seed.Keyword)
	return err
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
