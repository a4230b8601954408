package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"go2/internal/models"
)

const keywordIndexQuery = `
	SELECT k.keyword, k.clicks, k.behavior, l.id, l.url, l.title, l.clicks, l.created_at
	FROM keywords k
	LEFT JOIN keyword_links kl ON kl.keyword = k.keyword
	LEFT JOIN links l ON l.id = kl.link_id
`

// scanKeywordRows folds joined keyword/link rows into an index.
func scanKeywordRows(rows pgx.Rows) (models.KeywordIndex, error) {
	defer rows.Close()

	index := make(models.KeywordIndex)
	for rows.Next() {
		var (
			keyword     string
			clicks      int64
			behavior    string
			linkID      *uuid.UUID
			url, title  *string
			linkClicks  *int64
			linkCreated *time.Time
		)
		if err := rows.Scan(&keyword, &clicks, &behavior, &linkID, &url, &title, &linkClicks, &linkCreated); err != nil {
			return nil, err
		}

		list, ok := index[keyword]
		if !ok {
			list = models.NewKeywordList(keyword)
			list.Clicks = clicks
			list.Behavior = behavior
			index[keyword] = list
		}
		if linkID == nil {
			continue
		}
		link := models.Link{ID: *linkID}
		if url != nil {
			link.URL = *url
		}
		if title != nil {
			link.Title = *title
		}
		if linkClicks != nil {
			link.Clicks = *linkClicks
		}
		if linkCreated != nil {
			link.CreatedAt = *linkCreated
		}
		list.Add(link)
	}
	return index, rows.Err()
}

// GetKeywordIndex returns every keyword with its links.
func (d *DB) GetKeywordIndex(ctx context.Context) (models.KeywordIndex, error) {
	rows, err := d.Pool.Query(ctx, keywordIndexQuery+` ORDER BY k.keyword, kl.added_at`)
	if err != nil {
		return nil, err
	}
	return scanKeywordRows(rows)
}

// GetKeywordList returns a single keyword with its links.
func (d *DB) GetKeywordList(ctx context.Context, keyword string) (*models.KeywordList, error) {
	rows, err := d.Pool.Query(ctx, keywordIndexQuery+` WHERE k.keyword = $1 ORDER BY kl.added_at`, keyword)
	if err != nil {
		return nil, err
	}
	index, err := scanKeywordRows(rows)
	if err != nil {
		return nil, err
	}
	list, ok := index[keyword]
	if !ok {
		return nil, ErrKeywordNotFound
	}
	return list, nil
}

// IncrementClicks records a redirect through keyword to the given link.
func (d *DB) IncrementClicks(ctx context.Context, keyword string, linkID uuid.UUID) error {
	return pgx.BeginFunc(ctx, d.Pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE keywords SET clicks = clicks + 1 WHERE keyword = $1`, keyword)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrKeywordNotFound
		}

		tag, err = tx.Exec(ctx, `UPDATE links SET clicks = clicks + 1 WHERE id = $1`, linkID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrLinkNotFound
		}
		return nil
	})
}

// SeedKeywords creates the given keywords and links. Keywords that already
// exist keep their click count; links already coupled by URL are skipped. A
// seed with a behavior overwrites the stored one.
func (d *DB) SeedKeywords(ctx context.Context, seeds []models.Seed) error {
	for _, seed := range seeds {
		err := pgx.BeginFunc(ctx, d.Pool, func(tx pgx.Tx) error {
			now := time.Now().UTC()
			if _, err := tx.Exec(ctx, `
				INSERT INTO keywords (keyword, clicks)
				VALUES ($1, $2)
				ON CONFLICT (keyword) DO NOTHING
			`, seed.Keyword, seed.Clicks); err != nil {
				return err
			}

			for i, sl := range seed.Links {
				var existing uuid.UUID
				err := tx.QueryRow(ctx, `
					SELECT l.id FROM links l
					JOIN keyword_links kl ON kl.link_id = l.id
					WHERE kl.keyword = $1 AND l.url = $2
				`, seed.Keyword, sl.URL).Scan(&existing)
				if err == nil {
					continue
				}
				if !errors.Is(err, pgx.ErrNoRows) {
					return err
				}

				// Spread the stamps so links keep their seed order.
				stamp := now.Add(time.Duration(i) * time.Microsecond)
				id := uuid.New()
				if _, err := tx.Exec(ctx, `
					INSERT INTO links (id, url, title, created_at) VALUES ($1, $2, $3, $4)
				`, id, sl.URL, sl.Title, stamp); err != nil {
					return err
				}
				if _, err := tx.Exec(ctx, `
					INSERT INTO keyword_links (keyword, link_id, added_at) VALUES ($1, $2, $3)
				`, seed.Keyword, id, stamp); err != nil {
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
func setSeedBehavior(ctx context.Context, tx pgx.Tx, seed models.Seed) error {
	if seed.Behavior == "" {
		return nil
	}
	behavior := seed.Behavior
	if !models.IsNamedBehavior(behavior) {
		var id uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT l.id FROM links l
			JOIN keyword_links kl ON kl.link_id = l.id
			WHERE kl.keyword = $1 AND l.url = $2
		`, seed.Keyword, seed.Behavior).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("pinned url %q: %w", seed.Behavior, ErrLinkNotFound)
		}
		if err != nil {
			return err
		}
		behavior = id.String()
	}
	_, err := tx.Exec(ctx, `UPDATE keywords SET behavior = $1 WHERE keyword = $2`, behavior, seed.Keyword)
	return err
}
