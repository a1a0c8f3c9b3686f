// Package articles reads previously published articles from the Neon
// Postgres database. The worker hands recent titles to the prompt builder
// so a run does not recreate content that already shipped.
package articles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"newsgen/internal/newsflow"
)

// Store is a Postgres implementation of newsflow.ArticleStore.
type Store struct {
	db *pgxpool.Pool
}

var _ newsflow.ArticleStore = (*Store)(nil)

// Connect opens a pool against the configured database URL and verifies the
// connection.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("articles: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("articles: ping: %w", err)
	}
	return &Store{db: pool}, nil
}

// RecentArticles returns the newest articles for the app, newest first.
func (s *Store) RecentArticles(ctx context.Context, app string, limit int) ([]newsflow.Article, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, app, title, COALESCE(source_url, ''), created_at
		   FROM articles
		  WHERE app = $1
		  ORDER BY created_at DESC
		  LIMIT $2`, app, limit)
	if err != nil {
		return nil, fmt.Errorf("articles: query recent for %s: %w", app, err)
	}
	defer rows.Close()

	var out []newsflow.Article
	for rows.Next() {
		var a newsflow.Article
		if err := rows.Scan(&a.ID, &a.App, &a.Title, &a.URL, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("articles: scan: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("articles: rows: %w", err)
	}
	return out, nil
}

func (s *Store) Close() { s.db.Close() }
