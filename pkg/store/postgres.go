package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"feedbackpulse/pkg/types"
)

// PostgresStore persists feedback items in PostgreSQL via database/sql.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database and ensures the feedback table
// exists.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *PostgresStore) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS feedback_items (
			id         TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			sentiment  TEXT NOT NULL,
			score      DOUBLE PRECISION NOT NULL,
			themes     TEXT NOT NULL DEFAULT '[]',
			metadata   TEXT NOT NULL DEFAULT '{}'
		)
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create feedback table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Insert appends one classified feedback item.
func (s *PostgresStore) Insert(ctx context.Context, item types.FeedbackItem) error {
	themes, err := json.Marshal(item.Themes)
	if err != nil {
		return fmt.Errorf("failed to marshal themes: %w", err)
	}
	metadata, err := json.Marshal(item.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO feedback_items (
			id, source, content, created_at, sentiment, score, themes, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(ctx, query,
		item.ID,
		item.Source,
		item.Content,
		item.Timestamp,
		item.Sentiment,
		item.Score,
		string(themes),
		string(metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to store feedback item: %w", err)
	}

	return nil
}

// Recent returns up to limit items, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]types.FeedbackItem, error) {
	query := `
		SELECT id, source, content, created_at, sentiment, score, themes, metadata
		FROM feedback_items
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent feedback: %w", err)
	}
	defer rows.Close()

	var items []types.FeedbackItem
	for rows.Next() {
		var item types.FeedbackItem
		var themes, metadata string

		err := rows.Scan(
			&item.ID,
			&item.Source,
			&item.Content,
			&item.Timestamp,
			&item.Sentiment,
			&item.Score,
			&themes,
			&metadata,
		)
		if err != nil {
			log.Printf("Warning: failed to scan row: %v", err)
			continue
		}

		if err := json.Unmarshal([]byte(themes), &item.Themes); err != nil {
			item.Themes = []string{}
		}
		if item.Themes == nil {
			item.Themes = []string{}
		}
		if err := json.Unmarshal([]byte(metadata), &item.Metadata); err != nil {
			item.Metadata = nil
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// Total returns the number of stored items.
func (s *PostgresStore) Total(ctx context.Context) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM feedback_items").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return total, nil
}

// SentimentCounts groups item counts by sentiment.
func (s *PostgresStore) SentimentCounts(ctx context.Context) (types.SentimentCounts, error) {
	var counts types.SentimentCounts

	query := `SELECT sentiment, COUNT(*) FROM feedback_items GROUP BY sentiment`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return counts, fmt.Errorf("failed to query sentiment counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sentiment string
		var count int
		if err := rows.Scan(&sentiment, &count); err != nil {
			continue
		}
		switch sentiment {
		case types.SentimentPositive:
			counts.Positive = count
		case types.SentimentNeutral:
			counts.Neutral = count
		case types.SentimentNegative:
			counts.Negative = count
		}
	}

	if err := rows.Err(); err != nil {
		return counts, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// AverageScore is the mean score across all items, 0 for an empty store.
func (s *PostgresStore) AverageScore(ctx context.Context) (float64, error) {
	var avg float64
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(AVG(score), 0) FROM feedback_items").Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to query average score: %w", err)
	}
	return avg, nil
}

// SourceCounts groups item counts by source.
func (s *PostgresStore) SourceCounts(ctx context.Context) (map[string]int, error) {
	query := `SELECT source, COUNT(*) FROM feedback_items GROUP BY source`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query source counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			continue
		}
		counts[source] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// DailyStats buckets the last `days` days by calendar date, ascending.
func (s *PostgresStore) DailyStats(ctx context.Context, days int) ([]types.TrendPoint, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	query := `
		SELECT
			to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
			COUNT(*),
			COUNT(*) FILTER (WHERE sentiment = 'positive'),
			COUNT(*) FILTER (WHERE sentiment = 'negative'),
			AVG(score)
		FROM feedback_items
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day ASC
	`
	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var points []types.TrendPoint
	for rows.Next() {
		var p types.TrendPoint
		if err := rows.Scan(&p.Date, &p.Total, &p.Positive, &p.Negative, &p.AvgScore); err != nil {
			log.Printf("Warning: failed to scan row: %v", err)
			continue
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return points, nil
}
