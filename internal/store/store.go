package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/abdulachik/chirp/internal/store/migrations"
	_ "modernc.org/sqlite"
)

// Store wraps the database connection holding the saved login and the log
// of published tweets.
type Store struct {
	*sql.DB
}

// Credentials is the persisted result of a completed login handshake.
type Credentials struct {
	AccessToken       string
	AccessTokenSecret string
	UserID            string
	ScreenName        string
	UpdatedAt         time.Time
}

// Post is one published tweet.
type Post struct {
	ID       int64
	TweetID  string
	Text     string
	MediaID  string
	PostedAt time.Time
}

// NewStore creates a new database connection.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(1) // SQLite doesn't handle concurrent writes well

	if _, err := sqlDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{DB: sqlDB}, nil
}

// Migrate runs all pending database migrations.
func (s *Store) Migrate(ctx context.Context) error {
	slog.Debug("running database migrations")

	_, err := s.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	rows, err := s.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("scan migration: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		if applied[file] {
			continue
		}

		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		tx, err := s.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		if _, err := tx.ExecContext(ctx, extractUpMigration(string(content))); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %s: %w", file, err)
		}

		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", file); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}

		slog.Info("migration applied", "file", file)
	}

	return nil
}

// extractUpMigration extracts the "up" portion of a migration file.
func extractUpMigration(content string) string {
	downMarker := "-- +migrate Down"
	idx := strings.Index(content, downMarker)
	if idx == -1 {
		return content
	}

	up := content[:idx]
	up = strings.TrimPrefix(up, "-- +migrate Up")
	return strings.TrimSpace(up)
}

// SaveCredentials stores the handshake result, replacing any earlier login.
func (s *Store) SaveCredentials(ctx context.Context, creds Credentials) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO credentials (id, access_token, access_token_secret, user_id, screen_name, updated_at)
		VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			access_token_secret = excluded.access_token_secret,
			user_id = excluded.user_id,
			screen_name = excluded.screen_name,
			updated_at = CURRENT_TIMESTAMP
	`, creds.AccessToken, creds.AccessTokenSecret, creds.UserID, creds.ScreenName)
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// LoadCredentials returns the saved login, or nil if none exists yet.
func (s *Store) LoadCredentials(ctx context.Context) (*Credentials, error) {
	var creds Credentials
	err := s.QueryRowContext(ctx, `
		SELECT access_token, access_token_secret, user_id, screen_name, updated_at
		FROM credentials WHERE id = 1
	`).Scan(&creds.AccessToken, &creds.AccessTokenSecret, &creds.UserID, &creds.ScreenName, &creds.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	return &creds, nil
}

// RecordPost logs a published tweet.
func (s *Store) RecordPost(ctx context.Context, post Post) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO posts (tweet_id, text, media_id) VALUES (?, ?, ?)
	`, post.TweetID, post.Text, sql.NullString{String: post.MediaID, Valid: post.MediaID != ""})
	if err != nil {
		return fmt.Errorf("record post: %w", err)
	}
	return nil
}

// RecentPosts returns the newest published tweets, most recent first.
func (s *Store) RecentPosts(ctx context.Context, limit int) ([]Post, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT id, tweet_id, text, COALESCE(media_id, ''), posted_at
		FROM posts ORDER BY posted_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.TweetID, &p.Text, &p.MediaID, &p.PostedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}
