package soundfolio

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database and provides the row operations for the
// singleton profile and the post list.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    heading TEXT NOT NULL,
    audio TEXT,
    sources TEXT,
    links TEXT
);
CREATE TABLE IF NOT EXISTS profiles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    fullName TEXT NOT NULL,
    occupation TEXT NOT NULL,
    phone TEXT,
    address TEXT,
    state TEXT,
    country TEXT
);
`)
	return err
}

// SaveProfile replaces the singleton profile. The delete and insert run in
// one transaction so a reader never observes zero profiles once a first
// save has committed, even under concurrent saves.
func (s *Store) SaveProfile(p Profile) error {
	if strings.TrimSpace(p.FullName) == "" || strings.TrimSpace(p.Occupation) == "" {
		return ValidationError{Message: "Full Name and Occupation are required!"}
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM profiles`); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO profiles (fullName, occupation, phone, address, state, country) VALUES (?, ?, ?, ?, ?, ?)`,
		p.FullName, p.Occupation, p.Phone, p.Address, p.State, p.Country); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// GetProfile returns the most recently saved profile, or the zero-valued
// record if none has ever been saved.
func (s *Store) GetProfile() (Profile, error) {
	var p Profile
	var phone, address, state, country sql.NullString
	err := s.db.QueryRow(`SELECT fullName, occupation, phone, address, state, country FROM profiles ORDER BY id DESC LIMIT 1`).
		Scan(&p.FullName, &p.Occupation, &phone, &address, &state, &country)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	p.Phone = phone.String
	p.Address = address.String
	p.State = state.String
	p.Country = country.String
	return p, nil
}

// CreatePost validates and appends a post, returning the assigned id.
// Ids come from the AUTOINCREMENT sequence, so concurrent publishes never
// collide and insertion order is preserved.
func (s *Store) CreatePost(p Post) (int64, error) {
	if strings.TrimSpace(p.Heading) == "" {
		return 0, ValidationError{Message: "Post heading is required!"}
	}
	res, err := s.db.Exec(`INSERT INTO posts (heading, audio, sources, links) VALUES (?, ?, ?, ?)`,
		p.Heading, p.Audio, p.Sources, p.Links)
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create post: %w", err)
	}
	return id, nil
}

// ListPosts returns all posts ordered by id descending (newest first).
// An empty table yields an empty slice, not an error.
func (s *Store) ListPosts() ([]Post, error) {
	rows, err := s.db.Query(`SELECT id, heading, audio, sources, links FROM posts ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		var audio, sources, links sql.NullString
		if err := rows.Scan(&p.ID, &p.Heading, &audio, &sources, &links); err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		if audio.Valid {
			p.Audio = &audio.String
		}
		if sources.Valid {
			p.Sources = &sources.String
		}
		if links.Valid {
			p.Links = &links.String
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// DeletePost removes the post with the given id. Deleting an id that does
// not exist is a silent no-op.
func (s *Store) DeletePost(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
