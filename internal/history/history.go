package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an item id does not exist in the store.
var ErrNotFound = errors.New("clipboard item not found")

// Item is one captured clipboard entry. CreatedAt orders the history;
// Query returns newest first.
type Item struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Filters narrows a Query. Zero values match everything.
type Filters struct {
	Search string
	Kind   string
}

// Store persists clipboard history in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT NOT NULL,
		kind TEXT NOT NULL DEFAULT 'text',
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_history_kind ON history(kind);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a new item and returns its id.
func (s *Store) Insert(content, kind string) (int64, error) {
	if kind == "" {
		kind = "text"
	}
	res, err := s.db.Exec(
		`INSERT INTO history (content, kind, created_at) VALUES (?, ?, ?)`,
		content, kind, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert history item: %w", err)
	}
	return res.LastInsertId()
}

// Query returns items newest first, offset/limit paginated.
func (s *Store) Query(offset, limit int) ([]Item, error) {
	return s.QueryFiltered(offset, limit, Filters{})
}

// QueryFiltered returns items newest first, narrowed by the given filters.
func (s *Store) QueryFiltered(offset, limit int, f Filters) ([]Item, error) {
	query := `SELECT id, content, kind, created_at FROM history WHERE 1=1`
	args := make([]any, 0, 4)

	if f.Search != "" {
		query += ` AND content LIKE ?`
		args = append(args, "%"+f.Search+"%")
	}
	if f.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, f.Kind)
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Content, &it.Kind, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ByID returns the full item for id, or ErrNotFound.
func (s *Store) ByID(id int64) (Item, error) {
	var it Item
	err := s.db.QueryRow(
		`SELECT id, content, kind, created_at FROM history WHERE id = ?`, id,
	).Scan(&it.ID, &it.Content, &it.Kind, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return Item{}, fmt.Errorf("failed to load history item %d: %w", id, err)
	}
	return it, nil
}

// Touch bumps an item to the top of the history, as pasting it makes it the
// most recent entry again.
func (s *Store) Touch(id int64) error {
	res, err := s.db.Exec(`UPDATE history SET created_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to touch history item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}
