package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Photo represents an uploaded photo stored in the database.
type Photo struct {
	ID        string
	Data      []byte
	Width     int
	Height    int
	CreatedAt time.Time
}

// PhotoRepository provides CRUD operations for photos.
type PhotoRepository struct {
	db *sql.DB
}

// Photos returns the photo repository for this store.
func (s *Store) Photos() *PhotoRepository {
	return &PhotoRepository{db: s.db}
}

// Create inserts a new photo into the database. The caller supplies the ID.
func (r *PhotoRepository) Create(p *Photo) error {
	p.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO photos (id, data, width, height, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Data, p.Width, p.Height, p.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a photo by its ID.
func (r *PhotoRepository) GetByID(id string) (*Photo, error) {
	p := &Photo{}

	err := r.db.QueryRow(
		`SELECT id, data, width, height, created_at
		 FROM photos WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Data, &p.Width, &p.Height, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// List retrieves all photos ordered by upload time, oldest first, so
// each photo keeps its ornament slot across restarts.
func (r *PhotoRepository) List() ([]*Photo, error) {
	rows, err := r.db.Query(
		`SELECT id, data, width, height, created_at
		 FROM photos ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []*Photo
	for rows.Next() {
		p := &Photo{}

		err := rows.Scan(&p.ID, &p.Data, &p.Width, &p.Height, &p.CreatedAt)
		if err != nil {
			return nil, err
		}

		photos = append(photos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return photos, nil
}

// Count returns the number of stored photos.
func (r *PhotoRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM photos`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes a photo from the database by its ID.
func (r *PhotoRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
