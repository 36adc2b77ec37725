package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/ayusman/sigil/internal/geometry"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Template represents a template row. Its points live in template_points.
type Template struct {
	ID        string
	Name      string
	Strokes   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateRepository provides CRUD operations for templates.
type TemplateRepository struct {
	db *sql.DB
}

// Templates returns the template repository for this store.
func (s *Store) Templates() *TemplateRepository {
	return &TemplateRepository{db: s.db}
}

// Create inserts a new template into the database.
func (r *TemplateRepository) Create(t *Template) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO templates (id, name, strokes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Strokes, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// CreateWithStrokes inserts a template with its normalized strokes and the
// raw samples it was trained from. Nothing is stored unless every insert
// succeeds.
func (r *TemplateRepository) CreateWithStrokes(t *Template, strokes []geometry.Stroke, samples []json.RawMessage) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Strokes = len(strokes)

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO templates (id, name, strokes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Strokes, t.CreatedAt, t.UpdatedAt,
	); err != nil {
		return err
	}
	if err := insertPoints(tx, t.ID, strokes); err != nil {
		return err
	}
	if err := insertSamples(tx, t.ID, samples); err != nil {
		return err
	}

	return tx.Commit()
}

// Retrain replaces a template's strokes and samples in one transaction.
func (r *TemplateRepository) Retrain(id string, strokes []geometry.Stroke, samples []json.RawMessage) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replacePoints(tx, id, strokes); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM stroke_samples WHERE template_id = ?`, id); err != nil {
		return err
	}
	if err := insertSamples(tx, id, samples); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a template by its ID.
func (r *TemplateRepository) GetByID(id string) (*Template, error) {
	t := &Template{}

	err := r.db.QueryRow(
		`SELECT id, name, strokes, created_at, updated_at
		 FROM templates WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Name, &t.Strokes, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

// List retrieves all templates in creation order, which is the order the
// recognizer evaluates them in.
func (r *TemplateRepository) List() ([]*Template, error) {
	rows, err := r.db.Query(
		`SELECT id, name, strokes, created_at, updated_at
		 FROM templates ORDER BY created_at, rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t := &Template{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Strokes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// Update renames an existing template.
func (r *TemplateRepository) Update(t *Template) error {
	t.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE templates SET name = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.UpdatedAt, t.ID,
	)
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

// Delete removes a template and, through cascading, its points and samples.
func (r *TemplateRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM templates WHERE id = ?`, id)
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

// SetStrokes replaces the stored points of a template in a single
// transaction and updates its stroke count.
func (r *TemplateRepository) SetStrokes(id string, strokes []geometry.Stroke) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := replacePoints(tx, id, strokes); err != nil {
		return err
	}
	return tx.Commit()
}

func replacePoints(tx *sql.Tx, id string, strokes []geometry.Stroke) error {
	result, err := tx.Exec(`UPDATE templates SET strokes = ?, updated_at = ? WHERE id = ?`,
		len(strokes), time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM template_points WHERE template_id = ?`, id); err != nil {
		return err
	}
	return insertPoints(tx, id, strokes)
}

func insertPoints(tx *sql.Tx, id string, strokes []geometry.Stroke) error {
	stmt, err := tx.Prepare(
		`INSERT INTO template_points (template_id, stroke_index, sequence, x, y) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for si, s := range strokes {
		for seq, p := range s.Points {
			if _, err := stmt.Exec(id, si, seq, p.X, p.Y); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetStrokes returns the stored strokes of a template in drawing order.
func (r *TemplateRepository) GetStrokes(id string) ([]geometry.Stroke, error) {
	var count int
	err := r.db.QueryRow(`SELECT strokes FROM templates WHERE id = ?`, id).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT stroke_index, x, y FROM template_points
		 WHERE template_id = ?
		 ORDER BY stroke_index, sequence`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	strokes := make([]geometry.Stroke, count)
	for rows.Next() {
		var idx int
		var p geometry.Point2D
		if err := rows.Scan(&idx, &p.X, &p.Y); err != nil {
			return nil, err
		}
		if idx < 0 || idx >= count {
			continue
		}
		strokes[idx].Points = append(strokes[idx].Points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return strokes, nil
}
