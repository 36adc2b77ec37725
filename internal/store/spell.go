package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/sigil/internal/spell"
)

// SpellRecord is a stored spell with its creation time.
type SpellRecord struct {
	spell.Spell
	CreatedAt time.Time `json:"created_at"`
}

// SpellRepository provides CRUD operations for spells and their layers.
type SpellRepository struct {
	db *sql.DB
}

// Spells returns the spell repository for this store.
func (s *Store) Spells() *SpellRepository {
	return &SpellRepository{db: s.db}
}

// Create inserts a spell and all of its layers in a single transaction.
func (r *SpellRepository) Create(sp *spell.Spell) (*SpellRecord, error) {
	modifiers, err := marshalStrings(sp.GlobalModifiers)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rec := &SpellRecord{Spell: *sp, CreatedAt: time.Now()}
	_, err = tx.Exec(
		`INSERT INTO spells (id, name, modifiers, created_at) VALUES (?, ?, ?, ?)`,
		sp.ID, sp.Name, modifiers, rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO spell_layers (spell_id, layer_index, name, strokes, modifiers) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for i, layer := range sp.Layers {
		strokes, err := json.Marshal(layer.Strokes)
		if err != nil {
			return nil, fmt.Errorf("failed to encode layer %d: %w", i, err)
		}
		mods, err := marshalStrings(layer.Modifiers)
		if err != nil {
			return nil, err
		}
		if _, err := stmt.Exec(sp.ID, i, layer.Name, string(strokes), mods); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetByID retrieves a spell and its layers.
func (r *SpellRepository) GetByID(id string) (*SpellRecord, error) {
	rec := &SpellRecord{}
	var modifiers string

	err := r.db.QueryRow(
		`SELECT id, name, modifiers, created_at FROM spells WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Name, &modifiers, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(modifiers), &rec.GlobalModifiers); err != nil {
		return nil, fmt.Errorf("failed to decode spell modifiers: %w", err)
	}

	layers, err := r.layers(id)
	if err != nil {
		return nil, err
	}
	rec.Layers = layers
	return rec, nil
}

// List retrieves all spells, newest first, without their layers.
func (r *SpellRepository) List() ([]*SpellRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, name, modifiers, created_at FROM spells ORDER BY created_at DESC, rowid DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spells []*SpellRecord
	for rows.Next() {
		rec := &SpellRecord{}
		var modifiers string
		if err := rows.Scan(&rec.ID, &rec.Name, &modifiers, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(modifiers), &rec.GlobalModifiers); err != nil {
			return nil, fmt.Errorf("failed to decode spell modifiers: %w", err)
		}
		spells = append(spells, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return spells, nil
}

// Delete removes a spell and its layers.
func (r *SpellRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM spells WHERE id = ?`, id)
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

func (r *SpellRepository) layers(spellID string) ([]spell.Layer, error) {
	rows, err := r.db.Query(
		`SELECT name, strokes, modifiers FROM spell_layers
		 WHERE spell_id = ?
		 ORDER BY layer_index`,
		spellID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	layers := []spell.Layer{}
	for rows.Next() {
		var layer spell.Layer
		var strokes, modifiers string
		if err := rows.Scan(&layer.Name, &strokes, &modifiers); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(strokes), &layer.Strokes); err != nil {
			return nil, fmt.Errorf("failed to decode layer strokes: %w", err)
		}
		if err := json.Unmarshal([]byte(modifiers), &layer.Modifiers); err != nil {
			return nil, fmt.Errorf("failed to decode layer modifiers: %w", err)
		}
		layers = append(layers, layer)
	}

	return layers, rows.Err()
}

func marshalStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
