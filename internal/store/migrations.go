package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Templates table - one row per recognizable gesture
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			strokes INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Template points - normalized stroke points in drawing order
		`CREATE TABLE IF NOT EXISTS template_points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
			stroke_index INTEGER NOT NULL,
			sequence INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL
		)`,

		// Stroke samples - raw committed strokes a template was trained from
		`CREATE TABLE IF NOT EXISTS stroke_samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
			sample_index INTEGER NOT NULL,
			data TEXT NOT NULL CHECK (json_valid(data)),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS spells (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			modifiers TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS spell_layers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			spell_id TEXT NOT NULL REFERENCES spells(id) ON DELETE CASCADE,
			layer_index INTEGER NOT NULL,
			name TEXT NOT NULL,
			strokes TEXT NOT NULL,
			modifiers TEXT NOT NULL DEFAULT '[]'
		)`,

		`CREATE INDEX IF NOT EXISTS idx_template_points_template_id ON template_points(template_id)`,
		`CREATE INDEX IF NOT EXISTS idx_stroke_samples_template_id ON stroke_samples(template_id)`,
		`CREATE INDEX IF NOT EXISTS idx_spell_layers_spell_id ON spell_layers(spell_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
