package storage

import (
	"database/sql"
	"fmt"

	"micmac/internal/analysis"
)

// currentSchemaVersion is bumped whenever the schema changes shape.
const currentSchemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_info (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS scale_sets (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	min_value   REAL NOT NULL,
	max_value   REAL NOT NULL,
	step        REAL NOT NULL DEFAULT 1,
	labels_json TEXT
);

CREATE TABLE IF NOT EXISTS projects (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	scale_set_id INTEGER NOT NULL REFERENCES scale_sets(id)
);

CREATE TABLE IF NOT EXISTS variables (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	UNIQUE (project_id, position)
);

CREATE TABLE IF NOT EXISTS influence_cells (
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	from_pos   INTEGER NOT NULL,
	to_pos     INTEGER NOT NULL,
	value      REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (project_id, from_pos, to_pos)
);

CREATE INDEX IF NOT EXISTS idx_variables_project ON variables(project_id, position);
CREATE INDEX IF NOT EXISTS idx_cells_project ON influence_cells(project_id, from_pos, to_pos);
`

func (db *DB) initSchema() error {
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	version, err := db.getSchemaVersion()
	if err != nil {
		return err
	}
	if version == 0 {
		if _, err := db.conn.Exec(`INSERT INTO schema_info (version) VALUES (?)`, currentSchemaVersion); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
		return nil
	}
	if version != currentSchemaVersion {
		return fmt.Errorf("unsupported schema version %d (want %d)", version, currentSchemaVersion)
	}
	return nil
}

func (db *DB) getSchemaVersion() (int, error) {
	var version int
	err := db.conn.QueryRow(`SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// seedDefaults inserts the default 0-3 scale on a fresh database so a new
// install can create a project immediately.
func (db *DB) seedDefaults() error {
	var count int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM scale_sets`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count scale sets: %w", err)
	}
	if count > 0 {
		return nil
	}

	def := analysis.DefaultScale()
	_, err := db.conn.Exec(
		`INSERT INTO scale_sets (name, min_value, max_value, step) VALUES (?, ?, ?, ?)`,
		"Default 0-3", def.Min, def.Max, def.Step,
	)
	if err != nil {
		return fmt.Errorf("failed to seed default scale set: %w", err)
	}
	db.logger.Info("Seeded default scale set", map[string]interface{}{"name": "Default 0-3"})
	return nil
}
