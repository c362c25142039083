package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"micmac/internal/analysis"
	apperrors "micmac/internal/errors"
)

// ScaleSet is a stored, named scale definition.
type ScaleSet struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Scale analysis.Scale `json:"scale"`
}

// ScaleSetRepository provides CRUD operations for the scale_sets table
type ScaleSetRepository struct {
	db *DB
}

// NewScaleSetRepository creates a new scale set repository
func NewScaleSetRepository(db *DB) *ScaleSetRepository {
	return &ScaleSetRepository{db: db}
}

// Create inserts a new scale set after validating the scale definition.
func (r *ScaleSetRepository) Create(name string, scale analysis.Scale) (*ScaleSet, error) {
	if err := scale.Validate(); err != nil {
		return nil, err
	}

	labels, err := marshalLabels(scale.Labels)
	if err != nil {
		return nil, err
	}
	res, err := r.db.Exec(
		`INSERT INTO scale_sets (name, min_value, max_value, step, labels_json) VALUES (?, ?, ?, ?, ?)`,
		name, scale.Min, scale.Max, scale.Step, labels,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scale set: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read scale set id: %w", err)
	}
	return &ScaleSet{ID: id, Name: name, Scale: scale}, nil
}

// Get retrieves a scale set by ID. Returns nil when it does not exist.
func (r *ScaleSetRepository) Get(id int64) (*ScaleSet, error) {
	row := r.db.QueryRow(
		`SELECT id, name, min_value, max_value, step, labels_json FROM scale_sets WHERE id = ?`, id)
	ss, err := scanScaleSet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scale set: %w", err)
	}
	return ss, nil
}

// List returns all scale sets ordered by ID.
func (r *ScaleSetRepository) List() ([]*ScaleSet, error) {
	rows, err := r.db.Query(
		`SELECT id, name, min_value, max_value, step, labels_json FROM scale_sets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scale sets: %w", err)
	}
	defer rows.Close()

	var out []*ScaleSet
	for rows.Next() {
		ss, err := scanScaleSet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scale set: %w", err)
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}

// Update replaces a scale set's name and definition.
func (r *ScaleSetRepository) Update(id int64, name string, scale analysis.Scale) (*ScaleSet, error) {
	if err := scale.Validate(); err != nil {
		return nil, err
	}

	labels, err := marshalLabels(scale.Labels)
	if err != nil {
		return nil, err
	}
	res, err := r.db.Exec(
		`UPDATE scale_sets SET name = ?, min_value = ?, max_value = ?, step = ?, labels_json = ? WHERE id = ?`,
		name, scale.Min, scale.Max, scale.Step, labels, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update scale set: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return &ScaleSet{ID: id, Name: name, Scale: scale}, nil
}

// Delete removes a scale set. Scale sets referenced by a project cannot be
// deleted; the caller must repoint or remove the projects first.
func (r *ScaleSetRepository) Delete(id int64) error {
	var inUse int
	if err := r.db.QueryRow(
		`SELECT COUNT(*) FROM projects WHERE scale_set_id = ?`, id).Scan(&inUse); err != nil {
		return fmt.Errorf("failed to check scale set usage: %w", err)
	}
	if inUse > 0 {
		return apperrors.Newf(apperrors.ScaleInUse, "scale set %d is used by %d project(s)", id, inUse)
	}

	res, err := r.db.Exec(`DELETE FROM scale_sets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scale set: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.Newf(apperrors.NotFound, "scale set %d does not exist", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanScaleSet(row rowScanner) (*ScaleSet, error) {
	var ss ScaleSet
	var labels sql.NullString
	if err := row.Scan(&ss.ID, &ss.Name, &ss.Scale.Min, &ss.Scale.Max, &ss.Scale.Step, &labels); err != nil {
		return nil, err
	}
	if labels.Valid && labels.String != "" {
		// A corrupt labels blob degrades to no labels rather than failing
		// the whole read.
		_ = json.Unmarshal([]byte(labels.String), &ss.Scale.Labels)
	}
	return &ss, nil
}

func marshalLabels(labels map[string]string) (sql.NullString, error) {
	if len(labels) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(labels)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode labels: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
