package storage

import (
	"database/sql"
	"fmt"
)

// Project is a stored analysis project referencing a scale set.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ScaleSetID  int64  `json:"scaleSetId"`
}

// ProjectRepository provides CRUD operations for the projects table
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project.
func (r *ProjectRepository) Create(name, description string, scaleSetID int64) (*Project, error) {
	res, err := r.db.Exec(
		`INSERT INTO projects (name, description, scale_set_id) VALUES (?, ?, ?)`,
		name, description, scaleSetID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read project id: %w", err)
	}
	return &Project{ID: id, Name: name, Description: description, ScaleSetID: scaleSetID}, nil
}

// Get retrieves a project by ID. Returns nil when it does not exist.
func (r *ProjectRepository) Get(id int64) (*Project, error) {
	var p Project
	err := r.db.QueryRow(
		`SELECT id, name, description, scale_set_id FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.ScaleSetID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

// List returns all projects ordered by ID.
func (r *ProjectRepository) List() ([]*Project, error) {
	rows, err := r.db.Query(`SELECT id, name, description, scale_set_id FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var out []*Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ScaleSetID); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update replaces a project's fields. Returns nil when the project does not exist.
func (r *ProjectRepository) Update(id int64, name, description string, scaleSetID int64) (*Project, error) {
	res, err := r.db.Exec(
		`UPDATE projects SET name = ?, description = ?, scale_set_id = ? WHERE id = ?`,
		name, description, scaleSetID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return &Project{ID: id, Name: name, Description: description, ScaleSetID: scaleSetID}, nil
}

// Delete removes a project and, via cascade, its variables and matrix cells.
// Returns false when the project does not exist.
func (r *ProjectRepository) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}
