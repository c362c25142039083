package storage

import (
	"database/sql"
	"fmt"

	"micmac/internal/dataset"
)

// ProjectStatus summarizes how much of a project's analysis input is stored.
type ProjectStatus struct {
	ProjectID      int64 `json:"projectId"`
	VariablesCount int   `json:"variablesCount"`
	MatrixCells    int   `json:"matrixCells"`
	MatrixComplete bool  `json:"matrixComplete"`
}

// DatasetRepository stores the analysis inputs of a project: the ordered
// variable list and the influence matrix. All writes are wholesale
// replacements in a single transaction — stored state is either the previous
// dataset or the new one, never a mix.
type DatasetRepository struct {
	db *DB
}

// NewDatasetRepository creates a new dataset repository
func NewDatasetRepository(db *DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Variables returns the project's variable names in stored order.
func (r *DatasetRepository) Variables(projectID int64) ([]string, error) {
	rows, err := r.db.Query(
		`SELECT name FROM variables WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan variable: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ReplaceVariables replaces the project's variable list. Existing matrix
// cells are removed in the same transaction since they would no longer be
// consistent with the new dimensions.
func (r *DatasetRepository) ReplaceVariables(projectID int64, names []string) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		if err := clearDataset(tx, projectID); err != nil {
			return err
		}
		return insertVariables(tx, projectID, names)
	})
}

// ReplaceMatrix replaces the project's matrix cells. The matrix must already
// be validated and shaped n×n for the current variable count.
func (r *DatasetRepository) ReplaceMatrix(projectID int64, matrix [][]float64) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM influence_cells WHERE project_id = ?`, projectID); err != nil {
			return fmt.Errorf("failed to clear matrix: %w", err)
		}
		return insertMatrix(tx, projectID, matrix)
	})
}

// ReplaceDataset atomically replaces both the variable list and the matrix,
// the persistence half of import's all-or-nothing contract.
func (r *DatasetRepository) ReplaceDataset(projectID int64, ds *dataset.Dataset) error {
	return r.db.WithTx(func(tx *sql.Tx) error {
		if err := clearDataset(tx, projectID); err != nil {
			return err
		}
		if err := insertVariables(tx, projectID, ds.Variables); err != nil {
			return err
		}
		return insertMatrix(tx, projectID, ds.Matrix)
	})
}

// Dataset loads the project's variables and matrix. The matrix is nil when
// no complete n×n cell set is stored.
func (r *DatasetRepository) Dataset(projectID int64) (*dataset.Dataset, error) {
	names, err := r.Variables(projectID)
	if err != nil {
		return nil, err
	}
	n := len(names)
	ds := &dataset.Dataset{Variables: names}
	if n == 0 {
		return ds, nil
	}

	rows, err := r.db.Query(
		`SELECT from_pos, to_pos, value FROM influence_cells WHERE project_id = ?`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matrix: %w", err)
	}
	defer rows.Close()

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}
	count := 0
	for rows.Next() {
		var from, to int
		var value float64
		if err := rows.Scan(&from, &to, &value); err != nil {
			return nil, fmt.Errorf("failed to scan matrix cell: %w", err)
		}
		if from < 0 || from >= n || to < 0 || to >= n {
			continue
		}
		matrix[from][to] = value
		count++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if count == n*n {
		ds.Matrix = matrix
	}
	return ds, nil
}

// Status reports variable and cell counts and matrix completeness.
func (r *DatasetRepository) Status(projectID int64) (*ProjectStatus, error) {
	st := &ProjectStatus{ProjectID: projectID}
	if err := r.db.QueryRow(
		`SELECT COUNT(*) FROM variables WHERE project_id = ?`, projectID).Scan(&st.VariablesCount); err != nil {
		return nil, fmt.Errorf("failed to count variables: %w", err)
	}
	if err := r.db.QueryRow(
		`SELECT COUNT(*) FROM influence_cells WHERE project_id = ?`, projectID).Scan(&st.MatrixCells); err != nil {
		return nil, fmt.Errorf("failed to count matrix cells: %w", err)
	}
	st.MatrixComplete = st.VariablesCount > 0 && st.MatrixCells == st.VariablesCount*st.VariablesCount
	return st, nil
}

func clearDataset(tx *sql.Tx, projectID int64) error {
	if _, err := tx.Exec(`DELETE FROM influence_cells WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to clear matrix: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM variables WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to clear variables: %w", err)
	}
	return nil
}

func insertVariables(tx *sql.Tx, projectID int64, names []string) error {
	stmt, err := tx.Prepare(`INSERT INTO variables (project_id, position, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare variable insert: %w", err)
	}
	defer stmt.Close()

	for pos, name := range names {
		if _, err := stmt.Exec(projectID, pos, name); err != nil {
			return fmt.Errorf("failed to insert variable %d: %w", pos, err)
		}
	}
	return nil
}

func insertMatrix(tx *sql.Tx, projectID int64, matrix [][]float64) error {
	stmt, err := tx.Prepare(
		`INSERT INTO influence_cells (project_id, from_pos, to_pos, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cell insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range matrix {
		for j, v := range row {
			if i == j {
				// Diagonal is derived, not data.
				v = 0
			}
			if _, err := stmt.Exec(projectID, i, j, v); err != nil {
				return fmt.Errorf("failed to insert cell (%d,%d): %w", i, j, err)
			}
		}
	}
	return nil
}
