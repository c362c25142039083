package main

import (
	"fmt"

	"micmac/internal/storage"

	"github.com/spf13/cobra"
)

var (
	importProjectID     int64
	importVariablesFile string
	importMatrixFile    string
	importWorkbookFile  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a dataset into a stored project",
	Long: `Import variables and an influence matrix into a project, replacing
whatever the project held before. The import is atomic: on any validation
failure the stored dataset is left untouched.`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Int64Var(&importProjectID, "project", 0, "Target project ID")
	importCmd.Flags().StringVar(&importVariablesFile, "variables", "", "Variables CSV file")
	importCmd.Flags().StringVar(&importMatrixFile, "matrix", "", "Matrix CSV file")
	importCmd.Flags().StringVar(&importWorkbookFile, "workbook", "", "xlsx workbook with variables/matrix sheets")
	_ = importCmd.MarkFlagRequired("project")
}

func runImport(cmd *cobra.Command, args []string) error {
	ds, err := loadDatasetFiles(importWorkbookFile, importVariablesFile, importMatrixFile)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	db, err := openDB(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	projects := storage.NewProjectRepository(db)
	project, err := projects.Get(importProjectID)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("project %d does not exist", importProjectID)
	}

	scales := storage.NewScaleSetRepository(db)
	ss, err := scales.Get(project.ScaleSetID)
	if err != nil {
		return err
	}
	if ss == nil {
		return fmt.Errorf("project %d references a missing scale set", importProjectID)
	}
	for i, row := range ds.Matrix {
		for j, v := range row {
			if i == j {
				continue
			}
			if err := ss.Scale.CheckValue(v); err != nil {
				return fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
		}
	}

	if err := storage.NewDatasetRepository(db).ReplaceDataset(importProjectID, ds); err != nil {
		return err
	}

	fmt.Printf("Imported %d variables into project %d\n", len(ds.Variables), importProjectID)
	return nil
}
