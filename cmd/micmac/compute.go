package main

import (
	"encoding/json"
	"fmt"
	"os"

	"micmac/internal/analysis"
	"micmac/internal/dataset"

	"github.com/spf13/cobra"
)

var (
	computeVariablesFile string
	computeMatrixFile    string
	computeWorkbookFile  string
	computeCuts          string
	computeXPercentile   float64
	computeYPercentile   float64
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Run the analysis on local dataset files",
	Long: `Run the cross-impact analysis directly on local files, without the
server or database. This is the preview path: it runs the same engine the
/compute endpoint runs, so the two always agree.

Supply either --workbook with an xlsx file, or --matrix (and optionally
--variables) with delimited-text files.`,
	RunE: runCompute,
}

func init() {
	rootCmd.AddCommand(computeCmd)

	computeCmd.Flags().StringVar(&computeVariablesFile, "variables", "", "Variables CSV file")
	computeCmd.Flags().StringVar(&computeMatrixFile, "matrix", "", "Matrix CSV file")
	computeCmd.Flags().StringVar(&computeWorkbookFile, "workbook", "", "xlsx workbook with variables/matrix sheets")
	computeCmd.Flags().StringVar(&computeCuts, "cuts", "mean", "Cut mode: mean, median, or percentile")
	computeCmd.Flags().Float64Var(&computeXPercentile, "x-percentile", 0, "Dependency-axis percentile (percentile mode)")
	computeCmd.Flags().Float64Var(&computeYPercentile, "y-percentile", 0, "Driving-axis percentile (percentile mode)")
}

func runCompute(cmd *cobra.Command, args []string) error {
	ds, err := loadDatasetFiles(computeWorkbookFile, computeVariablesFile, computeMatrixFile)
	if err != nil {
		return err
	}

	cfg := analysis.CutConfig{
		Mode:        analysis.CutMode(computeCuts),
		XPercentile: computeXPercentile,
		YPercentile: computeYPercentile,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	result, ok := analysis.ComputeWithCuts(ds.Variables, ds.Matrix, cfg)
	if !ok {
		return fmt.Errorf("no result: matrix carries no analytic signal")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"variables":  result.Variables,
		"dependency": result.Dependency,
		"driving":    result.Driving,
		"xCut":       result.XCut,
		"yCut":       result.YCut,
		"quadrants":  result.QuadrantsByName(),
	})
}

// loadDatasetFiles reads and validates a dataset from a workbook or from
// delimited-text files.
func loadDatasetFiles(workbook, variables, matrix string) (*dataset.Dataset, error) {
	if workbook != "" {
		f, err := os.Open(workbook)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		varTable, matTable, err := dataset.ReadWorkbook(f)
		if err != nil {
			return nil, err
		}
		return dataset.ParseDataset(varTable, matTable)
	}

	if matrix == "" {
		return nil, fmt.Errorf("either --workbook or --matrix is required")
	}

	var varTable dataset.Table
	if variables != "" {
		f, err := os.Open(variables)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if varTable, err = dataset.ReadCSV(f); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(matrix)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	matTable, err := dataset.ReadCSV(f)
	if err != nil {
		return nil, err
	}

	return dataset.ParseDataset(varTable, matTable)
}
