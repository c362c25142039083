package main

import (
	"fmt"

	"micmac/internal/storage"

	"github.com/spf13/cobra"
)

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List stored scale sets",
	RunE:  runScales,
}

func init() {
	rootCmd.AddCommand(scalesCmd)
}

func runScales(cmd *cobra.Command, args []string) error {
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

	list, err := storage.NewScaleSetRepository(db).List()
	if err != nil {
		return err
	}

	for _, ss := range list {
		fmt.Printf("%d\t%s\t[%g,%g] step %g\n", ss.ID, ss.Name, ss.Scale.Min, ss.Scale.Max, ss.Scale.Step)
	}
	return nil
}
