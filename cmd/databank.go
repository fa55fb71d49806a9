package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jobradar/internal/databank"
)

var databankCmd = &cobra.Command{
	Use:   "databank",
	Short: "Inspect and manage the Q&A databank",
}

var databankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate an exported databank JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		db, err := databank.Import(data)
		if err != nil {
			return fmt.Errorf("invalid databank: %w", err)
		}

		st := databank.Stats(db)
		fmt.Printf("%s is a valid databank export\n", args[0])
		printStats(st)
		return nil
	},
}

var databankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the databank as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := databank.NewStore(cfg.Databank.Path).Load()
		if err != nil {
			return err
		}
		data, err := databank.ExportJSON(db)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var databankImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a databank JSON file, replacing the current databank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		db, err := databank.Import(data)
		if err != nil {
			return fmt.Errorf("invalid databank: %w", err)
		}

		if err := databank.NewStore(cfg.Databank.Path).Save(db); err != nil {
			return err
		}
		fmt.Printf("imported %d questions into %s\n", db.Questions.Len(), cfg.Databank.Path)
		return nil
	},
}

var databankStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how much of the databank is filled in",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := databank.NewStore(cfg.Databank.Path).Load()
		if err != nil {
			return err
		}
		fmt.Printf("databank %s (version %s, updated %s)\n",
			cfg.Databank.Path, db.Version, db.LastUpdated)
		printStats(databank.Stats(db))
		return nil
	},
}

func printStats(st databank.PartitionStats) {
	fmt.Printf("  personal info:      %d fields\n", st.PersonalInfo)
	fmt.Printf("  stored questions:   %d\n", st.Questions)
	fmt.Printf("  salary:             %d fields\n", st.Salary)
	fmt.Printf("  work authorization: %d fields\n", st.WorkAuthorization)
}

func init() {
	databankCmd.AddCommand(databankValidateCmd)
	databankCmd.AddCommand(databankExportCmd)
	databankCmd.AddCommand(databankImportCmd)
	databankCmd.AddCommand(databankStatsCmd)
	rootCmd.AddCommand(databankCmd)
}
