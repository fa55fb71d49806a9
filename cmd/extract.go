package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Show which questions the engine extracts from page text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageText, err := readPageText(args)
		if err != nil {
			return err
		}

		svc, err := buildAnswerer(nil)
		if err != nil {
			return err
		}

		questions := svc.Extract(pageText)
		if len(questions) == 0 {
			fmt.Println("No questions found")
			return nil
		}
		for i, q := range questions {
			fmt.Printf("%2d. %s\n", i+1, q)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
