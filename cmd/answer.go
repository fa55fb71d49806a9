package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobradar/internal/answerer"
	"jobradar/internal/databank"
	"jobradar/internal/remote"
)

var answerJSON bool

var answerCmd = &cobra.Command{
	Use:   "answer [file]",
	Short: "Extract questions from page text and answer them from the databank",
	Long: "Reads page text from a file or stdin and prints the best answer for each " +
		"extracted question. When a backend URL is configured, the backend is tried " +
		"first and the local engine is the fallback.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pageText, err := readPageText(args)
		if err != nil {
			return err
		}

		result, err := answerPage(cmd, pageText)
		if err != nil {
			return err
		}

		if answerJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		if len(result.Answers) == 0 {
			fmt.Println("No questions found on page")
			return nil
		}
		for i, a := range result.Answers {
			fmt.Printf("%2d. %s\n", i+1, a.Question)
			fmt.Printf("    %s\n", a.Answer)
			fmt.Printf("    source=%s confidence=%.2f\n", a.Source, a.Confidence)
		}
		fmt.Printf("\n%d questions, %d answered, %d not found\n",
			result.TotalQuestions, result.FromDatabank, result.NotFound)
		return nil
	},
}

// answerPage prefers the configured backend and falls back to the local
// engine on any failure.
func answerPage(cmd *cobra.Command, pageText string) (*answerer.PageAnswers, error) {
	if cfg.Backend.URL != "" {
		client := remote.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
		result, err := client.ParseAndAnswer(cmd.Context(), pageText, nil)
		if err == nil {
			return result, nil
		}
		zap.L().Warn("backend unavailable, falling back to local engine",
			zap.String("backend", cfg.Backend.URL),
			zap.Error(err),
		)
	}

	svc, err := buildAnswerer(nil)
	if err != nil {
		return nil, err
	}
	db, err := databank.NewStore(cfg.Databank.Path).Load()
	if err != nil {
		return nil, err
	}
	return svc.AnswerPage(cmd.Context(), pageText, db), nil
}

func init() {
	answerCmd.Flags().BoolVar(&answerJSON, "json", false, "print the raw JSON response")
	rootCmd.AddCommand(answerCmd)
}
