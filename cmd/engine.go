package main

import (
	"fmt"
	"io"
	"os"

	"jobradar/internal/answerer"
	"jobradar/internal/extractor"
	"jobradar/internal/matcher"
	"jobradar/internal/metrics"
)

// buildAnswerer assembles the local engine from configuration.
func buildAnswerer(m *metrics.Metrics) (*answerer.Service, error) {
	vocab, err := extractor.LoadConfig(cfg.Engine.VocabularyPath)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	ex, err := extractor.New(vocab)
	if err != nil {
		return nil, fmt.Errorf("build extractor: %w", err)
	}
	ma := matcher.New(matcher.Config{Threshold: cfg.Engine.Threshold})
	return answerer.New(ex, ma, m), nil
}

// readPageText reads page text from the file argument, or stdin when no
// argument is given.
func readPageText(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
