// Package loader ties the pipeline together: resolve the quiz source, parse
// it, report parse warnings, and project the quiz into the database.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/conorfennell/quizbase/internal/config"
	"github.com/conorfennell/quizbase/internal/gitsource"
	"github.com/conorfennell/quizbase/internal/parser"
	"github.com/conorfennell/quizbase/internal/storage"
)

// Run loads one quiz into the database described by cfg. Per-question parse
// warnings are logged and processing continues; I/O and storage failures
// are returned and abort the run with nothing persisted.
func Run(cfg config.LoadConfig) error {
	path := cfg.Quiz
	if gitsource.IsRemote(cfg.Quiz) {
		if cfg.File == "" {
			return fmt.Errorf("git source %s needs --file to name the quiz inside the repository", cfg.Quiz)
		}
		repoPath, err := gitsource.Fetch(cfg.CacheDir, cfg.Quiz)
		if err != nil {
			return err
		}
		path = filepath.Join(repoPath, cfg.File)
	}

	quiz, warnings, err := parser.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to read quiz %s: %w", path, err)
	}
	for _, warning := range warnings {
		slog.Warn("could not parse question", "quiz", quiz.Name, "line", warning.Line)
	}

	// Only a readable, parsed source may replace an existing database.
	if cfg.Overwrite {
		if err := os.Remove(cfg.DB); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", cfg.DB, err)
		}
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	quizID, err := db.StoreQuiz(quiz)
	if err != nil {
		return fmt.Errorf("failed to store quiz %s: %w", quiz.Name, err)
	}

	slog.Info("quiz loaded",
		"name", quiz.Name,
		"id", quizID,
		"questions", len(quiz.Questions),
		"skipped", len(warnings),
	)
	return nil
}
