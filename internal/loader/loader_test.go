package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conorfennell/quizbase/internal/config"
	"github.com/conorfennell/quizbase/internal/domain"
	"github.com/conorfennell/quizbase/internal/storage"
)

const sampleQuiz = `- instructions: Answer from memory.

[001] 2+2?
4
-tags: math

[002] Capitals of the Baltics
Tallinn
Riga
Vilnius
-ordered: true

not a question at all

cat = кот
`

func writeQuiz(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "baltics.quiz")
	if err := os.WriteFile(path, []byte(sampleQuiz), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoadConfig{
		Quiz: writeQuiz(t, dir),
		DB:   filepath.Join(dir, "quiz.db"),
	}

	if err := Run(cfg); err != nil {
		t.Fatalf("Run() returned an unexpected error: %v", err)
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	quiz, err := db.FindQuizByName("baltics.quiz")
	if err != nil {
		t.Fatal(err)
	}
	if quiz == nil {
		t.Fatal("expected the quiz to be stored")
	}
	if quiz.Instructions == nil || *quiz.Instructions != "Answer from memory." {
		t.Errorf("expected instructions to survive the round trip, got %v", quiz.Instructions)
	}
	// The malformed block is skipped; the other three questions load.
	if len(quiz.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(quiz.Questions))
	}
	if quiz.Questions[1].Type != domain.Ordered {
		t.Errorf("expected an ordered question, got %q", quiz.Questions[1].Type)
	}
	if quiz.Questions[2].Type != domain.Flashcard {
		t.Errorf("expected a flashcard, got %q", quiz.Questions[2].Type)
	}
}

func TestRunDuplicateWithoutOverwrite(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoadConfig{
		Quiz: writeQuiz(t, dir),
		DB:   filepath.Join(dir, "quiz.db"),
	}

	if err := Run(cfg); err != nil {
		t.Fatalf("first Run() returned an unexpected error: %v", err)
	}
	if err := Run(cfg); err == nil {
		t.Error("expected the duplicate quiz name to fail without --overwrite")
	}

	cfg.Overwrite = true
	if err := Run(cfg); err != nil {
		t.Errorf("Run() with overwrite returned an unexpected error: %v", err)
	}
}

func TestRunOverwriteKeepsDatabaseOnUnreadableQuiz(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoadConfig{
		Quiz:      writeQuiz(t, dir),
		DB:        filepath.Join(dir, "quiz.db"),
		Overwrite: true,
	}

	if err := Run(cfg); err != nil {
		t.Fatalf("Run() returned an unexpected error: %v", err)
	}

	// A source that cannot be read must fail before the existing
	// database is deleted.
	cfg.Quiz = filepath.Join(dir, "missing.quiz")
	if err := Run(cfg); err == nil {
		t.Fatal("expected an error for a missing quiz file")
	}
	if _, err := os.Stat(cfg.DB); err != nil {
		t.Errorf("expected the database to survive the failed run: %v", err)
	}

	db, err := storage.Open(cfg.DB)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	quiz, err := db.FindQuizByName("baltics.quiz")
	if err != nil {
		t.Fatal(err)
	}
	if quiz == nil || len(quiz.Questions) != 3 {
		t.Errorf("expected the previously loaded quiz to be intact, got %#v", quiz)
	}
}

func TestRunMissingQuizFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoadConfig{
		Quiz: filepath.Join(dir, "missing.quiz"),
		DB:   filepath.Join(dir, "quiz.db"),
	}

	if err := Run(cfg); err == nil {
		t.Error("expected an error for a missing quiz file")
	}
}
