package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/conorfennell/quizbase/internal/domain"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quiz.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

func sampleQuiz() *domain.Quiz {
	instructions := "Answer using the numeral."
	return &domain.Quiz{
		Name:         "sample.quiz",
		Instructions: &instructions,
		Questions: []domain.Question{
			{
				Text: "2+2?",
				Type: domain.ShortAnswer,
				Answers: []domain.Answer{
					{Text: "4", Correct: true},
				},
				Tags: []string{"math", "arithmetic", "math"},
			},
			{
				Text: "Name the Baltic states from north to south",
				Type: domain.Ordered,
				Answers: []domain.Answer{
					{Text: "Estonia", Correct: true},
					{Text: "Latvia", Correct: true},
					{Text: "Lithuania", Correct: true, NoCredit: true},
				},
			},
			{
				Text: "Capital of Tanzania?",
				Type: domain.MultipleChoice,
				Answers: []domain.Answer{
					{Text: "Dodoma", Correct: true},
					{Text: "Dar es Salaam"},
					{Text: "Nairobi"},
				},
			},
			{
				Text: "cat = кот",
				Type: domain.Flashcard,
			},
		},
	}
}

func TestStoreQuizRoundTrip(t *testing.T) {
	db, _ := openTestDB(t)
	quiz := sampleQuiz()

	quizID, err := db.StoreQuiz(quiz)
	if err != nil {
		t.Fatalf("StoreQuiz() returned an unexpected error: %v", err)
	}
	if quizID == 0 {
		t.Error("expected a non-zero quiz ID")
	}

	stored, err := db.FindQuizByName(quiz.Name)
	if err != nil {
		t.Fatalf("FindQuizByName() returned an unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("expected to find the stored quiz")
	}

	if stored.Instructions == nil || *stored.Instructions != *quiz.Instructions {
		t.Errorf("expected instructions %q, got %v", *quiz.Instructions, stored.Instructions)
	}
	if !reflect.DeepEqual(stored.Questions, quiz.Questions) {
		t.Errorf("stored questions differ from the original:\nexpected %#v\ngot      %#v", quiz.Questions, stored.Questions)
	}
}

func TestStoreQuizWithoutInstructions(t *testing.T) {
	db, _ := openTestDB(t)

	if _, err := db.StoreQuiz(&domain.Quiz{
		Name: "bare.quiz",
		Questions: []domain.Question{
			{Text: "2+2?", Type: domain.ShortAnswer, Answers: []domain.Answer{{Text: "4", Correct: true}}},
		},
	}); err != nil {
		t.Fatalf("StoreQuiz() returned an unexpected error: %v", err)
	}

	// Absent instructions are projected as the empty string, which reads
	// back as the no-instructions state.
	stored, err := db.FindQuizByName("bare.quiz")
	if err != nil {
		t.Fatalf("FindQuizByName() returned an unexpected error: %v", err)
	}
	if stored.Instructions != nil {
		t.Errorf("expected no instructions, got %q", *stored.Instructions)
	}
}

func TestStoreQuizDuplicateName(t *testing.T) {
	db, _ := openTestDB(t)
	quiz := sampleQuiz()

	if _, err := db.StoreQuiz(quiz); err != nil {
		t.Fatalf("first StoreQuiz() returned an unexpected error: %v", err)
	}
	if _, err := db.StoreQuiz(quiz); err == nil {
		t.Fatal("expected a unique-constraint error storing the same quiz name twice")
	}

	// The failed run must not leave partial rows behind.
	stored, err := db.FindQuizByName(quiz.Name)
	if err != nil {
		t.Fatalf("FindQuizByName() returned an unexpected error: %v", err)
	}
	if len(stored.Questions) != len(quiz.Questions) {
		t.Errorf("expected %d questions after the failed insert, got %d", len(quiz.Questions), len(stored.Questions))
	}
}

func TestFindQuizByNameMissing(t *testing.T) {
	db, _ := openTestDB(t)

	stored, err := db.FindQuizByName("no-such-quiz")
	if err != nil {
		t.Fatalf("FindQuizByName() returned an unexpected error: %v", err)
	}
	if stored != nil {
		t.Errorf("expected nil for a missing quiz, got %#v", stored)
	}
}

func TestOpenExistingFileSkipsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.db")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// An existing destination is reused without creating or verifying the
	// schema, so an incompatible one surfaces as a generic store failure.
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() returned an unexpected error: %v", err)
	}
	defer db.Close()

	if _, err := db.StoreQuiz(sampleQuiz()); err == nil {
		t.Error("expected a failure storing into a database with no schema")
	}
}
