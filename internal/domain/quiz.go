package domain

// QuestionType is the closed set of question kinds stored in the database.
// It is always derived from the shape of the parsed question, never read
// from the input directly.
type QuestionType string

const (
	ShortAnswer    QuestionType = "short answer"
	Ordered        QuestionType = "ordered"
	Unordered      QuestionType = "unordered"
	MultipleChoice QuestionType = "multiple choice"
	Flashcard      QuestionType = "flashcard"
)

// Quiz is one parsed quiz file: a name (the source's base filename), an
// optional instructions line, and its questions in source order.
type Quiz struct {
	Name         string
	Instructions *string // nil when the file carries no instructions line
	Questions    []Question
}

// Question is a single question record. For flashcards the front and back
// are both embedded in Text, separated by "="; splitting the sides is left
// to whatever presents the card.
type Question struct {
	Text    string
	Type    QuestionType
	Answers []Answer
	Tags    []string
}

// Answer is one answer row. Correct is false only for multiple-choice
// distractors; NoCredit marks answers accepted without full credit.
type Answer struct {
	Text     string
	Correct  bool
	NoCredit bool
}
