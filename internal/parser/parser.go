package parser

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/quizbase/internal/domain"
)

const instructionsPrefix = "- instructions:"

// Warning reports a question that could not be parsed. Line is the 1-based
// line number at which parsing stopped, after resynchronization.
type Warning struct {
	Line int
}

// ParseFile reads a quiz file and parses it. The quiz's name is the file's
// base name. Warnings describe questions that were skipped; only I/O
// problems are returned as an error.
func ParseFile(path string) (*domain.Quiz, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	quiz, warnings := Parse(filepath.Base(path), strings.Split(text, "\n"))
	return quiz, warnings, nil
}

// Parse consumes the whole line sequence: an optional leading instructions
// line, then one question per blank-line-separated block. Malformed blocks
// are skipped with a warning; Parse never fails outright.
func Parse(name string, lines []string) (*domain.Quiz, []Warning) {
	i := skipBlank(lines, 0)

	var instructions *string
	if i < len(lines) && strings.HasPrefix(lines[i], instructionsPrefix) {
		s := strings.TrimSpace(lines[i][len(instructionsPrefix):])
		instructions = &s
		i = skipBlank(lines, i+1)
	}

	var questions []domain.Question
	var warnings []Warning
	for i < len(lines) {
		question, next := parseQuestion(lines, i)
		if question != nil {
			questions = append(questions, *question)
		} else {
			warnings = append(warnings, Warning{Line: next + 1})
		}
		i = skipBlank(lines, next)
	}

	return &domain.Quiz{
		Name:         name,
		Instructions: instructions,
		Questions:    questions,
	}, warnings
}

// parseQuestion consumes one question block starting at line i: the header,
// then answer lines, then directive lines. It returns the parsed question
// and the index of the first line after the block. A nil question means the
// block could not be parsed; the returned index is then the next blank-line
// boundary, so the two outcomes always carry a usable resume position.
func parseQuestion(lines []string, i int) (*domain.Question, int) {
	bracket := strings.Index(lines[i], "]")
	if bracket == -1 {
		// A standalone "front = back" line is a flashcard without a
		// header. Anything else missing "]" is malformed.
		if strings.Contains(lines[i], "=") && (i+1 >= len(lines) || isBlank(lines[i+1])) {
			text := strings.TrimSpace(lines[i])
			return &domain.Question{Text: text, Type: domain.Flashcard}, i + 1
		}
		return nil, skipNonBlank(lines, i+1)
	}
	text := strings.TrimSpace(lines[i][bracket+1:])
	i++

	var answerLines []string
	for i < len(lines) && !isBlank(lines[i]) &&
		!strings.HasPrefix(lines[i], "-") && !strings.HasPrefix(lines[i], "[") {
		answerLines = append(answerLines, strings.TrimSpace(lines[i]))
		i++
	}

	// Directive region. nocredit accumulates across lines; choices and
	// tags are replaced wholesale each time their key reappears.
	noCredit := make(map[string]bool)
	var choices []string
	var tags []string
	ordered := false
	for i < len(lines) && !isBlank(lines[i]) && strings.HasPrefix(lines[i], "-") {
		body := lines[i][1:]
		colon := strings.Index(body, ":")
		if colon == -1 {
			return nil, skipNonBlank(lines, i+1)
		}
		key := strings.TrimSpace(body[:colon])
		value := strings.TrimSpace(body[colon+1:])

		switch key {
		case "nocredit":
			for _, s := range strings.Split(value, "/") {
				noCredit[strings.TrimSpace(s)] = true
			}
		case "ordered":
			switch value {
			case "true":
				ordered = true
			case "false":
				ordered = false
			default:
				return nil, skipNonBlank(lines, i+1)
			}
		case "choices":
			choices = splitTrimmed(value, "/")
		case "tags":
			tags = splitTrimmed(value, ",")
		default:
			return nil, skipNonBlank(lines, i+1)
		}
		i++
	}

	if len(answerLines) == 0 {
		// A lone header whose text embeds "=" is a flashcard; the two
		// sides stay joined in the text for downstream consumers.
		if strings.Contains(text, "=") {
			return &domain.Question{Text: text, Type: domain.Flashcard, Tags: tags}, i
		}
		return nil, i
	}

	answers := make([]domain.Answer, 0, len(answerLines)+len(choices))
	for _, s := range answerLines {
		answers = append(answers, domain.Answer{Text: s, Correct: true, NoCredit: noCredit[s]})
	}

	questionType := deriveType(len(answerLines), len(choices) > 0, ordered)
	if questionType == domain.MultipleChoice {
		for _, choice := range choices {
			answers = append(answers, domain.Answer{Text: choice})
		}
	}

	return &domain.Question{Text: text, Type: questionType, Answers: answers, Tags: tags}, i
}

// deriveType maps the shape of an answered question onto its type. The
// flashcard case never reaches here; it requires zero answer lines.
func deriveType(answerCount int, hasChoices, ordered bool) domain.QuestionType {
	switch {
	case answerCount > 1 && ordered:
		return domain.Ordered
	case answerCount > 1:
		return domain.Unordered
	case hasChoices:
		return domain.MultipleChoice
	default:
		return domain.ShortAnswer
	}
}

func splitTrimmed(value, sep string) []string {
	parts := strings.Split(value, sep)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
