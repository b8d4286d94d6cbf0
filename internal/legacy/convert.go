// Package legacy converts quizzes from the retired v1 JSON format into the
// current text format. Ungraded questions and per-question dependencies were
// dropped from the format and fail the conversion.
package legacy

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type quizV1 struct {
	DefaultKind string       `json:"default_kind"`
	Questions   []questionV1 `json:"questions"`
}

type questionV1 struct {
	Kind       string        `json:"kind"`
	Text       multiString   `json:"text"`
	Answer     multiString   `json:"answer"`
	AnswerList []multiString `json:"answer_list"`
	Candidates []string      `json:"candidates"`
	Side1      string        `json:"side1"`
	Side2      multiString   `json:"side2"`
	Tags       []string      `json:"tags"`
}

// multiString absorbs v1 fields that may hold either a single string or a
// list of variant strings.
type multiString []string

func (m *multiString) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = multiString{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*m = multiString(list)
	return nil
}

// first returns the canonical variant. The current text format has one
// string per answer line, so extra variants are dropped here.
func (m multiString) first() string {
	if len(m) == 0 {
		return ""
	}
	return m[0]
}

// Convert reads a v1 JSON quiz from r and writes the equivalent quiz in the
// current text format to w. The conversion is a linear stateless rewrite;
// the first unsupported or malformed question aborts it with an error.
func Convert(r io.Reader, w io.Writer) error {
	var quiz quizV1
	if err := json.NewDecoder(r).Decode(&quiz); err != nil {
		return fmt.Errorf("failed to decode v1 quiz: %w", err)
	}

	defaultKind := quiz.DefaultKind
	if defaultKind == "" {
		defaultKind = "ShortAnswer"
	}

	for i, question := range quiz.Questions {
		kind := question.Kind
		if kind == "" {
			kind = defaultKind
		}
		if err := writeQuestion(w, i, kind, question); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

func writeQuestion(w io.Writer, index int, kind string, question questionV1) error {
	if len(question.Text) == 0 && kind != "Flashcard" {
		return fmt.Errorf("question missing text field")
	}

	switch kind {
	case "ShortAnswer":
		fmt.Fprintf(w, "[%06d] %s\n", index, question.Text.first())
		fmt.Fprintf(w, "%s\n", question.Answer.first())
	case "MultipleChoice":
		fmt.Fprintf(w, "[%06d] %s\n", index, question.Text.first())
		fmt.Fprintf(w, "%s\n", question.Answer.first())
		fmt.Fprintf(w, "-choices: %s\n", strings.Join(question.Candidates, "/"))
	case "ListAnswer", "OrderedListAnswer":
		fmt.Fprintf(w, "[%06d] %s\n", index, question.Text.first())
		for _, answer := range question.AnswerList {
			fmt.Fprintf(w, "%s\n", answer.first())
		}
		if kind == "OrderedListAnswer" {
			fmt.Fprintf(w, "-ordered: true\n")
		}
	case "Flashcard":
		// Headered so a -tags directive can follow; the parser accepts
		// bare "front = back" lines too.
		fmt.Fprintf(w, "[%06d] %s = %s\n", index, question.Side1, strings.Join(question.Side2, "/"))
	case "Ungraded":
		return fmt.Errorf("ungraded questions are no longer supported")
	default:
		return fmt.Errorf("unknown kind: %s", kind)
	}

	if len(question.Tags) > 0 {
		fmt.Fprintf(w, "-tags: %s\n", strings.Join(question.Tags, ", "))
	}
	fmt.Fprintln(w)
	return nil
}
