package storage

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/conorfennell/quizbase/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// quizVersion is the fixed format version stamped on every stored quiz.
const quizVersion = "1.0"

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open opens the quiz database at path. If no file exists there yet, the
// schema is created; an existing file is assumed to already carry a
// compatible schema and is reused without verification.
func Open(path string) (*DB, error) {
	_, statErr := os.Stat(path)
	exists := statErr == nil

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if !exists {
		if _, err := db.Exec(schema); err != nil {
			return nil, fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// StoreQuiz inserts a quiz and its whole question tree as one transaction
// and returns the generated quiz id. Nothing is visible to readers until
// the commit; any failure (including a duplicate quiz name) leaves the
// database untouched.
func (db *DB) StoreQuiz(quiz *domain.Quiz) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	instructions := ""
	if quiz.Instructions != nil {
		instructions = *quiz.Instructions
	}

	res, err := tx.Exec(`
		INSERT INTO quizzes (name, instructions, version)
		VALUES (?, ?, ?)
	`, quiz.Name, instructions, quizVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to insert quiz %s: %w", quiz.Name, err)
	}
	quizID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get quiz ID for %s: %w", quiz.Name, err)
	}

	for _, question := range quiz.Questions {
		res, err := tx.Exec(`
			INSERT INTO questions (quiz, text, type)
			VALUES (?, ?, ?)
		`, quizID, question.Text, string(question.Type))
		if err != nil {
			return 0, fmt.Errorf("failed to insert question %q: %w", question.Text, err)
		}
		questionID, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get question ID for %q: %w", question.Text, err)
		}

		for _, answer := range question.Answers {
			_, err := tx.Exec(`
				INSERT INTO answers (question, text, no_credit, correct)
				VALUES (?, ?, ?, ?)
			`, questionID, answer.Text, answer.NoCredit, answer.Correct)
			if err != nil {
				return 0, fmt.Errorf("failed to insert answer %q: %w", answer.Text, err)
			}
		}

		for _, tag := range question.Tags {
			_, err := tx.Exec(`
				INSERT INTO tags (question, name)
				VALUES (?, ?)
			`, questionID, tag)
			if err != nil {
				return 0, fmt.Errorf("failed to insert tag %q: %w", tag, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit quiz %s: %w", quiz.Name, err)
	}
	return quizID, nil
}

// FindQuizByName reconstructs a stored quiz tree by its name. Returns
// (nil, nil) when no quiz with that name exists.
func (db *DB) FindQuizByName(name string) (*domain.Quiz, error) {
	var quizID int64
	var instructions string
	row := db.conn.QueryRow(`
		SELECT id, instructions FROM quizzes WHERE name = ?
	`, name)
	if err := row.Scan(&quizID, &instructions); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find quiz %s: %w", name, err)
	}

	quiz := &domain.Quiz{Name: name}
	if instructions != "" {
		quiz.Instructions = &instructions
	}

	rows, err := db.conn.Query(`
		SELECT id, text, type FROM questions WHERE quiz = ? ORDER BY id
	`, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions for quiz %s: %w", name, err)
	}
	defer rows.Close()

	var questionIDs []int64
	for rows.Next() {
		var id int64
		var text, questionType string
		if err := rows.Scan(&id, &text, &questionType); err != nil {
			return nil, fmt.Errorf("failed to scan question row: %w", err)
		}
		questionIDs = append(questionIDs, id)
		quiz.Questions = append(quiz.Questions, domain.Question{
			Text: text,
			Type: domain.QuestionType(questionType),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read question rows: %w", err)
	}

	for i, questionID := range questionIDs {
		answers, err := db.answersForQuestion(questionID)
		if err != nil {
			return nil, err
		}
		tags, err := db.tagsForQuestion(questionID)
		if err != nil {
			return nil, err
		}
		quiz.Questions[i].Answers = answers
		quiz.Questions[i].Tags = tags
	}

	return quiz, nil
}

func (db *DB) answersForQuestion(questionID int64) ([]domain.Answer, error) {
	rows, err := db.conn.Query(`
		SELECT text, correct, no_credit FROM answers
		WHERE question = ? ORDER BY rowid
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers for question %d: %w", questionID, err)
	}
	defer rows.Close()

	var answers []domain.Answer
	for rows.Next() {
		var a domain.Answer
		if err := rows.Scan(&a.Text, &a.Correct, &a.NoCredit); err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (db *DB) tagsForQuestion(questionID int64) ([]string, error) {
	rows, err := db.conn.Query(`
		SELECT name FROM tags
		WHERE question = ? ORDER BY rowid
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags for question %d: %w", questionID, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
