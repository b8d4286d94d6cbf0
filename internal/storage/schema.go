package storage

const schema = `
CREATE TABLE quizzes(
  id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
  name TEXT UNIQUE NOT NULL CHECK(name != ''),
  instructions TEXT NOT NULL,
  version TEXT NOT NULL CHECK(version != ''),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE questions(
  id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
  quiz INTEGER NOT NULL REFERENCES quizzes,
  text TEXT NOT NULL CHECK (text != ''),
  type TEXT NOT NULL CHECK(
    type = 'short answer' OR
    type = 'ordered' OR
    type = 'unordered' OR
    type = 'multiple choice' OR
    type = 'flashcard'
  ),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE answers(
  question INTEGER NOT NULL REFERENCES questions,
  text TEXT NOT NULL CHECK(text != ''),
  correct BOOLEAN NOT NULL DEFAULT 1,
  no_credit BOOLEAN NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE tags(
  question INTEGER NOT NULL REFERENCES questions,
  name TEXT NOT NULL CHECK(name != ''),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
