package model

import "time"

// QuizQuestion is one multiple-choice question of a generated quiz.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// Quiz is an AI-generated set of multiple-choice questions. The ID is
// assigned server-side when the quiz is handed to a learner.
type Quiz struct {
	ID        string         `json:"quiz_id,omitempty"`
	Topic     string         `json:"topic"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizResult records one graded quiz attempt.
type QuizResult struct {
	ID        int64
	UserID    int64
	Score     int
	CreatedAt time.Time
}
