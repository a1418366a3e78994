package models

import (
	"time"
)

// AnswerType distinguishes how an answer was delivered
type AnswerType string

const (
	AnswerTypeText   AnswerType = "text"
	AnswerTypeVerbal AnswerType = "verbal"
)

// Question defines the question model based on the 'questions' table.
// QuestionCode is the public opaque id. The asker auto-upvotes, so a fresh
// question always starts with Upvotes == 1.
type Question struct {
	ID           int64     `json:"id" db:"id"`
	QuestionCode string    `json:"question_id" db:"question_code"`
	LectureID    int64     `json:"lectureId" db:"lecture_id"`
	StudentID    int64     `json:"studentId" db:"student_id"`
	QuestionText string    `json:"question_text" db:"question_text"`
	AskedAt      time.Time `json:"timestamp" db:"asked_at"`
	IsAnswered   bool      `json:"is_answered" db:"is_answered"`
	IsImportant  bool      `json:"is_important" db:"is_important"`
	Upvotes      int       `json:"upvotes" db:"upvotes"`

	UpvotedBy []int64   `json:"upvoted_by,omitempty"` // populated on reads, no db tag
	Answers   []*Answer `json:"answer,omitempty"`     // populated on reads, no db tag
}

// Answer defines the answer model based on the 'answers' table. An answer row
// may be referenced by several questions through 'question_answers'.
type Answer struct {
	ID           int64      `json:"answer_id" db:"id"`
	AnswererName string     `json:"answerer_name" db:"answerer_name"`
	AnswerText   string     `json:"answer" db:"answer_text"`
	AnswerType   AnswerType `json:"answer_type" db:"answer_type"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
}

// Editable reports whether the owning student may still edit or delete the
// question. Once answered, the question is locked.
func (q *Question) Editable() bool {
	return !q.IsAnswered
}
