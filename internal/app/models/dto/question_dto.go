package dto

import (
	"time"

	"github.com/vidyavichar/vidyavichar/internal/app/models"
)

// AskQuestionRequest is the payload for asking a question in a lecture
type AskQuestionRequest struct {
	LectureCode  string `json:"lecture_id" binding:"required"`
	QuestionText string `json:"question_text" binding:"required"`
}

// EditQuestionRequest is the payload for editing an unanswered question
type EditQuestionRequest struct {
	QuestionText string `json:"question_text" binding:"required"`
}

// AnswerQuestionRequest is the payload for answering a question
type AnswerQuestionRequest struct {
	QuestionCode string            `json:"question_id" binding:"required"`
	AnswerText   string            `json:"answer_text" binding:"required"`
	AnswerType   models.AnswerType `json:"answer_type" binding:"required"`
}

// AnswerInfo is an answer entry on a question
type AnswerInfo struct {
	AnswerID     int64             `json:"answer_id"`
	AnswererName string            `json:"answerer_name"`
	AnswerText   string            `json:"answer"`
	AnswerType   models.AnswerType `json:"answer_type"`
}

// QuestionInfo is a question listing entry with populated answers
type QuestionInfo struct {
	QuestionCode string       `json:"question_id"`
	QuestionText string       `json:"question_text"`
	StudentID    int64        `json:"student_id"`
	LectureCode  string       `json:"lecture_id"`
	Timestamp    time.Time    `json:"timestamp"`
	IsAnswered   bool         `json:"is_answered"`
	IsImportant  bool         `json:"is_important"`
	Upvotes      int          `json:"upvotes"`
	UpvotedBy    []int64      `json:"upvoted_by"`
	Answers      []AnswerInfo `json:"answer"`
}
