package dto

import (
	"time"

	"github.com/vidyavichar/vidyavichar/internal/app/models"
)

// CreateCourseRequest is the payload for course creation. TeacherCodes lists
// optional co-teachers; the creator is always added as owner.
type CreateCourseRequest struct {
	CourseCode   string        `json:"course_id" binding:"required"`
	CourseName   string        `json:"course_name" binding:"required"`
	Batch        models.Batch  `json:"batch" binding:"required"`
	Branch       models.Branch `json:"branch" binding:"required"`
	ValidFrom    time.Time     `json:"valid_from" binding:"required"`
	ValidUntil   time.Time     `json:"valid_until" binding:"required"`
	TeacherCodes []string      `json:"teacher_ids"`
}

// JoinCourseRequest is the payload for a student join request
type JoinCourseRequest struct {
	CourseCode string `json:"course_id" binding:"required"`
}

// RequestDecision is the payload for accepting or rejecting pending requests
type RequestDecision struct {
	CourseCode string  `json:"course_id" binding:"required"`
	StudentIDs []int64 `json:"student_ids" binding:"required,min=1"`
}

// MakeTARequest is the payload for promoting a student to TA
type MakeTARequest struct {
	StudentID  int64  `json:"student_id" binding:"required"`
	CourseCode string `json:"course_id" binding:"required"`
}

// RemoveStudentRequest is the payload for removing a student from a course
type RemoveStudentRequest struct {
	StudentID int64 `json:"student_id" binding:"required"`
}

// UpdateTeacherProfileRequest is the payload for teacher profile updates
type UpdateTeacherProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"username" binding:"omitempty,email"`
}

// TAInfo is a TA entry on a course card
type TAInfo struct {
	Name   string `json:"name"`
	RollNo string `json:"roll_no"`
}

// CourseCard is a course listing entry with the computed dashboard fields.
// Durations are reported in milliseconds to match the original API clients.
type CourseCard struct {
	CourseCode  string   `json:"course_id"`
	CourseName  string   `json:"course_name"`
	DurationMs  int64    `json:"duration"`
	RemainingMs int64    `json:"remainingTime"`
	Instructor  string   `json:"instructor"`
	TAs         []TAInfo `json:"TAs"`
}

// CourseSummary is a minimal id+name course entry
type CourseSummary struct {
	CourseCode string `json:"course_id"`
	CourseName string `json:"course_name"`
}

// CourseStudent is a roster entry with TA flag
type CourseStudent struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	RollNo string `json:"roll_no"`
	IsTA   bool   `json:"is_TA"`
}

// PendingStudent is a request-list entry
type PendingStudent struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	RollNo string `json:"roll_no"`
}

// DecisionResult reports which student ids a bulk accept/reject actually
// applied; per-student failures do not abort the rest.
type DecisionResult struct {
	CourseCode string  `json:"course_id"`
	Applied    []int64 `json:"applied_students"`
	Skipped    []int64 `json:"skipped_students,omitempty"`
}
