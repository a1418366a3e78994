package models

import (
	"time"
)

// Course defines the course model based on the 'courses' table.
// CourseCode is the public business key ("CS101"); ID is internal.
type Course struct {
	ID         int64     `json:"id" db:"id"`
	CourseCode string    `json:"course_id" db:"course_code"`
	CourseName string    `json:"course_name" db:"course_name"`
	Batch      Batch     `json:"batch" db:"batch"`
	Branch     Branch    `json:"branch" db:"branch"`
	ValidFrom  time.Time `json:"valid_from" db:"valid_from"`
	ValidUntil time.Time `json:"valid_until" db:"valid_until"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// CourseTeacher links a teacher to a course; the owner is the creator and is
// always present in the link set.
type CourseTeacher struct {
	CourseID  int64 `json:"courseId" db:"course_id"`
	TeacherID int64 `json:"teacherId" db:"teacher_id"`
	IsOwner   bool  `json:"isOwner" db:"is_owner"`
}

// CourseMembership is the single source of truth for the student<->course
// relation: request list, roster and TA set are all views over these rows.
type CourseMembership struct {
	ID          int64            `json:"id" db:"id"`
	CourseID    int64            `json:"courseId" db:"course_id"`
	StudentID   int64            `json:"studentId" db:"student_id"`
	Status      MembershipStatus `json:"status" db:"status"`
	IsTA        bool             `json:"isTA" db:"is_ta"`
	RequestedAt time.Time        `json:"requestedAt" db:"requested_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}

// Duration returns the length of the course validity window.
func (c *Course) Duration() time.Duration {
	return c.ValidUntil.Sub(c.ValidFrom)
}

// RemainingTime returns time left until the course validity ends.
// Negative once the course is over.
func (c *Course) RemainingTime(now time.Time) time.Duration {
	return c.ValidUntil.Sub(now)
}
