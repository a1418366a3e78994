package models

import (
	"time"
)

// JoinWindow is how early before class_start a lecture counts as current.
const JoinWindow = 15 * time.Minute

// Lecture defines the lecture model based on the 'lectures' table.
// LectureCode is the public opaque id ("LEC_CS101_3f9a2c44b1d0").
type Lecture struct {
	ID           int64     `json:"id" db:"id"`
	LectureCode  string    `json:"lecture_id" db:"lecture_code"`
	CourseID     int64     `json:"courseId" db:"course_id"`
	LectureTitle string    `json:"lecture_title" db:"lecture_title"`
	ClassStart   time.Time `json:"class_start" db:"class_start"`
	ClassEnd     time.Time `json:"class_end" db:"class_end"`
	LecNum       int       `json:"lec_num" db:"lec_num"`
	TeacherID    int64     `json:"teacherId" db:"teacher_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// populated on joined reads, no db tags
	CourseCode string `json:"course_id,omitempty"`
	CourseName string `json:"course_name,omitempty"`
}

// IsCurrent reports whether the lecture is joinable at now:
// now within [class_start - JoinWindow, class_end].
func (l *Lecture) IsCurrent(now time.Time) bool {
	return !now.Before(l.ClassStart.Add(-JoinWindow)) && !now.After(l.ClassEnd)
}

// HasEnded reports whether the lecture is over at now: now > class_end.
func (l *Lecture) HasEnded(now time.Time) bool {
	return now.After(l.ClassEnd)
}
