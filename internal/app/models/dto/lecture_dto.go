package dto

import "time"

// CreateLectureRequest is the payload for lecture creation
type CreateLectureRequest struct {
	CourseCode   string    `json:"course_id" binding:"required"`
	LectureTitle string    `json:"lecture_title" binding:"required"`
	ClassStart   time.Time `json:"class_start" binding:"required"`
	ClassEnd     time.Time `json:"class_end" binding:"required"`
}

// JoinLectureRequest is the payload for a student joining a running lecture
type JoinLectureRequest struct {
	LectureCode string `json:"lecture_id" binding:"required"`
}

// LectureInfo is a lecture listing entry
type LectureInfo struct {
	LectureCode  string    `json:"lecture_id"`
	CourseCode   string    `json:"course_id"`
	CourseName   string    `json:"course_name,omitempty"`
	LectureTitle string    `json:"lecture_title"`
	LecNum       int       `json:"lec_num"`
	ClassStart   time.Time `json:"class_start"`
	ClassEnd     time.Time `json:"class_end"`
}

// JoinLectureResponse reports the joined lecture and attendance size
type JoinLectureResponse struct {
	LectureInfo
	JoinedStudentsCount int `json:"joined_students_count"`
}
