package dto

import "github.com/vidyavichar/vidyavichar/internal/app/models"

// StudentOverview is the student dashboard summary
type StudentOverview struct {
	Name                string        `json:"name"`
	RollNo              string        `json:"roll_no"`
	Batch               models.Batch  `json:"batch"`
	Branch              models.Branch `json:"branch"`
	NumCoursesEnrolled  int           `json:"numCoursesEnrolled"`
	PendingCourses      int           `json:"pendingCourses"`
	NumCoursesTA        int           `json:"numCoursesTA"`
	UnansweredQuestions int           `json:"unansweredQuestions"`
}

// TeacherOverview is the teacher dashboard summary
type TeacherOverview struct {
	TeacherCode          string   `json:"teacher_id"`
	Email                string   `json:"username"`
	Name                 string   `json:"name"`
	CourseCodes          []string `json:"courses_id"`
	TotalPendingRequests int      `json:"total_pending_requests"`
}

// TeacherInfo is a teacher directory entry
type TeacherInfo struct {
	Name        string `json:"name"`
	TeacherCode string `json:"teacher_id"`
}
