package models

import (
	"time"
)

// User defines the shared account model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"` // login username, email-shaped
	Password  string    `json:"-" db:"password"`  // bcrypt hash, excluded from JSON
	Name      string    `json:"name" db:"name"`
	Role      RoleType  `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Student defines the student model based on the 'students' table
type Student struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	RollNo string `json:"rollNo" db:"roll_no"`
	Batch  Batch  `json:"batch" db:"batch"`
	Branch Branch `json:"branch" db:"branch"`
	User   *User  `json:"user,omitempty"` // relation, no db tag
}

// Teacher defines the teacher model based on the 'teachers' table
type Teacher struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"userId" db:"user_id"`
	TeacherCode string `json:"teacherId" db:"teacher_code"` // public teacher id
	User        *User  `json:"user,omitempty"`              // relation, no db tag
}
