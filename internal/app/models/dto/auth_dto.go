package dto

import "github.com/vidyavichar/vidyavichar/internal/app/models"

// StudentRegisterRequest is the payload for student registration
type StudentRegisterRequest struct {
	Email    string        `json:"username" binding:"required,email"`
	Password string        `json:"password" binding:"required,min=6"`
	Name     string        `json:"name" binding:"required"`
	RollNo   string        `json:"roll_no" binding:"required"`
	Batch    models.Batch  `json:"batch" binding:"required"`
	Branch   models.Branch `json:"branch" binding:"required"`
}

// TeacherRegisterRequest is the payload for teacher registration
type TeacherRegisterRequest struct {
	Email       string `json:"username" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Name        string `json:"name" binding:"required"`
	TeacherCode string `json:"teacher_id" binding:"required"`
}

// LoginRequest is the payload for login (either role)
type LoginRequest struct {
	Email    string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresIn    int             `json:"expiresIn"`
	Role         models.RoleType `json:"role"`
	Name         string          `json:"name"`
}
