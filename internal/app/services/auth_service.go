package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
	"github.com/vidyavichar/vidyavichar/internal/pkg/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.StudentRegisterRequest) error
	RegisterTeacher(ctx context.Context, req *dto.TeacherRegisterRequest) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type authServiceImpl struct {
	userStore  UserStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore UserStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userStore:  userStore,
		jwtService: jwtService,
		logger:     logger,
	}
}

// RegisterStudent creates a student account with a hashed password
func (s *authServiceImpl) RegisterStudent(ctx context.Context, req *dto.StudentRegisterRequest) error {
	if !models.ValidBatch(req.Batch) {
		return apperrors.NewBadRequestError("invalid batch")
	}
	if !models.ValidBranch(req.Branch) {
		return apperrors.NewBadRequestError("invalid branch")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Role:     models.RoleStudent,
	}
	student := &models.Student{
		RollNo: req.RollNo,
		Batch:  req.Batch,
		Branch: req.Branch,
	}
	if err := s.userStore.CreateStudent(ctx, user, student); err != nil {
		return err
	}

	s.logger.Info().
		Int64("userID", user.ID).
		Str("rollNo", student.RollNo).
		Msg("Student registered")
	return nil
}

// RegisterTeacher creates a teacher account with a hashed password
func (s *authServiceImpl) RegisterTeacher(ctx context.Context, req *dto.TeacherRegisterRequest) error {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
		Role:     models.RoleTeacher,
	}
	teacher := &models.Teacher{
		TeacherCode: req.TeacherCode,
	}
	if err := s.userStore.CreateTeacher(ctx, user, teacher); err != nil {
		return err
	}

	s.logger.Info().
		Int64("userID", user.ID).
		Str("teacherCode", teacher.TeacherCode).
		Msg("Teacher registered")
	return nil
}

// Login verifies credentials for either role and issues a token pair.
// Unknown emails and wrong passwords both map to invalid credentials so the
// response does not leak which accounts exist.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userStore.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate tokens")
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		Role:         user.Role,
		Name:         user.Name,
	}, nil
}
