package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
	"github.com/vidyavichar/vidyavichar/internal/pkg/auth"
)

func newAuthService(d *fakeData) AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "vidyavichar.test",
	})
	return NewAuthService(fakeUserStore{d}, jwtService, testLogger())
}

func studentRegistration() *dto.StudentRegisterRequest {
	return &dto.StudentRegisterRequest{
		Email:    "asha@test.local",
		Password: "s3cret99",
		Name:     "Asha",
		RollNo:   "MT2024001",
		Batch:    models.BatchMTech,
		Branch:   models.BranchCSE,
	}
}

func TestRegisterStudentAndLogin(t *testing.T) {
	ctx := context.Background()
	d := newFakeData()
	svc := newAuthService(d)

	if err := svc.RegisterStudent(ctx, studentRegistration()); err != nil {
		t.Fatalf("RegisterStudent() error = %v", err)
	}

	stored, err := fakeUserStore{d}.GetUserByEmail(ctx, "asha@test.local")
	if err != nil {
		t.Fatalf("registered user not stored: %v", err)
	}
	if stored.Password == "s3cret99" {
		t.Error("password stored in plaintext")
	}

	tokens, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@test.local", Password: "s3cret99"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Error("Login() returned empty tokens")
	}
	if tokens.Role != models.RoleStudent || tokens.Name != "Asha" {
		t.Errorf("Login() role=%q name=%q, want student Asha", tokens.Role, tokens.Name)
	}

	// wrong password and unknown account produce the same error
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@test.local", Password: "wrong"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login() wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ghost@test.local", Password: "s3cret99"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login() unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterStudentValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(req *dto.StudentRegisterRequest)
		wantErr error
	}{
		{
			name:    "invalid batch",
			mutate:  func(req *dto.StudentRegisterRequest) { req.Batch = "D.Phil" },
			wantErr: apperrors.ErrBadRequest,
		},
		{
			name:    "invalid branch",
			mutate:  func(req *dto.StudentRegisterRequest) { req.Branch = "EEE" },
			wantErr: apperrors.ErrBadRequest,
		},
		{
			name: "duplicate email",
			mutate: func(req *dto.StudentRegisterRequest) {
				req.Email = "MT2024001@test.local"
				req.RollNo = "MT2024099"
			},
			wantErr: apperrors.ErrEmailAlreadyExists,
		},
		{
			name:    "duplicate roll number",
			mutate:  func(req *dto.StudentRegisterRequest) { req.Email = "other@test.local" },
			wantErr: apperrors.ErrRollNoAlreadyExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeData()
			d.addStudent("Existing", "MT2024001") // email MT2024001@test.local
			svc := newAuthService(d)

			req := studentRegistration()
			tt.mutate(req)
			if err := svc.RegisterStudent(ctx, req); !errors.Is(err, tt.wantErr) {
				t.Errorf("RegisterStudent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterTeacher(t *testing.T) {
	ctx := context.Background()
	d := newFakeData()
	svc := newAuthService(d)

	req := &dto.TeacherRegisterRequest{
		Email:       "prof@test.local",
		Password:    "s3cret99",
		Name:        "Prof",
		TeacherCode: "T001",
	}
	if err := svc.RegisterTeacher(ctx, req); err != nil {
		t.Fatalf("RegisterTeacher() error = %v", err)
	}

	dup := &dto.TeacherRegisterRequest{
		Email:       "other@test.local",
		Password:    "s3cret99",
		Name:        "Other",
		TeacherCode: "T001",
	}
	if err := svc.RegisterTeacher(ctx, dup); !errors.Is(err, apperrors.ErrTeacherCodeExists) {
		t.Errorf("RegisterTeacher() duplicate code error = %v, want ErrTeacherCodeExists", err)
	}
}
