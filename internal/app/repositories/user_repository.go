package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
	"github.com/vidyavichar/vidyavichar/internal/pkg/dberrors"
)

// UserRepository handles database operations for users, students and teachers
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// CreateStudent inserts the user row and the student row in one transaction
func (r *UserRepository) CreateStudent(ctx context.Context, user *models.User, student *models.Student) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		user.Email, user.Password, user.Name, models.RoleStudent,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	user.Role = models.RoleStudent

	student.UserID = user.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO students (user_id, roll_no, batch, branch)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		student.UserID, student.RollNo, student.Batch, student.Branch,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_roll_no_key") {
			return apperrors.ErrRollNoAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return tx.Commit(ctx)
}

// CreateTeacher inserts the user row and the teacher row in one transaction
func (r *UserRepository) CreateTeacher(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, password, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		user.Email, user.Password, user.Name, models.RoleTeacher,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	user.Role = models.RoleTeacher

	teacher.UserID = user.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO teachers (user_id, teacher_code)
		VALUES ($1, $2)
		RETURNING id`,
		teacher.UserID, teacher.TeacherCode,
	).Scan(&teacher.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_teacher_code_key") {
			return apperrors.ErrTeacherCodeExists
		}
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return tx.Commit(ctx)
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, name, role, created_at, updated_at
		FROM users WHERE email = $1`, email,
	).Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, name, role, created_at, updated_at
		FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &user, nil
}

// GetStudentByUserID retrieves the student profile for a user account
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	var student models.Student
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT s.id, s.user_id, s.roll_no, s.batch, s.branch, u.id, u.email, u.name, u.role
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1`, userID,
	).Scan(&student.ID, &student.UserID, &student.RollNo, &student.Batch, &student.Branch,
		&user.ID, &user.Email, &user.Name, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	student.User = &user
	return &student, nil
}

// GetStudentByID retrieves a student (with account info) by student id
func (r *UserRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT s.id, s.user_id, s.roll_no, s.batch, s.branch, u.id, u.email, u.name, u.role
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1`, id,
	).Scan(&student.ID, &student.UserID, &student.RollNo, &student.Batch, &student.Branch,
		&user.ID, &user.Email, &user.Name, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	student.User = &user
	return &student, nil
}

// GetTeacherByUserID retrieves the teacher profile for a user account
func (r *UserRepository) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	var teacher models.Teacher
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT t.id, t.user_id, t.teacher_code, u.id, u.email, u.name, u.role
		FROM teachers t
		JOIN users u ON u.id = t.user_id
		WHERE t.user_id = $1`, userID,
	).Scan(&teacher.ID, &teacher.UserID, &teacher.TeacherCode,
		&user.ID, &user.Email, &user.Name, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	teacher.User = &user
	return &teacher, nil
}

// GetTeacherByCode retrieves a teacher by the public teacher code
func (r *UserRepository) GetTeacherByCode(ctx context.Context, code string) (*models.Teacher, error) {
	var teacher models.Teacher
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT t.id, t.user_id, t.teacher_code, u.id, u.email, u.name, u.role
		FROM teachers t
		JOIN users u ON u.id = t.user_id
		WHERE t.teacher_code = $1`, code,
	).Scan(&teacher.ID, &teacher.UserID, &teacher.TeacherCode,
		&user.ID, &user.Email, &user.Name, &user.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	teacher.User = &user
	return &teacher, nil
}

// GetAllTeachers retrieves all teachers with their account names
func (r *UserRepository) GetAllTeachers(ctx context.Context) ([]*models.Teacher, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.user_id, t.teacher_code, u.id, u.email, u.name, u.role
		FROM teachers t
		JOIN users u ON u.id = t.user_id
		ORDER BY u.name`)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		var teacher models.Teacher
		var user models.User
		if err := rows.Scan(&teacher.ID, &teacher.UserID, &teacher.TeacherCode,
			&user.ID, &user.Email, &user.Name, &user.Role); err != nil {
			return nil, fmt.Errorf("error scanning teacher: %w", err)
		}
		teacher.User = &user
		teachers = append(teachers, &teacher)
	}
	return teachers, rows.Err()
}

// UpdateTeacherProfile updates the account name and/or email for a teacher.
// Empty fields are left untouched.
func (r *UserRepository) UpdateTeacherProfile(ctx context.Context, userID int64, name, email string) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE(NULLIF($2, ''), name),
		    email = COALESCE(NULLIF($3, ''), email),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND role = 'teacher'
		RETURNING id, email, password, name, role, created_at, updated_at`,
		userID, name, email,
	).Scan(&user.ID, &user.Email, &user.Password, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error updating teacher profile: %w", err)
	}
	return &user, nil
}
