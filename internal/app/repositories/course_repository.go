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

// CourseRepository handles database operations for courses and their teacher links
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseColumns = `id, course_code, course_name, batch, branch, valid_from, valid_until, created_at`

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.CourseCode, &c.CourseName, &c.Batch, &c.Branch,
		&c.ValidFrom, &c.ValidUntil, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the course and its teacher links in one transaction.
// teacherIDs[0] is recorded as the owner.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course, teacherIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO courses (course_code, course_name, batch, branch, valid_from, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		course.CourseCode, course.CourseName, course.Batch, course.Branch,
		course.ValidFrom, course.ValidUntil,
	).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_course_code_key") {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	for i, teacherID := range teacherIDs {
		_, err = tx.Exec(ctx, `
			INSERT INTO course_teachers (course_id, teacher_id, is_owner)
			VALUES ($1, $2, $3)
			ON CONFLICT (course_id, teacher_id) DO NOTHING`,
			course.ID, teacherID, i == 0)
		if err != nil {
			return fmt.Errorf("error linking teacher to course: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// GetByCode retrieves a course by its public course code
func (r *CourseRepository) GetByCode(ctx context.Context, courseCode string) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE course_code = $1`, courseCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// GetByID retrieves a course by internal id
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// GetByBatchBranch lists courses open to a student's batch and branch
func (r *CourseRepository) GetByBatchBranch(ctx context.Context, batch models.Batch, branch models.Branch) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE batch = $1 AND branch = $2 ORDER BY course_code`,
		batch, branch)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()
	return collectCourses(rows)
}

// GetByTeacherID lists courses a teacher is linked to (owner or co-teacher)
func (r *CourseRepository) GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.course_code, c.course_name, c.batch, c.branch, c.valid_from, c.valid_until, c.created_at
		FROM courses c
		JOIN course_teachers ct ON ct.course_id = c.id
		WHERE ct.teacher_id = $1
		ORDER BY c.course_code`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()
	return collectCourses(rows)
}

func collectCourses(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// IsTeacherOnCourse reports whether the teacher is linked to the course
func (r *CourseRepository) IsTeacherOnCourse(ctx context.Context, courseID, teacherID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_teachers WHERE course_id = $1 AND teacher_id = $2)`,
		courseID, teacherID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course teacher: %w", err)
	}
	return exists, nil
}

// GetOwnerName returns the display name of the owning teacher of a course.
// Falls back to any linked teacher when no owner flag is set.
func (r *CourseRepository) GetOwnerName(ctx context.Context, courseID int64) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `
		SELECT u.name
		FROM course_teachers ct
		JOIN teachers t ON t.id = ct.teacher_id
		JOIN users u ON u.id = t.user_id
		WHERE ct.course_id = $1
		ORDER BY ct.is_owner DESC
		LIMIT 1`, courseID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("error retrieving course owner: %w", err)
	}
	return name, nil
}
