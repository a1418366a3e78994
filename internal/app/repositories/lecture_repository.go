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

// ErrLectureCodeTaken signals a lecture code collision so the caller can
// regenerate and retry.
var ErrLectureCodeTaken = errors.New("lecture code already taken")

// LectureRepository handles database operations for lectures and attendance
type LectureRepository struct {
	db *pgxpool.Pool
}

// NewLectureRepository creates a new lecture repository
func NewLectureRepository(db *pgxpool.Pool) *LectureRepository {
	return &LectureRepository{db: db}
}

// Create inserts the lecture, assigning the next lec_num for the course
// inside the same transaction. The UNIQUE(course_id, lec_num) constraint
// keeps the sequence strictly increasing under concurrent creates; callers
// should retry on ErrConflict.
func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(lec_num), 0) + 1 FROM lectures WHERE course_id = $1`,
		lecture.CourseID).Scan(&lecture.LecNum)
	if err != nil {
		return fmt.Errorf("error assigning lecture number: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO lectures (lecture_code, course_id, lecture_title, class_start, class_end, lec_num, teacher_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		lecture.LectureCode, lecture.CourseID, lecture.LectureTitle,
		lecture.ClassStart, lecture.ClassEnd, lecture.LecNum, lecture.TeacherID,
	).Scan(&lecture.ID, &lecture.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "lectures_lecture_code_key") {
			return ErrLectureCodeTaken
		}
		if dberrors.IsDuplicateConstraintError(err, "lectures_course_lec_num_key") {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("error creating lecture: %w", err)
	}

	return tx.Commit(ctx)
}

const lectureColumns = `l.id, l.lecture_code, l.course_id, l.lecture_title, l.class_start, l.class_end, l.lec_num, l.teacher_id, l.created_at`

func scanLecture(row pgx.Row) (*models.Lecture, error) {
	var l models.Lecture
	err := row.Scan(&l.ID, &l.LectureCode, &l.CourseID, &l.LectureTitle,
		&l.ClassStart, &l.ClassEnd, &l.LecNum, &l.TeacherID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetByCode retrieves a lecture by its public lecture code
func (r *LectureRepository) GetByCode(ctx context.Context, lectureCode string) (*models.Lecture, error) {
	lecture, err := scanLecture(r.db.QueryRow(ctx,
		`SELECT `+lectureColumns+` FROM lectures l WHERE l.lecture_code = $1`, lectureCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLectureNotFound
		}
		return nil, fmt.Errorf("error retrieving lecture: %w", err)
	}
	return lecture, nil
}

// GetByID retrieves a lecture by internal id
func (r *LectureRepository) GetByID(ctx context.Context, id int64) (*models.Lecture, error) {
	lecture, err := scanLecture(r.db.QueryRow(ctx,
		`SELECT `+lectureColumns+` FROM lectures l WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLectureNotFound
		}
		return nil, fmt.Errorf("error retrieving lecture: %w", err)
	}
	return lecture, nil
}

// ListByCourse lists a course's lectures in lecture-number order
func (r *LectureRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Lecture, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+lectureColumns+` FROM lectures l WHERE l.course_id = $1 ORDER BY l.lec_num`,
		courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing lectures: %w", err)
	}
	defer rows.Close()
	return collectLectures(rows)
}

// ListByCourseIDs lists lectures across a set of courses, carrying each
// course's name for display. Used by the student lecture views.
func (r *LectureRepository) ListByCourseIDs(ctx context.Context, courseIDs []int64) ([]*models.Lecture, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+lectureColumns+`, c.course_code, c.course_name
		FROM lectures l
		JOIN courses c ON c.id = l.course_id
		WHERE l.course_id = ANY($1)
		ORDER BY l.class_start DESC`, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing lectures: %w", err)
	}
	defer rows.Close()

	var lectures []*models.Lecture
	for rows.Next() {
		var l models.Lecture
		if err := rows.Scan(&l.ID, &l.LectureCode, &l.CourseID, &l.LectureTitle,
			&l.ClassStart, &l.ClassEnd, &l.LecNum, &l.TeacherID, &l.CreatedAt,
			&l.CourseCode, &l.CourseName); err != nil {
			return nil, fmt.Errorf("error scanning lecture: %w", err)
		}
		lectures = append(lectures, &l)
	}
	return lectures, rows.Err()
}

func collectLectures(rows pgx.Rows) ([]*models.Lecture, error) {
	var lectures []*models.Lecture
	for rows.Next() {
		lecture, err := scanLecture(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning lecture: %w", err)
		}
		lectures = append(lectures, lecture)
	}
	return lectures, rows.Err()
}

// Delete removes a lecture. Questions and attendance cascade at the
// database level.
func (r *LectureRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM lectures WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lecture: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrLectureNotFound
	}
	return nil
}

// AddAttendance records a student joining a lecture. Rejoining is a no-op.
func (r *LectureRepository) AddAttendance(ctx context.Context, lectureID, studentID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO lecture_attendance (lecture_id, student_id)
		VALUES ($1, $2)
		ON CONFLICT (lecture_id, student_id) DO NOTHING`,
		lectureID, studentID)
	if err != nil {
		return fmt.Errorf("error recording attendance: %w", err)
	}
	return nil
}

// CountAttendance returns how many students have joined the lecture
func (r *LectureRepository) CountAttendance(ctx context.Context, lectureID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM lecture_attendance WHERE lecture_id = $1`,
		lectureID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting attendance: %w", err)
	}
	return count, nil
}
