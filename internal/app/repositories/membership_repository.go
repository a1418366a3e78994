package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
)

// MemberRecord is a membership row joined with the student's display fields
type MemberRecord struct {
	StudentID int64
	Name      string
	RollNo    string
	Status    models.MembershipStatus
	IsTA      bool
}

// MembershipRepository handles database operations for the course membership
// relation. Every mutation is a single-row statement, so concurrent accepts
// or removals cannot lose updates the way read-modify-write list handling can.
type MembershipRepository struct {
	db *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository
func NewMembershipRepository(db *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Get retrieves the membership row for a (course, student) pair.
// Returns (nil, nil) when no row exists.
func (r *MembershipRepository) Get(ctx context.Context, courseID, studentID int64) (*models.CourseMembership, error) {
	query := squirrel.Select(
		"id", "course_id", "student_id", "status", "is_ta", "requested_at", "updated_at",
	).
		From("course_memberships").
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var m models.CourseMembership
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&m.ID, &m.CourseID, &m.StudentID, &m.Status, &m.IsTA, &m.RequestedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving membership: %w", err)
	}
	return &m, nil
}

// Request records a join request. A TA-only row ('none') is upgraded to
// 'requested'; an existing requested/enrolled row is left alone and reported
// via the returned applied flag so the caller can raise an explicit conflict.
func (r *MembershipRepository) Request(ctx context.Context, courseID, studentID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO course_memberships (course_id, student_id, status)
		VALUES ($1, $2, 'requested')
		ON CONFLICT (course_id, student_id)
		DO UPDATE SET status = 'requested', requested_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE course_memberships.status = 'none'`,
		courseID, studentID)
	if err != nil {
		return false, fmt.Errorf("error recording join request: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// Enroll moves a student to the roster. Used by the accept workflow; it
// enrolls whether or not a request row existed, matching the accept
// semantics of "add if absent", and is idempotent on re-apply.
func (r *MembershipRepository) Enroll(ctx context.Context, courseID, studentID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO course_memberships (course_id, student_id, status)
		VALUES ($1, $2, 'enrolled')
		ON CONFLICT (course_id, student_id)
		DO UPDATE SET status = 'enrolled', updated_at = CURRENT_TIMESTAMP`,
		courseID, studentID)
	if err != nil {
		return fmt.Errorf("error enrolling student: %w", err)
	}
	return nil
}

// ClearRequest drops a pending request without enrolling. TA rows survive
// with status 'none'; plain rows are deleted.
func (r *MembershipRepository) ClearRequest(ctx context.Context, courseID, studentID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE course_memberships
		SET status = 'none', updated_at = CURRENT_TIMESTAMP
		WHERE course_id = $1 AND student_id = $2 AND status = 'requested' AND is_ta`,
		courseID, studentID)
	if err != nil {
		return fmt.Errorf("error clearing request: %w", err)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM course_memberships
		WHERE course_id = $1 AND student_id = $2 AND status = 'requested' AND NOT is_ta`,
		courseID, studentID)
	if err != nil {
		return fmt.Errorf("error clearing request: %w", err)
	}

	return tx.Commit(ctx)
}

// PromoteTA grants TA status for the course, creating a TA-only row when the
// student has no membership. Idempotent; never touches roster status.
func (r *MembershipRepository) PromoteTA(ctx context.Context, courseID, studentID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO course_memberships (course_id, student_id, status, is_ta)
		VALUES ($1, $2, 'none', TRUE)
		ON CONFLICT (course_id, student_id)
		DO UPDATE SET is_ta = TRUE, updated_at = CURRENT_TIMESTAMP`,
		courseID, studentID)
	if err != nil {
		return fmt.Errorf("error promoting TA: %w", err)
	}
	return nil
}

// RemoveFromRoster drops an enrollment. TA status deliberately survives
// (as a 'none' row), mirroring the remove-student behavior of the source
// system; a non-TA row is deleted outright.
func (r *MembershipRepository) RemoveFromRoster(ctx context.Context, courseID, studentID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE course_memberships
		SET status = 'none', updated_at = CURRENT_TIMESTAMP
		WHERE course_id = $1 AND student_id = $2 AND status = 'enrolled' AND is_ta`,
		courseID, studentID)
	if err != nil {
		return fmt.Errorf("error removing student: %w", err)
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM course_memberships
		WHERE course_id = $1 AND student_id = $2 AND status = 'enrolled' AND NOT is_ta`,
		courseID, studentID)
	if err != nil {
		return fmt.Errorf("error removing student: %w", err)
	}

	return tx.Commit(ctx)
}

// ListMembers lists membership rows of a course filtered by status,
// joined with the students' display fields.
func (r *MembershipRepository) ListMembers(ctx context.Context, courseID int64, status models.MembershipStatus) ([]*MemberRecord, error) {
	query := r.memberSelect().
		Where("cm.course_id = ? AND cm.status = ?", courseID, status)
	return r.queryMembers(ctx, query)
}

// ListTAs lists the TA set of a course regardless of roster status
func (r *MembershipRepository) ListTAs(ctx context.Context, courseID int64) ([]*MemberRecord, error) {
	query := r.memberSelect().
		Where("cm.course_id = ? AND cm.is_ta", courseID)
	return r.queryMembers(ctx, query)
}

func (r *MembershipRepository) memberSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"cm.student_id", "u.name", "s.roll_no", "cm.status", "cm.is_ta",
	).
		From("course_memberships cm").
		Join("students s ON s.id = cm.student_id").
		Join("users u ON u.id = s.user_id").
		OrderBy("u.name").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *MembershipRepository) queryMembers(ctx context.Context, query squirrel.SelectBuilder) ([]*MemberRecord, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var members []*MemberRecord
	for rows.Next() {
		var m MemberRecord
		if err := rows.Scan(&m.StudentID, &m.Name, &m.RollNo, &m.Status, &m.IsTA); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

// CoursesForStudent lists the courses a student holds in a given status
func (r *MembershipRepository) CoursesForStudent(ctx context.Context, studentID int64, status models.MembershipStatus) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.course_code, c.course_name, c.batch, c.branch, c.valid_from, c.valid_until, c.created_at
		FROM courses c
		JOIN course_memberships cm ON cm.course_id = c.id
		WHERE cm.student_id = $1 AND cm.status = $2
		ORDER BY c.course_code`, studentID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()
	return collectCourses(rows)
}

// CountForStudent counts a student's memberships in a given status
func (r *MembershipRepository) CountForStudent(ctx context.Context, studentID int64, status models.MembershipStatus) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM course_memberships WHERE student_id = $1 AND status = $2`,
		studentID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting memberships: %w", err)
	}
	return count, nil
}

// CountTAForStudent counts the courses a student is TA for
func (r *MembershipRepository) CountTAForStudent(ctx context.Context, studentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM course_memberships WHERE student_id = $1 AND is_ta`,
		studentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting TA memberships: %w", err)
	}
	return count, nil
}

// IsTAForCourse reports whether the student holds TA status for the course
func (r *MembershipRepository) IsTAForCourse(ctx context.Context, courseID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM course_memberships
			WHERE course_id = $1 AND student_id = $2 AND is_ta)`,
		courseID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking TA status: %w", err)
	}
	return exists, nil
}

// IsEnrolled reports whether the student is on the course roster
func (r *MembershipRepository) IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM course_memberships
			WHERE course_id = $1 AND student_id = $2 AND status = 'enrolled')`,
		courseID, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

// CountPendingForTeacher sums pending join requests across every course the
// teacher is linked to.
func (r *MembershipRepository) CountPendingForTeacher(ctx context.Context, teacherID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM course_memberships cm
		JOIN course_teachers ct ON ct.course_id = cm.course_id
		WHERE ct.teacher_id = $1 AND cm.status = 'requested'`,
		teacherID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting pending requests: %w", err)
	}
	return count, nil
}
