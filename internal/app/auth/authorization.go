package auth

import (
	"context"

	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
)

// CourseAccessStore is the membership lookup surface the authorization
// checks run against. *repositories.CourseRepository and
// *repositories.MembershipRepository satisfy the two halves.
type CourseAccessStore interface {
	IsTeacherOnCourse(ctx context.Context, courseID, teacherID int64) (bool, error)
}

// MembershipAccessStore exposes the student-side membership predicates
type MembershipAccessStore interface {
	IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error)
	IsTAForCourse(ctx context.Context, courseID, studentID int64) (bool, error)
}

// AuthorizationService answers who may act on a course. Role-level gating
// happens in the router middleware; these checks cover per-course capability.
type AuthorizationService struct {
	courses     CourseAccessStore
	memberships MembershipAccessStore
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(courses CourseAccessStore, memberships MembershipAccessStore) *AuthorizationService {
	return &AuthorizationService{courses: courses, memberships: memberships}
}

// RequireCourseTeacher fails unless the teacher is linked to the course
// (owner or co-teacher).
func (s *AuthorizationService) RequireCourseTeacher(ctx context.Context, courseID, teacherID int64) error {
	ok, err := s.courses.IsTeacherOnCourse(ctx, courseID, teacherID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotCourseTeacher
	}
	return nil
}

// IsTAForCourse reports whether the student holds TA status for the course
func (s *AuthorizationService) IsTAForCourse(ctx context.Context, courseID, studentID int64) (bool, error) {
	return s.memberships.IsTAForCourse(ctx, courseID, studentID)
}

// RequireCourseParticipant fails unless the student is enrolled in the
// course or holds TA status for it. TAs keep their access even when they
// are not on the roster.
func (s *AuthorizationService) RequireCourseParticipant(ctx context.Context, courseID, studentID int64) error {
	enrolled, err := s.memberships.IsEnrolled(ctx, courseID, studentID)
	if err != nil {
		return err
	}
	if enrolled {
		return nil
	}
	isTA, err := s.memberships.IsTAForCourse(ctx, courseID, studentID)
	if err != nil {
		return err
	}
	if !isTA {
		return apperrors.ErrStudentNotInCourse
	}
	return nil
}
