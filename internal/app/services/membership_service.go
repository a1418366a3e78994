package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/auth"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
)

// MembershipService defines the interface for the join/roster/TA workflow
type MembershipService interface {
	RequestJoin(ctx context.Context, studentUserID int64, req *dto.JoinCourseRequest) error
	AcceptRequests(ctx context.Context, teacherUserID int64, req *dto.RequestDecision) (*dto.DecisionResult, error)
	RejectRequests(ctx context.Context, teacherUserID int64, req *dto.RequestDecision) (*dto.DecisionResult, error)
	MakeTA(ctx context.Context, teacherUserID int64, req *dto.MakeTARequest) error
	RemoveStudent(ctx context.Context, teacherUserID int64, courseCode string, studentID int64) error
	PendingRequests(ctx context.Context, teacherUserID int64, courseCode string) ([]dto.PendingStudent, error)
	Roster(ctx context.Context, teacherUserID int64, courseCode string) ([]dto.CourseStudent, error)
	RosterMember(ctx context.Context, teacherUserID int64, courseCode string, studentID int64) (*dto.CourseStudent, error)
}

type membershipServiceImpl struct {
	membershipStore MembershipStore
	courseStore     CourseStore
	userStore       UserStore
	authzService    *auth.AuthorizationService
	logger          zerolog.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	membershipStore MembershipStore,
	courseStore CourseStore,
	userStore UserStore,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) MembershipService {
	return &membershipServiceImpl{
		membershipStore: membershipStore,
		courseStore:     courseStore,
		userStore:       userStore,
		authzService:    authzService,
		logger:          logger,
	}
}

// RequestJoin records a student's join request. A student who already
// requested or is already enrolled gets an explicit conflict rather than a
// silent no-op; TA-only students may still request to join the roster.
func (s *membershipServiceImpl) RequestJoin(ctx context.Context, studentUserID int64, req *dto.JoinCourseRequest) error {
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return err
	}
	course, err := s.courseStore.GetByCode(ctx, req.CourseCode)
	if err != nil {
		return err
	}

	applied, err := s.membershipStore.Request(ctx, course.ID, student.ID)
	if err != nil {
		return err
	}
	if !applied {
		membership, err := s.membershipStore.Get(ctx, course.ID, student.ID)
		if err != nil {
			return err
		}
		if membership != nil && membership.Status == models.MembershipEnrolled {
			return apperrors.ErrAlreadyEnrolled
		}
		return apperrors.ErrAlreadyRequested
	}

	s.logger.Info().
		Str("courseCode", course.CourseCode).
		Int64("studentID", student.ID).
		Msg("Join request recorded")
	return nil
}

// AcceptRequests enrolls the given students. Each student is handled
// independently: an unknown id is skipped, the rest still enroll. Accepting
// an already-enrolled student is a no-op that still counts as applied.
func (s *membershipServiceImpl) AcceptRequests(ctx context.Context, teacherUserID int64, req *dto.RequestDecision) (*dto.DecisionResult, error) {
	course, err := s.courseForTeacher(ctx, teacherUserID, req.CourseCode)
	if err != nil {
		return nil, err
	}

	result := &dto.DecisionResult{CourseCode: course.CourseCode}
	for _, studentID := range req.StudentIDs {
		if _, err := s.userStore.GetStudentByID(ctx, studentID); err != nil {
			s.logger.Warn().Err(err).
				Int64("studentID", studentID).
				Str("courseCode", course.CourseCode).
				Msg("Skipping accept for unknown student")
			result.Skipped = append(result.Skipped, studentID)
			continue
		}
		if err := s.membershipStore.Enroll(ctx, course.ID, studentID); err != nil {
			s.logger.Error().Err(err).
				Int64("studentID", studentID).
				Str("courseCode", course.CourseCode).
				Msg("Failed to enroll student")
			result.Skipped = append(result.Skipped, studentID)
			continue
		}
		result.Applied = append(result.Applied, studentID)
	}
	return result, nil
}

// RejectRequests clears pending requests without enrolling anyone.
// Per-student best effort, same as accept.
func (s *membershipServiceImpl) RejectRequests(ctx context.Context, teacherUserID int64, req *dto.RequestDecision) (*dto.DecisionResult, error) {
	course, err := s.courseForTeacher(ctx, teacherUserID, req.CourseCode)
	if err != nil {
		return nil, err
	}

	result := &dto.DecisionResult{CourseCode: course.CourseCode}
	for _, studentID := range req.StudentIDs {
		if err := s.membershipStore.ClearRequest(ctx, course.ID, studentID); err != nil {
			s.logger.Error().Err(err).
				Int64("studentID", studentID).
				Str("courseCode", course.CourseCode).
				Msg("Failed to reject request")
			result.Skipped = append(result.Skipped, studentID)
			continue
		}
		result.Applied = append(result.Applied, studentID)
	}
	return result, nil
}

// MakeTA grants TA status. Deliberately independent of enrollment: promoting
// a student who is not on the roster neither enrolls them nor fails.
func (s *membershipServiceImpl) MakeTA(ctx context.Context, teacherUserID int64, req *dto.MakeTARequest) error {
	course, err := s.courseForTeacher(ctx, teacherUserID, req.CourseCode)
	if err != nil {
		return err
	}
	if _, err := s.userStore.GetStudentByID(ctx, req.StudentID); err != nil {
		return err
	}
	if err := s.membershipStore.PromoteTA(ctx, course.ID, req.StudentID); err != nil {
		return err
	}

	s.logger.Info().
		Str("courseCode", course.CourseCode).
		Int64("studentID", req.StudentID).
		Msg("Student promoted to TA")
	return nil
}

// RemoveStudent drops a student from the roster. TA status survives the
// removal, so a removed TA keeps moderating the course.
func (s *membershipServiceImpl) RemoveStudent(ctx context.Context, teacherUserID int64, courseCode string, studentID int64) error {
	course, err := s.courseForTeacher(ctx, teacherUserID, courseCode)
	if err != nil {
		return err
	}

	enrolled, err := s.membershipStore.IsEnrolled(ctx, course.ID, studentID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperrors.ErrStudentNotInCourse
	}
	if err := s.membershipStore.RemoveFromRoster(ctx, course.ID, studentID); err != nil {
		return err
	}

	s.logger.Info().
		Str("courseCode", course.CourseCode).
		Int64("studentID", studentID).
		Msg("Student removed from roster")
	return nil
}

// PendingRequests lists students awaiting approval for a course
func (s *membershipServiceImpl) PendingRequests(ctx context.Context, teacherUserID int64, courseCode string) ([]dto.PendingStudent, error) {
	course, err := s.courseForTeacher(ctx, teacherUserID, courseCode)
	if err != nil {
		return nil, err
	}
	members, err := s.membershipStore.ListMembers(ctx, course.ID, models.MembershipRequested)
	if err != nil {
		return nil, err
	}
	pending := make([]dto.PendingStudent, 0, len(members))
	for _, m := range members {
		pending = append(pending, dto.PendingStudent{ID: m.StudentID, Name: m.Name, RollNo: m.RollNo})
	}
	return pending, nil
}

// Roster lists enrolled students with their TA flags
func (s *membershipServiceImpl) Roster(ctx context.Context, teacherUserID int64, courseCode string) ([]dto.CourseStudent, error) {
	course, err := s.courseForTeacher(ctx, teacherUserID, courseCode)
	if err != nil {
		return nil, err
	}
	members, err := s.membershipStore.ListMembers(ctx, course.ID, models.MembershipEnrolled)
	if err != nil {
		return nil, err
	}
	roster := make([]dto.CourseStudent, 0, len(members))
	for _, m := range members {
		roster = append(roster, dto.CourseStudent{ID: m.StudentID, Name: m.Name, RollNo: m.RollNo, IsTA: m.IsTA})
	}
	return roster, nil
}

// RosterMember returns a single enrolled student or a not-found error
func (s *membershipServiceImpl) RosterMember(ctx context.Context, teacherUserID int64, courseCode string, studentID int64) (*dto.CourseStudent, error) {
	course, err := s.courseForTeacher(ctx, teacherUserID, courseCode)
	if err != nil {
		return nil, err
	}
	membership, err := s.membershipStore.Get(ctx, course.ID, studentID)
	if err != nil {
		return nil, err
	}
	if membership == nil || membership.Status != models.MembershipEnrolled {
		return nil, apperrors.ErrStudentNotInCourse
	}
	student, err := s.userStore.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.CourseStudent{
		ID:     student.ID,
		Name:   student.User.Name,
		RollNo: student.RollNo,
		IsTA:   membership.IsTA,
	}, nil
}

func (s *membershipServiceImpl) courseForTeacher(ctx context.Context, teacherUserID int64, courseCode string) (*models.Course, error) {
	teacher, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseStore.GetByCode(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.RequireCourseTeacher(ctx, course.ID, teacher.ID); err != nil {
		return nil, err
	}
	return course, nil
}
