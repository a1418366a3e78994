package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
)

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, teacherUserID int64, req *dto.CreateCourseRequest) (*dto.CourseSummary, error)
	AvailableCourses(ctx context.Context, studentUserID int64) ([]dto.CourseCard, error)
	EnrolledCourses(ctx context.Context, studentUserID int64) ([]dto.CourseCard, error)
	PendingCourses(ctx context.Context, studentUserID int64) ([]dto.CourseCard, error)
	TeacherCourses(ctx context.Context, teacherUserID int64) ([]dto.CourseSummary, error)
}

type courseServiceImpl struct {
	courseStore     CourseStore
	membershipStore MembershipStore
	userStore       UserStore
	logger          zerolog.Logger
	now             func() time.Time
}

// NewCourseService creates a new CourseService
func NewCourseService(courseStore CourseStore, membershipStore MembershipStore, userStore UserStore, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseStore:     courseStore,
		membershipStore: membershipStore,
		userStore:       userStore,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateCourse creates a course owned by the calling teacher. Co-teachers are
// resolved from their public teacher codes; an unknown code fails the whole
// request so courses never end up with a partial teacher list.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, teacherUserID int64, req *dto.CreateCourseRequest) (*dto.CourseSummary, error) {
	if !models.ValidBatch(req.Batch) {
		return nil, apperrors.NewBadRequestError("invalid batch")
	}
	if !models.ValidBranch(req.Branch) {
		return nil, apperrors.NewBadRequestError("invalid branch")
	}
	if !req.ValidFrom.Before(req.ValidUntil) {
		return nil, apperrors.NewBadRequestError("valid_from must be before valid_until")
	}

	owner, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}

	// Owner first; co-teacher duplicates of the owner collapse via the
	// ON CONFLICT on the link insert.
	teacherIDs := []int64{owner.ID}
	for _, code := range req.TeacherCodes {
		if code == owner.TeacherCode {
			continue
		}
		coTeacher, err := s.userStore.GetTeacherByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		teacherIDs = append(teacherIDs, coTeacher.ID)
	}

	course := &models.Course{
		CourseCode: req.CourseCode,
		CourseName: req.CourseName,
		Batch:      req.Batch,
		Branch:     req.Branch,
		ValidFrom:  req.ValidFrom,
		ValidUntil: req.ValidUntil,
	}
	if err := s.courseStore.Create(ctx, course, teacherIDs); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("courseCode", course.CourseCode).
		Int64("ownerID", owner.ID).
		Int("teachers", len(teacherIDs)).
		Msg("Course created")

	return &dto.CourseSummary{
		CourseCode: course.CourseCode,
		CourseName: course.CourseName,
	}, nil
}

// AvailableCourses lists courses matching the student's batch and branch
func (s *courseServiceImpl) AvailableCourses(ctx context.Context, studentUserID int64) ([]dto.CourseCard, error) {
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseStore.GetByBatchBranch(ctx, student.Batch, student.Branch)
	if err != nil {
		return nil, err
	}
	return s.buildCards(ctx, courses)
}

// EnrolledCourses lists the student's roster courses as dashboard cards
func (s *courseServiceImpl) EnrolledCourses(ctx context.Context, studentUserID int64) ([]dto.CourseCard, error) {
	return s.coursesByStatus(ctx, studentUserID, models.MembershipEnrolled)
}

// PendingCourses lists the student's requested courses as dashboard cards
func (s *courseServiceImpl) PendingCourses(ctx context.Context, studentUserID int64) ([]dto.CourseCard, error) {
	return s.coursesByStatus(ctx, studentUserID, models.MembershipRequested)
}

func (s *courseServiceImpl) coursesByStatus(ctx context.Context, studentUserID int64, status models.MembershipStatus) ([]dto.CourseCard, error) {
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	courses, err := s.membershipStore.CoursesForStudent(ctx, student.ID, status)
	if err != nil {
		return nil, err
	}
	return s.buildCards(ctx, courses)
}

// buildCards decorates courses with instructor, TA list and the
// millisecond durations the dashboard clients expect.
func (s *courseServiceImpl) buildCards(ctx context.Context, courses []*models.Course) ([]dto.CourseCard, error) {
	now := s.now()
	cards := make([]dto.CourseCard, 0, len(courses))
	for _, course := range courses {
		instructor, err := s.courseStore.GetOwnerName(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		tas, err := s.membershipStore.ListTAs(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		taInfos := make([]dto.TAInfo, 0, len(tas))
		for _, ta := range tas {
			taInfos = append(taInfos, dto.TAInfo{Name: ta.Name, RollNo: ta.RollNo})
		}
		cards = append(cards, dto.CourseCard{
			CourseCode:  course.CourseCode,
			CourseName:  course.CourseName,
			DurationMs:  course.Duration().Milliseconds(),
			RemainingMs: course.RemainingTime(now).Milliseconds(),
			Instructor:  instructor,
			TAs:         taInfos,
		})
	}
	return cards, nil
}

// TeacherCourses lists the courses a teacher owns or co-teaches
func (s *courseServiceImpl) TeacherCourses(ctx context.Context, teacherUserID int64) ([]dto.CourseSummary, error) {
	teacher, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseStore.GetByTeacherID(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, dto.CourseSummary{
			CourseCode: course.CourseCode,
			CourseName: course.CourseName,
		})
	}
	return summaries, nil
}
