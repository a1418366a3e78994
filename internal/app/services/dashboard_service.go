package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
)

// DashboardService defines the interface for the dashboard summary views
// and the teacher directory.
type DashboardService interface {
	StudentOverview(ctx context.Context, studentUserID int64) (*dto.StudentOverview, error)
	TeacherOverview(ctx context.Context, teacherUserID int64) (*dto.TeacherOverview, error)
	AllTeachers(ctx context.Context) ([]dto.TeacherInfo, error)
	TeacherByCode(ctx context.Context, teacherCode string) (*dto.TeacherInfo, error)
	UpdateTeacherProfile(ctx context.Context, teacherUserID int64, req *dto.UpdateTeacherProfileRequest) (*dto.TeacherInfo, error)
}

type dashboardServiceImpl struct {
	userStore       UserStore
	courseStore     CourseStore
	membershipStore MembershipStore
	questionStore   QuestionStore
	logger          zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userStore UserStore,
	courseStore CourseStore,
	membershipStore MembershipStore,
	questionStore QuestionStore,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		userStore:       userStore,
		courseStore:     courseStore,
		membershipStore: membershipStore,
		questionStore:   questionStore,
		logger:          logger,
	}
}

// StudentOverview aggregates the student's profile with enrollment, pending,
// TA and open-question counts.
func (s *dashboardServiceImpl) StudentOverview(ctx context.Context, studentUserID int64) (*dto.StudentOverview, error) {
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.membershipStore.CountForStudent(ctx, student.ID, models.MembershipEnrolled)
	if err != nil {
		return nil, err
	}
	pending, err := s.membershipStore.CountForStudent(ctx, student.ID, models.MembershipRequested)
	if err != nil {
		return nil, err
	}
	taCount, err := s.membershipStore.CountTAForStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	unanswered, err := s.questionStore.CountUnansweredByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StudentOverview{
		Name:                student.User.Name,
		RollNo:              student.RollNo,
		Batch:               student.Batch,
		Branch:              student.Branch,
		NumCoursesEnrolled:  enrolled,
		PendingCourses:      pending,
		NumCoursesTA:        taCount,
		UnansweredQuestions: unanswered,
	}, nil
}

// TeacherOverview aggregates the teacher's profile with their course codes
// and the pending-request total across those courses.
func (s *dashboardServiceImpl) TeacherOverview(ctx context.Context, teacherUserID int64) (*dto.TeacherOverview, error) {
	teacher, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseStore.GetByTeacherID(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}
	courseCodes := make([]string, 0, len(courses))
	for _, course := range courses {
		courseCodes = append(courseCodes, course.CourseCode)
	}

	pending, err := s.membershipStore.CountPendingForTeacher(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TeacherOverview{
		TeacherCode:          teacher.TeacherCode,
		Email:                teacher.User.Email,
		Name:                 teacher.User.Name,
		CourseCodes:          courseCodes,
		TotalPendingRequests: pending,
	}, nil
}

// AllTeachers lists the teacher directory
func (s *dashboardServiceImpl) AllTeachers(ctx context.Context) ([]dto.TeacherInfo, error) {
	teachers, err := s.userStore.GetAllTeachers(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.TeacherInfo, 0, len(teachers))
	for _, t := range teachers {
		infos = append(infos, dto.TeacherInfo{Name: t.User.Name, TeacherCode: t.TeacherCode})
	}
	return infos, nil
}

// TeacherByCode looks up one directory entry by public teacher code
func (s *dashboardServiceImpl) TeacherByCode(ctx context.Context, teacherCode string) (*dto.TeacherInfo, error) {
	teacher, err := s.userStore.GetTeacherByCode(ctx, teacherCode)
	if err != nil {
		return nil, err
	}
	return &dto.TeacherInfo{Name: teacher.User.Name, TeacherCode: teacher.TeacherCode}, nil
}

// UpdateTeacherProfile updates the teacher's display name and/or email.
// Empty fields keep their current values.
func (s *dashboardServiceImpl) UpdateTeacherProfile(ctx context.Context, teacherUserID int64, req *dto.UpdateTeacherProfileRequest) (*dto.TeacherInfo, error) {
	teacher, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}
	user, err := s.userStore.UpdateTeacherProfile(ctx, teacherUserID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", user.ID).
		Msg("Teacher profile updated")
	return &dto.TeacherInfo{Name: user.Name, TeacherCode: teacher.TeacherCode}, nil
}
