package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/auth"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
	"github.com/vidyavichar/vidyavichar/internal/app/repositories"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
	"github.com/vidyavichar/vidyavichar/internal/pkg/random"
)

// createRetries bounds retries on lecture code collisions and concurrent
// lecture-number races.
const createRetries = 3

// LectureService defines the interface for lecture operations
type LectureService interface {
	CreateLecture(ctx context.Context, teacherUserID int64, req *dto.CreateLectureRequest) (*dto.LectureInfo, error)
	DeleteLecture(ctx context.Context, teacherUserID int64, lectureCode string) error
	CourseLectures(ctx context.Context, teacherUserID int64, courseCode string) ([]dto.LectureInfo, error)
	CurrentLectures(ctx context.Context, studentUserID int64) ([]dto.LectureInfo, error)
	PreviousLectures(ctx context.Context, studentUserID int64) ([]dto.LectureInfo, error)
	JoinLecture(ctx context.Context, studentUserID int64, req *dto.JoinLectureRequest) (*dto.JoinLectureResponse, error)
}

type lectureServiceImpl struct {
	lectureStore    LectureStore
	courseStore     CourseStore
	membershipStore MembershipStore
	userStore       UserStore
	authzService    *auth.AuthorizationService
	logger          zerolog.Logger
	now             func() time.Time
}

// NewLectureService creates a new LectureService
func NewLectureService(
	lectureStore LectureStore,
	courseStore CourseStore,
	membershipStore MembershipStore,
	userStore UserStore,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) LectureService {
	return &lectureServiceImpl{
		lectureStore:    lectureStore,
		courseStore:     courseStore,
		membershipStore: membershipStore,
		userStore:       userStore,
		authzService:    authzService,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateLecture creates a lecture on one of the teacher's courses. The
// lecture number is assigned server-side and is strictly increasing per
// course; code collisions regenerate and retry.
func (s *lectureServiceImpl) CreateLecture(ctx context.Context, teacherUserID int64, req *dto.CreateLectureRequest) (*dto.LectureInfo, error) {
	if !req.ClassStart.Before(req.ClassEnd) {
		return nil, apperrors.ErrInvalidLectureTimes
	}

	teacher, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}
	course, err := s.courseStore.GetByCode(ctx, req.CourseCode)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.RequireCourseTeacher(ctx, course.ID, teacher.ID); err != nil {
		return nil, err
	}

	lecture := &models.Lecture{
		CourseID:     course.ID,
		LectureTitle: req.LectureTitle,
		ClassStart:   req.ClassStart,
		ClassEnd:     req.ClassEnd,
		TeacherID:    teacher.ID,
	}
	for attempt := 0; ; attempt++ {
		lecture.LectureCode = random.LectureCode(course.CourseCode)
		err = s.lectureStore.Create(ctx, lecture)
		if err == nil {
			break
		}
		retryable := errors.Is(err, repositories.ErrLectureCodeTaken) ||
			errors.Is(err, apperrors.ErrConflict)
		if !retryable || attempt >= createRetries {
			return nil, err
		}
	}

	s.logger.Info().
		Str("lectureCode", lecture.LectureCode).
		Str("courseCode", course.CourseCode).
		Int("lecNum", lecture.LecNum).
		Msg("Lecture created")

	info := lectureInfo(lecture)
	info.CourseCode = course.CourseCode
	info.CourseName = course.CourseName
	return &info, nil
}

// DeleteLecture deletes a lecture from one of the teacher's courses.
// Questions and attendance go with it.
func (s *lectureServiceImpl) DeleteLecture(ctx context.Context, teacherUserID int64, lectureCode string) error {
	teacher, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return err
	}
	lecture, err := s.lectureStore.GetByCode(ctx, lectureCode)
	if err != nil {
		return err
	}
	if err := s.authzService.RequireCourseTeacher(ctx, lecture.CourseID, teacher.ID); err != nil {
		return err
	}
	if err := s.lectureStore.Delete(ctx, lecture.ID); err != nil {
		return err
	}

	s.logger.Info().
		Str("lectureCode", lectureCode).
		Int64("courseID", lecture.CourseID).
		Msg("Lecture deleted")
	return nil
}

// CourseLectures lists every lecture of a course for its teacher
func (s *lectureServiceImpl) CourseLectures(ctx context.Context, teacherUserID int64, courseCode string) ([]dto.LectureInfo, error) {
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
	lectures, err := s.lectureStore.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.LectureInfo, 0, len(lectures))
	for _, lecture := range lectures {
		info := lectureInfo(lecture)
		info.CourseCode = course.CourseCode
		info.CourseName = course.CourseName
		infos = append(infos, info)
	}
	return infos, nil
}

// CurrentLectures lists running and about-to-start lectures across the
// student's enrolled courses. A lecture counts as current from fifteen
// minutes before class_start until class_end.
func (s *lectureServiceImpl) CurrentLectures(ctx context.Context, studentUserID int64) ([]dto.LectureInfo, error) {
	now := s.now()
	return s.studentLectures(ctx, studentUserID, func(l *models.Lecture) bool {
		return l.IsCurrent(now)
	})
}

// PreviousLectures lists finished lectures across the student's enrolled
// courses.
func (s *lectureServiceImpl) PreviousLectures(ctx context.Context, studentUserID int64) ([]dto.LectureInfo, error) {
	now := s.now()
	return s.studentLectures(ctx, studentUserID, func(l *models.Lecture) bool {
		return l.HasEnded(now)
	})
}

func (s *lectureServiceImpl) studentLectures(ctx context.Context, studentUserID int64, keep func(*models.Lecture) bool) ([]dto.LectureInfo, error) {
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	courses, err := s.membershipStore.CoursesForStudent(ctx, student.ID, models.MembershipEnrolled)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]int64, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}
	lectures, err := s.lectureStore.ListByCourseIDs(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.LectureInfo, 0, len(lectures))
	for _, lecture := range lectures {
		if keep(lecture) {
			infos = append(infos, lectureInfo(lecture))
		}
	}
	return infos, nil
}

// JoinLecture records the student's attendance in a lecture. The join window
// only affects which lectures are listed as current; joining a past or future
// lecture directly by code still counts. Rejoining is harmless; the
// attendance count stays exact.
func (s *lectureServiceImpl) JoinLecture(ctx context.Context, studentUserID int64, req *dto.JoinLectureRequest) (*dto.JoinLectureResponse, error) {
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	lecture, err := s.lectureStore.GetByCode(ctx, req.LectureCode)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.RequireCourseParticipant(ctx, lecture.CourseID, student.ID); err != nil {
		return nil, err
	}

	if err := s.lectureStore.AddAttendance(ctx, lecture.ID, student.ID); err != nil {
		return nil, err
	}
	count, err := s.lectureStore.CountAttendance(ctx, lecture.ID)
	if err != nil {
		return nil, err
	}

	course, err := s.courseStore.GetByID(ctx, lecture.CourseID)
	if err != nil {
		return nil, err
	}
	info := lectureInfo(lecture)
	info.CourseCode = course.CourseCode
	info.CourseName = course.CourseName
	return &dto.JoinLectureResponse{LectureInfo: info, JoinedStudentsCount: count}, nil
}

func lectureInfo(l *models.Lecture) dto.LectureInfo {
	return dto.LectureInfo{
		LectureCode:  l.LectureCode,
		CourseCode:   l.CourseCode,
		CourseName:   l.CourseName,
		LectureTitle: l.LectureTitle,
		LecNum:       l.LecNum,
		ClassStart:   l.ClassStart,
		ClassEnd:     l.ClassEnd,
	}
}
