package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/auth"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/repositories"
	pkgauth "github.com/vidyavichar/vidyavichar/internal/pkg/auth"
)

// The store interfaces below are the slices of the repository layer each
// service actually touches. Services depend on these rather than on the
// concrete repositories so tests can substitute in-memory doubles.

// UserStore covers account, student and teacher lookups
type UserStore interface {
	CreateStudent(ctx context.Context, user *models.User, student *models.Student) error
	CreateTeacher(ctx context.Context, user *models.User, teacher *models.Teacher) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	GetTeacherByCode(ctx context.Context, code string) (*models.Teacher, error)
	GetAllTeachers(ctx context.Context) ([]*models.Teacher, error)
	UpdateTeacherProfile(ctx context.Context, userID int64, name, email string) (*models.User, error)
}

// CourseStore covers course rows and teacher links
type CourseStore interface {
	Create(ctx context.Context, course *models.Course, teacherIDs []int64) error
	GetByCode(ctx context.Context, courseCode string) (*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByBatchBranch(ctx context.Context, batch models.Batch, branch models.Branch) ([]*models.Course, error)
	GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Course, error)
	IsTeacherOnCourse(ctx context.Context, courseID, teacherID int64) (bool, error)
	GetOwnerName(ctx context.Context, courseID int64) (string, error)
}

// MembershipStore covers the request/roster/TA relation
type MembershipStore interface {
	Get(ctx context.Context, courseID, studentID int64) (*models.CourseMembership, error)
	Request(ctx context.Context, courseID, studentID int64) (bool, error)
	Enroll(ctx context.Context, courseID, studentID int64) error
	ClearRequest(ctx context.Context, courseID, studentID int64) error
	PromoteTA(ctx context.Context, courseID, studentID int64) error
	RemoveFromRoster(ctx context.Context, courseID, studentID int64) error
	ListMembers(ctx context.Context, courseID int64, status models.MembershipStatus) ([]*repositories.MemberRecord, error)
	ListTAs(ctx context.Context, courseID int64) ([]*repositories.MemberRecord, error)
	CoursesForStudent(ctx context.Context, studentID int64, status models.MembershipStatus) ([]*models.Course, error)
	CountForStudent(ctx context.Context, studentID int64, status models.MembershipStatus) (int, error)
	CountTAForStudent(ctx context.Context, studentID int64) (int, error)
	IsTAForCourse(ctx context.Context, courseID, studentID int64) (bool, error)
	IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error)
	CountPendingForTeacher(ctx context.Context, teacherID int64) (int, error)
}

// LectureStore covers lectures and attendance
type LectureStore interface {
	Create(ctx context.Context, lecture *models.Lecture) error
	GetByCode(ctx context.Context, lectureCode string) (*models.Lecture, error)
	GetByID(ctx context.Context, id int64) (*models.Lecture, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Lecture, error)
	ListByCourseIDs(ctx context.Context, courseIDs []int64) ([]*models.Lecture, error)
	Delete(ctx context.Context, id int64) error
	AddAttendance(ctx context.Context, lectureID, studentID int64) error
	CountAttendance(ctx context.Context, lectureID int64) (int, error)
}

// QuestionStore covers questions and their upvote rows
type QuestionStore interface {
	Create(ctx context.Context, question *models.Question) error
	GetByCode(ctx context.Context, questionCode string) (*models.Question, error)
	ListByLecture(ctx context.Context, lectureID int64) ([]*models.Question, error)
	ListByLectureAndStudent(ctx context.Context, lectureID, studentID int64) ([]*models.Question, error)
	UpdateText(ctx context.Context, id int64, text string) error
	Delete(ctx context.Context, id int64) error
	CountUnansweredByStudent(ctx context.Context, studentID int64) (int, error)
}

// AnswerStore covers answer rows and question links
type AnswerStore interface {
	Create(ctx context.Context, questionID int64, answer *models.Answer) error
	ListByQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error)
	DeleteAllForQuestion(ctx context.Context, questionID int64) error
	DeleteByID(ctx context.Context, answerID int64) error
}

// Services holds all the service instances
type Services struct {
	AuthService       AuthService
	CourseService     CourseService
	MembershipService MembershipService
	LectureService    LectureService
	QuestionService   QuestionService
	DashboardService  DashboardService
}

// NewServices wires the services against the concrete repositories
func NewServices(repos *repositories.Repositories, jwtService *pkgauth.JWTService, logger zerolog.Logger) *Services {
	authzService := auth.NewAuthorizationService(repos.CourseRepository, repos.MembershipRepository)

	return &Services{
		AuthService: NewAuthService(repos.UserRepository, jwtService, logger),
		CourseService: NewCourseService(repos.CourseRepository, repos.MembershipRepository,
			repos.UserRepository, logger),
		MembershipService: NewMembershipService(repos.MembershipRepository, repos.CourseRepository,
			repos.UserRepository, authzService, logger),
		LectureService: NewLectureService(repos.LectureRepository, repos.CourseRepository,
			repos.MembershipRepository, repos.UserRepository, authzService, logger),
		QuestionService: NewQuestionService(repos.QuestionRepository, repos.AnswerRepository,
			repos.LectureRepository, repos.UserRepository, authzService, logger),
		DashboardService: NewDashboardService(repos.UserRepository, repos.CourseRepository,
			repos.MembershipRepository, repos.QuestionRepository, logger),
	}
}
