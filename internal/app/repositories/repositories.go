package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	CourseRepository     *CourseRepository
	MembershipRepository *MembershipRepository
	LectureRepository    *LectureRepository
	QuestionRepository   *QuestionRepository
	AnswerRepository     *AnswerRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		CourseRepository:     NewCourseRepository(db),
		MembershipRepository: NewMembershipRepository(db),
		LectureRepository:    NewLectureRepository(db),
		QuestionRepository:   NewQuestionRepository(db),
		AnswerRepository:     NewAnswerRepository(db),
	}
}
