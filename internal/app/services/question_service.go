package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/auth"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
	"github.com/vidyavichar/vidyavichar/internal/app/repositories"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
	"github.com/vidyavichar/vidyavichar/internal/pkg/random"
)

// QuestionService defines the interface for question and answer operations
type QuestionService interface {
	AskQuestion(ctx context.Context, studentUserID int64, req *dto.AskQuestionRequest) (*dto.QuestionInfo, error)
	LectureQuestions(ctx context.Context, studentUserID int64, lectureCode string) ([]dto.QuestionInfo, error)
	MyQuestions(ctx context.Context, studentUserID int64, lectureCode string) ([]dto.QuestionInfo, error)
	LectureQuestionsForTeacher(ctx context.Context, teacherUserID int64, lectureCode string) ([]dto.QuestionInfo, error)
	QuestionAnswers(ctx context.Context, questionCode string) ([]dto.AnswerInfo, error)
	EditQuestion(ctx context.Context, studentUserID int64, questionCode string, req *dto.EditQuestionRequest) error
	DeleteOwnQuestion(ctx context.Context, studentUserID int64, questionCode string) error
	DeleteOwnAnswers(ctx context.Context, studentUserID int64, questionCode string) error
	AnswerAsStudent(ctx context.Context, studentUserID int64, req *dto.AnswerQuestionRequest) error
	AnswerAsTeacher(ctx context.Context, teacherUserID int64, req *dto.AnswerQuestionRequest) error
	DeleteQuestion(ctx context.Context, teacherUserID int64, questionCode string) error
	DeleteAnswer(ctx context.Context, teacherUserID int64, answerID int64) error
}

type questionServiceImpl struct {
	questionStore QuestionStore
	answerStore   AnswerStore
	lectureStore  LectureStore
	userStore     UserStore
	authzService  *auth.AuthorizationService
	logger        zerolog.Logger
}

// NewQuestionService creates a new QuestionService
func NewQuestionService(
	questionStore QuestionStore,
	answerStore AnswerStore,
	lectureStore LectureStore,
	userStore UserStore,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) QuestionService {
	return &questionServiceImpl{
		questionStore: questionStore,
		answerStore:   answerStore,
		lectureStore:  lectureStore,
		userStore:     userStore,
		authzService:  authzService,
		logger:        logger,
	}
}

// AskQuestion posts a question to a lecture. The asker auto-upvotes, so two
// students asking at the same instant still produce distinct questions with
// one upvote each.
func (s *questionServiceImpl) AskQuestion(ctx context.Context, studentUserID int64, req *dto.AskQuestionRequest) (*dto.QuestionInfo, error) {
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

	question := &models.Question{
		LectureID:    lecture.ID,
		StudentID:    student.ID,
		QuestionText: req.QuestionText,
	}
	for attempt := 0; ; attempt++ {
		question.QuestionCode = random.QuestionCode()
		err = s.questionStore.Create(ctx, question)
		if err == nil {
			break
		}
		if !errors.Is(err, repositories.ErrQuestionCodeTaken) || attempt >= createRetries {
			return nil, err
		}
	}

	s.logger.Info().
		Str("questionCode", question.QuestionCode).
		Str("lectureCode", lecture.LectureCode).
		Int64("studentID", student.ID).
		Msg("Question asked")

	info := questionInfo(question, lecture.LectureCode)
	return &info, nil
}

// LectureQuestions lists every question of a lecture for an enrolled
// student or TA.
func (s *questionServiceImpl) LectureQuestions(ctx context.Context, studentUserID int64, lectureCode string) ([]dto.QuestionInfo, error) {
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	lecture, err := s.lectureStore.GetByCode(ctx, lectureCode)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.RequireCourseParticipant(ctx, lecture.CourseID, student.ID); err != nil {
		return nil, err
	}
	questions, err := s.questionStore.ListByLecture(ctx, lecture.ID)
	if err != nil {
		return nil, err
	}
	return questionInfos(questions, lecture.LectureCode), nil
}

// MyQuestions lists the questions the student asked in a lecture
func (s *questionServiceImpl) MyQuestions(ctx context.Context, studentUserID int64, lectureCode string) ([]dto.QuestionInfo, error) {
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	lecture, err := s.lectureStore.GetByCode(ctx, lectureCode)
	if err != nil {
		return nil, err
	}
	questions, err := s.questionStore.ListByLectureAndStudent(ctx, lecture.ID, student.ID)
	if err != nil {
		return nil, err
	}
	return questionInfos(questions, lecture.LectureCode), nil
}

// LectureQuestionsForTeacher lists a lecture's questions for a teacher on
// the lecture's course.
func (s *questionServiceImpl) LectureQuestionsForTeacher(ctx context.Context, teacherUserID int64, lectureCode string) ([]dto.QuestionInfo, error) {
	teacher, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return nil, err
	}
	lecture, err := s.lectureStore.GetByCode(ctx, lectureCode)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.RequireCourseTeacher(ctx, lecture.CourseID, teacher.ID); err != nil {
		return nil, err
	}
	questions, err := s.questionStore.ListByLecture(ctx, lecture.ID)
	if err != nil {
		return nil, err
	}
	return questionInfos(questions, lecture.LectureCode), nil
}

// QuestionAnswers lists a question's answers in creation order
func (s *questionServiceImpl) QuestionAnswers(ctx context.Context, questionCode string) ([]dto.AnswerInfo, error) {
	question, err := s.questionStore.GetByCode(ctx, questionCode)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerStore.ListByQuestion(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	infos := make([]dto.AnswerInfo, 0, len(answers))
	for _, a := range answers {
		infos = append(infos, answerInfo(a))
	}
	return infos, nil
}

// EditQuestion replaces the text of the student's own unanswered question.
// An answered question is locked; editing it is a policy violation, not a
// missing resource.
func (s *questionServiceImpl) EditQuestion(ctx context.Context, studentUserID int64, questionCode string, req *dto.EditQuestionRequest) error {
	question, err := s.ownQuestion(ctx, studentUserID, questionCode)
	if err != nil {
		return err
	}
	if !question.Editable() {
		return apperrors.ErrQuestionAnswered
	}
	return s.questionStore.UpdateText(ctx, question.ID, req.QuestionText)
}

// DeleteOwnQuestion deletes the student's own unanswered question together
// with its answers. Same lock as editing.
func (s *questionServiceImpl) DeleteOwnQuestion(ctx context.Context, studentUserID int64, questionCode string) error {
	question, err := s.ownQuestion(ctx, studentUserID, questionCode)
	if err != nil {
		return err
	}
	if !question.Editable() {
		return apperrors.ErrQuestionAnswered
	}
	return s.questionStore.Delete(ctx, question.ID)
}

// DeleteOwnAnswers clears every answer of the student's own question and
// reopens it.
func (s *questionServiceImpl) DeleteOwnAnswers(ctx context.Context, studentUserID int64, questionCode string) error {
	question, err := s.ownQuestion(ctx, studentUserID, questionCode)
	if err != nil {
		return err
	}
	return s.answerStore.DeleteAllForQuestion(ctx, question.ID)
}

func (s *questionServiceImpl) ownQuestion(ctx context.Context, studentUserID int64, questionCode string) (*models.Question, error) {
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	question, err := s.questionStore.GetByCode(ctx, questionCode)
	if err != nil {
		return nil, err
	}
	if question.StudentID != student.ID {
		return nil, apperrors.ErrQuestionNotOwned
	}
	return question, nil
}

// AnswerAsStudent appends an answer on behalf of a TA. Only TAs of the
// question's course may answer; enrollment alone is not enough.
func (s *questionServiceImpl) AnswerAsStudent(ctx context.Context, studentUserID int64, req *dto.AnswerQuestionRequest) error {
	if !validAnswerType(req.AnswerType) {
		return apperrors.NewBadRequestError("invalid answer_type")
	}
	student, err := s.userStore.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		return err
	}
	question, err := s.questionStore.GetByCode(ctx, req.QuestionCode)
	if err != nil {
		return err
	}
	lecture, err := s.lectureStore.GetByID(ctx, question.LectureID)
	if err != nil {
		return err
	}
	isTA, err := s.authzService.IsTAForCourse(ctx, lecture.CourseID, student.ID)
	if err != nil {
		return err
	}
	if !isTA {
		return apperrors.ErrStudentNotTAForCourse
	}

	return s.appendAnswer(ctx, question, student.User.Name, req)
}

// AnswerAsTeacher appends a teacher's answer to any question
func (s *questionServiceImpl) AnswerAsTeacher(ctx context.Context, teacherUserID int64, req *dto.AnswerQuestionRequest) error {
	if !validAnswerType(req.AnswerType) {
		return apperrors.NewBadRequestError("invalid answer_type")
	}
	teacher, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return err
	}
	question, err := s.questionStore.GetByCode(ctx, req.QuestionCode)
	if err != nil {
		return err
	}
	return s.appendAnswer(ctx, question, teacher.User.Name, req)
}

func (s *questionServiceImpl) appendAnswer(ctx context.Context, question *models.Question, answererName string, req *dto.AnswerQuestionRequest) error {
	answer := &models.Answer{
		AnswererName: answererName,
		AnswerText:   req.AnswerText,
		AnswerType:   req.AnswerType,
	}
	if err := s.answerStore.Create(ctx, question.ID, answer); err != nil {
		return err
	}

	s.logger.Info().
		Str("questionCode", question.QuestionCode).
		Str("answerer", answererName).
		Msg("Question answered")
	return nil
}

// DeleteQuestion removes any question of the teacher's lecture, answers
// included.
func (s *questionServiceImpl) DeleteQuestion(ctx context.Context, teacherUserID int64, questionCode string) error {
	teacher, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID)
	if err != nil {
		return err
	}
	question, err := s.questionStore.GetByCode(ctx, questionCode)
	if err != nil {
		return err
	}
	lecture, err := s.lectureStore.GetByID(ctx, question.LectureID)
	if err != nil {
		return err
	}
	if err := s.authzService.RequireCourseTeacher(ctx, lecture.CourseID, teacher.ID); err != nil {
		return err
	}
	return s.questionStore.Delete(ctx, question.ID)
}

// DeleteAnswer removes a single answer row. Questions that carried it keep
// their answered flag: dropping one answer never reopens a question.
func (s *questionServiceImpl) DeleteAnswer(ctx context.Context, teacherUserID int64, answerID int64) error {
	if _, err := s.userStore.GetTeacherByUserID(ctx, teacherUserID); err != nil {
		return err
	}
	return s.answerStore.DeleteByID(ctx, answerID)
}

func validAnswerType(t models.AnswerType) bool {
	return t == models.AnswerTypeText || t == models.AnswerTypeVerbal
}

func questionInfos(questions []*models.Question, lectureCode string) []dto.QuestionInfo {
	infos := make([]dto.QuestionInfo, 0, len(questions))
	for _, q := range questions {
		infos = append(infos, questionInfo(q, lectureCode))
	}
	return infos
}

func questionInfo(q *models.Question, lectureCode string) dto.QuestionInfo {
	answers := make([]dto.AnswerInfo, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, answerInfo(a))
	}
	return dto.QuestionInfo{
		QuestionCode: q.QuestionCode,
		QuestionText: q.QuestionText,
		StudentID:    q.StudentID,
		LectureCode:  lectureCode,
		Timestamp:    q.AskedAt,
		IsAnswered:   q.IsAnswered,
		IsImportant:  q.IsImportant,
		Upvotes:      q.Upvotes,
		UpvotedBy:    q.UpvotedBy,
		Answers:      answers,
	}
}

func answerInfo(a *models.Answer) dto.AnswerInfo {
	return dto.AnswerInfo{
		AnswerID:     a.ID,
		AnswererName: a.AnswererName,
		AnswerText:   a.AnswerText,
		AnswerType:   a.AnswerType,
	}
}
