package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
	"github.com/vidyavichar/vidyavichar/internal/app/services"
	"github.com/vidyavichar/vidyavichar/internal/middleware"
)

// TeacherController handles the teacher endpoints
type TeacherController struct {
	dashboardService  services.DashboardService
	courseService     services.CourseService
	membershipService services.MembershipService
	lectureService    services.LectureService
	questionService   services.QuestionService
	logger            zerolog.Logger
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(
	dashboardService services.DashboardService,
	courseService services.CourseService,
	membershipService services.MembershipService,
	lectureService services.LectureService,
	questionService services.QuestionService,
	logger zerolog.Logger,
) *TeacherController {
	return &TeacherController{
		dashboardService:  dashboardService,
		courseService:     courseService,
		membershipService: membershipService,
		lectureService:    lectureService,
		questionService:   questionService,
		logger:            logger,
	}
}

// Overview handles GET /dashboard/overview
func (c *TeacherController) Overview(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	overview, err := c.dashboardService.TeacherOverview(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(overview))
}

// UpdateProfile handles PUT /dashboard/profile
func (c *TeacherController) UpdateProfile(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.UpdateTeacherProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	info, err := c.dashboardService.UpdateTeacherProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// AllTeachers handles GET /all
func (c *TeacherController) AllTeachers(ctx *gin.Context) {
	teachers, err := c.dashboardService.AllTeachers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teachers))
}

// TeacherByCode handles GET /:teacher_id
func (c *TeacherController) TeacherByCode(ctx *gin.Context) {
	teacher, err := c.dashboardService.TeacherByCode(ctx.Request.Context(), ctx.Param("teacher_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teacher))
}

// Courses handles GET /courses
func (c *TeacherController) Courses(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	courses, err := c.courseService.TeacherCourses(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CreateCourse handles POST /course
func (c *TeacherController) CreateCourse(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	course, err := c.courseService.CreateCourse(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// PendingRequests handles GET /course/:course_id/pending-requests
func (c *TeacherController) PendingRequests(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	pending, err := c.membershipService.PendingRequests(ctx.Request.Context(), userID, ctx.Param("course_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pending))
}

// CourseStudents handles GET /course/:course_id/students
func (c *TeacherController) CourseStudents(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	roster, err := c.membershipService.Roster(ctx.Request.Context(), userID, ctx.Param("course_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(roster))
}

// CourseStudent handles GET /course/:course_id/student/:student_id
func (c *TeacherController) CourseStudent(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	studentID, ok := pathID(ctx, "student_id")
	if !ok {
		return
	}
	student, err := c.membershipService.RosterMember(ctx.Request.Context(), userID, ctx.Param("course_id"), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// AcceptRequests handles POST /course/accept-requests
func (c *TeacherController) AcceptRequests(ctx *gin.Context) {
	c.decideRequests(ctx, c.membershipService.AcceptRequests, "Requests accepted")
}

// RejectRequests handles POST /course/reject-requests
func (c *TeacherController) RejectRequests(ctx *gin.Context) {
	c.decideRequests(ctx, c.membershipService.RejectRequests, "Requests rejected")
}

func (c *TeacherController) decideRequests(ctx *gin.Context, decide func(context.Context, int64, *dto.RequestDecision) (*dto.DecisionResult, error), message string) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.RequestDecision
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	result, err := decide(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse(message, result))
}

// MakeTA handles POST /course/make-ta
func (c *TeacherController) MakeTA(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.MakeTARequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	if err := c.membershipService.MakeTA(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student promoted to TA", nil))
}

// RemoveStudent handles DELETE /course/:course_id/remove-student
func (c *TeacherController) RemoveStudent(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.RemoveStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	if err := c.membershipService.RemoveStudent(ctx.Request.Context(), userID, ctx.Param("course_id"), req.StudentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student removed from course", nil))
}

// CourseLectures handles GET /course/:course_id/lectures
func (c *TeacherController) CourseLectures(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	lectures, err := c.lectureService.CourseLectures(ctx.Request.Context(), userID, ctx.Param("course_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lectures))
}

// CreateLecture handles POST /lecture
func (c *TeacherController) CreateLecture(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.CreateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	lecture, err := c.lectureService.CreateLecture(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lecture))
}

// DeleteLecture handles DELETE /lecture/:lecture_id
func (c *TeacherController) DeleteLecture(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	if err := c.lectureService.DeleteLecture(ctx.Request.Context(), userID, ctx.Param("lecture_id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Lecture deleted", nil))
}

// LectureQuestions handles GET /lecture/:lecture_id/questions
func (c *TeacherController) LectureQuestions(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	questions, err := c.questionService.LectureQuestionsForTeacher(ctx.Request.Context(), userID, ctx.Param("lecture_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(questions))
}

// QuestionAnswers handles GET /question/:question_id/answers
func (c *TeacherController) QuestionAnswers(ctx *gin.Context) {
	answers, err := c.questionService.QuestionAnswers(ctx.Request.Context(), ctx.Param("question_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(answers))
}

// AnswerQuestion handles POST /question/answer
func (c *TeacherController) AnswerQuestion(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.AnswerQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	if err := c.questionService.AnswerAsTeacher(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Answer recorded", nil))
}

// DeleteQuestion handles DELETE /question/:question_id
func (c *TeacherController) DeleteQuestion(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(ctx.Request.Context(), userID, ctx.Param("question_id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Question deleted", nil))
}

// DeleteAnswer handles DELETE /answer/:answer_id
func (c *TeacherController) DeleteAnswer(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	answerID, ok := pathID(ctx, "answer_id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteAnswer(ctx.Request.Context(), userID, answerID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Answer deleted", nil))
}

// pathID parses a numeric path parameter or writes a 400
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
