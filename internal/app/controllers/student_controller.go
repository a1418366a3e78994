package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
	"github.com/vidyavichar/vidyavichar/internal/app/services"
	"github.com/vidyavichar/vidyavichar/internal/middleware"
)

// StudentController handles the student dashboard endpoints
type StudentController struct {
	dashboardService  services.DashboardService
	courseService     services.CourseService
	membershipService services.MembershipService
	lectureService    services.LectureService
	questionService   services.QuestionService
	logger            zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	dashboardService services.DashboardService,
	courseService services.CourseService,
	membershipService services.MembershipService,
	lectureService services.LectureService,
	questionService services.QuestionService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		dashboardService:  dashboardService,
		courseService:     courseService,
		membershipService: membershipService,
		lectureService:    lectureService,
		questionService:   questionService,
		logger:            logger,
	}
}

// callerID reads the authenticated user id or writes a 401
func callerID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}

// Overview handles GET /overview
func (c *StudentController) Overview(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	overview, err := c.dashboardService.StudentOverview(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(overview))
}

// EnrolledCourses handles GET /enrolled-courses
func (c *StudentController) EnrolledCourses(ctx *gin.Context) {
	c.courseList(ctx, c.courseService.EnrolledCourses)
}

// PendingCourses handles GET /pending-courses
func (c *StudentController) PendingCourses(ctx *gin.Context) {
	c.courseList(ctx, c.courseService.PendingCourses)
}

// AllCourses handles GET /all-courses
func (c *StudentController) AllCourses(ctx *gin.Context) {
	c.courseList(ctx, c.courseService.AvailableCourses)
}

func (c *StudentController) courseList(ctx *gin.Context, list func(context.Context, int64) ([]dto.CourseCard, error)) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	cards, err := list(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(cards))
}

// CurrentLectures handles GET /all-lectures
func (c *StudentController) CurrentLectures(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	lectures, err := c.lectureService.CurrentLectures(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lectures))
}

// PreviousLectures handles GET /prev-lectures
func (c *StudentController) PreviousLectures(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	lectures, err := c.lectureService.PreviousLectures(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lectures))
}

// LectureQuestions handles GET /all-questions/:lecture_id
func (c *StudentController) LectureQuestions(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	questions, err := c.questionService.LectureQuestions(ctx.Request.Context(), userID, ctx.Param("lecture_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(questions))
}

// MyQuestions handles GET /my-questions/:lecture_id
func (c *StudentController) MyQuestions(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	questions, err := c.questionService.MyQuestions(ctx.Request.Context(), userID, ctx.Param("lecture_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(questions))
}

// QuestionAnswers handles GET /all-answers/:question_id
func (c *StudentController) QuestionAnswers(ctx *gin.Context) {
	if _, ok := callerID(ctx); !ok {
		return
	}
	answers, err := c.questionService.QuestionAnswers(ctx.Request.Context(), ctx.Param("question_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(answers))
}

// JoinCourse handles POST /join-course
func (c *StudentController) JoinCourse(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.JoinCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	if err := c.membershipService.RequestJoin(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Join request submitted", nil))
}

// JoinLecture handles POST /join-lecture
func (c *StudentController) JoinLecture(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.JoinLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	joined, err := c.lectureService.JoinLecture(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(joined))
}

// AskQuestion handles POST /ask-question
func (c *StudentController) AskQuestion(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.AskQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	question, err := c.questionService.AskQuestion(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(question))
}

// AnswerQuestion handles POST /answer-question
func (c *StudentController) AnswerQuestion(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.AnswerQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	if err := c.questionService.AnswerAsStudent(ctx.Request.Context(), userID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Answer recorded", nil))
}

// EditQuestion handles PUT /edit-question/:question_id
func (c *StudentController) EditQuestion(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	var req dto.EditQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}
	if err := c.questionService.EditQuestion(ctx.Request.Context(), userID, ctx.Param("question_id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Question updated", nil))
}

// DeleteQuestion handles DELETE /delete-question/:question_id
func (c *StudentController) DeleteQuestion(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	if err := c.questionService.DeleteOwnQuestion(ctx.Request.Context(), userID, ctx.Param("question_id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Question deleted", nil))
}

// DeleteAnswers handles DELETE /delete-answer/:question_id
func (c *StudentController) DeleteAnswers(ctx *gin.Context) {
	userID, ok := callerID(ctx)
	if !ok {
		return
	}
	if err := c.questionService.DeleteOwnAnswers(ctx.Request.Context(), userID, ctx.Param("question_id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Answers cleared", nil))
}
