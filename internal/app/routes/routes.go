package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vidyavichar/vidyavichar/internal/app/controllers"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/student/register", authController.RegisterStudent)
		auth.POST("/teacher/register", authController.RegisterTeacher)
		auth.POST("/login", authController.Login)
	}

	// --- Student dashboard (student role only) ---
	student := api.Group("/student/dashboard")
	student.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleStudent))
	{
		student.GET("/overview", studentController.Overview)
		student.GET("/enrolled-courses", studentController.EnrolledCourses)
		student.GET("/pending-courses", studentController.PendingCourses)
		student.GET("/all-courses", studentController.AllCourses)
		student.GET("/all-lectures", studentController.CurrentLectures)
		student.GET("/prev-lectures", studentController.PreviousLectures)
		student.GET("/all-questions/:lecture_id", studentController.LectureQuestions)
		student.GET("/my-questions/:lecture_id", studentController.MyQuestions)
		student.GET("/all-answers/:question_id", studentController.QuestionAnswers)

		student.POST("/join-course", studentController.JoinCourse)
		student.POST("/join-lecture", studentController.JoinLecture)
		student.POST("/ask-question", studentController.AskQuestion)
		student.POST("/answer-question", studentController.AnswerQuestion)

		student.PUT("/edit-question/:question_id", studentController.EditQuestion)
		student.DELETE("/delete-question/:question_id", studentController.DeleteQuestion)
		student.DELETE("/delete-answer/:question_id", studentController.DeleteAnswers)
	}

	// --- Teacher surface (teacher role only) ---
	teacher := api.Group("/teacher")
	teacher.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleTeacher))
	{
		teacher.GET("/dashboard/overview", teacherController.Overview)
		teacher.PUT("/dashboard/profile", teacherController.UpdateProfile)

		teacher.GET("/all", teacherController.AllTeachers)
		teacher.GET("/courses", teacherController.Courses)
		teacher.GET("/:teacher_id", teacherController.TeacherByCode)

		teacher.POST("/course", teacherController.CreateCourse)
		teacher.GET("/course/:course_id/pending-requests", teacherController.PendingRequests)
		teacher.GET("/course/:course_id/lectures", teacherController.CourseLectures)
		teacher.GET("/course/:course_id/students", teacherController.CourseStudents)
		teacher.GET("/course/:course_id/student/:student_id", teacherController.CourseStudent)
		teacher.POST("/course/accept-requests", teacherController.AcceptRequests)
		teacher.POST("/course/reject-requests", teacherController.RejectRequests)
		teacher.POST("/course/make-ta", teacherController.MakeTA)
		teacher.DELETE("/course/:course_id/remove-student", teacherController.RemoveStudent)

		teacher.POST("/lecture", teacherController.CreateLecture)
		teacher.GET("/lecture/:lecture_id/questions", teacherController.LectureQuestions)
		teacher.DELETE("/lecture/:lecture_id", teacherController.DeleteLecture)

		teacher.GET("/question/:question_id/answers", teacherController.QuestionAnswers)
		teacher.POST("/question/answer", teacherController.AnswerQuestion)
		teacher.DELETE("/question/:question_id", teacherController.DeleteQuestion)
		teacher.DELETE("/answer/:answer_id", teacherController.DeleteAnswer)
	}
}
