package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "bad request", err: apperrors.NewBadRequestError("nope"), wantStatus: http.StatusBadRequest},
		{name: "invalid lecture times", err: apperrors.ErrInvalidLectureTimes, wantStatus: http.StatusBadRequest},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "expired token", err: apperrors.ErrTokenExpired, wantStatus: http.StatusUnauthorized},
		{name: "student not TA", err: apperrors.ErrStudentNotTAForCourse, wantStatus: http.StatusForbidden},
		{name: "course not found", err: apperrors.ErrCourseNotFound, wantStatus: http.StatusNotFound},
		// teachers outside a course get a 404, not a 403
		{name: "not course teacher", err: apperrors.ErrNotCourseTeacher, wantStatus: http.StatusNotFound},
		{name: "student not in course", err: apperrors.ErrStudentNotInCourse, wantStatus: http.StatusNotFound},
		{name: "question not owned", err: apperrors.ErrQuestionNotOwned, wantStatus: http.StatusNotFound},
		{name: "duplicate email", err: apperrors.ErrEmailAlreadyExists, wantStatus: http.StatusConflict},
		{name: "already enrolled", err: apperrors.ErrAlreadyEnrolled, wantStatus: http.StatusConflict},
		{name: "already requested", err: apperrors.ErrAlreadyRequested, wantStatus: http.StatusConflict},
		{name: "question answered lock", err: apperrors.ErrQuestionAnswered, wantStatus: http.StatusConflict},
		{name: "unknown error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.NotEmpty(t, recorder.Body.String())
		})
	}
}
