package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student / Teacher errors
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrTeacherNotFound       = errors.New("teacher not found")
	ErrRollNoAlreadyExists   = errors.New("roll number already exists")
	ErrTeacherCodeExists     = errors.New("teacher code already exists")
	ErrStudentNotInCourse    = errors.New("student not found in this course")
	ErrStudentNotTAForCourse = errors.New("only TAs for this course can answer questions")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course with this course id already exists")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrAlreadyRequested    = errors.New("already requested to join this course")
	ErrNotCourseTeacher    = errors.New("course not found or unauthorized")
)

// Lecture errors
var (
	ErrLectureNotFound     = errors.New("lecture not found")
	ErrInvalidLectureTimes = errors.New("class_start must be before class_end")
)

// Question / Answer errors
var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrQuestionNotOwned = errors.New("question not found or not owned by user")
	ErrQuestionAnswered = errors.New("answered questions cannot be modified")
	ErrAnswerNotFound   = errors.New("answer not found")
)

// NewNotFoundError creates a custom error wrapping ErrResourceNotFound
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a custom error wrapping ErrConflict
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a custom error wrapping ErrPermissionDenied
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a custom error wrapping ErrBadRequest
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError carries an underlying sentinel plus a human-readable message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}
