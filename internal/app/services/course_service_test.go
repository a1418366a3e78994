package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/models/dto"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
)

func newCourseService(d *fakeData, now time.Time) *courseServiceImpl {
	return &courseServiceImpl{
		courseStore:     fakeCourseStore{d},
		membershipStore: fakeMembershipStore{d},
		userStore:       fakeUserStore{d},
		logger:          testLogger(),
		now:             func() time.Time { return now },
	}
}

func createCourseRequest() *dto.CreateCourseRequest {
	return &dto.CreateCourseRequest{
		CourseCode: "CS101",
		CourseName: "Systems",
		Batch:      models.BatchMTech,
		Branch:     models.BranchCSE,
		ValidFrom:  hour(0),
		ValidUntil: hour(0).AddDate(0, 3, 0),
	}
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(req *dto.CreateCourseRequest)
		wantErr error
	}{
		{name: "valid"},
		{
			name:    "invalid batch",
			mutate:  func(req *dto.CreateCourseRequest) { req.Batch = "D.Phil" },
			wantErr: apperrors.ErrBadRequest,
		},
		{
			name: "validity window backwards",
			mutate: func(req *dto.CreateCourseRequest) {
				req.ValidFrom, req.ValidUntil = req.ValidUntil, req.ValidFrom
			},
			wantErr: apperrors.ErrBadRequest,
		},
		{
			name:    "unknown co-teacher fails the whole request",
			mutate:  func(req *dto.CreateCourseRequest) { req.TeacherCodes = []string{"T999"} },
			wantErr: apperrors.ErrTeacherNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeData()
			owner := d.addTeacher("Prof", "T001")
			svc := newCourseService(d, hour(9))

			req := createCourseRequest()
			if tt.mutate != nil {
				tt.mutate(req)
			}
			summary, err := svc.CreateCourse(ctx, owner.UserID, req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateCourse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(d.courses) != 0 {
					t.Error("failed create still stored a course")
				}
				return
			}
			if summary.CourseCode != "CS101" || summary.CourseName != "Systems" {
				t.Errorf("CreateCourse() = %+v", summary)
			}
		})
	}
}

func TestCreateCourseCoTeachers(t *testing.T) {
	ctx := context.Background()
	d := newFakeData()
	owner := d.addTeacher("Prof", "T001")
	coTeacher := d.addTeacher("Second", "T002")
	svc := newCourseService(d, hour(9))

	req := createCourseRequest()
	// listing the owner as a co-teacher must not duplicate the link
	req.TeacherCodes = []string{"T001", "T002"}
	if _, err := svc.CreateCourse(ctx, owner.UserID, req); err != nil {
		t.Fatalf("CreateCourse() error = %v", err)
	}

	course, err := fakeCourseStore{d}.GetByCode(ctx, "CS101")
	if err != nil {
		t.Fatalf("course not stored: %v", err)
	}
	linked := d.courseTeachers[course.ID]
	if len(linked) != 2 || linked[0] != owner.ID || linked[1] != coTeacher.ID {
		t.Errorf("course teachers = %v, want owner first then co-teacher", linked)
	}
}

func TestEnrolledAndPendingCourses(t *testing.T) {
	ctx := context.Background()
	d := newFakeData()
	teacher := d.addTeacher("Prof", "T001")
	enrolledCourse := d.addCourse("CS101", teacher.ID)
	pendingCourse := d.addCourse("CS201", teacher.ID)
	student := d.addStudent("Asha", "MT2024001")
	ta := d.addStudent("Bela", "MT2024002")
	d.setMembership(enrolledCourse.ID, student.ID, models.MembershipEnrolled, false)
	d.setMembership(pendingCourse.ID, student.ID, models.MembershipRequested, false)
	d.setMembership(enrolledCourse.ID, ta.ID, models.MembershipNone, true)

	now := enrolledCourse.ValidFrom.Add(24 * time.Hour)
	svc := newCourseService(d, now)

	enrolled, err := svc.EnrolledCourses(ctx, student.UserID)
	if err != nil {
		t.Fatalf("EnrolledCourses() error = %v", err)
	}
	if len(enrolled) != 1 || enrolled[0].CourseCode != "CS101" {
		t.Fatalf("EnrolledCourses() = %+v, want only CS101", enrolled)
	}
	card := enrolled[0]
	if card.Instructor != "Prof" {
		t.Errorf("Instructor = %q, want Prof", card.Instructor)
	}
	if len(card.TAs) != 1 || card.TAs[0].Name != "Bela" {
		t.Errorf("TAs = %+v, want Bela", card.TAs)
	}
	wantDuration := enrolledCourse.Duration().Milliseconds()
	if card.DurationMs != wantDuration {
		t.Errorf("DurationMs = %d, want %d", card.DurationMs, wantDuration)
	}
	wantRemaining := enrolledCourse.RemainingTime(now).Milliseconds()
	if card.RemainingMs != wantRemaining {
		t.Errorf("RemainingMs = %d, want %d", card.RemainingMs, wantRemaining)
	}

	pending, err := svc.PendingCourses(ctx, student.UserID)
	if err != nil {
		t.Fatalf("PendingCourses() error = %v", err)
	}
	if len(pending) != 1 || pending[0].CourseCode != "CS201" {
		t.Errorf("PendingCourses() = %+v, want only CS201", pending)
	}
}

func TestAvailableCourses(t *testing.T) {
	ctx := context.Background()
	d := newFakeData()
	teacher := d.addTeacher("Prof", "T001")
	match := d.addCourse("CS101", teacher.ID)
	mismatch := d.addCourse("EC301", teacher.ID)
	mismatch.Branch = models.BranchECE
	student := d.addStudent("Asha", "MT2024001")

	svc := newCourseService(d, hour(9))
	cards, err := svc.AvailableCourses(ctx, student.UserID)
	if err != nil {
		t.Fatalf("AvailableCourses() error = %v", err)
	}
	if len(cards) != 1 || cards[0].CourseCode != match.CourseCode {
		t.Errorf("AvailableCourses() = %+v, want only the batch/branch match", cards)
	}
}

func TestTeacherCourses(t *testing.T) {
	ctx := context.Background()
	d := newFakeData()
	owner := d.addTeacher("Prof", "T001")
	coTeacher := d.addTeacher("Second", "T002")
	d.addCourse("CS101", owner.ID, coTeacher.ID)
	d.addCourse("CS201", owner.ID)

	svc := newCourseService(d, hour(9))

	mine, err := svc.TeacherCourses(ctx, coTeacher.UserID)
	if err != nil {
		t.Fatalf("TeacherCourses() error = %v", err)
	}
	if len(mine) != 1 || mine[0].CourseCode != "CS101" {
		t.Errorf("TeacherCourses() for co-teacher = %+v, want only CS101", mine)
	}

	all, err := svc.TeacherCourses(ctx, owner.UserID)
	if err != nil {
		t.Fatalf("TeacherCourses() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("TeacherCourses() for owner returned %d courses, want 2", len(all))
	}
}
