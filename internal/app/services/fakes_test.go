package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidyavichar/vidyavichar/internal/app/auth"
	"github.com/vidyavichar/vidyavichar/internal/app/models"
	"github.com/vidyavichar/vidyavichar/internal/app/repositories"
	"github.com/vidyavichar/vidyavichar/internal/pkg/apperrors"
)

type pair struct{ a, b int64 }

// fakeData is the shared in-memory state behind all the store doubles. The
// per-interface wrapper types below embed it so one dataset backs every store
// and relations stay consistent across a test.
type fakeData struct {
	nextID int64

	users    map[int64]*models.User
	students map[int64]*models.Student
	teachers map[int64]*models.Teacher

	courses        map[int64]*models.Course
	courseTeachers map[int64][]int64 // courseID -> teacher ids, owner first

	memberships map[pair]*models.CourseMembership // (courseID, studentID)

	lectures   map[int64]*models.Lecture
	attendance map[pair]bool // (lectureID, studentID)

	questions       map[int64]*models.Question
	answers         map[int64]*models.Answer
	questionAnswers map[int64][]int64 // questionID -> answer ids
}

func newFakeData() *fakeData {
	return &fakeData{
		users:           make(map[int64]*models.User),
		students:        make(map[int64]*models.Student),
		teachers:        make(map[int64]*models.Teacher),
		courses:         make(map[int64]*models.Course),
		courseTeachers:  make(map[int64][]int64),
		memberships:     make(map[pair]*models.CourseMembership),
		lectures:        make(map[int64]*models.Lecture),
		attendance:      make(map[pair]bool),
		questions:       make(map[int64]*models.Question),
		answers:         make(map[int64]*models.Answer),
		questionAnswers: make(map[int64][]int64),
	}
}

type fakeUserStore struct{ *fakeData }
type fakeCourseStore struct{ *fakeData }
type fakeMembershipStore struct{ *fakeData }
type fakeLectureStore struct{ *fakeData }
type fakeQuestionStore struct{ *fakeData }
type fakeAnswerStore struct{ *fakeData }

func (d *fakeData) id() int64 {
	d.nextID++
	return d.nextID
}

func (d *fakeData) authz() *auth.AuthorizationService {
	return auth.NewAuthorizationService(fakeCourseStore{d}, fakeMembershipStore{d})
}

// --- test data helpers ---

func (d *fakeData) addStudent(name, rollNo string) *models.Student {
	user := &models.User{
		ID: d.id(), Email: rollNo + "@test.local", Password: "x",
		Name: name, Role: models.RoleStudent,
	}
	d.users[user.ID] = user
	student := &models.Student{
		ID: d.id(), UserID: user.ID, RollNo: rollNo,
		Batch: models.BatchMTech, Branch: models.BranchCSE, User: user,
	}
	d.students[student.ID] = student
	return student
}

func (d *fakeData) addTeacher(name, code string) *models.Teacher {
	user := &models.User{
		ID: d.id(), Email: code + "@test.local", Password: "x",
		Name: name, Role: models.RoleTeacher,
	}
	d.users[user.ID] = user
	teacher := &models.Teacher{ID: d.id(), UserID: user.ID, TeacherCode: code, User: user}
	d.teachers[teacher.ID] = teacher
	return teacher
}

func (d *fakeData) addCourse(code string, teacherIDs ...int64) *models.Course {
	course := &models.Course{
		ID: d.id(), CourseCode: code, CourseName: code + " name",
		Batch: models.BatchMTech, Branch: models.BranchCSE,
		ValidFrom:  time.Now().Add(-24 * time.Hour),
		ValidUntil: time.Now().Add(90 * 24 * time.Hour),
		CreatedAt:  time.Now(),
	}
	d.courses[course.ID] = course
	d.courseTeachers[course.ID] = teacherIDs
	return course
}

func (d *fakeData) addLecture(course *models.Course, teacherID int64, start, end time.Time) *models.Lecture {
	lecNum := 0
	for _, l := range d.lectures {
		if l.CourseID == course.ID && l.LecNum > lecNum {
			lecNum = l.LecNum
		}
	}
	lecture := &models.Lecture{
		ID:          d.id(),
		LectureCode: "LEC_" + course.CourseCode + "_" + start.Format("0102150405"),
		CourseID:    course.ID, LectureTitle: "Lecture",
		ClassStart: start, ClassEnd: end,
		LecNum: lecNum + 1, TeacherID: teacherID, CreatedAt: time.Now(),
		CourseCode: course.CourseCode, CourseName: course.CourseName,
	}
	d.lectures[lecture.ID] = lecture
	return lecture
}

func (d *fakeData) addQuestion(lecture *models.Lecture, student *models.Student, text string) *models.Question {
	question := &models.Question{
		ID:           d.id(),
		QuestionCode: "Q_" + text,
		LectureID:    lecture.ID, StudentID: student.ID,
		QuestionText: text, AskedAt: time.Now(),
		Upvotes: 1, UpvotedBy: []int64{student.ID},
	}
	d.questions[question.ID] = question
	return question
}

func (d *fakeData) setMembership(courseID, studentID int64, status models.MembershipStatus, isTA bool) {
	d.memberships[pair{courseID, studentID}] = &models.CourseMembership{
		ID: d.id(), CourseID: courseID, StudentID: studentID,
		Status: status, IsTA: isTA,
		RequestedAt: time.Now(), UpdatedAt: time.Now(),
	}
}

func (d *fakeData) membership(courseID, studentID int64) *models.CourseMembership {
	return d.memberships[pair{courseID, studentID}]
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- UserStore ---

func (f fakeUserStore) CreateStudent(ctx context.Context, user *models.User, student *models.Student) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	for _, s := range f.students {
		if s.RollNo == student.RollNo {
			return apperrors.ErrRollNoAlreadyExists
		}
	}
	user.ID = f.id()
	user.Role = models.RoleStudent
	f.users[user.ID] = user
	student.ID = f.id()
	student.UserID = user.ID
	student.User = user
	f.students[student.ID] = student
	return nil
}

func (f fakeUserStore) CreateTeacher(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	for _, t := range f.teachers {
		if t.TeacherCode == teacher.TeacherCode {
			return apperrors.ErrTeacherCodeExists
		}
	}
	user.ID = f.id()
	user.Role = models.RoleTeacher
	f.users[user.ID] = user
	teacher.ID = f.id()
	teacher.UserID = user.ID
	teacher.User = user
	f.teachers[teacher.ID] = teacher
	return nil
}

func (f fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f fakeUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f fakeUserStore) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	for _, s := range f.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f fakeUserStore) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f fakeUserStore) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	for _, t := range f.teachers {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (f fakeUserStore) GetTeacherByCode(ctx context.Context, code string) (*models.Teacher, error) {
	for _, t := range f.teachers {
		if t.TeacherCode == code {
			return t, nil
		}
	}
	return nil, apperrors.ErrTeacherNotFound
}

func (f fakeUserStore) GetAllTeachers(ctx context.Context) ([]*models.Teacher, error) {
	var teachers []*models.Teacher
	for _, t := range f.teachers {
		teachers = append(teachers, t)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers, nil
}

func (f fakeUserStore) UpdateTeacherProfile(ctx context.Context, userID int64, name, email string) (*models.User, error) {
	user, ok := f.users[userID]
	if !ok || user.Role != models.RoleTeacher {
		return nil, apperrors.ErrTeacherNotFound
	}
	if email != "" {
		for _, u := range f.users {
			if u.ID != userID && u.Email == email {
				return nil, apperrors.ErrEmailAlreadyExists
			}
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}
	return user, nil
}

// --- CourseStore ---

func (f fakeCourseStore) Create(ctx context.Context, course *models.Course, teacherIDs []int64) error {
	for _, c := range f.courses {
		if c.CourseCode == course.CourseCode {
			return apperrors.ErrCourseAlreadyExists
		}
	}
	course.ID = f.id()
	course.CreatedAt = time.Now()
	f.courses[course.ID] = course
	f.courseTeachers[course.ID] = teacherIDs
	return nil
}

func (f fakeCourseStore) GetByCode(ctx context.Context, courseCode string) (*models.Course, error) {
	for _, c := range f.courses {
		if c.CourseCode == courseCode {
			return c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f fakeCourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f fakeCourseStore) GetByBatchBranch(ctx context.Context, batch models.Batch, branch models.Branch) ([]*models.Course, error) {
	var courses []*models.Course
	for _, c := range f.courses {
		if c.Batch == batch && c.Branch == branch {
			courses = append(courses, c)
		}
	}
	sortCourses(courses)
	return courses, nil
}

func (f fakeCourseStore) GetByTeacherID(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	var courses []*models.Course
	for courseID, teacherIDs := range f.courseTeachers {
		for _, id := range teacherIDs {
			if id == teacherID {
				courses = append(courses, f.courses[courseID])
				break
			}
		}
	}
	sortCourses(courses)
	return courses, nil
}

func (f fakeCourseStore) IsTeacherOnCourse(ctx context.Context, courseID, teacherID int64) (bool, error) {
	for _, id := range f.courseTeachers[courseID] {
		if id == teacherID {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeCourseStore) GetOwnerName(ctx context.Context, courseID int64) (string, error) {
	ids := f.courseTeachers[courseID]
	if len(ids) == 0 {
		return "", nil
	}
	if t, ok := f.teachers[ids[0]]; ok {
		return t.User.Name, nil
	}
	return "", nil
}

func sortCourses(courses []*models.Course) {
	sort.Slice(courses, func(i, j int) bool { return courses[i].CourseCode < courses[j].CourseCode })
}

// --- MembershipStore ---

func (f fakeMembershipStore) Get(ctx context.Context, courseID, studentID int64) (*models.CourseMembership, error) {
	if m, ok := f.memberships[pair{courseID, studentID}]; ok {
		return m, nil
	}
	return nil, nil
}

func (f fakeMembershipStore) Request(ctx context.Context, courseID, studentID int64) (bool, error) {
	key := pair{courseID, studentID}
	if m, ok := f.memberships[key]; ok {
		if m.Status != models.MembershipNone {
			return false, nil
		}
		m.Status = models.MembershipRequested
		return true, nil
	}
	f.setMembership(courseID, studentID, models.MembershipRequested, false)
	return true, nil
}

func (f fakeMembershipStore) Enroll(ctx context.Context, courseID, studentID int64) error {
	key := pair{courseID, studentID}
	if m, ok := f.memberships[key]; ok {
		m.Status = models.MembershipEnrolled
		return nil
	}
	f.setMembership(courseID, studentID, models.MembershipEnrolled, false)
	return nil
}

func (f fakeMembershipStore) ClearRequest(ctx context.Context, courseID, studentID int64) error {
	key := pair{courseID, studentID}
	m, ok := f.memberships[key]
	if !ok || m.Status != models.MembershipRequested {
		return nil
	}
	if m.IsTA {
		m.Status = models.MembershipNone
	} else {
		delete(f.memberships, key)
	}
	return nil
}

func (f fakeMembershipStore) PromoteTA(ctx context.Context, courseID, studentID int64) error {
	key := pair{courseID, studentID}
	if m, ok := f.memberships[key]; ok {
		m.IsTA = true
		return nil
	}
	f.setMembership(courseID, studentID, models.MembershipNone, true)
	return nil
}

func (f fakeMembershipStore) RemoveFromRoster(ctx context.Context, courseID, studentID int64) error {
	key := pair{courseID, studentID}
	m, ok := f.memberships[key]
	if !ok || m.Status != models.MembershipEnrolled {
		return nil
	}
	if m.IsTA {
		m.Status = models.MembershipNone
	} else {
		delete(f.memberships, key)
	}
	return nil
}

func (f fakeMembershipStore) ListMembers(ctx context.Context, courseID int64, status models.MembershipStatus) ([]*repositories.MemberRecord, error) {
	var records []*repositories.MemberRecord
	for _, m := range f.memberships {
		if m.CourseID == courseID && m.Status == status {
			records = append(records, f.memberRecord(m))
		}
	}
	sortMembers(records)
	return records, nil
}

func (f fakeMembershipStore) ListTAs(ctx context.Context, courseID int64) ([]*repositories.MemberRecord, error) {
	var records []*repositories.MemberRecord
	for _, m := range f.memberships {
		if m.CourseID == courseID && m.IsTA {
			records = append(records, f.memberRecord(m))
		}
	}
	sortMembers(records)
	return records, nil
}

func (f fakeMembershipStore) memberRecord(m *models.CourseMembership) *repositories.MemberRecord {
	record := &repositories.MemberRecord{StudentID: m.StudentID, Status: m.Status, IsTA: m.IsTA}
	if s, ok := f.students[m.StudentID]; ok {
		record.Name = s.User.Name
		record.RollNo = s.RollNo
	}
	return record
}

func sortMembers(records []*repositories.MemberRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
}

func (f fakeMembershipStore) CoursesForStudent(ctx context.Context, studentID int64, status models.MembershipStatus) ([]*models.Course, error) {
	var courses []*models.Course
	for _, m := range f.memberships {
		if m.StudentID == studentID && m.Status == status {
			courses = append(courses, f.courses[m.CourseID])
		}
	}
	sortCourses(courses)
	return courses, nil
}

func (f fakeMembershipStore) CountForStudent(ctx context.Context, studentID int64, status models.MembershipStatus) (int, error) {
	count := 0
	for _, m := range f.memberships {
		if m.StudentID == studentID && m.Status == status {
			count++
		}
	}
	return count, nil
}

func (f fakeMembershipStore) CountTAForStudent(ctx context.Context, studentID int64) (int, error) {
	count := 0
	for _, m := range f.memberships {
		if m.StudentID == studentID && m.IsTA {
			count++
		}
	}
	return count, nil
}

func (f fakeMembershipStore) IsTAForCourse(ctx context.Context, courseID, studentID int64) (bool, error) {
	m, ok := f.memberships[pair{courseID, studentID}]
	return ok && m.IsTA, nil
}

func (f fakeMembershipStore) IsEnrolled(ctx context.Context, courseID, studentID int64) (bool, error) {
	m, ok := f.memberships[pair{courseID, studentID}]
	return ok && m.Status == models.MembershipEnrolled, nil
}

func (f fakeMembershipStore) CountPendingForTeacher(ctx context.Context, teacherID int64) (int, error) {
	count := 0
	for courseID, teacherIDs := range f.courseTeachers {
		linked := false
		for _, id := range teacherIDs {
			if id == teacherID {
				linked = true
				break
			}
		}
		if !linked {
			continue
		}
		for _, m := range f.memberships {
			if m.CourseID == courseID && m.Status == models.MembershipRequested {
				count++
			}
		}
	}
	return count, nil
}

// --- LectureStore ---

func (f fakeLectureStore) Create(ctx context.Context, lecture *models.Lecture) error {
	for _, l := range f.lectures {
		if l.LectureCode == lecture.LectureCode {
			return repositories.ErrLectureCodeTaken
		}
	}
	lecNum := 0
	for _, l := range f.lectures {
		if l.CourseID == lecture.CourseID && l.LecNum > lecNum {
			lecNum = l.LecNum
		}
	}
	lecture.ID = f.id()
	lecture.LecNum = lecNum + 1
	lecture.CreatedAt = time.Now()
	f.lectures[lecture.ID] = lecture
	return nil
}

func (f fakeLectureStore) GetByCode(ctx context.Context, lectureCode string) (*models.Lecture, error) {
	for _, l := range f.lectures {
		if l.LectureCode == lectureCode {
			return l, nil
		}
	}
	return nil, apperrors.ErrLectureNotFound
}

func (f fakeLectureStore) GetByID(ctx context.Context, id int64) (*models.Lecture, error) {
	if l, ok := f.lectures[id]; ok {
		return l, nil
	}
	return nil, apperrors.ErrLectureNotFound
}

func (f fakeLectureStore) ListByCourse(ctx context.Context, courseID int64) ([]*models.Lecture, error) {
	var lectures []*models.Lecture
	for _, l := range f.lectures {
		if l.CourseID == courseID {
			lectures = append(lectures, l)
		}
	}
	sort.Slice(lectures, func(i, j int) bool { return lectures[i].LecNum < lectures[j].LecNum })
	return lectures, nil
}

func (f fakeLectureStore) ListByCourseIDs(ctx context.Context, courseIDs []int64) ([]*models.Lecture, error) {
	want := make(map[int64]bool, len(courseIDs))
	for _, id := range courseIDs {
		want[id] = true
	}
	var lectures []*models.Lecture
	for _, l := range f.lectures {
		if want[l.CourseID] {
			lectures = append(lectures, l)
		}
	}
	sort.Slice(lectures, func(i, j int) bool { return lectures[i].ClassStart.After(lectures[j].ClassStart) })
	return lectures, nil
}

func (f fakeLectureStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.lectures[id]; !ok {
		return apperrors.ErrLectureNotFound
	}
	delete(f.lectures, id)
	for qID, q := range f.questions {
		if q.LectureID == id {
			delete(f.questions, qID)
		}
	}
	return nil
}

func (f fakeLectureStore) AddAttendance(ctx context.Context, lectureID, studentID int64) error {
	f.attendance[pair{lectureID, studentID}] = true
	return nil
}

func (f fakeLectureStore) CountAttendance(ctx context.Context, lectureID int64) (int, error) {
	count := 0
	for key := range f.attendance {
		if key.a == lectureID {
			count++
		}
	}
	return count, nil
}

// --- QuestionStore ---

func (f fakeQuestionStore) Create(ctx context.Context, question *models.Question) error {
	for _, q := range f.questions {
		if q.QuestionCode == question.QuestionCode {
			return repositories.ErrQuestionCodeTaken
		}
	}
	question.ID = f.id()
	question.AskedAt = time.Now()
	question.Upvotes = 1
	question.UpvotedBy = []int64{question.StudentID}
	f.questions[question.ID] = question
	return nil
}

func (f fakeQuestionStore) GetByCode(ctx context.Context, questionCode string) (*models.Question, error) {
	for _, q := range f.questions {
		if q.QuestionCode == questionCode {
			return q, nil
		}
	}
	return nil, apperrors.ErrQuestionNotFound
}

func (f fakeQuestionStore) ListByLecture(ctx context.Context, lectureID int64) ([]*models.Question, error) {
	var questions []*models.Question
	for _, q := range f.questions {
		if q.LectureID == lectureID {
			questions = append(questions, f.withAnswers(q))
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (f fakeQuestionStore) ListByLectureAndStudent(ctx context.Context, lectureID, studentID int64) ([]*models.Question, error) {
	var questions []*models.Question
	for _, q := range f.questions {
		if q.LectureID == lectureID && q.StudentID == studentID {
			questions = append(questions, f.withAnswers(q))
		}
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, nil
}

func (f fakeQuestionStore) withAnswers(q *models.Question) *models.Question {
	q.Answers = nil
	for _, answerID := range f.questionAnswers[q.ID] {
		if a, ok := f.answers[answerID]; ok {
			q.Answers = append(q.Answers, a)
		}
	}
	return q
}

func (f fakeQuestionStore) UpdateText(ctx context.Context, id int64, text string) error {
	q, ok := f.questions[id]
	if !ok {
		return apperrors.ErrQuestionNotFound
	}
	q.QuestionText = text
	return nil
}

func (f fakeQuestionStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.questions[id]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	for _, answerID := range f.questionAnswers[id] {
		delete(f.answers, answerID)
	}
	delete(f.questionAnswers, id)
	delete(f.questions, id)
	return nil
}

func (f fakeQuestionStore) CountUnansweredByStudent(ctx context.Context, studentID int64) (int, error) {
	count := 0
	for _, q := range f.questions {
		if q.StudentID == studentID && !q.IsAnswered {
			count++
		}
	}
	return count, nil
}

// --- AnswerStore ---

func (f fakeAnswerStore) Create(ctx context.Context, questionID int64, answer *models.Answer) error {
	answer.ID = f.id()
	answer.CreatedAt = time.Now()
	f.answers[answer.ID] = answer
	f.questionAnswers[questionID] = append(f.questionAnswers[questionID], answer.ID)
	if q, ok := f.questions[questionID]; ok {
		q.IsAnswered = true
	}
	return nil
}

func (f fakeAnswerStore) ListByQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error) {
	var answers []*models.Answer
	for _, answerID := range f.questionAnswers[questionID] {
		if a, ok := f.answers[answerID]; ok {
			answers = append(answers, a)
		}
	}
	return answers, nil
}

func (f fakeAnswerStore) DeleteAllForQuestion(ctx context.Context, questionID int64) error {
	for _, answerID := range f.questionAnswers[questionID] {
		delete(f.answers, answerID)
	}
	delete(f.questionAnswers, questionID)
	if q, ok := f.questions[questionID]; ok {
		q.IsAnswered = false
	}
	return nil
}

func (f fakeAnswerStore) DeleteByID(ctx context.Context, answerID int64) error {
	if _, ok := f.answers[answerID]; !ok {
		return apperrors.ErrAnswerNotFound
	}
	delete(f.answers, answerID)
	for questionID, ids := range f.questionAnswers {
		kept := ids[:0]
		for _, id := range ids {
			if id != answerID {
				kept = append(kept, id)
			}
		}
		f.questionAnswers[questionID] = kept
	}
	return nil
}
