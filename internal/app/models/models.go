package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleTeacher RoleType = "teacher"
)

// Batch is the degree program a student (or course) belongs to
type Batch string

const (
	BatchMTech Batch = "M.Tech"
	BatchBTech Batch = "B.Tech"
	BatchPHD   Batch = "PHD"
	BatchMS    Batch = "MS"
)

// Branch is the department branch
type Branch string

const (
	BranchCSE Branch = "CSE"
	BranchECE Branch = "ECE"
)

// ValidBatch reports whether b is one of the known batches
func ValidBatch(b Batch) bool {
	switch b {
	case BatchMTech, BatchBTech, BatchPHD, BatchMS:
		return true
	}
	return false
}

// ValidBranch reports whether b is one of the known branches
func ValidBranch(b Branch) bool {
	switch b {
	case BranchCSE, BranchECE:
		return true
	}
	return false
}

// MembershipStatus is the enrollment state of a student for a course.
// A (course, student) pair has exactly one membership row, so a course can
// never be both requested and enrolled for the same student.
type MembershipStatus string

const (
	// MembershipRequested means the student asked to join and awaits approval
	MembershipRequested MembershipStatus = "requested"
	// MembershipEnrolled means the request was accepted
	MembershipEnrolled MembershipStatus = "enrolled"
	// MembershipNone keeps the row alive for TA-only students: a student can
	// hold TA status without being on the roster, and removing a student from
	// the roster does not revoke TA status.
	MembershipNone MembershipStatus = "none"
)
