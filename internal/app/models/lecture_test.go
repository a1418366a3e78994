package models

import (
	"testing"
	"time"
)

func TestLectureWindows(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	lecture := &Lecture{ClassStart: start, ClassEnd: start.Add(time.Hour)}

	tests := []struct {
		name      string
		now       time.Time
		isCurrent bool
		hasEnded  bool
	}{
		{name: "long before class", now: start.Add(-time.Hour)},
		{name: "window opens", now: start.Add(-JoinWindow), isCurrent: true},
		{name: "just before window", now: start.Add(-JoinWindow - time.Second)},
		{name: "during class", now: start.Add(30 * time.Minute), isCurrent: true},
		{name: "at class end", now: start.Add(time.Hour), isCurrent: true},
		{name: "after class end", now: start.Add(time.Hour + time.Second), hasEnded: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lecture.IsCurrent(tt.now); got != tt.isCurrent {
				t.Errorf("IsCurrent(%v) = %v, want %v", tt.now, got, tt.isCurrent)
			}
			if got := lecture.HasEnded(tt.now); got != tt.hasEnded {
				t.Errorf("HasEnded(%v) = %v, want %v", tt.now, got, tt.hasEnded)
			}
		})
	}
}

func TestCourseDurations(t *testing.T) {
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	course := &Course{ValidFrom: from, ValidUntil: from.AddDate(0, 0, 90)}

	if got := course.Duration(); got != 90*24*time.Hour {
		t.Errorf("Duration() = %v, want 90 days", got)
	}

	now := from.AddDate(0, 0, 30)
	if got := course.RemainingTime(now); got != 60*24*time.Hour {
		t.Errorf("RemainingTime() = %v, want 60 days", got)
	}
	// negative once the course is over
	if got := course.RemainingTime(from.AddDate(0, 0, 91)); got >= 0 {
		t.Errorf("RemainingTime() past the end = %v, want negative", got)
	}
}

func TestQuestionEditable(t *testing.T) {
	q := &Question{}
	if !q.Editable() {
		t.Error("unanswered question not editable")
	}
	q.IsAnswered = true
	if q.Editable() {
		t.Error("answered question still editable")
	}
}

func TestValidBatchAndBranch(t *testing.T) {
	for _, b := range []Batch{BatchMTech, BatchBTech, BatchPHD, BatchMS} {
		if !ValidBatch(b) {
			t.Errorf("ValidBatch(%q) = false", b)
		}
	}
	if ValidBatch("D.Phil") {
		t.Error(`ValidBatch("D.Phil") = true`)
	}

	for _, b := range []Branch{BranchCSE, BranchECE} {
		if !ValidBranch(b) {
			t.Errorf("ValidBranch(%q) = false", b)
		}
	}
	if ValidBranch("EEE") {
		t.Error(`ValidBranch("EEE") = true`)
	}
}
