package random

import (
	"regexp"
	"testing"
)

func TestToken(t *testing.T) {
	hexPattern := regexp.MustCompile(`^[0-9a-f]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token := Token()
		if !hexPattern.MatchString(token) {
			t.Fatalf("Token() = %q, want 12 lowercase hex chars", token)
		}
		if seen[token] {
			t.Fatalf("Token() repeated %q within 1000 draws", token)
		}
		seen[token] = true
	}
}

func TestLectureCode(t *testing.T) {
	tests := []struct {
		name       string
		courseCode string
		wantPrefix string
	}{
		{name: "plain code", courseCode: "CS101", wantPrefix: `^LEC_CS101_[0-9a-f]{12}$`},
		{name: "punctuation stripped", courseCode: "CS-101.B", wantPrefix: `^LEC_CS101B_[0-9a-f]{12}$`},
		{name: "spaces stripped", courseCode: "CS 101", wantPrefix: `^LEC_CS101_[0-9a-f]{12}$`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LectureCode(tt.courseCode)
			if !regexp.MustCompile(tt.wantPrefix).MatchString(got) {
				t.Errorf("LectureCode(%q) = %q, want match for %q", tt.courseCode, got, tt.wantPrefix)
			}
		})
	}
}

func TestQuestionCode(t *testing.T) {
	got := QuestionCode()
	if !regexp.MustCompile(`^Q_[0-9a-f]{12}$`).MatchString(got) {
		t.Errorf("QuestionCode() = %q, want Q_ prefix with 12 hex chars", got)
	}
}
