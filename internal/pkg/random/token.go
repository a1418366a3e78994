// Package random generates the short opaque tokens used as public ids for
// lectures and questions. Tokens are random rather than derived from business
// fields, so two submissions in the same instant can never collide on id;
// uniqueness is still enforced by a database index and callers retry on a
// duplicate insert.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const tokenBytes = 6

// Token returns a random lowercase hex token.
func Token() string {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// nothing sensible to return.
		panic(fmt.Sprintf("random: reading entropy: %v", err))
	}
	return hex.EncodeToString(buf)
}

// LectureCode returns a public lecture id scoped to a course,
// e.g. "LEC_CS101_3f9a2c44b1d0".
func LectureCode(courseCode string) string {
	return fmt.Sprintf("LEC_%s_%s", sanitize(courseCode), Token())
}

// QuestionCode returns a public question id, e.g. "Q_8c1e99aa02f4".
func QuestionCode() string {
	return "Q_" + Token()
}

// sanitize strips everything but letters and digits so course codes with
// spaces or punctuation still produce clean ids.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
