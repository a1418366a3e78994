package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret99")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hashed == "s3cret99" {
		t.Fatal("HashPassword() returned the plaintext")
	}

	if !CheckPassword(hashed, "s3cret99") {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hashed, "wrong") {
		t.Error("CheckPassword() accepted a wrong password")
	}
	if CheckPassword("not-a-bcrypt-hash", "s3cret99") {
		t.Error("CheckPassword() accepted a malformed hash")
	}
}
