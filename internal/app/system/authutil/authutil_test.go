package authutil_test

import (
	"testing"

	"github.com/dalemusser/tenanthub/internal/app/system/authutil"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := authutil.HashPassword("SecurePass123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "SecurePass123" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !authutil.CheckPassword(hash, "SecurePass123") {
		t.Error("CheckPassword rejected the correct password")
	}
	if authutil.CheckPassword(hash, "WrongPass123") {
		t.Error("CheckPassword accepted a wrong password")
	}
	if authutil.CheckPassword(hash, "") {
		t.Error("CheckPassword accepted an empty password")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if authutil.CheckPassword("not-a-bcrypt-hash", "SecurePass123") {
		t.Error("CheckPassword accepted a malformed hash")
	}
}
