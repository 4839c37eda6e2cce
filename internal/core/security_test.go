// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("1234")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected argon2id encoding, got %q", hash)
	}

	ok, err := VerifyPassword("1234", hash)
	if err != nil || !ok {
		t.Fatalf("expected password to verify, ok=%v err=%v", ok, err)
	}

	ok, err = VerifyPassword("4321", hash)
	if err != nil || ok {
		t.Fatalf("expected wrong password to fail, ok=%v err=%v", ok, err)
	}

	other, err := HashPassword("1234")
	if err != nil {
		t.Fatal(err)
	}
	if other == hash {
		t.Fatalf("expected distinct salts to produce distinct hashes")
	}
}

func TestVerifyBcryptHashRequestsRehash(t *testing.T) {
	legacy, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	ok, newHash, err := VerifyPasswordWithRehash("secret", string(legacy))
	if err != nil || !ok {
		t.Fatalf("expected bcrypt hash to verify, ok=%v err=%v", ok, err)
	}
	if !strings.HasPrefix(newHash, "$argon2id$") {
		t.Fatalf("expected argon2id rehash, got %q", newHash)
	}

	ok, _, err = VerifyPasswordWithRehash("wrong", string(legacy))
	if err != nil || ok {
		t.Fatalf("expected mismatch, ok=%v err=%v", ok, err)
	}
}

func TestVerifyPasswordTimingSafeWithoutHash(t *testing.T) {
	ok, newHash, err := VerifyPasswordTimingSafe("anything", nil)
	if ok || newHash != "" || err != nil {
		t.Fatalf("expected silent failure, got ok=%v hash=%q err=%v", ok, newHash, err)
	}
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	if _, err := VerifyPassword("x", "plaintext"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}

func TestAuthorize(t *testing.T) {
	admin := &Identity{UserID: 1, Role: RoleAdministrator}
	user := &Identity{UserID: 2, Role: RoleUser}

	if err := Authorize(admin, RoleAdministrator); err != nil {
		t.Errorf("admin should pass: %v", err)
	}
	if err := Authorize(user, RoleAdministrator); err == nil {
		t.Errorf("user should be forbidden")
	}
	if err := Authorize(nil, RoleAdministrator); err == nil {
		t.Errorf("missing identity should be unauthorized")
	}
	if err := Authorize(user, RoleAdministrator, RoleUser); err != nil {
		t.Errorf("user should pass when listed: %v", err)
	}
	if !admin.IsAdmin() || user.IsAdmin() {
		t.Errorf("IsAdmin mismatch")
	}
}
