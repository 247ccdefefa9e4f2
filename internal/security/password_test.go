package security

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")

	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "secret" || hash == "" {
		t.Fatalf("HashPassword() = %q, want a non-empty hash distinct from the input", hash)
	}

	if err := CheckPassword(hash, "secret"); err != nil {
		t.Errorf("CheckPassword() with the right password: %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Error("CheckPassword() accepted the wrong password")
	}
}
