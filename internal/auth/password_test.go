package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_Format(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash missing argon2id prefix: %s", hash)
	}
	if parts := strings.Split(hash, "$"); len(parts) != 6 {
		t.Errorf("hash has %d sections, want 6 (PHC format)", len(parts))
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	h1, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("first hash: %v", err)
	}
	h2, err := HashPassword("same password")
	if err != nil {
		t.Fatalf("second hash: %v", err)
	}

	if h1 == h2 {
		t.Error("two hashes of the same password must differ (random salt)")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	match, err := VerifyPassword("secret123", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if !match {
		t.Error("correct password did not verify")
	}

	match, err = VerifyPassword("secret124", hash)
	if err != nil {
		t.Fatalf("VerifyPassword failed: %v", err)
	}
	if match {
		t.Error("wrong password verified")
	}
}

func TestVerifyPassword_MalformedHashes(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not phc", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536,t=3,p=4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyPassword("anything", tt.hash); err == nil {
				t.Error("expected error for malformed hash")
			}
		})
	}
}

func TestQuickHash_StableAndShort(t *testing.T) {
	a := QuickHash("interests:go,databases")
	b := QuickHash("interests:go,databases")
	c := QuickHash("interests:python")

	if a != b {
		t.Error("QuickHash must be deterministic")
	}
	if a == c {
		t.Error("different inputs should not collide")
	}
	if len(a) != 32 {
		t.Errorf("QuickHash length = %d, want 32 hex chars", len(a))
	}
}
