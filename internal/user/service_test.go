package user

import (
	"strings"
	"testing"
)

func TestRegister(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	u, err := svc.Register("alice", "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected an assigned id")
	}
	if u.Username != "alice" || u.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Password == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if !strings.HasPrefix(u.Password, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", u.Password)
	}
}

func TestRegister_Duplicates(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	if _, err := svc.Register("alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Register("alice", "other@example.com", "secret123"); err != ErrUsernameExists {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if _, err := svc.Register("bob", "alice@example.com", "secret123"); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	if _, err := svc.Register("alice", "alice@example.com", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u, err := svc.Authenticate("alice", "secret123")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.Authenticate("alice", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate("nobody", "secret123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
