package store

import (
	"testing"
)

func TestAuthenticateUser(t *testing.T) {
	s := newTestStore(t)

	// Nobody signed up yet
	ok, err := s.AuthenticateUser("a", "b")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if ok {
		t.Error("expected authentication to fail before signup")
	}

	if err := s.CreateUser("a", "b"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	ok, err = s.AuthenticateUser("a", "b")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !ok {
		t.Error("expected authentication to succeed with matching credentials")
	}

	ok, err = s.AuthenticateUser("a", "wrong")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if ok {
		t.Error("expected authentication to fail with the wrong password")
	}
}

func TestCreateUserAllowsDuplicates(t *testing.T) {
	s := newTestStore(t)

	// Usernames are not unique; the legacy schema never enforced it
	if err := s.CreateUser("sam", "one"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := s.CreateUser("sam", "two"); err != nil {
		t.Errorf("expected duplicate username to be allowed, got %v", err)
	}

	// Both credential rows authenticate
	for _, password := range []string{"one", "two"} {
		ok, err := s.AuthenticateUser("sam", password)
		if err != nil {
			t.Fatalf("authenticate failed: %v", err)
		}
		if !ok {
			t.Errorf("expected password %q to authenticate", password)
		}
	}
}
