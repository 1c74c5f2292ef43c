package service

import (
	"context"
	"errors"
	"testing"

	"placehub/internal/domain/user"
)

func registerRequest(username, registerNumber string) *user.RegisterRequest {
	return &user.RegisterRequest{
		Username:       username,
		Email:          username + "@college.example",
		RegisterNumber: registerNumber,
		Password:       "student123",
	}
}

func TestUserService_Register(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	u, err := env.users.Register(ctx, registerRequest("arun", "211521104001"))
	if err != nil {
		t.Fatalf("Expected registration to succeed, got %v", err)
	}

	if u.Role != user.RoleStudent {
		t.Errorf("Expected student role, got %s", u.Role)
	}
	if u.PasswordDigest == "student123" {
		t.Error("Expected password to be stored as a digest, got plaintext")
	}
	if !u.CheckPassword("student123") {
		t.Error("Expected stored digest to match the password")
	}
	if u.CheckPassword("student124") {
		t.Error("Expected digest not to match a different password")
	}
}

func TestUserService_Register_SaltedDigests(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.users.Register(ctx, registerRequest("arun", "211521104001"))
	if err != nil {
		t.Fatalf("First registration failed: %v", err)
	}
	second, err := env.users.Register(ctx, registerRequest("priya", "211521104002"))
	if err != nil {
		t.Fatalf("Second registration failed: %v", err)
	}

	// Both accounts share the password; the stored digests must still differ.
	if first.PasswordDigest == second.PasswordDigest {
		t.Error("Expected per-account salted digests, got identical values")
	}
}

func TestUserService_Register_Duplicates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	if _, err := env.users.Register(ctx, registerRequest("arun", "211521104001")); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}

	if _, err := env.users.Register(ctx, registerRequest("arun", "211521104002")); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
	if _, err := env.users.Register(ctx, registerRequest("priya", "211521104001")); !errors.Is(err, ErrRegisterNumberUsed) {
		t.Errorf("Expected ErrRegisterNumberUsed, got %v", err)
	}
}

func TestUserService_Register_InvalidRegisterNumber(t *testing.T) {
	env := newTestEnv()

	_, err := env.users.Register(context.Background(), registerRequest("arun", "12345"))
	if err == nil {
		t.Fatal("Expected validation error for short register number, got nil")
	}
}

func TestUserService_Authenticate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	registered, err := env.users.Register(ctx, registerRequest("arun", "211521104001"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	auth, err := env.users.Authenticate(ctx, &user.LoginRequest{
		Username: "arun",
		Password: "student123",
		Role:     user.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Expected login to succeed, got %v", err)
	}
	if !auth.IsAuthenticated || auth.UserID != registered.ID {
		t.Errorf("Unexpected auth data: %+v", auth)
	}

	// Wrong password.
	if _, err := env.users.Authenticate(ctx, &user.LoginRequest{
		Username: "arun",
		Password: "wrong",
		Role:     user.RoleStudent,
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	// Student credentials on the admin form.
	if _, err := env.users.Authenticate(ctx, &user.LoginRequest{
		Username: "arun",
		Password: "student123",
		Role:     user.RoleAdmin,
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for role mismatch, got %v", err)
	}
}
