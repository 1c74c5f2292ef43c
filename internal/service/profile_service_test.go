package service

import (
	"context"
	"errors"
	"testing"

	domain "placehub/internal/domain/placement"
	serviceInterfaces "placehub/internal/interfaces/service"

	"github.com/google/uuid"
)

func validSaveRequest(studentID uuid.UUID) *serviceInterfaces.SaveProfileRequest {
	return &serviceInterfaces.SaveProfileRequest{
		StudentID:      studentID,
		Year:           "III",
		RegisterNumber: "211521104001",
		RollNumber:     "21cs001",
		Department:     "CSE",
		CGPA:           8.2,
		ResumeLink:     "https://docs.google.com/document/d/xyz",
		Skills:         "Go, SQL",
		Visibility:     "public",
	}
}

func TestProfileService_SaveProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	profile, err := env.profiles.SaveProfile(ctx, validSaveRequest(studentID))
	if err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	// Roll number is uppercased before persisting.
	if profile.RollNumber != "21CS001" {
		t.Errorf("Expected roll number 21CS001, got %s", profile.RollNumber)
	}
	if !env.profiles.IsComplete(profile) {
		t.Error("Expected saved profile to be complete")
	}

	loaded, err := env.profiles.GetProfile(ctx, studentID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if loaded.RegisterNumber != "211521104001" {
		t.Errorf("Expected register number 211521104001, got %s", loaded.RegisterNumber)
	}
}

func TestProfileService_SaveProfile_Resave(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if _, err := env.profiles.SaveProfile(ctx, validSaveRequest(studentID)); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	req := validSaveRequest(studentID)
	req.CGPA = 9.1
	req.Skills = "Go, SQL, Kubernetes"
	if _, err := env.profiles.SaveProfile(ctx, req); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	loaded, err := env.profiles.GetProfile(ctx, studentID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if loaded.CGPA != 9.1 {
		t.Errorf("Expected overwritten CGPA 9.1, got %v", loaded.CGPA)
	}

	all, err := env.profileRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected a single profile row after resave, got %d", len(all))
	}
}

func TestProfileService_SaveProfile_Invalid(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	req := validSaveRequest(studentID)
	req.RegisterNumber = "12345"
	req.CGPA = 11

	_, err := env.profiles.SaveProfile(ctx, req)
	var validationErr *domain.ProfileValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ProfileValidationError, got %v", err)
	}
	if len(validationErr.Fields) != 2 {
		t.Errorf("Expected 2 field errors, got %d: %v", len(validationErr.Fields), validationErr.Fields)
	}

	// Nothing may be persisted on a rejected save.
	if _, err := env.profiles.GetProfile(ctx, studentID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("Expected ErrProfileNotFound after rejected save, got %v", err)
	}
}

func TestProfileService_SaveProfile_RejectedResumeHost(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := validSaveRequest(uuid.New())
	req.ResumeLink = "https://dropbox.example.com/resume.pdf"

	_, err := env.profiles.SaveProfile(ctx, req)
	var validationErr *domain.ProfileValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ProfileValidationError, got %v", err)
	}
	if validationErr.Fields[0].Field != "resume_link" {
		t.Errorf("Expected resume_link error, got %s", validationErr.Fields[0].Field)
	}
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.profiles.GetProfile(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("Expected ErrProfileNotFound, got %v", err)
	}
}
