package service

import (
	"context"
	"errors"
	"testing"

	domain "placehub/internal/domain/placement"
	serviceInterfaces "placehub/internal/interfaces/service"

	"github.com/google/uuid"
)

func TestNotificationService_PostAndRoute(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	applicant := uuid.New()
	bystander := uuid.New()
	if err := env.profileRepo.Save(ctx, completeProfile(applicant)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	drive := postTestDrive(t, env, 7.5)

	if _, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: applicant,
		DriveID:   drive.DriveID,
	}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	notification, err := env.notifications.PostNotification(ctx, &serviceInterfaces.PostNotificationRequest{
		DriveID: drive.DriveID,
		Message: "Interview slots published",
	})
	if err != nil {
		t.Fatalf("PostNotification failed: %v", err)
	}
	if notification.DriveTitle != drive.Title {
		t.Errorf("Expected drive title %q, got %q", drive.Title, notification.DriveTitle)
	}

	// The applicant sees it.
	visible, err := env.notifications.ListNotificationsFor(ctx, applicant)
	if err != nil {
		t.Fatalf("ListNotificationsFor failed: %v", err)
	}
	if len(visible) != 1 || visible[0].Message != "Interview slots published" {
		t.Errorf("Expected the posted notification for the applicant, got %v", visible)
	}

	// A student who never applied sees nothing.
	hidden, err := env.notifications.ListNotificationsFor(ctx, bystander)
	if err != nil {
		t.Fatalf("ListNotificationsFor failed: %v", err)
	}
	if len(hidden) != 0 {
		t.Errorf("Expected no notifications for a non-applicant, got %d", len(hidden))
	}
}

func TestNotificationService_PostNotification_EmptyMessage(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	drive := postTestDrive(t, env, 7.5)

	_, err := env.notifications.PostNotification(ctx, &serviceInterfaces.PostNotificationRequest{
		DriveID: drive.DriveID,
		Message: "   ",
	})
	if !errors.Is(err, domain.ErrEmptyMessage) {
		t.Fatalf("Expected ErrEmptyMessage, got %v", err)
	}
}

func TestNotificationService_PostNotification_UnknownDrive(t *testing.T) {
	env := newTestEnv()

	_, err := env.notifications.PostNotification(context.Background(), &serviceInterfaces.PostNotificationRequest{
		DriveID: 42,
		Message: "hello",
	})
	if !errors.Is(err, domain.ErrDriveNotFound) {
		t.Fatalf("Expected ErrDriveNotFound, got %v", err)
	}
}

func TestNotificationService_VisibleImmediatelyAfterApply(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if err := env.profileRepo.Save(ctx, completeProfile(studentID)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	drive := postTestDrive(t, env, 7.5)

	// Notification exists before the student applies.
	if _, err := env.notifications.PostNotification(ctx, &serviceInterfaces.PostNotificationRequest{
		DriveID: drive.DriveID,
		Message: "Pre-placement talk on Friday",
	}); err != nil {
		t.Fatalf("PostNotification failed: %v", err)
	}

	if _, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: studentID,
		DriveID:   drive.DriveID,
	}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	visible, err := env.notifications.ListNotificationsFor(ctx, studentID)
	if err != nil {
		t.Fatalf("ListNotificationsFor failed: %v", err)
	}
	if len(visible) != 1 {
		t.Errorf("Expected notification visible right after apply, got %d", len(visible))
	}
}
