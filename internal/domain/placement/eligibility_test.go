package domain

import (
	"reflect"
	"testing"
	"time"
)

func completeProfile() *StudentProfile {
	return &StudentProfile{
		Year:           YearIII,
		RegisterNumber: "123456789012",
		RollNumber:     "23CS157",
		Department:     DeptCSE,
		CGPA:           8.2,
		ResumeLink:     "https://drive.google.com/file/d/abc123",
		Skills:         "Go, SQL, DSA",
		Visibility:     VisibilityPublic,
	}
}

func sampleDrive() *Drive {
	return &Drive{
		DriveID:             1,
		Title:               "Backend Engineer Intern",
		Description:         "Summer internship",
		RegistrationLink:    "https://example.com/apply",
		Deadline:            time.Now().Add(30 * 24 * time.Hour),
		EligibleYears:       []Year{YearIII, YearIV},
		EligibleDepartments: []Department{DeptCSE, DeptIT},
		MinCGPA:             7.5,
		PostedAt:            time.Now(),
	}
}

func TestCheckEligibility_Eligible(t *testing.T) {
	result := CheckEligibility(completeProfile(), sampleDrive(), DefaultResumeHosts)

	if !result.Eligible {
		t.Fatalf("Expected eligible, got reasons %v", result.Reasons)
	}
	if len(result.Reasons) != 0 {
		t.Errorf("Expected no reasons for an eligible profile, got %v", result.Reasons)
	}
}

func TestCheckEligibility_CGPATooLow(t *testing.T) {
	drive := sampleDrive()
	drive.MinCGPA = 9.0

	result := CheckEligibility(completeProfile(), drive, DefaultResumeHosts)

	if result.Eligible {
		t.Fatal("Expected ineligible when minimum CGPA is 9.0")
	}
	expected := []FailedCriterion{CriterionCGPA}
	if !reflect.DeepEqual(result.Reasons, expected) {
		t.Errorf("Expected reasons %v, got %v", expected, result.Reasons)
	}
}

func TestCheckEligibility_ReportsEveryFailingCriterion(t *testing.T) {
	profile := completeProfile()
	profile.Year = YearI
	profile.Department = DeptMECH
	profile.CGPA = 6.0

	result := CheckEligibility(profile, sampleDrive(), DefaultResumeHosts)

	if result.Eligible {
		t.Fatal("Expected ineligible profile")
	}
	if len(result.Reasons) != 3 {
		t.Fatalf("Expected all three failing criteria reported, got %v", result.Reasons)
	}
	want := map[FailedCriterion]bool{CriterionYear: true, CriterionDepartment: true, CriterionCGPA: true}
	for _, reason := range result.Reasons {
		if !want[reason] {
			t.Errorf("Unexpected reason %q", reason)
		}
	}
}

func TestCheckEligibility_IncompleteProfile(t *testing.T) {
	profile := completeProfile()
	profile.Skills = ""

	result := CheckEligibility(profile, sampleDrive(), DefaultResumeHosts)

	if result.Eligible {
		t.Fatal("Expected incomplete profile to be ineligible")
	}
	expected := []FailedCriterion{CriterionProfileIncomplete}
	if !reflect.DeepEqual(result.Reasons, expected) {
		t.Errorf("Expected single profile_incomplete reason, got %v", result.Reasons)
	}
}

func TestCheckEligibility_NilProfile(t *testing.T) {
	result := CheckEligibility(nil, sampleDrive(), DefaultResumeHosts)

	if result.Eligible {
		t.Fatal("Expected nil profile to be ineligible")
	}
	if len(result.Reasons) != 1 || result.Reasons[0] != CriterionProfileIncomplete {
		t.Errorf("Expected profile_incomplete reason, got %v", result.Reasons)
	}
}

func TestCheckEligibility_Pure(t *testing.T) {
	profile := completeProfile()
	drive := sampleDrive()

	first := CheckEligibility(profile, drive, DefaultResumeHosts)
	second := CheckEligibility(profile, drive, DefaultResumeHosts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results for identical inputs, got %v and %v", first, second)
	}
}

func TestStudentProfile_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StudentProfile)
		field  string
	}{
		{"short register number", func(p *StudentProfile) { p.RegisterNumber = "12345" }, "register_number"},
		{"non-numeric register number", func(p *StudentProfile) { p.RegisterNumber = "12345678901a" }, "register_number"},
		{"wrong letter count in roll number", func(p *StudentProfile) { p.RollNumber = "23CSE157" }, "roll_number"},
		{"cgpa above range", func(p *StudentProfile) { p.CGPA = 10.5 }, "cgpa"},
		{"cgpa below range", func(p *StudentProfile) { p.CGPA = -0.1 }, "cgpa"},
		{"unapproved resume host", func(p *StudentProfile) { p.ResumeLink = "https://example.com/resume.pdf" }, "resume_link"},
		{"missing skills", func(p *StudentProfile) { p.Skills = "  " }, "skills"},
		{"unknown department", func(p *StudentProfile) { p.Department = "AERO" }, "department"},
		{"unknown year", func(p *StudentProfile) { p.Year = "V" }, "year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := completeProfile()
			tt.mutate(profile)

			errs := profile.FieldErrors(DefaultResumeHosts)
			if len(errs) == 0 {
				t.Fatal("Expected a validation error, got none")
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error on field %q, got %v", tt.field, errs)
			}
		})
	}
}

func TestStudentProfile_CompleteAcceptsValidFields(t *testing.T) {
	profile := completeProfile()
	profile.RegisterNumber = "123456789012"
	profile.RollNumber = NormalizeRollNumber("23cs157")

	if profile.RollNumber != "23CS157" {
		t.Errorf("Expected roll number normalized to 23CS157, got %s", profile.RollNumber)
	}
	if !profile.IsComplete(DefaultResumeHosts) {
		t.Errorf("Expected complete profile, got errors %v", profile.FieldErrors(DefaultResumeHosts))
	}
}

func TestStudentProfile_CertificationsOptional(t *testing.T) {
	profile := completeProfile()
	profile.Certifications = ""

	if !profile.IsComplete(DefaultResumeHosts) {
		t.Errorf("Certifications are optional; got errors %v", profile.FieldErrors(DefaultResumeHosts))
	}
}
