package domain

// Eligibility is the outcome of matching one profile against one drive.
type Eligibility struct {
	Eligible bool              `json:"eligible"`
	Reasons  []FailedCriterion `json:"reasons,omitempty"`
}

// CheckEligibility decides whether a profile may apply to a drive. It is a
// pure function of its arguments: identical inputs always produce identical
// output, and nothing is mutated.
//
// An incomplete profile is never eligible and yields the single reason
// CriterionProfileIncomplete. Otherwise the year, department and CGPA checks
// are evaluated independently and every failing criterion is reported.
func CheckEligibility(profile *StudentProfile, drive *Drive, resumeHosts []string) Eligibility {
	if profile == nil || !profile.IsComplete(resumeHosts) {
		return Eligibility{Eligible: false, Reasons: []FailedCriterion{CriterionProfileIncomplete}}
	}

	var reasons []FailedCriterion

	if !containsYear(drive.EligibleYears, profile.Year) {
		reasons = append(reasons, CriterionYear)
	}
	if !containsDepartment(drive.EligibleDepartments, profile.Department) {
		reasons = append(reasons, CriterionDepartment)
	}
	if profile.CGPA < drive.MinCGPA {
		reasons = append(reasons, CriterionCGPA)
	}

	return Eligibility{Eligible: len(reasons) == 0, Reasons: reasons}
}

func containsYear(years []Year, y Year) bool {
	for _, candidate := range years {
		if candidate == y {
			return true
		}
	}
	return false
}

func containsDepartment(departments []Department, d Department) bool {
	for _, candidate := range departments {
		if candidate == d {
			return true
		}
	}
	return false
}
