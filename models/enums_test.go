package models

import "testing"

func TestHumanize(t *testing.T) {
	tests := []struct {
		tag      string
		expected string
	}{
		{"safety_yes", "Yes"},
		{"safety_no", "No"},
		{"safety_na", "N/A"},
		{"tc_na", "N/A"},
		{"qa_n_a", "N/A"},
		{"qa_pass", "Pass"},
		{"qa_pending", "Pending"},
		{"swppp_yes", "Yes"},
		{"phasing_no", "No"},
		{"", ""},
		{"yes", "Yes"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := Humanize(tt.tag); got != tt.expected {
				t.Errorf("Humanize(%q) = %q, want %q", tt.tag, got, tt.expected)
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		tag      string
		expected string
	}{
		{"no_deficiency", "No deficiency"},
		{"yes_deficiency", "Yes deficiency"},
		{"qc_review", "Qc review"},
		{"as_built", "As built"},
		{"pass", "Pass"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StatusLabel(tt.tag); got != tt.expected {
			t.Errorf("StatusLabel(%q) = %q, want %q", tt.tag, got, tt.expected)
		}
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{
		{Field: "Proof rolled?", Message: "answer must be Yes, No or N/A"},
		{Field: "start_date", Message: "can't be blank"},
	}
	want := "Proof rolled? answer must be Yes, No or N/A; start_date can't be blank"
	if got := errs.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := (ValidationErrors{}).Error(); got != "" {
		t.Errorf("empty Error() = %q, want empty", got)
	}
}

func TestHumanizeQaResult(t *testing.T) {
	tests := []struct {
		result   QaResult
		expected string
	}{
		{QaPass, "Pass"},
		{QaFail, "Fail"},
		{QaPending, "Pending"},
		{QaNA, "N/A"},
	}
	for _, tt := range tests {
		if got := HumanizeQaResult(tt.result); got != tt.expected {
			t.Errorf("HumanizeQaResult(%q) = %q, want %q", tt.result, got, tt.expected)
		}
	}
}

func TestValidReportStatus(t *testing.T) {
	for _, s := range []ReportStatus{StatusCreating, StatusQCReview, StatusRevise, StatusAuthorization} {
		if !ValidReportStatus(s) {
			t.Errorf("ValidReportStatus(%q) = false", s)
		}
	}
	for _, s := range []ReportStatus{"", "draft", "approved"} {
		if ValidReportStatus(s) {
			t.Errorf("ValidReportStatus(%q) = true", s)
		}
	}
}

func TestValidReportResult(t *testing.T) {
	for _, r := range []ReportResult{ResultFail, ResultPending, ResultPass, ResultAsBuilt} {
		if !ValidReportResult(r) {
			t.Errorf("ValidReportResult(%q) = false", r)
		}
	}
	if ValidReportResult("incomplete") {
		t.Error(`ValidReportResult("incomplete") = true`)
	}
}
