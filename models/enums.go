package models

import "strings"

// ReportStatus is the workflow state of a report.
type ReportStatus string

const (
	StatusCreating      ReportStatus = "creating"
	StatusQCReview      ReportStatus = "qc_review"
	StatusRevise        ReportStatus = "revise"
	StatusAuthorization ReportStatus = "authorization"
)

func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case StatusCreating, StatusQCReview, StatusRevise, StatusAuthorization:
		return true
	}
	return false
}

// ReportResult is the pass/fail outcome. fail, pending and pass are derived
// automatically; as_built is set only by the manual archival flow.
type ReportResult string

const (
	ResultFail    ReportResult = "fail"
	ResultPending ReportResult = "pending"
	ResultPass    ReportResult = "pass"
	ResultAsBuilt ReportResult = "as_built"
)

func ValidReportResult(r ReportResult) bool {
	switch r {
	case ResultFail, ResultPending, ResultPass, ResultAsBuilt:
		return true
	}
	return false
}

// DeficiencyStatus grades any deficiency observed during the shift. CDR and
// NCR are formal deficiency reports and force an automatic fail.
type DeficiencyStatus string

const (
	NoDeficiency  DeficiencyStatus = "no_deficiency"
	YesDeficiency DeficiencyStatus = "yes_deficiency"
	DeficiencyCDR DeficiencyStatus = "cdr"
	DeficiencyNCR DeficiencyStatus = "ncr"
)

// Compliance enums. Each value carries a short prefix so the columns stay
// self-describing in raw SQL output; Humanize strips the prefix for
// rendering.
type (
	TrafficControl     string
	Environmental      string
	Security           string
	SafetyIncident     string
	AirOpsCoordination string
	SwpppControls      string
	PhasingCompliance  string
)

const (
	TrafficControlYes TrafficControl = "tc_yes"
	TrafficControlNo  TrafficControl = "tc_no"
	TrafficControlNA  TrafficControl = "tc_na"

	EnvironmentalYes Environmental = "env_yes"
	EnvironmentalNo  Environmental = "env_no"
	EnvironmentalNA  Environmental = "env_na"

	SecurityYes Security = "sec_yes"
	SecurityNo  Security = "sec_no"
	SecurityNA  Security = "sec_na"

	SafetyIncidentYes SafetyIncident = "safety_yes"
	SafetyIncidentNo  SafetyIncident = "safety_no"
	SafetyIncidentNA  SafetyIncident = "safety_na"

	AirOpsYes AirOpsCoordination = "air_yes"
	AirOpsNo  AirOpsCoordination = "air_no"
	AirOpsNA  AirOpsCoordination = "air_na"

	SwpppYes SwpppControls = "swppp_yes"
	SwpppNo  SwpppControls = "swppp_no"
	SwpppNA  SwpppControls = "swppp_na"

	PhasingYes PhasingCompliance = "phasing_yes"
	PhasingNo  PhasingCompliance = "phasing_no"
	PhasingNA  PhasingCompliance = "phasing_na"
)

// QaType names the test performed; free text in practice, inspectors type
// the lab designation.
type QaType string

// QaResult is the outcome of one QA test.
type QaResult string

const (
	QaPass    QaResult = "qa_pass"
	QaFail    QaResult = "qa_fail"
	QaPending QaResult = "qa_pending"
	QaNA      QaResult = "qa_n_a"
)

// Humanize renders a prefixed enum value for display: the segment after the
// last underscore, capitalized. An "_na" or "_n_a" suffix renders as "N/A",
// so safety_na and qa_n_a come out the same.
func Humanize(tag string) string {
	if tag == "" {
		return ""
	}
	if strings.HasSuffix(tag, "_n_a") || strings.HasSuffix(tag, "_na") || tag == "na" {
		return "N/A"
	}
	if i := strings.LastIndex(tag, "_"); i >= 0 {
		tag = tag[i+1:]
	}
	return capitalize(tag)
}

// StatusLabel renders a snake_case value as a sentence-case label for
// documents and listings: underscores to spaces, first letter capitalized,
// e.g. no_deficiency becomes "No deficiency".
func StatusLabel(tag string) string {
	return capitalize(strings.ReplaceAll(tag, "_", " "))
}

// HumanizeQaResult renders a QA result for documents: Pass, Fail, Pending
// or N/A.
func HumanizeQaResult(r QaResult) string {
	return Humanize(string(r))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FieldError is one validation failure on a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects per-field failures for a 422 response.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Field + " " + e.Message
	}
	return strings.Join(parts, "; ")
}
