package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is the aggregate root for one inspection day/shift (a DIR). It
// owns the tabular child entries, the workflow status and the derived
// result.
type Report struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DirNumber string    `gorm:"size:50" json:"dir_number"`

	StartDate  *time.Time `gorm:"index" json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	ShiftStart string     `gorm:"size:20" json:"shift_start,omitempty"`
	ShiftEnd   string     `gorm:"size:20" json:"shift_end,omitempty"`

	ProjectID *uuid.UUID `gorm:"type:uuid;index:idx_reports_project_status" json:"project_id"`
	Project   *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	PhaseID   *uuid.UUID `gorm:"type:uuid;index" json:"phase_id"`
	Phase     *Phase     `gorm:"foreignKey:PhaseID" json:"phase,omitempty"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Status ReportStatus `gorm:"size:20;not null;default:'creating';index:idx_reports_project_status;index" json:"status"`
	Result ReportResult `gorm:"size:20;not null;default:'pending';index" json:"result"`

	// Three weather reading slots, taken across the shift.
	Temp1           *int   `json:"temp_1,omitempty"`
	Temp2           *int   `json:"temp_2,omitempty"`
	Temp3           *int   `json:"temp_3,omitempty"`
	Wind1           string `gorm:"size:50" json:"wind_1,omitempty"`
	Wind2           string `gorm:"size:50" json:"wind_2,omitempty"`
	Wind3           string `gorm:"size:50" json:"wind_3,omitempty"`
	Precip1         string `gorm:"size:50" json:"precip_1,omitempty"`
	Precip2         string `gorm:"size:50" json:"precip_2,omitempty"`
	Precip3         string `gorm:"size:50" json:"precip_3,omitempty"`
	Visibility1     string `gorm:"size:50" json:"visibility_1,omitempty"`
	Visibility2     string `gorm:"size:50" json:"visibility_2,omitempty"`
	Visibility3     string `gorm:"size:50" json:"visibility_3,omitempty"`
	WeatherSummary1 string `gorm:"size:100" json:"weather_summary_1,omitempty"`
	WeatherSummary2 string `gorm:"size:100" json:"weather_summary_2,omitempty"`
	WeatherSummary3 string `gorm:"size:100" json:"weather_summary_3,omitempty"`

	SurfaceConditions string `gorm:"size:255" json:"surface_conditions,omitempty"`

	Contractor   string `gorm:"size:255" json:"contractor,omitempty"`
	PlanSheet    string `gorm:"size:255" json:"plan_sheet,omitempty"`
	RelevantDocs string `gorm:"size:255" json:"relevant_docs,omitempty"`
	StationStart string `gorm:"size:100" json:"station_start,omitempty"`
	StationEnd   string `gorm:"size:100" json:"station_end,omitempty"`

	// Optional GPS fix, checked against the project site boundary.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	DeficiencyStatus DeficiencyStatus `gorm:"size:20;default:'no_deficiency'" json:"deficiency_status"`
	DeficiencyDesc   string           `gorm:"type:text" json:"deficiency_desc,omitempty"`

	TrafficControl        TrafficControl     `gorm:"size:10;default:'tc_na'" json:"traffic_control"`
	TrafficControlNote    string             `gorm:"type:text" json:"traffic_control_note,omitempty"`
	Environmental         Environmental      `gorm:"size:10;default:'env_na'" json:"environmental"`
	EnvironmentalNote     string             `gorm:"type:text" json:"environmental_note,omitempty"`
	Security              Security           `gorm:"size:10;default:'sec_na'" json:"security"`
	SecurityNote          string             `gorm:"type:text" json:"security_note,omitempty"`
	SafetyIncident        SafetyIncident     `gorm:"size:10;default:'safety_no'" json:"safety_incident"`
	SafetyDesc            string             `gorm:"type:text" json:"safety_desc,omitempty"`
	AirOpsCoordination    AirOpsCoordination `gorm:"size:10;default:'air_na'" json:"air_ops_coordination"`
	AirOpsNote            string             `gorm:"type:text" json:"air_ops_note,omitempty"`
	SwpppControls         SwpppControls      `gorm:"size:10;default:'swppp_na'" json:"swppp_controls"`
	SwpppNote             string             `gorm:"type:text" json:"swppp_note,omitempty"`
	PhasingCompliance     PhasingCompliance  `gorm:"size:12;default:'phasing_na'" json:"phasing_compliance"`
	PhasingComplianceNote string             `gorm:"type:text" json:"phasing_compliance_note,omitempty"`

	Commentary           string `gorm:"type:text" json:"commentary,omitempty"`
	AdditionalActivities string `gorm:"type:text" json:"additional_activities,omitempty"`
	AdditionalInfo       string `gorm:"type:text" json:"additional_info,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PlacedQuantities  []PlacedQuantity   `gorm:"foreignKey:ReportID" json:"placed_quantities,omitempty"`
	EquipmentEntries  []EquipmentEntry   `gorm:"foreignKey:ReportID" json:"equipment_entries,omitempty"`
	CrewEntries       []CrewEntry        `gorm:"foreignKey:ReportID" json:"crew_entries,omitempty"`
	QaEntries         []QaEntry          `gorm:"foreignKey:ReportID" json:"qa_entries,omitempty"`
	ChecklistEntries  []ChecklistEntry   `gorm:"foreignKey:ReportID" json:"checklist_entries,omitempty"`
	ReportAttachments []ReportAttachment `gorm:"foreignKey:ReportID" json:"report_attachments,omitempty"`
	ActivityLogs      []ActivityLog      `gorm:"foreignKey:ReportID" json:"activity_logs,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

// SetDefaults backfills the workflow fields on a new record.
func (r *Report) SetDefaults() {
	if r.Status == "" {
		r.Status = StatusCreating
	}
	if r.Result == "" {
		r.Result = ResultPending
	}
	if r.DeficiencyStatus == "" {
		r.DeficiencyStatus = NoDeficiency
	}
}

// Validate enforces the required associations and fields.
func (r *Report) Validate() ValidationErrors {
	var errs ValidationErrors
	if r.StartDate == nil {
		errs = append(errs, FieldError{Field: "start_date", Message: "can't be blank"})
	}
	if r.ProjectID == nil || *r.ProjectID == uuid.Nil {
		errs = append(errs, FieldError{Field: "project", Message: "must exist"})
	}
	if r.PhaseID == nil || *r.PhaseID == uuid.Nil {
		errs = append(errs, FieldError{Field: "phase", Message: "must exist"})
	}
	if r.Status != "" && !ValidReportStatus(r.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "is not a valid status"})
	}
	return errs
}

// CalculateAutomaticResult derives the result from the deficiency status
// and the loaded QA entries, worst outcome first. Runs before every save,
// uses only in-memory state, and always assigns exactly one of fail,
// pending or pass. as_built is reserved for the manual archival flow and is
// never produced here.
func (r *Report) CalculateAutomaticResult() {
	// Tier 1: automatic fail on a CDR/NCR or any failed QA test.
	if r.DeficiencyStatus == DeficiencyCDR || r.DeficiencyStatus == DeficiencyNCR || r.anyQa(QaFail) {
		r.Result = ResultFail
		return
	}

	// Tier 2: pending on a minor deficiency or any open QA test.
	if r.DeficiencyStatus == YesDeficiency || r.anyQa(QaPending) {
		r.Result = ResultPending
		return
	}

	// Tier 3: nothing outstanding, the report passes.
	r.Result = ResultPass
}

func (r *Report) anyQa(result QaResult) bool {
	for _, qa := range r.QaEntries {
		if qa.Result == result {
			return true
		}
	}
	return false
}

// BeforeCreate applies defaults before the derivation hook runs.
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	r.SetDefaults()
	return nil
}

// BeforeSave recomputes the derived result on every persistence. Workflow
// actions that need to force a result (approve, request revision) update
// the columns directly and bypass this hook.
func (r *Report) BeforeSave(tx *gorm.DB) error {
	r.CalculateAutomaticResult()
	return nil
}

// BeginQCReview moves the report into the review queue.
func (r *Report) BeginQCReview() {
	r.Status = StatusQCReview
}

// Authorize finalizes the report. Approval is the reviewer's sign-off, so
// the result is forced to pass regardless of what the derivation computed.
func (r *Report) Authorize() {
	r.Status = StatusAuthorization
	r.Result = ResultPass
}

// SendBack returns the report to its author with a forced fail.
func (r *Report) SendBack() {
	r.Status = StatusRevise
	r.Result = ResultFail
}

// InspectorName resolves the display name of the authoring inspector.
func (r *Report) InspectorName() string {
	if r.User == nil {
		return "Unknown"
	}
	return r.User.InspectorName()
}

// Shift renders the shift range for listings, e.g. "0700-1730".
func (r *Report) Shift() string {
	return r.ShiftStart + "-" + r.ShiftEnd
}
