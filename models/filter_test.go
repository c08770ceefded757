package models

import (
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestPrecipValue(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
	}{
		{"0.25", 0.25},
		{"2", 2},
		{" 1.5 ", 1.5},
		{"", 0},
		{"trace", 0},
		{"light rain", 0},
		{"-1", 0},
	}
	for _, tt := range tests {
		if got := PrecipValue(tt.raw); got != tt.expected {
			t.Errorf("PrecipValue(%q) = %v, want %v", tt.raw, got, tt.expected)
		}
	}
}

func TestMaxPrecip(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   string
		p3       string
		expected float64
	}{
		{"all numeric", "0.1", "0.5", "0.3", 0.5},
		{"legacy text counts as zero", "trace", "0.2", "", 0.2},
		{"all legacy", "trace", "light", "none", 0},
		{"all blank", "", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Report{Precip1: tt.p1, Precip2: tt.p2, Precip3: tt.p3}
			if got := r.MaxPrecip(); got != tt.expected {
				t.Errorf("MaxPrecip() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseReportFilter(t *testing.T) {
	requester := mustUUID(t, "0d5c2f6a-1111-4a4a-8c8c-00000000000a")
	projectID := "0d5c2f6a-1111-4a4a-8c8c-00000000000b"

	req := httptest.NewRequest("GET",
		"/api/v1/reports?status=qc_review&result=fail&inspector=doe"+
			"&project_id="+projectID+
			"&start_date=2026-01-01&end_date=2026-01-31"+
			"&precip_min=0.1&precip_max=2.5", nil)

	f := ParseReportFilter(req, requester)

	if f.Status != "qc_review" {
		t.Errorf("Status = %q", f.Status)
	}
	if f.Result != "fail" {
		t.Errorf("Result = %q", f.Result)
	}
	if f.Inspector != "doe" {
		t.Errorf("Inspector = %q", f.Inspector)
	}
	if f.ProjectID == nil || f.ProjectID.String() != projectID {
		t.Errorf("ProjectID = %v", f.ProjectID)
	}
	if f.BidItemID != nil {
		t.Errorf("BidItemID = %v, want nil", f.BidItemID)
	}
	if f.StartDate != "2026-01-01" || f.EndDate != "2026-01-31" {
		t.Errorf("dates = %q..%q", f.StartDate, f.EndDate)
	}
	if f.PrecipMin == nil || *f.PrecipMin != 0.1 {
		t.Errorf("PrecipMin = %v", f.PrecipMin)
	}
	if f.PrecipMax == nil || *f.PrecipMax != 2.5 {
		t.Errorf("PrecipMax = %v", f.PrecipMax)
	}
	if f.RequesterID != requester {
		t.Errorf("RequesterID = %v", f.RequesterID)
	}
}

func TestParseReportFilterDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/reports", nil)
	f := ParseReportFilter(req, uuid.Nil)

	if f.Status != "" || f.Result != "" || f.Inspector != "" {
		t.Errorf("blank request produced filters: %+v", f)
	}
	if f.ProjectID != nil || f.BidItemID != nil || f.PrecipMin != nil || f.PrecipMax != nil {
		t.Errorf("blank request produced pointers: %+v", f)
	}
}

func TestParseReportFilterStatusAll(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/reports?status=all", nil)
	f := ParseReportFilter(req, uuid.Nil)
	if f.Status != "" {
		t.Errorf("status=all should clear the status filter, got %q", f.Status)
	}
}

func TestParseReportFilterBadValues(t *testing.T) {
	req := httptest.NewRequest("GET",
		"/api/v1/reports?project_id=notauuid&precip_min=heavy", nil)
	f := ParseReportFilter(req, uuid.Nil)
	if f.ProjectID != nil {
		t.Errorf("bad project_id parsed: %v", f.ProjectID)
	}
	if f.PrecipMin != nil {
		t.Errorf("bad precip_min parsed: %v", f.PrecipMin)
	}
}
