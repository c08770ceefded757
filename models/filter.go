package models

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportFilter is the immutable search request for the report listing. It
// is built once per request with every default resolved up front; nothing
// mutates it while the query is composed.
type ReportFilter struct {
	Status    string
	Result    string
	Inspector string
	ProjectID *uuid.UUID
	BidItemID *uuid.UUID
	StartDate string
	EndDate   string

	// Precipitation range in inches. Legacy rows hold free text in the
	// precip columns; non-numeric values count as zero.
	PrecipMin *float64
	PrecipMax *float64

	// RequesterID scopes private statuses (creating, revise) to the
	// requesting inspector's own reports.
	RequesterID uuid.UUID
}

// ParseReportFilter reads the listing query parameters into a filter.
func ParseReportFilter(r *http.Request, requesterID uuid.UUID) ReportFilter {
	q := r.URL.Query()

	f := ReportFilter{
		Status:      q.Get("status"),
		Result:      q.Get("result"),
		Inspector:   q.Get("inspector"),
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
		RequesterID: requesterID,
	}
	if f.Status == "all" {
		f.Status = ""
	}
	if id, err := uuid.Parse(q.Get("project_id")); err == nil {
		f.ProjectID = &id
	}
	if id, err := uuid.Parse(q.Get("bid_item_id")); err == nil {
		f.BidItemID = &id
	}
	if v, err := strconv.ParseFloat(q.Get("precip_min"), 64); err == nil {
		f.PrecipMin = &v
	}
	if v, err := strconv.ParseFloat(q.Get("precip_max"), 64); err == nil {
		f.PrecipMax = &v
	}
	return f
}

// precipExpr coerces the three legacy text precip columns to a numeric
// maximum, counting anything non-numeric as zero.
const precipExpr = `GREATEST(` +
	`CASE WHEN precip_1 ~ '^\d+(\.\d+)?$' THEN precip_1::numeric ELSE 0 END,` +
	`CASE WHEN precip_2 ~ '^\d+(\.\d+)?$' THEN precip_2::numeric ELSE 0 END,` +
	`CASE WHEN precip_3 ~ '^\d+(\.\d+)?$' THEN precip_3::numeric ELSE 0 END)`

// Apply composes the listing query from the filter. Reports in a private
// status are visible to their author only.
func (f ReportFilter) Apply(db *gorm.DB) *gorm.DB {
	q := db.Model(&Report{})

	if f.Status != "" {
		q = q.Where("reports.status = ?", f.Status)
		if (f.Status == string(StatusCreating) || f.Status == string(StatusRevise)) && f.RequesterID != uuid.Nil {
			q = q.Where("reports.user_id = ?", f.RequesterID)
		}
	}
	if f.Inspector != "" {
		q = q.Joins("JOIN users ON users.id = reports.user_id").
			Where("users.email ILIKE ?", "%"+f.Inspector+"%")
	}
	if f.ProjectID != nil {
		q = q.Where("reports.project_id = ?", *f.ProjectID)
	}
	if f.BidItemID != nil {
		q = q.Joins("JOIN placed_quantities ON placed_quantities.report_id = reports.id").
			Where("placed_quantities.bid_item_id = ?", *f.BidItemID).
			Distinct("reports.*")
	}
	// Date range applies only when both ends are present.
	if f.StartDate != "" && f.EndDate != "" {
		q = q.Where("reports.start_date BETWEEN ? AND ?", f.StartDate, f.EndDate)
	}
	if f.Result != "" {
		if f.Result == string(ResultPending) {
			q = q.Where("reports.result = ? OR reports.result IS NULL OR reports.result = ''", ResultPending)
		} else {
			q = q.Where("reports.result = ?", f.Result)
		}
	}
	if f.PrecipMin != nil {
		q = q.Where(precipExpr+" >= ?", *f.PrecipMin)
	}
	if f.PrecipMax != nil {
		q = q.Where(precipExpr+" <= ?", *f.PrecipMax)
	}
	return q
}

// PrecipValue parses one stored precipitation reading. Legacy rows hold
// text like "trace" or "light rain"; those count as zero rather than
// breaking the range filter.
func PrecipValue(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// MaxPrecip is the report's worst precipitation reading across the three
// weather slots, using the same legacy-text rule as the SQL predicate.
func (r *Report) MaxPrecip() float64 {
	max := 0.0
	for _, s := range []string{r.Precip1, r.Precip2, r.Precip3} {
		if v := PrecipValue(s); v > max {
			max = v
		}
	}
	return max
}
