package handlers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"p9e.in/dirtrack/models"
)

func TestPruneBlankRows(t *testing.T) {
	bidItemID := uuid.New()
	report := models.Report{
		PlacedQuantities: []models.PlacedQuantity{
			{BidItemID: bidItemID, Quantity: 100},
			{Quantity: 50}, // no bid item, dropped
		},
		EquipmentEntries: []models.EquipmentEntry{
			{MakeModel: "CAT D6", Quantity: 1},
			{Quantity: 1}, // no make/model, dropped
		},
		CrewEntries: []models.CrewEntry{
			{Contractor: "Acme Paving", LaborerCount: 4},
			{}, // blank, dropped
		},
		QaEntries: []models.QaEntry{
			{Result: models.QaPass},
			{}, // blank, dropped
		},
	}

	pruneBlankRows(&report)

	if len(report.PlacedQuantities) != 1 || report.PlacedQuantities[0].BidItemID != bidItemID {
		t.Errorf("placed quantities = %v", report.PlacedQuantities)
	}
	if len(report.EquipmentEntries) != 1 || report.EquipmentEntries[0].MakeModel != "CAT D6" {
		t.Errorf("equipment entries = %v", report.EquipmentEntries)
	}
	if len(report.CrewEntries) != 1 || report.CrewEntries[0].Contractor != "Acme Paving" {
		t.Errorf("crew entries = %v", report.CrewEntries)
	}
	if len(report.QaEntries) != 1 || report.QaEntries[0].Result != models.QaPass {
		t.Errorf("qa entries = %v", report.QaEntries)
	}
}

func TestValidateQuantityAnswers(t *testing.T) {
	good := models.PlacedQuantity{ChecklistAnswers: datatypes.JSON(`{"Proof rolled?":"Yes"}`)}
	bad := models.PlacedQuantity{ChecklistAnswers: datatypes.JSON(`{"Proof rolled?":"maybe"}`)}

	if errs := validateQuantityAnswers([]models.PlacedQuantity{good}); len(errs) != 0 {
		t.Errorf("valid answers rejected: %v", errs)
	}
	errs := validateQuantityAnswers([]models.PlacedQuantity{good, bad})
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Field != "Proof rolled?" {
		t.Errorf("error field = %q", errs[0].Field)
	}
	if errs := validateQuantityAnswers(nil); len(errs) != 0 {
		t.Errorf("nil rows produced errors: %v", errs)
	}
}

func TestPruneBlankRowsAllBlank(t *testing.T) {
	report := models.Report{
		PlacedQuantities: []models.PlacedQuantity{{}, {}},
		QaEntries:        []models.QaEntry{{}},
	}
	pruneBlankRows(&report)
	if len(report.PlacedQuantities) != 0 || len(report.QaEntries) != 0 {
		t.Errorf("blank rows survived: %d pq, %d qa",
			len(report.PlacedQuantities), len(report.QaEntries))
	}
}
