package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/dirtrack/config"
	"p9e.in/dirtrack/models"
)

// bidItemRow is one dashboard line: the bid item plus the total quantity
// placed against it across all reports.
type bidItemRow struct {
	models.BidItem
	TotalQuantity float64 `json:"total_quantity"`
}

// GetAllBidItems lists bid items with placed-quantity totals, the pay-item
// dashboard. Optionally scoped to one project.
func GetAllBidItems(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Model(&models.BidItem{}).
		Select("bid_items.*, COALESCE(SUM(placed_quantities.quantity), 0) AS total_quantity").
		Joins("LEFT JOIN placed_quantities ON placed_quantities.bid_item_id = bid_items.id").
		Group("bid_items.id").
		Order("bid_items.code")

	if projectID := r.URL.Query().Get("project_id"); projectID != "" {
		q = q.Where("bid_items.project_id = ?", projectID)
	}

	var rows []bidItemRow
	if err := q.Find(&rows).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func GetBidItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var item models.BidItem
	if err := config.DB.Preload("SpecItem").First(&item, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "bid item not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"bid_item":         item,
		"active_questions": item.ActiveQuestions(),
		"questions_text":   item.QuestionsText(),
	})
}

// bidItemReq accepts the checklist override either as a list or as the
// newline-separated text the edit form posts.
type bidItemReq struct {
	ProjectID          uuid.UUID `json:"project_id"`
	SpecItemID         uuid.UUID `json:"spec_item_id"`
	Code               string    `json:"code"`
	Description        string    `json:"description"`
	Unit               string    `json:"unit"`
	ChecklistQuestions []string  `json:"checklist_questions"`
	QuestionsText      *string   `json:"questions_text"`
}

func (req *bidItemReq) apply(item *models.BidItem) {
	if req.ProjectID != uuid.Nil {
		item.ProjectID = req.ProjectID
	}
	if req.SpecItemID != uuid.Nil {
		item.SpecItemID = req.SpecItemID
	}
	item.Code = req.Code
	item.Description = req.Description
	item.Unit = req.Unit
	if req.QuestionsText != nil {
		item.SetQuestionsText(*req.QuestionsText)
	} else if req.ChecklistQuestions != nil {
		item.ChecklistQuestions = req.ChecklistQuestions
	}
}

func CreateBidItem(w http.ResponseWriter, r *http.Request) {
	var req bidItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var item models.BidItem
	req.apply(&item)
	if errs := item.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if err := config.DB.Create(&item).Error; err != nil {
		// The (project_id, code) unique index enforces per-project codes;
		// the same code in another project is fine.
		if strings.Contains(err.Error(), "duplicate key") {
			respondValidation(w, models.ValidationErrors{{Field: "code", Message: "already exists in this project"}})
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func UpdateBidItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var item models.BidItem
	if err := config.DB.First(&item, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "bid item not found")
		return
	}
	var req bidItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	req.apply(&item)
	if errs := item.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if err := config.DB.Save(&item).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondValidation(w, models.ValidationErrors{{Field: "code", Message: "already exists in this project"}})
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DeleteBidItem rejects deletion while placed quantities reference the
// item; both records stay intact.
func DeleteBidItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var item models.BidItem
	if err := config.DB.First(&item, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "bid item not found")
		return
	}

	var count int64
	config.DB.Model(&models.PlacedQuantity{}).Where("bid_item_id = ?", item.ID).Count(&count)
	if count > 0 {
		respondError(w, http.StatusConflict, "cannot delete bid item: placed quantities still reference it")
		return
	}

	if err := config.DB.Delete(&item).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
