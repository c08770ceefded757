package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	_ "p9e.in/dirtrack/docs"
	"p9e.in/dirtrack/handlers"
	"p9e.in/dirtrack/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")

	registerProjectRoutes(api)
	registerCatalogRoutes(api)
	registerReportRoutes(api)
	registerFileRoutes(api)

	return r
}

func registerProjectRoutes(api *mux.Router) {
	api.HandleFunc("/projects", handlers.GetAllProjects).Methods("GET")
	api.HandleFunc("/projects", handlers.CreateProject).Methods("POST")
	api.HandleFunc("/projects/{id}", handlers.GetProject).Methods("GET")
	api.HandleFunc("/projects/{id}", handlers.UpdateProject).Methods("PUT")
	api.HandleFunc("/projects/{id}", handlers.DeleteProject).Methods("DELETE")

	api.HandleFunc("/phases", handlers.GetAllPhases).Methods("GET")
	api.HandleFunc("/phases", handlers.CreatePhase).Methods("POST")
	api.HandleFunc("/phases/{id}", handlers.UpdatePhase).Methods("PUT")
	api.HandleFunc("/phases/{id}", handlers.DeletePhase).Methods("DELETE")
}

func registerCatalogRoutes(api *mux.Router) {
	api.HandleFunc("/spec_items", handlers.GetAllSpecItems).Methods("GET")
	api.HandleFunc("/spec_items", handlers.CreateSpecItem).Methods("POST")
	api.HandleFunc("/spec_items/{id}", handlers.GetSpecItem).Methods("GET")
	api.HandleFunc("/spec_items/{id}", handlers.UpdateSpecItem).Methods("PUT")
	api.HandleFunc("/spec_items/{id}", handlers.DeleteSpecItem).Methods("DELETE")

	api.HandleFunc("/bid_items", handlers.GetAllBidItems).Methods("GET")
	api.HandleFunc("/bid_items", handlers.CreateBidItem).Methods("POST")
	api.HandleFunc("/bid_items/{id}", handlers.GetBidItem).Methods("GET")
	api.HandleFunc("/bid_items/{id}", handlers.UpdateBidItem).Methods("PUT")
	api.HandleFunc("/bid_items/{id}", handlers.DeleteBidItem).Methods("DELETE")
}

func registerReportRoutes(api *mux.Router) {
	api.HandleFunc("/reports", handlers.GetAllReports).Methods("GET")
	api.HandleFunc("/reports", handlers.CreateReport).Methods("POST")
	api.HandleFunc("/reports/{id}", handlers.GetReport).Methods("GET")
	api.HandleFunc("/reports/{id}", handlers.UpdateReport).Methods("PUT")
	api.HandleFunc("/reports/{id}", handlers.DeleteReport).Methods("DELETE")

	// Workflow transitions; review decisions are reserved for QC staff.
	reviewers := []string{"qc_manager", "admin"}
	api.HandleFunc("/reports/{id}/submit", handlers.SubmitReportForQC).Methods("POST")
	api.Handle("/reports/{id}/approve",
		middleware.RequireRole(reviewers, http.HandlerFunc(handlers.ApproveReport))).Methods("POST")
	api.Handle("/reports/{id}/request_revision",
		middleware.RequireRole(reviewers, http.HandlerFunc(handlers.RequestReportRevision))).Methods("POST")

	// Spec-item checklists
	api.HandleFunc("/reports/{id}/checklist_entries", handlers.GetChecklistEntries).Methods("GET")
	api.HandleFunc("/reports/{id}/checklist_entries", handlers.UpsertChecklistEntry).Methods("POST")
	api.HandleFunc("/reports/{id}/checklist_entries/{entryId}", handlers.DeleteChecklistEntry).Methods("DELETE")

	// Attachments
	api.HandleFunc("/reports/{id}/attachments", handlers.GetReportAttachments).Methods("GET")
	api.HandleFunc("/reports/{id}/attachments", handlers.CreateReportAttachment).Methods("POST")
	api.HandleFunc("/reports/{id}/attachments/{attachmentId}", handlers.DeleteReportAttachment).Methods("DELETE")

	// Document export
	api.HandleFunc("/reports/{id}/word", handlers.ExportReportToWord).Methods("GET")
}

func registerFileRoutes(api *mux.Router) {
	api.HandleFunc("/upload", handlers.UploadFileHandler).Methods("POST")
}
