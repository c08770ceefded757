package config

import (
	"log"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/dirtrack/models"
)

// SeedSpecItems loads the universal specification library. Skips when spec
// items already exist so restarts stay idempotent.
func SeedSpecItems() {
	var count int64
	DB.Model(&models.SpecItem{}).Count(&count)
	if count > 0 {
		log.Println("Spec items already seeded, skipping")
		return
	}

	specs := []models.SpecItem{
		{
			Code:        "P-401",
			Description: "Hot Mix Asphalt Pavement",
			Division:    "Flexible Pavement",
			ChecklistQuestions: pq.StringArray{
				"Was the tack coat applied per spec?",
				"Was mix temperature verified at placement?",
				"Were density tests taken per lot?",
			},
		},
		{
			Code:        "P-501",
			Description: "Portland Cement Concrete Pavement",
			Division:    "Rigid Pavement",
			ChecklistQuestions: pq.StringArray{
				"Were forms checked for line and grade?",
				"Was the dowel basket placement verified?",
				"Were cylinders cast for strength testing?",
			},
		},
		{
			Code:        "P-152",
			Description: "Excavation, Subgrade, and Embankment",
			Division:    "Earthwork",
			ChecklistQuestions: pq.StringArray{
				"Was proof rolling performed and observed?",
				"Was unsuitable material removed?",
			},
		},
		{
			Code:        "L-108",
			Description: "Underground Power Cable for Airports",
			Division:    "Lighting",
		},
	}

	for _, s := range specs {
		if err := DB.Create(&s).Error; err != nil {
			log.Printf("Warning: failed to seed spec item %s: %v", s.Code, err)
		}
	}
	log.Printf("Seeded %d spec items", len(specs))
}

// SeedPhases loads the default construction phases.
func SeedPhases() {
	var count int64
	DB.Model(&models.Phase{}).Count(&count)
	if count > 0 {
		return
	}

	for _, name := range []string{"Phase 1 - Mobilization", "Phase 2 - Earthwork", "Phase 3 - Paving", "Phase 4 - Closeout"} {
		if err := DB.Create(&models.Phase{Name: name}).Error; err != nil {
			log.Printf("Warning: failed to seed phase %q: %v", name, err)
		}
	}
	log.Println("Seeded default phases")
}

// SeedAdminUser creates the bootstrap QC manager account when no users
// exist. Password comes from ADMIN_PASSWORD; without it nothing is seeded.
func SeedAdminUser(email, password string) {
	if email == "" || password == "" {
		log.Println("No admin credentials configured, skipping user seeding")
		return
	}

	var count int64
	DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: failed to hash admin password: %v", err)
		return
	}
	admin := models.User{
		Name:         "QC Manager",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "qc_manager",
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Warning: failed to seed admin user: %v", err)
		return
	}
	log.Printf("Seeded admin user %s", email)
}
