package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/dirtrack/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20260115_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Project{}, &models.Phase{},
					&models.SpecItem{}, &models.BidItem{}, &models.Report{})
			},
		},
		{
			ID: "20260115_create_report_children",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.PlacedQuantity{}, &models.EquipmentEntry{},
					&models.CrewEntry{}, &models.QaEntry{}, &models.ChecklistEntry{},
					&models.ReportAttachment{}, &models.ActivityLog{})
			},
		},
		{
			ID: "20260116_add_report_indexes",
			Migrate: func(tx *gorm.DB) error {
				// AutoMigrate covers single-column indexes; the composite
				// listing index needs explicit SQL.
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_reports_project_status
					ON reports (project_id, status)`).Error
			},
		},
		{
			ID: "20260118_restrict_child_deletes",
			Migrate: func(tx *gorm.DB) error {
				// Referenced bid items and phases must not be deletable out
				// from under reports; the handlers check first, the
				// constraints are the backstop.
				if err := tx.Exec(`ALTER TABLE placed_quantities
					DROP CONSTRAINT IF EXISTS fk_placed_quantities_bid_item,
					ADD CONSTRAINT fk_placed_quantities_bid_item
					FOREIGN KEY (bid_item_id) REFERENCES bid_items(id) ON DELETE RESTRICT`).Error; err != nil {
					return err
				}
				return tx.Exec(`ALTER TABLE reports
					DROP CONSTRAINT IF EXISTS fk_reports_phase,
					ADD CONSTRAINT fk_reports_phase
					FOREIGN KEY (phase_id) REFERENCES phases(id) ON DELETE RESTRICT`).Error
			},
		},
	})

	return m.Migrate()
}
