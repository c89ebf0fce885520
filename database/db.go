package database

import (
	"errors"
	"fmt"
	"strings"

	"travel-agency/config"
	"travel-agency/logger"
	"travel-agency/models/blog"
	"travel-agency/models/booking"
	"travel-agency/models/gallery"
	"travel-agency/models/hotel"
	"travel-agency/models/log"
	"travel-agency/models/operator_config"
	"travel-agency/models/tour"
	"travel-agency/models/travel_service"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// Foreign keys are created explicitly in createForeignKeyConstraints.
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

// Open connects to the configured database. A DATABASE_URL starting with
// "sqlite:" opens a SQLite file instead of PostgreSQL, which is handy for local runs.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if path, ok := strings.CutPrefix(cfg.URL, "sqlite:"); ok {
		return OpenSQLite(path)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig())
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")
	return db, nil
}

// OpenSQLite opens a SQLite database. ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate creates or updates all tables, then the foreign keys and indexes.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		logger.Error("Failed to migrate tables", err)
		return err
	}

	if err := createForeignKeyConstraints(db); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return err
	}

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return err
	}
	logger.Success("Database schema is up to date")
	return nil
}

// autoMigrate runs auto migration in dependency order
func autoMigrate(db *gorm.DB) error {
	stages := [][]interface{}{
		// Stage 1: tables nothing else depends on
		{
			&tour.TourPackage{},
			&hotel.Hotel{},
			&travel_service.TravelService{},
			&blog.BlogArticle{},
			&operator_config.OperatorConfig{},
			&log.Log{},
		},
		// Stage 2: tables referencing tours
		{
			&booking.Booking{},
			&gallery.GalleryItem{},
		},
		// Stage 3: booking history
		{
			&booking.BookingStatusEvent{},
		},
	}

	for _, models := range stages {
		for _, model := range models {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("failed to migrate %T: %w", model, err)
			}
		}
	}
	return nil
}

// createIndexes creates additional indexes for the list and filter queries
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_bookings_created_at", "CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at)"},
		{"idx_bookings_status", "CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)"},
		{"idx_bookings_language", "CREATE INDEX IF NOT EXISTS idx_bookings_language ON bookings(language)"},
		{"idx_bookings_tour_id", "CREATE INDEX IF NOT EXISTS idx_bookings_tour_id ON bookings(tour_id)"},
		{"idx_tour_packages_is_active", "CREATE INDEX IF NOT EXISTS idx_tour_packages_is_active ON tour_packages(is_active)"},
		{"idx_tour_packages_created_at", "CREATE INDEX IF NOT EXISTS idx_tour_packages_created_at ON tour_packages(created_at)"},
		{"idx_gallery_items_tour_id", "CREATE INDEX IF NOT EXISTS idx_gallery_items_tour_id ON gallery_items(tour_id)"},
		{"idx_gallery_items_sort_order", "CREATE INDEX IF NOT EXISTS idx_gallery_items_sort_order ON gallery_items(sort_order)"},
		{"idx_blog_articles_published", "CREATE INDEX IF NOT EXISTS idx_blog_articles_published ON blog_articles(is_published, published_at)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// createForeignKeyConstraints adds the relational constraints on PostgreSQL.
// SQLite cannot add constraints to existing tables; deletions there rely on
// the cascade done by the tour controller.
func createForeignKeyConstraints(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		logger.Debug("Skipping foreign key constraints for " + db.Dialector.Name())
		return nil
	}

	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_bookings_tour",
			sql: `ALTER TABLE bookings ADD CONSTRAINT fk_bookings_tour
				  FOREIGN KEY (tour_id) REFERENCES tour_packages(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_gallery_items_tour",
			sql: `ALTER TABLE gallery_items ADD CONSTRAINT fk_gallery_items_tour
				  FOREIGN KEY (tour_id) REFERENCES tour_packages(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_booking_status_events_booking",
			sql: `ALTER TABLE booking_status_events ADD CONSTRAINT fk_booking_status_events_booking
				  FOREIGN KEY (booking_id) REFERENCES bookings(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		if err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error; err != nil {
			return fmt.Errorf("check constraint %s: %w", constraint.name, err)
		}

		if exists {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
			continue
		}
		if err := db.Exec(constraint.sql).Error; err != nil {
			return fmt.Errorf("create constraint %s: %w", constraint.name, err)
		}
		logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
	}

	return nil
}

// IsUniqueViolation reports whether err comes from a unique index.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
