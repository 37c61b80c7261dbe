package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/intern-match/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"strings"
)

const busyTimeoutPragma = "_pragma=busy_timeout(5000)"

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(withBusyTimeout(connectionString)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; one connection makes concurrent
	// transactions queue in the pool instead of failing with SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	return &DbContext{DB: db}, nil
}

func withBusyTimeout(connectionString string) string {
	if strings.Contains(connectionString, "busy_timeout") {
		return connectionString
	}
	if strings.Contains(connectionString, "?") {
		return connectionString + "&" + busyTimeoutPragma
	}
	return connectionString + "?" + busyTimeoutPragma
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		model any
	}{
		{"Posting", models.Posting{}},
		{"Application", models.Application{}},
		{"Profile", models.Profile{}},
		{"Skill", models.Skill{}},
		{"Education", models.Education{}},
		{"Certification", models.Certification{}},
		{"Achievement", models.Achievement{}},
		{"Project", models.Project{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.model); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	if err := c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_user_posting " +
		"ON applications (user_id, posting_id)").Error; err != nil {
		return fmt.Errorf("failed to create application index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
