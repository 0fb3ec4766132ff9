package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GeisyGP/sistema-ppi/internal/models"
)

// Database wraps the gorm handle.
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the sqlite database and runs migrations.
func NewDatabase(dbPath string) (*Database, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return database, nil
}

// Migrate applies the schema.
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
		&models.Course{},
		&models.User{},
		&models.CourseMembership{},
		&models.Subject{},
		&models.SubjectTeacher{},
		&models.PPI{},
		&models.SubjectAssignment{},
		&models.Project{},
		&models.Group{},
		&models.GroupMember{},
		&models.Deliverable{},
		&models.DeliverableContent{},
		&models.Artifact{},
	)
}

// Close closes the underlying connection.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureRootCourse creates the root course and, when credentials are
// provided, a sysadmin principal bound to it. Idempotent across restarts.
func (d *Database) EnsureRootCourse(sysadminRegistration, sysadminPassword string) error {
	root := models.Course{ID: models.RootCourseID, Name: "root"}
	if err := d.DB.FirstOrCreate(&root, "id = ?", models.RootCourseID).Error; err != nil {
		return fmt.Errorf("failed to ensure root course: %w", err)
	}
	if sysadminRegistration == "" || sysadminPassword == "" {
		return nil
	}

	var user models.User
	err := d.DB.Where("registration = ?", sysadminRegistration).First(&user).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(sysadminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash sysadmin password: %w", err)
	}
	user = models.User{
		ID:           uuid.New(),
		Name:         "System Administrator",
		Registration: sysadminRegistration,
		PasswordHash: string(hash),
	}
	if err := d.DB.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create sysadmin: %w", err)
	}
	membership := models.CourseMembership{
		ID:       uuid.New(),
		UserID:   user.ID,
		CourseID: models.RootCourseID,
		Role:     models.RoleSysadmin,
	}
	return d.DB.Create(&membership).Error
}
