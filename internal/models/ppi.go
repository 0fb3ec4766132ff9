package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PPI is a curriculum-level integrated practice plan spanning one or more
// subjects for a class period.
type PPI struct {
	ID          uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID    uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	Name        string         `json:"name" gorm:"type:text;not null"`
	Workload    int            `json:"workload" gorm:"type:integer;not null"`
	ClassPeriod int            `json:"class_period" gorm:"type:integer;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Subjects []SubjectAssignment `json:"subjects,omitempty" gorm:"foreignKey:PPIID"`
}

func (PPI) TableName() string { return "ppis" }

// SubjectAssignment attaches a subject to a PPI with its share of the
// workload. At most one assignment per PPI carries IsCoordinator, and the
// teachers of that subject act with coordinator authority over the PPI's
// projects.
type SubjectAssignment struct {
	ID            uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID      uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	PPIID         uuid.UUID      `json:"ppi_id" gorm:"type:text;not null;index:idx_ppi_subject,unique"`
	SubjectID     uuid.UUID      `json:"subject_id" gorm:"type:text;not null;index:idx_ppi_subject,unique"`
	Workload      int            `json:"workload" gorm:"type:integer;not null"`
	IsCoordinator bool           `json:"is_coordinator" gorm:"default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	PPI     PPI     `json:"ppi,omitempty" gorm:"foreignKey:PPIID"`
	Subject Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

func (SubjectAssignment) TableName() string { return "subject_assignments" }
