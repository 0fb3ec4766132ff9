package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "NOT_STARTED"
	ProjectStarted    ProjectStatus = "STARTED"
	ProjectFinished   ProjectStatus = "FINISHED"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectNotStarted, ProjectStarted, ProjectFinished:
		return true
	}
	return false
}

// Project is a concrete execution of a PPI by one or more student groups.
type Project struct {
	ID           uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID     uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	PPIID        uuid.UUID      `json:"ppi_id" gorm:"type:text;not null;index"`
	Title        string         `json:"title" gorm:"type:text;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	TeacherID    uuid.UUID      `json:"teacher_id" gorm:"type:text;not null;index"`
	Status       ProjectStatus  `json:"status" gorm:"type:text;default:'NOT_STARTED'"`
	VisibleToAll bool           `json:"visible_to_all" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	PPI          PPI           `json:"ppi,omitempty" gorm:"foreignKey:PPIID"`
	Teacher      User          `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Groups       []Group       `json:"groups,omitempty" gorm:"foreignKey:ProjectID"`
	Deliverables []Deliverable `json:"deliverables,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string { return "projects" }
