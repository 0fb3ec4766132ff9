package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliverableStatus is derived from the clock relative to the
// [StartDate, EndDate] window, never stored.
type DeliverableStatus string

const (
	DeliverableUpcoming DeliverableStatus = "UPCOMING"
	DeliverableActive   DeliverableStatus = "ACTIVE"
	DeliverableExpired  DeliverableStatus = "EXPIRED"
)

func (s DeliverableStatus) Valid() bool {
	switch s {
	case DeliverableUpcoming, DeliverableActive, DeliverableExpired:
		return true
	}
	return false
}

// Deliverable is a time-windowed demand inside a project, optionally tied
// to one of the PPI's subjects. Invariant: EndDate > StartDate.
type Deliverable struct {
	ID          uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID    uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	ProjectID   uuid.UUID      `json:"project_id" gorm:"type:text;not null;index"`
	SubjectID   *uuid.UUID     `json:"subject_id" gorm:"type:text;index"`
	Title       string         `json:"title" gorm:"type:text;not null"`
	Description string         `json:"description" gorm:"type:text"`
	StartDate   time.Time      `json:"start_date" gorm:"not null"`
	EndDate     time.Time      `json:"end_date" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Project Project  `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

func (Deliverable) TableName() string { return "deliverables" }

// StatusAt computes the window status at the given instant.
func (d Deliverable) StatusAt(now time.Time) DeliverableStatus {
	switch {
	case d.EndDate.Before(now):
		return DeliverableExpired
	case d.StartDate.After(now):
		return DeliverableUpcoming
	default:
		return DeliverableActive
	}
}

// DeliverableContent is a group's answer to a deliverable. At most one
// content exists per (deliverable, group) pair.
type DeliverableContent struct {
	ID            uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID      uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	DeliverableID uuid.UUID      `json:"deliverable_id" gorm:"type:text;not null;index:idx_content_deliverable_group,unique"`
	GroupID       uuid.UUID      `json:"group_id" gorm:"type:text;not null;index:idx_content_deliverable_group,unique"`
	Text          string         `json:"text" gorm:"type:text"`
	CreatedBy     uuid.UUID      `json:"created_by" gorm:"type:text;not null"`
	UpdatedBy     uuid.UUID      `json:"updated_by" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	Deliverable Deliverable `json:"deliverable,omitempty" gorm:"foreignKey:DeliverableID"`
	Group       Group       `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	Author      User        `json:"author,omitempty" gorm:"foreignKey:CreatedBy"`
}

func (DeliverableContent) TableName() string { return "deliverable_contents" }
