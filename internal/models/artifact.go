package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Artifact is a file uploaded against a deliverable, for group work tied
// to the uploading student's group.
type Artifact struct {
	ID            uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID      uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	DeliverableID uuid.UUID      `json:"deliverable_id" gorm:"type:text;not null;index"`
	GroupID       *uuid.UUID     `json:"group_id" gorm:"type:text;index"`
	FileName      string         `json:"file_name" gorm:"type:text;not null"`
	OriginalName  string         `json:"original_name" gorm:"type:text"`
	FilePath      string         `json:"file_path" gorm:"type:text;not null"`
	FileSize      int64          `json:"file_size"`
	MimeType      string         `json:"mime_type" gorm:"type:text"`
	UploadedBy    uuid.UUID      `json:"uploaded_by" gorm:"type:text;not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	Deliverable Deliverable `json:"deliverable,omitempty" gorm:"foreignKey:DeliverableID"`
	Group       *Group      `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	Uploader    User        `json:"uploader,omitempty" gorm:"foreignKey:UploadedBy"`
}

func (Artifact) TableName() string { return "artifacts" }
