package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subject is a course discipline with an assigned set of teachers.
type Subject struct {
	ID        uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID  uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	Name      string         `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Teachers []SubjectTeacher `json:"teachers,omitempty" gorm:"foreignKey:SubjectID"`
}

func (Subject) TableName() string { return "subjects" }

// SubjectTeacher links a teacher to a subject it lectures.
type SubjectTeacher struct {
	ID        uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID  uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	SubjectID uuid.UUID      `json:"subject_id" gorm:"type:text;not null;index:idx_subject_teacher,unique"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:text;not null;index:idx_subject_teacher,unique"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Subject Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (SubjectTeacher) TableName() string { return "subject_teachers" }
