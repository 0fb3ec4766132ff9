package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RootCourseID is the well-known tenant that holds the global user
// directory. SYSADMIN principals operate only against this tenant.
var RootCourseID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Course is the organizational tenant. Every other entity belongs to
// exactly one course through its CourseID column.
type Course struct {
	ID        uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	Name      string         `json:"name" gorm:"type:text;not null"`
	Period    string         `json:"period" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Memberships []CourseMembership `json:"memberships,omitempty" gorm:"foreignKey:CourseID"`
}

func (Course) TableName() string { return "courses" }
