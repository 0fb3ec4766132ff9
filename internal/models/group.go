package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Group is a student work group inside a project.
type Group struct {
	ID        uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID  uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	ProjectID uuid.UUID      `json:"project_id" gorm:"type:text;not null;index"`
	Name      string         `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Project Project       `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Members []GroupMember `json:"members,omitempty" gorm:"foreignKey:GroupID"`
}

func (Group) TableName() string { return "groups" }

// GroupMember is a student enrolled in a group.
type GroupMember struct {
	ID        uuid.UUID      `json:"id" gorm:"type:text;primaryKey"`
	CourseID  uuid.UUID      `json:"course_id" gorm:"type:text;not null;index"`
	GroupID   uuid.UUID      `json:"group_id" gorm:"type:text;not null;index:idx_group_member,unique"`
	UserID    uuid.UUID      `json:"user_id" gorm:"type:text;not null;index:idx_group_member,unique"`
	JoinedAt  time.Time      `json:"joined_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Group Group `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (GroupMember) TableName() string { return "group_members" }
