package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type GroupRepository interface {
	Create(scope tenant.Scope, group *models.Group) error
	Update(scope tenant.Scope, group *models.Group) error
	Delete(scope tenant.Scope, id uuid.UUID) error
	GetByID(scope tenant.Scope, id uuid.UUID) (*models.Group, error)
	ListByProject(scope tenant.Scope, projectID uuid.UUID) ([]*models.Group, error)

	AddMember(scope tenant.Scope, member *models.GroupMember) error
	RemoveMember(scope tenant.Scope, groupID, userID uuid.UUID) error
	ListMembers(scope tenant.Scope, groupID uuid.UUID) ([]*models.GroupMember, error)
	IsMember(scope tenant.Scope, groupID, userID uuid.UUID) (bool, error)
}

type groupRepository struct{ db *gorm.DB }

func NewGroupRepository(db *gorm.DB) GroupRepository { return &groupRepository{db: db} }

func (r *groupRepository) Create(scope tenant.Scope, group *models.Group) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	group.CourseID = scope.CourseID()
	return r.db.Create(group).Error
}

func (r *groupRepository) Update(scope tenant.Scope, group *models.Group) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Save(group).Error
}

func (r *groupRepository) Delete(scope tenant.Scope, id uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Delete(&models.Group{}, "id = ?", id).Error
}

func (r *groupRepository) GetByID(scope tenant.Scope, id uuid.UUID) (*models.Group, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var g models.Group
	if err := db.Preload("Members").First(&g, "groups.id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *groupRepository) ListByProject(scope tenant.Scope, projectID uuid.UUID) ([]*models.Group, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var gs []*models.Group
	err = db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&gs).Error
	return gs, err
}

func (r *groupRepository) AddMember(scope tenant.Scope, member *models.GroupMember) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now()
	}
	member.CourseID = scope.CourseID()
	return r.db.Create(member).Error
}

func (r *groupRepository) RemoveMember(scope tenant.Scope, groupID, userID uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
}

func (r *groupRepository) ListMembers(scope tenant.Scope, groupID uuid.UUID) ([]*models.GroupMember, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var ms []*models.GroupMember
	err = db.Preload("User").Where("group_id = ?", groupID).Find(&ms).Error
	return ms, err
}

func (r *groupRepository) IsMember(scope tenant.Scope, groupID, userID uuid.UUID) (bool, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return false, err
	}
	var count int64
	err = db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}
