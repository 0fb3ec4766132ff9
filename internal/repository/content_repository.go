package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type DeliverableContentRepository interface {
	Create(scope tenant.Scope, content *models.DeliverableContent) error
	Update(scope tenant.Scope, content *models.DeliverableContent) error
	Delete(scope tenant.Scope, id uuid.UUID) error
	GetByID(scope tenant.Scope, id uuid.UUID) (*models.DeliverableContent, error)
	GetByDeliverableAndGroup(scope tenant.Scope, deliverableID, groupID uuid.UUID) (*models.DeliverableContent, error)
	Exists(scope tenant.Scope, deliverableID, groupID uuid.UUID) (bool, error)
	ListByDeliverable(scope tenant.Scope, deliverableID uuid.UUID) ([]*models.DeliverableContent, error)
}

type contentRepository struct{ db *gorm.DB }

func NewDeliverableContentRepository(db *gorm.DB) DeliverableContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(scope tenant.Scope, content *models.DeliverableContent) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	content.CourseID = scope.CourseID()
	return r.db.Create(content).Error
}

func (r *contentRepository) Update(scope tenant.Scope, content *models.DeliverableContent) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Save(content).Error
}

func (r *contentRepository) Delete(scope tenant.Scope, id uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Delete(&models.DeliverableContent{}, "id = ?", id).Error
}

func (r *contentRepository) GetByID(scope tenant.Scope, id uuid.UUID) (*models.DeliverableContent, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var c models.DeliverableContent
	if err := db.First(&c, "deliverable_contents.id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *contentRepository) GetByDeliverableAndGroup(scope tenant.Scope, deliverableID, groupID uuid.UUID) (*models.DeliverableContent, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var c models.DeliverableContent
	err = db.First(&c, "deliverable_id = ? AND group_id = ?", deliverableID, groupID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *contentRepository) Exists(scope tenant.Scope, deliverableID, groupID uuid.UUID) (bool, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return false, err
	}
	var count int64
	err = db.Model(&models.DeliverableContent{}).
		Where("deliverable_id = ? AND group_id = ?", deliverableID, groupID).
		Count(&count).Error
	return count > 0, err
}

func (r *contentRepository) ListByDeliverable(scope tenant.Scope, deliverableID uuid.UUID) ([]*models.DeliverableContent, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var cs []*models.DeliverableContent
	err = db.Where("deliverable_id = ?", deliverableID).Find(&cs).Error
	return cs, err
}
