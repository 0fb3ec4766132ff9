package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

// DeliverableFilter narrows a deliverable listing.
type DeliverableFilter struct {
	ProjectID uuid.UUID
	SubjectID uuid.UUID
}

type DeliverableRepository interface {
	Create(scope tenant.Scope, d *models.Deliverable) error
	Update(scope tenant.Scope, d *models.Deliverable) error
	Delete(scope tenant.Scope, id uuid.UUID) error
	GetByID(scope tenant.Scope, id uuid.UUID) (*models.Deliverable, error)
	List(scope tenant.Scope, filter DeliverableFilter) ([]*models.Deliverable, error)
}

type deliverableRepository struct{ db *gorm.DB }

func NewDeliverableRepository(db *gorm.DB) DeliverableRepository {
	return &deliverableRepository{db: db}
}

func (r *deliverableRepository) Create(scope tenant.Scope, d *models.Deliverable) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.CourseID = scope.CourseID()
	return r.db.Create(d).Error
}

func (r *deliverableRepository) Update(scope tenant.Scope, d *models.Deliverable) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Save(d).Error
}

func (r *deliverableRepository) Delete(scope tenant.Scope, id uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Delete(&models.Deliverable{}, "id = ?", id).Error
}

func (r *deliverableRepository) GetByID(scope tenant.Scope, id uuid.UUID) (*models.Deliverable, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var d models.Deliverable
	if err := db.First(&d, "deliverables.id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *deliverableRepository) List(scope tenant.Scope, filter DeliverableFilter) ([]*models.Deliverable, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	if filter.ProjectID != uuid.Nil {
		db = db.Where("project_id = ?", filter.ProjectID)
	}
	if filter.SubjectID != uuid.Nil {
		db = db.Where("subject_id = ?", filter.SubjectID)
	}
	var ds []*models.Deliverable
	err = db.Order("start_date ASC").Find(&ds).Error
	return ds, err
}
