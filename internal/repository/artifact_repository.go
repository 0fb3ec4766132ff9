package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type ArtifactRepository interface {
	Create(scope tenant.Scope, artifact *models.Artifact) error
	Update(scope tenant.Scope, artifact *models.Artifact) error
	Delete(scope tenant.Scope, id uuid.UUID) error
	GetByID(scope tenant.Scope, id uuid.UUID) (*models.Artifact, error)
	ListByDeliverable(scope tenant.Scope, deliverableID uuid.UUID) ([]*models.Artifact, error)
}

type artifactRepository struct{ db *gorm.DB }

func NewArtifactRepository(db *gorm.DB) ArtifactRepository { return &artifactRepository{db: db} }

func (r *artifactRepository) Create(scope tenant.Scope, artifact *models.Artifact) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	if artifact.ID == uuid.Nil {
		artifact.ID = uuid.New()
	}
	artifact.CourseID = scope.CourseID()
	return r.db.Create(artifact).Error
}

func (r *artifactRepository) Update(scope tenant.Scope, artifact *models.Artifact) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Save(artifact).Error
}

func (r *artifactRepository) Delete(scope tenant.Scope, id uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Delete(&models.Artifact{}, "id = ?", id).Error
}

func (r *artifactRepository) GetByID(scope tenant.Scope, id uuid.UUID) (*models.Artifact, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var a models.Artifact
	if err := db.First(&a, "artifacts.id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *artifactRepository) ListByDeliverable(scope tenant.Scope, deliverableID uuid.UUID) ([]*models.Artifact, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var as []*models.Artifact
	err = db.Where("deliverable_id = ?", deliverableID).Order("created_at DESC").Find(&as).Error
	return as, err
}
