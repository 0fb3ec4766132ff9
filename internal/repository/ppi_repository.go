package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type PPIRepository interface {
	Create(scope tenant.Scope, ppi *models.PPI) error
	Update(scope tenant.Scope, ppi *models.PPI) error
	Delete(scope tenant.Scope, id uuid.UUID) error
	GetByID(scope tenant.Scope, id uuid.UUID) (*models.PPI, error)
	List(scope tenant.Scope) ([]*models.PPI, error)

	AddSubject(scope tenant.Scope, assignment *models.SubjectAssignment) error
	RemoveSubject(scope tenant.Scope, ppiID, subjectID uuid.UUID) error
	ListSubjects(scope tenant.Scope, ppiID uuid.UUID) ([]*models.SubjectAssignment, error)
	HasSubject(scope tenant.Scope, ppiID, subjectID uuid.UUID) (bool, error)
	// CoordinatorSubject returns the assignment flagged as coordinator for
	// the PPI, or ErrNotFound when none is flagged.
	CoordinatorSubject(scope tenant.Scope, ppiID uuid.UUID) (*models.SubjectAssignment, error)
	CountCoordinators(scope tenant.Scope, ppiID uuid.UUID) (int64, error)
}

type ppiRepository struct{ db *gorm.DB }

func NewPPIRepository(db *gorm.DB) PPIRepository { return &ppiRepository{db: db} }

func (r *ppiRepository) Create(scope tenant.Scope, ppi *models.PPI) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	if ppi.ID == uuid.Nil {
		ppi.ID = uuid.New()
	}
	ppi.CourseID = scope.CourseID()
	return r.db.Create(ppi).Error
}

func (r *ppiRepository) Update(scope tenant.Scope, ppi *models.PPI) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Save(ppi).Error
}

func (r *ppiRepository) Delete(scope tenant.Scope, id uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Delete(&models.PPI{}, "id = ?", id).Error
}

func (r *ppiRepository) GetByID(scope tenant.Scope, id uuid.UUID) (*models.PPI, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var p models.PPI
	if err := db.Preload("Subjects").First(&p, "ppis.id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ppiRepository) List(scope tenant.Scope) ([]*models.PPI, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var ps []*models.PPI
	err = db.Preload("Subjects").Order("created_at DESC").Find(&ps).Error
	return ps, err
}

func (r *ppiRepository) AddSubject(scope tenant.Scope, assignment *models.SubjectAssignment) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	assignment.CourseID = scope.CourseID()
	return r.db.Create(assignment).Error
}

func (r *ppiRepository) RemoveSubject(scope tenant.Scope, ppiID, subjectID uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Where("ppi_id = ? AND subject_id = ?", ppiID, subjectID).
		Delete(&models.SubjectAssignment{}).Error
}

func (r *ppiRepository) ListSubjects(scope tenant.Scope, ppiID uuid.UUID) ([]*models.SubjectAssignment, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var as []*models.SubjectAssignment
	err = db.Preload("Subject").Where("ppi_id = ?", ppiID).Find(&as).Error
	return as, err
}

func (r *ppiRepository) HasSubject(scope tenant.Scope, ppiID, subjectID uuid.UUID) (bool, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return false, err
	}
	var count int64
	err = db.Model(&models.SubjectAssignment{}).
		Where("ppi_id = ? AND subject_id = ?", ppiID, subjectID).
		Count(&count).Error
	return count > 0, err
}

func (r *ppiRepository) CoordinatorSubject(scope tenant.Scope, ppiID uuid.UUID) (*models.SubjectAssignment, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var a models.SubjectAssignment
	err = db.Where("ppi_id = ? AND is_coordinator = ?", ppiID, true).First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *ppiRepository) CountCoordinators(scope tenant.Scope, ppiID uuid.UUID) (int64, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return 0, err
	}
	var count int64
	err = db.Model(&models.SubjectAssignment{}).
		Where("ppi_id = ? AND is_coordinator = ?", ppiID, true).
		Count(&count).Error
	return count, err
}
