package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

// ProjectFilter narrows a project listing. Empty fields match everything.
type ProjectFilter struct {
	PPIID     uuid.UUID
	TeacherID uuid.UUID
	Statuses  []models.ProjectStatus
}

type ProjectRepository interface {
	Create(scope tenant.Scope, project *models.Project) error
	Update(scope tenant.Scope, project *models.Project) error
	Delete(scope tenant.Scope, id uuid.UUID) error
	GetByID(scope tenant.Scope, id uuid.UUID) (*models.Project, error)
	List(scope tenant.Scope, filter ProjectFilter) ([]*models.Project, error)
	Count(scope tenant.Scope, filter ProjectFilter) (int64, error)
	UpdateStatus(scope tenant.Scope, id uuid.UUID, status models.ProjectStatus) error
	UpdateVisibility(scope tenant.Scope, id uuid.UUID, visibleToAll bool) error
}

type projectRepository struct{ db *gorm.DB }

func NewProjectRepository(db *gorm.DB) ProjectRepository { return &projectRepository{db: db} }

func (r *projectRepository) Create(scope tenant.Scope, project *models.Project) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.Status == "" {
		project.Status = models.ProjectNotStarted
	}
	project.CourseID = scope.CourseID()
	return r.db.Create(project).Error
}

func (r *projectRepository) Update(scope tenant.Scope, project *models.Project) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Save(project).Error
}

func (r *projectRepository) Delete(scope tenant.Scope, id uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Delete(&models.Project{}, "id = ?", id).Error
}

func (r *projectRepository) GetByID(scope tenant.Scope, id uuid.UUID) (*models.Project, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var p models.Project
	if err := db.First(&p, "projects.id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *projectRepository) List(scope tenant.Scope, filter ProjectFilter) ([]*models.Project, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var ps []*models.Project
	err = applyProjectFilter(db, filter).Order("created_at DESC").Find(&ps).Error
	return ps, err
}

func (r *projectRepository) Count(scope tenant.Scope, filter ProjectFilter) (int64, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return 0, err
	}
	var count int64
	err = applyProjectFilter(db.Model(&models.Project{}), filter).Count(&count).Error
	return count, err
}

func (r *projectRepository) UpdateStatus(scope tenant.Scope, id uuid.UUID, status models.ProjectStatus) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Model(&models.Project{}).Where("id = ?", id).Update("status", status).Error
}

func (r *projectRepository) UpdateVisibility(scope tenant.Scope, id uuid.UUID, visibleToAll bool) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Model(&models.Project{}).Where("id = ?", id).Update("visible_to_all", visibleToAll).Error
}

func applyProjectFilter(db *gorm.DB, filter ProjectFilter) *gorm.DB {
	if filter.PPIID != uuid.Nil {
		db = db.Where("ppi_id = ?", filter.PPIID)
	}
	if filter.TeacherID != uuid.Nil {
		db = db.Where("teacher_id = ?", filter.TeacherID)
	}
	if len(filter.Statuses) > 0 {
		db = db.Where("status IN ?", filter.Statuses)
	}
	return db
}
