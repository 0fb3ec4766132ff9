package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GeisyGP/sistema-ppi/internal/models"
)

// CourseRepository manages the tenants themselves, so it is the only
// repository whose reads are not scope-bound.
type CourseRepository interface {
	Create(course *models.Course) error
	Update(course *models.Course) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Course, error)
	List() ([]*models.Course, error)
}

type courseRepository struct{ db *gorm.DB }

func NewCourseRepository(db *gorm.DB) CourseRepository { return &courseRepository{db: db} }

func (r *courseRepository) Create(course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	return r.db.Create(course).Error
}

func (r *courseRepository) Update(course *models.Course) error { return r.db.Save(course).Error }

func (r *courseRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Course{}, "id = ?", id).Error
}

func (r *courseRepository) GetByID(id uuid.UUID) (*models.Course, error) {
	var c models.Course
	if err := r.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *courseRepository) List() ([]*models.Course, error) {
	var cs []*models.Course
	err := r.db.Order("created_at DESC").Find(&cs).Error
	return cs, err
}
