package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

// UserRepository covers the global directory plus per-course memberships.
// Directory reads are global (users live under the root course); anything
// membership-shaped is scope-bound.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByRegistration(registration string) (*models.User, error)

	AddMembership(m *models.CourseMembership) error
	RemoveMembership(userID, courseID uuid.UUID) error
	GetMembership(userID, courseID uuid.UUID) (*models.CourseMembership, error)
	ListMembershipsByUser(userID uuid.UUID) ([]*models.CourseMembership, error)
	ListByCourse(scope tenant.Scope, role models.Role) ([]*models.CourseMembership, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *models.User) error { return r.db.Save(user).Error }

func (r *userRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.Preload("Memberships").First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) GetByRegistration(registration string) (*models.User, error) {
	var u models.User
	if err := r.db.Preload("Memberships").First(&u, "registration = ?", registration).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepository) AddMembership(m *models.CourseMembership) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return r.db.Create(m).Error
}

func (r *userRepository) RemoveMembership(userID, courseID uuid.UUID) error {
	return r.db.Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.CourseMembership{}).Error
}

func (r *userRepository) GetMembership(userID, courseID uuid.UUID) (*models.CourseMembership, error) {
	var m models.CourseMembership
	err := r.db.First(&m, "user_id = ? AND course_id = ?", userID, courseID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *userRepository) ListMembershipsByUser(userID uuid.UUID) ([]*models.CourseMembership, error) {
	var ms []*models.CourseMembership
	err := r.db.Preload("Course").Where("user_id = ?", userID).Find(&ms).Error
	return ms, err
}

func (r *userRepository) ListByCourse(scope tenant.Scope, role models.Role) ([]*models.CourseMembership, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var ms []*models.CourseMembership
	q := db.Preload("User")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err = q.Find(&ms).Error
	return ms, err
}
