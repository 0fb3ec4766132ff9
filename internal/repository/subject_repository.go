package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type SubjectRepository interface {
	Create(scope tenant.Scope, subject *models.Subject) error
	Update(scope tenant.Scope, subject *models.Subject) error
	Delete(scope tenant.Scope, id uuid.UUID) error
	GetByID(scope tenant.Scope, id uuid.UUID) (*models.Subject, error)
	List(scope tenant.Scope) ([]*models.Subject, error)

	AddTeacher(scope tenant.Scope, subjectID, userID uuid.UUID) error
	RemoveTeacher(scope tenant.Scope, subjectID, userID uuid.UUID) error
	HasTeacher(scope tenant.Scope, subjectID, userID uuid.UUID) (bool, error)
}

type subjectRepository struct{ db *gorm.DB }

func NewSubjectRepository(db *gorm.DB) SubjectRepository { return &subjectRepository{db: db} }

func (r *subjectRepository) Create(scope tenant.Scope, subject *models.Subject) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	if subject.ID == uuid.Nil {
		subject.ID = uuid.New()
	}
	subject.CourseID = scope.CourseID()
	return r.db.Create(subject).Error
}

func (r *subjectRepository) Update(scope tenant.Scope, subject *models.Subject) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Save(subject).Error
}

func (r *subjectRepository) Delete(scope tenant.Scope, id uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Delete(&models.Subject{}, "id = ?", id).Error
}

func (r *subjectRepository) GetByID(scope tenant.Scope, id uuid.UUID) (*models.Subject, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var s models.Subject
	if err := db.Preload("Teachers").First(&s, "subjects.id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *subjectRepository) List(scope tenant.Scope) ([]*models.Subject, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return nil, err
	}
	var ss []*models.Subject
	err = db.Order("name ASC").Find(&ss).Error
	return ss, err
}

func (r *subjectRepository) AddTeacher(scope tenant.Scope, subjectID, userID uuid.UUID) error {
	if !scope.Bound() {
		return tenant.ErrUnboundScope
	}
	st := &models.SubjectTeacher{
		ID:        uuid.New(),
		CourseID:  scope.CourseID(),
		SubjectID: subjectID,
		UserID:    userID,
	}
	return r.db.Create(st).Error
}

func (r *subjectRepository) RemoveTeacher(scope tenant.Scope, subjectID, userID uuid.UUID) error {
	db, err := scope.DB(r.db)
	if err != nil {
		return err
	}
	return db.Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Delete(&models.SubjectTeacher{}).Error
}

func (r *subjectRepository) HasTeacher(scope tenant.Scope, subjectID, userID uuid.UUID) (bool, error) {
	db, err := scope.DB(r.db)
	if err != nil {
		return false, err
	}
	var count int64
	err = db.Model(&models.SubjectTeacher{}).
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Count(&count).Error
	return count > 0, err
}
