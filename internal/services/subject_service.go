package services

import (
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type SubjectService interface {
	Create(p authz.Principal, name string) (*models.Subject, error)
	Get(p authz.Principal, id uuid.UUID) (*models.Subject, error)
	List(p authz.Principal) ([]*models.Subject, error)
	Update(p authz.Principal, id uuid.UUID, name string) (*models.Subject, error)
	Delete(p authz.Principal, id uuid.UUID) error

	AddTeacher(p authz.Principal, subjectID, userID uuid.UUID) error
	RemoveTeacher(p authz.Principal, subjectID, userID uuid.UUID) error
}

type subjectService struct {
	subjects repository.SubjectRepository
	access   *authz.Service
}

func NewSubjectService(subjects repository.SubjectRepository, access *authz.Service) SubjectService {
	return &subjectService{subjects: subjects, access: access}
}

func (s *subjectService) Create(p authz.Principal, name string) (*models.Subject, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionCreate, authz.ResourceSubject, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	subject := &models.Subject{ID: uuid.New(), Name: name}
	if err := s.subjects.Create(scope, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) Get(p authz.Principal, id uuid.UUID) (*models.Subject, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionRead, authz.ResourceSubject, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	return s.subjects.GetByID(scope, id)
}

func (s *subjectService) List(p authz.Principal) ([]*models.Subject, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionRead, authz.ResourceSubject, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	return s.subjects.List(scope)
}

func (s *subjectService) Update(p authz.Principal, id uuid.UUID, name string) (*models.Subject, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceSubject, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	subject, err := s.subjects.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	subject.Name = name
	if err := s.subjects.Update(scope, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) Delete(p authz.Principal, id uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionDelete, authz.ResourceSubject, authz.ResourceContext{}); err != nil {
		return err
	}
	return s.subjects.Delete(scope, id)
}

func (s *subjectService) AddTeacher(p authz.Principal, subjectID, userID uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceSubject, authz.ResourceContext{}); err != nil {
		return err
	}
	if _, err := s.subjects.GetByID(scope, subjectID); err != nil {
		return err
	}
	return s.subjects.AddTeacher(scope, subjectID, userID)
}

func (s *subjectService) RemoveTeacher(p authz.Principal, subjectID, userID uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceSubject, authz.ResourceContext{}); err != nil {
		return err
	}
	return s.subjects.RemoveTeacher(scope, subjectID, userID)
}
