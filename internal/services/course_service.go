package services

import (
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type CourseService interface {
	Create(p authz.Principal, name, period string) (*models.Course, error)
	Get(p authz.Principal, id uuid.UUID) (*models.Course, error)
	List(p authz.Principal) ([]*models.Course, error)
	Update(p authz.Principal, id uuid.UUID, name, period string) (*models.Course, error)
	Delete(p authz.Principal, id uuid.UUID) error
}

type courseService struct {
	courses repository.CourseRepository
	access  *authz.Service
}

func NewCourseService(courses repository.CourseRepository, access *authz.Service) CourseService {
	return &courseService{courses: courses, access: access}
}

func (s *courseService) Create(p authz.Principal, name, period string) (*models.Course, error) {
	if err := s.check(p, authz.ActionCreate); err != nil {
		return nil, err
	}
	course := &models.Course{ID: uuid.New(), Name: name, Period: period}
	if err := s.courses.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) Get(p authz.Principal, id uuid.UUID) (*models.Course, error) {
	if err := s.check(p, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.courses.GetByID(id)
}

func (s *courseService) List(p authz.Principal) ([]*models.Course, error) {
	if err := s.check(p, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.courses.List()
}

func (s *courseService) Update(p authz.Principal, id uuid.UUID, name, period string) (*models.Course, error) {
	if err := s.check(p, authz.ActionUpdate); err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(id)
	if err != nil {
		return nil, err
	}
	course.Name = name
	course.Period = period
	if err := s.courses.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) Delete(p authz.Principal, id uuid.UUID) error {
	if err := s.check(p, authz.ActionDelete); err != nil {
		return err
	}
	if id == models.RootCourseID {
		return authz.Forbidden(authz.ReasonAccessDenied)
	}
	return s.courses.Delete(id)
}

// check authorizes course management under the principal's own scope.
// Course records are the tenants themselves; only the capability table
// applies.
func (s *courseService) check(p authz.Principal, action authz.Action) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	return s.access.Check(scope, p, action, authz.ResourceCourse, authz.ResourceContext{})
}
