package services

import (
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type PPIService interface {
	Create(p authz.Principal, name string, workload, classPeriod int) (*models.PPI, error)
	Get(p authz.Principal, id uuid.UUID) (*models.PPI, error)
	List(p authz.Principal) ([]*models.PPI, error)
	Update(p authz.Principal, id uuid.UUID, name string, workload, classPeriod int) (*models.PPI, error)
	Delete(p authz.Principal, id uuid.UUID) error

	AddSubject(p authz.Principal, ppiID, subjectID uuid.UUID, workload int, isCoordinator bool) error
	RemoveSubject(p authz.Principal, ppiID, subjectID uuid.UUID) error
	ListSubjects(p authz.Principal, ppiID uuid.UUID) ([]*models.SubjectAssignment, error)
}

type ppiService struct {
	ppis   repository.PPIRepository
	access *authz.Service
}

func NewPPIService(ppis repository.PPIRepository, access *authz.Service) PPIService {
	return &ppiService{ppis: ppis, access: access}
}

func (s *ppiService) Create(p authz.Principal, name string, workload, classPeriod int) (*models.PPI, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionCreate, authz.ResourcePPI, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	ppi := &models.PPI{ID: uuid.New(), Name: name, Workload: workload, ClassPeriod: classPeriod}
	if err := s.ppis.Create(scope, ppi); err != nil {
		return nil, err
	}
	return ppi, nil
}

func (s *ppiService) Get(p authz.Principal, id uuid.UUID) (*models.PPI, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionRead, authz.ResourcePPI, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	return s.ppis.GetByID(scope, id)
}

func (s *ppiService) List(p authz.Principal) ([]*models.PPI, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionRead, authz.ResourcePPI, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	return s.ppis.List(scope)
}

func (s *ppiService) Update(p authz.Principal, id uuid.UUID, name string, workload, classPeriod int) (*models.PPI, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourcePPI, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	ppi, err := s.ppis.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	ppi.Name = name
	ppi.Workload = workload
	ppi.ClassPeriod = classPeriod
	if err := s.ppis.Update(scope, ppi); err != nil {
		return nil, err
	}
	return ppi, nil
}

func (s *ppiService) Delete(p authz.Principal, id uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionDelete, authz.ResourcePPI, authz.ResourceContext{}); err != nil {
		return err
	}
	return s.ppis.Delete(scope, id)
}

// AddSubject attaches a subject to the PPI. At most one assignment per
// PPI may be flagged coordinator; a second flag is a conflict.
func (s *ppiService) AddSubject(p authz.Principal, ppiID, subjectID uuid.UUID, workload int, isCoordinator bool) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourcePPI, authz.ResourceContext{}); err != nil {
		return err
	}
	if _, err := s.ppis.GetByID(scope, ppiID); err != nil {
		return err
	}
	if isCoordinator {
		count, err := s.ppis.CountCoordinators(scope, ppiID)
		if err != nil {
			return err
		}
		if count > 0 {
			return authz.Conflict(authz.ReasonCoordinatorExists)
		}
	}
	return s.ppis.AddSubject(scope, &models.SubjectAssignment{
		PPIID:         ppiID,
		SubjectID:     subjectID,
		Workload:      workload,
		IsCoordinator: isCoordinator,
	})
}

func (s *ppiService) RemoveSubject(p authz.Principal, ppiID, subjectID uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourcePPI, authz.ResourceContext{}); err != nil {
		return err
	}
	return s.ppis.RemoveSubject(scope, ppiID, subjectID)
}

func (s *ppiService) ListSubjects(p authz.Principal, ppiID uuid.UUID) ([]*models.SubjectAssignment, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionRead, authz.ResourcePPI, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	return s.ppis.ListSubjects(scope, ppiID)
}
