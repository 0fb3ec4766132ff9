package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

// DeliverableInput carries the mutable fields of a deliverable.
type DeliverableInput struct {
	Title       string
	Description string
	SubjectID   *uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
}

type DeliverableService interface {
	Create(p authz.Principal, projectID uuid.UUID, in DeliverableInput) (*models.Deliverable, error)
	Get(p authz.Principal, id uuid.UUID) (*models.Deliverable, error)
	List(p authz.Principal, projectID uuid.UUID, statuses []models.DeliverableStatus) ([]*models.Deliverable, error)
	Update(p authz.Principal, id uuid.UUID, in DeliverableInput) (*models.Deliverable, error)
	Delete(p authz.Principal, id uuid.UUID) error
}

type deliverableService struct {
	deliverables repository.DeliverableRepository
	projects     repository.ProjectRepository
	access       *authz.Service
	now          func() time.Time
}

func NewDeliverableService(deliverables repository.DeliverableRepository, projects repository.ProjectRepository, access *authz.Service) DeliverableService {
	return &deliverableService{deliverables: deliverables, projects: projects, access: access, now: time.Now}
}

func (s *deliverableService) Create(p authz.Principal, projectID uuid.UUID, in DeliverableInput) (*models.Deliverable, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	project, err := s.fetchProject(scope, projectID)
	if err != nil {
		return nil, err
	}
	rc := authz.ResourceContext{Project: project, SubjectID: in.SubjectID}
	if err := s.access.Check(scope, p, authz.ActionCreate, authz.ResourceDeliverable, rc); err != nil {
		return nil, err
	}
	d := &models.Deliverable{
		ID:          uuid.New(),
		ProjectID:   projectID,
		SubjectID:   in.SubjectID,
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	if err := s.deliverables.Create(scope, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deliverableService) Get(p authz.Principal, id uuid.UUID) (*models.Deliverable, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	return s.deliverables.GetByID(scope, id)
}

// List narrows results per role: a student's default view is
// {ACTIVE, EXPIRED}, and an explicit UPCOMING request yields an empty
// result rather than an error.
func (s *deliverableService) List(p authz.Principal, projectID uuid.UUID, statuses []models.DeliverableStatus) ([]*models.Deliverable, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	wanted := authz.NarrowDeliverableStatuses(p.Role, statuses)
	if len(wanted) == 0 {
		return []*models.Deliverable{}, nil
	}
	ds, err := s.deliverables.List(scope, repository.DeliverableFilter{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]*models.Deliverable, 0, len(ds))
	for _, d := range ds {
		status := d.StatusAt(now)
		for _, w := range wanted {
			if status == w {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

func (s *deliverableService) Update(p authz.Principal, id uuid.UUID, in DeliverableInput) (*models.Deliverable, error) {
	if !in.EndDate.After(in.StartDate) {
		return nil, fmt.Errorf("end date must be after start date")
	}
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	d, err := s.deliverables.GetByID(scope, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, authz.Forbidden(authz.ReasonAccessDenied)
		}
		return nil, err
	}
	project, err := s.fetchProject(scope, d.ProjectID)
	if err != nil {
		return nil, err
	}
	rc := authz.ResourceContext{Project: project, SubjectID: in.SubjectID}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceDeliverable, rc); err != nil {
		return nil, err
	}
	d.Title = in.Title
	d.Description = in.Description
	d.SubjectID = in.SubjectID
	d.StartDate = in.StartDate
	d.EndDate = in.EndDate
	if err := s.deliverables.Update(scope, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deliverableService) Delete(p authz.Principal, id uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	d, err := s.deliverables.GetByID(scope, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return authz.Forbidden(authz.ReasonAccessDenied)
		}
		return err
	}
	project, err := s.fetchProject(scope, d.ProjectID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionDelete, authz.ResourceDeliverable, authz.ResourceContext{Project: project}); err != nil {
		return err
	}
	return s.deliverables.Delete(scope, id)
}

func (s *deliverableService) fetchProject(scope tenant.Scope, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projects.GetByID(scope, projectID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, authz.Forbidden(authz.ReasonAccessDenied)
		}
		return nil, err
	}
	return project, nil
}
