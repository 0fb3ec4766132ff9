package services

import (
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type ProjectService interface {
	Create(p authz.Principal, ppiID uuid.UUID, title, description string) (*models.Project, error)
	Get(p authz.Principal, id uuid.UUID) (*models.Project, error)
	List(p authz.Principal, filter repository.ProjectFilter) ([]*models.Project, error)
	Update(p authz.Principal, id uuid.UUID, title, description string) (*models.Project, error)
	Delete(p authz.Principal, id uuid.UUID) error
	ChangeStatus(p authz.Principal, id uuid.UUID, status models.ProjectStatus) error
	ChangeVisibility(p authz.Principal, id uuid.UUID, visibleToAll bool) error
}

type projectService struct {
	projects repository.ProjectRepository
	ppis     repository.PPIRepository
	access   *authz.Service
}

func NewProjectService(projects repository.ProjectRepository, ppis repository.PPIRepository, access *authz.Service) ProjectService {
	return &projectService{projects: projects, ppis: ppis, access: access}
}

func (s *projectService) Create(p authz.Principal, ppiID uuid.UUID, title, description string) (*models.Project, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionCreate, authz.ResourceProject, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	// A PPI from another course reports as denied, like every other
	// mutation-target miss.
	if _, err := s.ppis.GetByID(scope, ppiID); err != nil {
		return nil, collapseMiss(err)
	}
	project := &models.Project{
		ID:          uuid.New(),
		PPIID:       ppiID,
		Title:       title,
		Description: description,
		TeacherID:   p.ID,
		Status:      models.ProjectNotStarted,
	}
	if err := s.projects.Create(scope, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Get(p authz.Principal, id uuid.UUID) (*models.Project, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionRead, authz.ResourceProject, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	project, err := s.projects.GetByID(scope, id)
	if err != nil {
		return nil, err
	}
	// A NOT_STARTED project is invisible to students and viewers.
	for _, st := range authz.VisibleProjectStatuses(p.Role) {
		if project.Status == st {
			return project, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *projectService) List(p authz.Principal, filter repository.ProjectFilter) ([]*models.Project, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionRead, authz.ResourceProject, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	visible := authz.VisibleProjectStatuses(p.Role)
	if len(filter.Statuses) == 0 {
		filter.Statuses = visible
	} else {
		filter.Statuses = intersectStatuses(filter.Statuses, visible)
		if len(filter.Statuses) == 0 {
			return []*models.Project{}, nil
		}
	}
	return s.projects.List(scope, filter)
}

func (s *projectService) Update(p authz.Principal, id uuid.UUID, title, description string) (*models.Project, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	project, err := s.fetchForDecision(scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceProject, authz.ResourceContext{Project: project}); err != nil {
		return nil, err
	}
	project.Title = title
	project.Description = description
	if err := s.projects.Update(scope, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Delete(p authz.Principal, id uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	project, err := s.fetchForDecision(scope, id)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionDelete, authz.ResourceProject, authz.ResourceContext{Project: project}); err != nil {
		return err
	}
	return s.projects.Delete(scope, id)
}

func (s *projectService) ChangeStatus(p authz.Principal, id uuid.UUID, status models.ProjectStatus) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	project, err := s.fetchForDecision(scope, id)
	if err != nil {
		return err
	}
	rc := authz.ResourceContext{Project: project, TargetStatus: status}
	if err := s.access.Check(scope, p, authz.ActionChangeStatus, authz.ResourceProject, rc); err != nil {
		return err
	}
	return s.projects.UpdateStatus(scope, id, status)
}

func (s *projectService) ChangeVisibility(p authz.Principal, id uuid.UUID, visibleToAll bool) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	project, err := s.fetchForDecision(scope, id)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionChangeVisibility, authz.ResourceProject, authz.ResourceContext{Project: project}); err != nil {
		return err
	}
	return s.projects.UpdateVisibility(scope, id, visibleToAll)
}

// fetchForDecision loads the target of a mutation; a miss (including a
// record from another course) becomes Forbidden before any capability is
// considered.
func (s *projectService) fetchForDecision(scope tenant.Scope, id uuid.UUID) (*models.Project, error) {
	project, err := s.projects.GetByID(scope, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, authz.Forbidden(authz.ReasonAccessDenied)
		}
		return nil, err
	}
	return project, nil
}

func intersectStatuses(requested, visible []models.ProjectStatus) []models.ProjectStatus {
	out := make([]models.ProjectStatus, 0, len(requested))
	for _, r := range requested {
		for _, v := range visible {
			if r == v {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
