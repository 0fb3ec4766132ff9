package services

import (
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type GroupService interface {
	Create(p authz.Principal, projectID uuid.UUID, name string) (*models.Group, error)
	Get(p authz.Principal, id uuid.UUID) (*models.Group, error)
	ListByProject(p authz.Principal, projectID uuid.UUID) ([]*models.Group, error)
	Update(p authz.Principal, id uuid.UUID, name string) (*models.Group, error)
	Delete(p authz.Principal, id uuid.UUID) error

	AddMember(p authz.Principal, groupID, userID uuid.UUID) error
	RemoveMember(p authz.Principal, groupID, userID uuid.UUID) error
	ListMembers(p authz.Principal, groupID uuid.UUID) ([]*models.GroupMember, error)
}

type groupService struct {
	groups   repository.GroupRepository
	projects repository.ProjectRepository
	access   *authz.Service
}

func NewGroupService(groups repository.GroupRepository, projects repository.ProjectRepository, access *authz.Service) GroupService {
	return &groupService{groups: groups, projects: projects, access: access}
}

// Group management rides the project mutation gate: a finished project
// accepts no group changes, and only coordinators or teachers with an
// active project under the PPI may act.
func (s *groupService) Create(p authz.Principal, projectID uuid.UUID, name string) (*models.Group, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	project, err := s.fetchProject(scope, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceProject, authz.ResourceContext{Project: project}); err != nil {
		return nil, err
	}
	g := &models.Group{ID: uuid.New(), ProjectID: projectID, Name: name}
	if err := s.groups.Create(scope, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *groupService) Get(p authz.Principal, id uuid.UUID) (*models.Group, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	return s.groups.GetByID(scope, id)
}

func (s *groupService) ListByProject(p authz.Principal, projectID uuid.UUID) ([]*models.Group, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	return s.groups.ListByProject(scope, projectID)
}

func (s *groupService) Update(p authz.Principal, id uuid.UUID, name string) (*models.Group, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	g, project, err := s.fetchGroupAndProject(scope, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceProject, authz.ResourceContext{Project: project}); err != nil {
		return nil, err
	}
	g.Name = name
	if err := s.groups.Update(scope, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *groupService) Delete(p authz.Principal, id uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	_, project, err := s.fetchGroupAndProject(scope, id)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceProject, authz.ResourceContext{Project: project}); err != nil {
		return err
	}
	return s.groups.Delete(scope, id)
}

func (s *groupService) AddMember(p authz.Principal, groupID, userID uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	_, project, err := s.fetchGroupAndProject(scope, groupID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceProject, authz.ResourceContext{Project: project}); err != nil {
		return err
	}
	return s.groups.AddMember(scope, &models.GroupMember{GroupID: groupID, UserID: userID})
}

func (s *groupService) RemoveMember(p authz.Principal, groupID, userID uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	_, project, err := s.fetchGroupAndProject(scope, groupID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceProject, authz.ResourceContext{Project: project}); err != nil {
		return err
	}
	return s.groups.RemoveMember(scope, groupID, userID)
}

func (s *groupService) ListMembers(p authz.Principal, groupID uuid.UUID) ([]*models.GroupMember, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	return s.groups.ListMembers(scope, groupID)
}

func (s *groupService) fetchProject(scope tenant.Scope, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projects.GetByID(scope, projectID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, authz.Forbidden(authz.ReasonAccessDenied)
		}
		return nil, err
	}
	return project, nil
}

func (s *groupService) fetchGroupAndProject(scope tenant.Scope, groupID uuid.UUID) (*models.Group, *models.Project, error) {
	g, err := s.groups.GetByID(scope, groupID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil, authz.Forbidden(authz.ReasonAccessDenied)
		}
		return nil, nil, err
	}
	project, err := s.fetchProject(scope, g.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return g, project, nil
}
