package services

import (
	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type ContentService interface {
	Create(p authz.Principal, deliverableID, groupID uuid.UUID, text string) (*models.DeliverableContent, error)
	Update(p authz.Principal, id uuid.UUID, text string) (*models.DeliverableContent, error)
	Delete(p authz.Principal, id uuid.UUID) error
	ListByDeliverable(p authz.Principal, deliverableID uuid.UUID) ([]*models.DeliverableContent, error)
}

type contentService struct {
	contents     repository.DeliverableContentRepository
	deliverables repository.DeliverableRepository
	projects     repository.ProjectRepository
	groups       repository.GroupRepository
	access       *authz.Service
}

func NewContentService(
	contents repository.DeliverableContentRepository,
	deliverables repository.DeliverableRepository,
	projects repository.ProjectRepository,
	groups repository.GroupRepository,
	access *authz.Service,
) ContentService {
	return &contentService{
		contents:     contents,
		deliverables: deliverables,
		projects:     projects,
		groups:       groups,
		access:       access,
	}
}

func (s *contentService) Create(p authz.Principal, deliverableID, groupID uuid.UUID, text string) (*models.DeliverableContent, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	rc, err := s.fetchDecisionContext(scope, deliverableID, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionCreate, authz.ResourceContent, rc); err != nil {
		return nil, err
	}
	content := &models.DeliverableContent{
		ID:            uuid.New(),
		DeliverableID: deliverableID,
		GroupID:       groupID,
		Text:          text,
		CreatedBy:     p.ID,
		UpdatedBy:     p.ID,
	}
	if err := s.contents.Create(scope, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *contentService) Update(p authz.Principal, id uuid.UUID, text string) (*models.DeliverableContent, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	content, err := s.contents.GetByID(scope, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, authz.Forbidden(authz.ReasonAccessDenied)
		}
		return nil, err
	}
	rc, err := s.fetchDecisionContext(scope, content.DeliverableID, content.GroupID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceContent, rc); err != nil {
		return nil, err
	}
	content.Text = text
	content.UpdatedBy = p.ID
	if err := s.contents.Update(scope, content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *contentService) Delete(p authz.Principal, id uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	content, err := s.contents.GetByID(scope, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return authz.Forbidden(authz.ReasonAccessDenied)
		}
		return err
	}
	rc, err := s.fetchDecisionContext(scope, content.DeliverableID, content.GroupID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionDelete, authz.ResourceContent, rc); err != nil {
		return err
	}
	return s.contents.Delete(scope, id)
}

func (s *contentService) ListByDeliverable(p authz.Principal, deliverableID uuid.UUID) ([]*models.DeliverableContent, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	return s.contents.ListByDeliverable(scope, deliverableID)
}

// fetchDecisionContext loads the deliverable, its owning project and
// the group a content decision needs; misses surface as Forbidden.
func (s *contentService) fetchDecisionContext(scope tenant.Scope, deliverableID, groupID uuid.UUID) (authz.ResourceContext, error) {
	d, err := s.deliverables.GetByID(scope, deliverableID)
	if err != nil {
		return authz.ResourceContext{}, collapseMiss(err)
	}
	project, err := s.projects.GetByID(scope, d.ProjectID)
	if err != nil {
		return authz.ResourceContext{}, collapseMiss(err)
	}
	g, err := s.groups.GetByID(scope, groupID)
	if err != nil {
		return authz.ResourceContext{}, collapseMiss(err)
	}
	return authz.ResourceContext{Deliverable: d, Project: project, Group: g}, nil
}

// collapseMiss turns a repository miss into an access denial so callers
// cannot distinguish foreign rows from nonexistent ones.
func collapseMiss(err error) error {
	if repository.IsNotFound(err) {
		return authz.Forbidden(authz.ReasonAccessDenied)
	}
	return err
}
