package services

import (
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
	"github.com/GeisyGP/sistema-ppi/pkg/storage"
)

type ArtifactService interface {
	Upload(p authz.Principal, deliverableID uuid.UUID, groupID *uuid.UUID, file *multipart.FileHeader) (*models.Artifact, error)
	Delete(p authz.Principal, id uuid.UUID) error
	ListByDeliverable(p authz.Principal, deliverableID uuid.UUID) ([]*models.Artifact, error)
}

type artifactService struct {
	artifacts    repository.ArtifactRepository
	deliverables repository.DeliverableRepository
	projects     repository.ProjectRepository
	groups       repository.GroupRepository
	store        *storage.Storage
	access       *authz.Service
}

func NewArtifactService(
	artifacts repository.ArtifactRepository,
	deliverables repository.DeliverableRepository,
	projects repository.ProjectRepository,
	groups repository.GroupRepository,
	store *storage.Storage,
	access *authz.Service,
) ArtifactService {
	return &artifactService{
		artifacts:    artifacts,
		deliverables: deliverables,
		projects:     projects,
		groups:       groups,
		store:        store,
		access:       access,
	}
}

// Upload stores a file against a deliverable. The window gate runs before
// any role consideration, so an upload outside [start, end] fails the
// same way for every role.
func (s *artifactService) Upload(p authz.Principal, deliverableID uuid.UUID, groupID *uuid.UUID, file *multipart.FileHeader) (*models.Artifact, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	rc, err := s.fetchDecisionContext(scope, deliverableID, groupID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionCreate, authz.ResourceArtifact, rc); err != nil {
		return nil, err
	}

	relPath, err := s.store.SaveFile(file, deliverableID)
	if err != nil {
		return nil, err
	}
	artifact := &models.Artifact{
		ID:            uuid.New(),
		DeliverableID: deliverableID,
		GroupID:       groupID,
		FileName:      filepath.Base(relPath),
		OriginalName:  file.Filename,
		FilePath:      relPath,
		FileSize:      file.Size,
		MimeType:      file.Header.Get("Content-Type"),
		UploadedBy:    p.ID,
	}
	if err := s.artifacts.Create(scope, artifact); err != nil {
		_ = s.store.DeleteFile(relPath)
		return nil, err
	}
	return artifact, nil
}

func (s *artifactService) Delete(p authz.Principal, id uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	artifact, err := s.artifacts.GetByID(scope, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return authz.Forbidden(authz.ReasonAccessDenied)
		}
		return err
	}
	rc, err := s.fetchDecisionContext(scope, artifact.DeliverableID, artifact.GroupID)
	if err != nil {
		return err
	}
	if err := s.access.Check(scope, p, authz.ActionDelete, authz.ResourceArtifact, rc); err != nil {
		return err
	}
	if err := s.artifacts.Delete(scope, id); err != nil {
		return err
	}
	return s.store.DeleteFile(artifact.FilePath)
}

// fetchDecisionContext loads the deliverable, its owning project and,
// for group submissions, the group; misses surface as Forbidden.
func (s *artifactService) fetchDecisionContext(scope tenant.Scope, deliverableID uuid.UUID, groupID *uuid.UUID) (authz.ResourceContext, error) {
	d, err := s.deliverables.GetByID(scope, deliverableID)
	if err != nil {
		return authz.ResourceContext{}, collapseMiss(err)
	}
	project, err := s.projects.GetByID(scope, d.ProjectID)
	if err != nil {
		return authz.ResourceContext{}, collapseMiss(err)
	}
	rc := authz.ResourceContext{Deliverable: d, Project: project}
	if groupID != nil {
		g, err := s.groups.GetByID(scope, *groupID)
		if err != nil {
			return authz.ResourceContext{}, collapseMiss(err)
		}
		rc.Group = g
	}
	return rc, nil
}

func (s *artifactService) ListByDeliverable(p authz.Principal, deliverableID uuid.UUID) ([]*models.Artifact, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	return s.artifacts.ListByDeliverable(scope, deliverableID)
}
