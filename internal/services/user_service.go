package services

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
	"github.com/GeisyGP/sistema-ppi/internal/tenant"
)

type UserService interface {
	// Create registers a user in the directory and enrolls it in the
	// acting principal's course with the given role.
	Create(p authz.Principal, name, registration, password string, role models.Role) (*models.User, error)
	Get(p authz.Principal, id uuid.UUID) (*models.User, error)
	ListByCourse(p authz.Principal, role models.Role) ([]*models.CourseMembership, error)
	UpdateSelf(p authz.Principal, name, password string) (*models.User, error)
	Update(p authz.Principal, id uuid.UUID, name string) (*models.User, error)
	Delete(p authz.Principal, id uuid.UUID) error
}

type userService struct {
	users  repository.UserRepository
	access *authz.Service
}

func NewUserService(users repository.UserRepository, access *authz.Service) UserService {
	return &userService{users: users, access: access}
}

func (s *userService) Create(p authz.Principal, name, registration, password string, role models.Role) (*models.User, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	rc := authz.ResourceContext{TargetRole: role}
	if err := s.access.Check(scope, p, authz.ActionCreate, authz.ResourceUser, rc); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Registration: registration,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	membership := &models.CourseMembership{
		UserID:   user.ID,
		CourseID: scope.CourseID(),
		Role:     role,
	}
	if err := s.users.AddMembership(membership); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(p authz.Principal, id uuid.UUID) (*models.User, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionRead, authz.ResourceUser, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	return s.users.GetByID(id)
}

func (s *userService) ListByCourse(p authz.Principal, role models.Role) ([]*models.CourseMembership, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Check(scope, p, authz.ActionRead, authz.ResourceUser, authz.ResourceContext{}); err != nil {
		return nil, err
	}
	return s.users.ListByCourse(scope, role)
}

// UpdateSelf is the one write every role holds on its own record.
func (s *userService) UpdateSelf(p authz.Principal, name, password string) (*models.User, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	rc := authz.ResourceContext{OwnerID: p.ID}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceUser, rc); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(p.ID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Update(p authz.Principal, id uuid.UUID, name string) (*models.User, error) {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return nil, err
	}
	target, err := s.targetMembership(scope, id)
	if err != nil {
		return nil, err
	}
	rc := authz.ResourceContext{TargetRole: target.Role}
	if err := s.access.Check(scope, p, authz.ActionUpdate, authz.ResourceUser, rc); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.Name = name
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(p authz.Principal, id uuid.UUID) error {
	scope, err := tenant.Bind(p.ActiveCourseID)
	if err != nil {
		return err
	}
	target, err := s.targetMembership(scope, id)
	if err != nil {
		return err
	}
	rc := authz.ResourceContext{TargetRole: target.Role}
	if err := s.access.Check(scope, p, authz.ActionDelete, authz.ResourceUser, rc); err != nil {
		return err
	}
	if err := s.users.RemoveMembership(id, scope.CourseID()); err != nil {
		return err
	}
	// The directory record survives while other memberships remain.
	memberships, err := s.users.ListMembershipsByUser(id)
	if err != nil {
		return err
	}
	if len(memberships) == 0 {
		return s.users.Delete(id)
	}
	return nil
}

// targetMembership resolves the managed user's role in the acting course;
// a user with no membership here is indistinguishable from a missing one.
func (s *userService) targetMembership(scope tenant.Scope, userID uuid.UUID) (*models.CourseMembership, error) {
	m, err := s.users.GetMembership(userID, scope.CourseID())
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, authz.Forbidden(authz.ReasonAccessDenied)
		}
		return nil, err
	}
	return m, nil
}
