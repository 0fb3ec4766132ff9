package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GeisyGP/sistema-ppi/internal/authz"
	"github.com/GeisyGP/sistema-ppi/internal/models"
	"github.com/GeisyGP/sistema-ppi/internal/repository"
)

// AuthService authenticates principals and resolves their active
// (course, role) membership once, at login.
type AuthService struct {
	users         repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(users repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, jwtExpiration: jwtExpiration}
}

// AuthResult is what a successful login returns.
type AuthResult struct {
	User     *models.User `json:"user"`
	Token    string       `json:"token"`
	CourseID uuid.UUID    `json:"course_id"`
	Role     models.Role  `json:"role"`
}

// Login checks credentials and picks the active membership. When courseID
// is the zero id the user's first membership is used.
func (s *AuthService) Login(registration, password string, courseID uuid.UUID) (*AuthResult, error) {
	user, err := s.users.GetByRegistration(registration)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	memberships, err := s.users.ListMembershipsByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load memberships: %w", err)
	}
	if len(memberships) == 0 {
		return nil, fmt.Errorf("user has no course membership")
	}

	active := memberships[0]
	if courseID != uuid.Nil {
		active = nil
		for _, m := range memberships {
			if m.CourseID == courseID {
				active = m
				break
			}
		}
		if active == nil {
			return nil, fmt.Errorf("user is not a member of the requested course")
		}
	}

	token, err := s.generateJWT(user, active)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResult{
		User:     user,
		Token:    token,
		CourseID: active.CourseID,
		Role:     active.Role,
	}, nil
}

func (s *AuthService) generateJWT(user *models.User, active *models.CourseMembership) (string, error) {
	claims := jwt.MapClaims{
		"sub":    user.ID.String(),
		"course": active.CourseID.String(),
		"role":   string(active.Role),
		"exp":    time.Now().Add(s.jwtExpiration).Unix(),
		"iat":    time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken rebuilds the principal carried by a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (authz.Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return authz.Principal{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authz.Principal{}, fmt.Errorf("invalid token claims")
	}
	userID, err := uuid.Parse(claimString(claims, "sub"))
	if err != nil {
		return authz.Principal{}, fmt.Errorf("invalid token subject")
	}
	activeCourse, err := uuid.Parse(claimString(claims, "course"))
	if err != nil {
		return authz.Principal{}, fmt.Errorf("invalid token course")
	}
	role := models.Role(claimString(claims, "role"))
	if !role.Valid() {
		return authz.Principal{}, fmt.Errorf("invalid token role")
	}

	memberships, err := s.users.ListMembershipsByUser(userID)
	if err != nil {
		return authz.Principal{}, fmt.Errorf("failed to load memberships: %w", err)
	}
	p := authz.Principal{ID: userID, Role: role, ActiveCourseID: activeCourse}
	for _, m := range memberships {
		p.Memberships = append(p.Memberships, authz.Membership{CourseID: m.CourseID, Role: m.Role})
	}
	return p, nil
}

func claimString(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
