package service

import (
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"roombooking/internal/db"
	apperrors "roombooking/internal/errors"
	"roombooking/internal/repository"
)

// defaultPassword is assigned when an admin creates a user without one; the
// user is expected to change it after first login.
const defaultPassword = "MISC1234"

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Login verifies credentials and issues a signed token carrying the user's
// access flags.
func (s *UserService) Login(email, password string) (string, error) {
	user, err := s.repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperrors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Unauthorized("invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", apperrors.NewHTTPError(500, "JWT_SECRET not set")
	}
	claims := jwt.MapClaims{
		"uid":           user.ID,
		"email":         user.Email,
		"authorisation": user.Authorisation,
		"exp":           time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *UserService) List() ([]db.User, error) {
	return s.repo.List()
}

// Create registers a user with no access flags set. An empty password falls
// back to the shared default.
func (s *UserService) Create(email, name, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.BadRequest("a valid email address is required")
	}
	if password == "" {
		password = defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{Email: email, PasswordHash: string(hash)}
	if name = strings.TrimSpace(name); name != "" {
		user.Name.String = name
		user.Name.Valid = true
	}
	if err := s.repo.Create(user); err != nil {
		return nil, storeError(err)
	}
	return user, nil
}

// UpdateFlags sets a user's access flags. callerID guards against an admin
// revoking their own authorisation and locking everyone out.
func (s *UserService) UpdateFlags(callerID, id int, settings, authorisation, analytics bool) error {
	if callerID == id && !authorisation {
		return apperrors.BadRequest("you cannot revoke your own admin access")
	}
	return s.repo.UpdateFlags(id, settings, authorisation, analytics)
}

func (s *UserService) Delete(callerID, id int) error {
	if callerID == id {
		return apperrors.BadRequest("you cannot delete your own account")
	}
	return s.repo.Delete(id)
}
