package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
	"github.com/sukumar807253/sindhuja-colloction/internal/repository"
	customError "github.com/sukumar807253/sindhuja-colloction/pkg/errors"
)

// AuthService performs the plain credential check for field officers and
// admins. No tokens or sessions are issued; the client keeps the result.
type AuthService struct {
	userRepo repository.UserRepository
	log      *logrus.Logger
}

func NewAuthService(userRepo repository.UserRepository, log *logrus.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, log: log}
}

// Login verifies the email/password pair against the stored bcrypt hash
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	user, err := s.userRepo.ByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvalidCredentials()
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if user.Blocked {
		return nil, customError.WrapAccountBlocked(user.Email)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, customError.WrapInvalidCredentials()
	}

	s.log.WithField("email", user.Email).Info("user logged in")

	return &domain.LoginResponse{
		ID:      user.ID,
		Name:    user.Name,
		IsAdmin: user.IsAdmin,
	}, nil
}
