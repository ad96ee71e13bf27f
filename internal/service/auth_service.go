package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"storefront/internal/errs"
	"storefront/internal/models"
	"storefront/internal/repository"
)

type AuthService struct {
	admins repository.AdminRepository
}

func NewAuthService(admins repository.AdminRepository) *AuthService {
	return &AuthService{admins: admins}
}

// Login checks the credentials; unknown email and wrong password look the same to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.Admin{}, errs.ErrInvalidCredentials
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if errors.Is(err, errs.ErrAccountNotFound) {
		return models.Admin{}, errs.ErrInvalidCredentials
	}
	if err != nil {
		return models.Admin{}, err
	}
	if !models.CheckPassword(admin.PasswordHash, password) {
		log.Ctx(ctx).Warn().Str("component", "AuthService.Login").Str("email", email).Msg("wrong password")
		return models.Admin{}, errs.ErrInvalidCredentials
	}
	return admin, nil
}

// EnsureAdmin creates the admin account if no account with that email exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return errs.ErrMissingFields
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return err
	}
	created, err := s.admins.CreateIfAbsent(ctx, &models.Admin{Email: email, PasswordHash: hash})
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("component", "AuthService.EnsureAdmin").Str("email", email).Msg("admin account created")
	}
	return nil
}
