package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/domain"
	userrepo "storefront/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotVerified blocks login until the verification mail was confirmed.
	ErrNotVerified = errors.New("email not verified")
	// ErrAlreadyVerified is returned for repeat verification attempts.
	ErrAlreadyVerified = errors.New("email already verified")
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Service handles registration, login, email verification and password reset.
type Service struct {
	repo        userrepo.Repository
	tokens      *auth.JWTService
	mailer      mailer
	frontendURL string
}

type mailer interface {
	SendVerification(to, name, link string) error
	SendPasswordReset(to, name, link string) error
}

func New(repo userrepo.Repository, tokens *auth.JWTService, m mailer, frontendURL string) *Service {
	return &Service{
		repo:        repo,
		tokens:      tokens,
		mailer:      m,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
}

// Register creates an unverified account and mails a verification link.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", domain.ErrInvalidInput)
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	switch in.Gender {
	case "male", "female", "other":
	default:
		return nil, fmt.Errorf("%w: gender must be male, female or other", domain.ErrInvalidInput)
	}

	hash, err := auth.HashPassword(strings.TrimSpace(in.Password))
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		return nil, err
	}

	created, err := s.repo.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Gender:       in.Gender,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateEmailToken(created.ID, created.Email, auth.PurposeVerifyEmail)
	if err != nil {
		return nil, err
	}
	link := s.frontendURL + "/verify-email?token=" + url.QueryEscape(token)
	if err := s.mailer.SendVerification(created.Email, created.Name, link); err != nil {
		return nil, fmt.Errorf("send verification mail: %w", err)
	}
	return created, nil
}

// VerifyEmail marks the account from a mailed token as verified.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token, auth.PurposeVerifyEmail)
	if err != nil {
		return err
	}
	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	return s.repo.MarkVerified(ctx, u.ID)
}

// Login validates credentials and returns the user plus an access token.
// Unverified accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(strings.TrimSpace(password), u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, "", ErrNotVerified
	}
	token, _, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// RequestPasswordReset mails a reset link. Unknown addresses are ignored so
// the endpoint does not reveal which emails are registered.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	token, err := s.tokens.GenerateEmailToken(u.ID, u.Email, auth.PurposePasswordReset)
	if err != nil {
		return err
	}
	link := s.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
	return s.mailer.SendPasswordReset(u.Email, u.Name, link)
}

// ResetPassword sets a new password from a mailed reset token.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.tokens.ValidateToken(token, auth.PurposePasswordReset)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(strings.TrimSpace(newPassword))
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
		}
		return err
	}
	return s.repo.UpdatePassword(ctx, claims.UserID, hash)
}

// Profile returns the account for an authenticated user.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}
