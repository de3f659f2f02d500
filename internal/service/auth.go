// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services accept plain input structs and return domain errors from
// apperror; they never see an *http.Request or a status code.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/auth"
	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/repository"
	"github.com/sakif/restaurant-directory/internal/validate"
)

// Messages shown on the register and login forms.
const (
	MsgEmptyFields        = "Empty Fields"
	MsgUserAlreadyExists  = "User Already Exists"
	MsgInvalidCredentials = "Invalid Email or Password"
	MsgPasswordTooLong    = "Password must be 72 bytes or fewer"
)

// emptyFieldsReasons collapses every "required" failure into the single
// form-level message.
var emptyFieldsReasons = map[string]string{"required": MsgEmptyFields}

// AuthService handles registration and login.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users      repository.UserRepository  → read/write user records
//   - tokens     *auth.TokenService         → issue session tokens
//   - passwords  *auth.Hasher               → bcrypt hashing
//   - logger     *slog.Logger               → structured logging
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.Hasher
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.Hasher,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// RegisterInput is the register form. Every field is required.
type RegisterInput struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName"  validate:"required"`
	Email     string `form:"email"     validate:"required"`
	Password  string `form:"password"  validate:"required"`
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `form:"email"    validate:"required"`
	Password string `form:"password" validate:"required"`
}

// AuthResult is returned by a successful login: the user record and the
// token to store in the session.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new account.
//
// RULES, in order:
//  1. Any blank field → "Empty Fields", and storage is never queried.
//  2. An account with the email already exists → "User Already Exists".
//  3. Otherwise the password is hashed and the user persisted.
//
// Rule failures come back as apperror.ValidationErrors so the form can list
// them. The user is either fully created or not created at all.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)

	if err := validate.Struct(in, emptyFieldsReasons); err != nil {
		return nil, formError(err)
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, apperror.ValidationErrors{{Field: "email", Reason: MsgUserAlreadyExists}}
	case err != nil && !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("service/auth: checking email %s: %w", in.Email, err)
	}

	hash, err := s.passwords.Hash(in.Password)
	switch {
	case errors.Is(err, auth.ErrPasswordTooLong):
		return nil, apperror.ValidationErrors{{Field: "password", Reason: MsgPasswordTooLong}}
	case err != nil:
		return nil, fmt.Errorf("service/auth: hashing password for %s: %w", in.Email, err)
	}

	user := &model.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: creating user %s: %w", in.Email, err)
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("email", user.Email),
	)
	return user, nil
}

// Login checks credentials and issues a token for the session.
//
//   - A blank email or password → "Empty Fields" (ValidationErrors), and
//     storage is never queried.
//   - An unknown email or a wrong password → apperror.Unauthorized with one
//     generic message; the caller can't tell which of the two it was.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)

	if err := validate.Struct(in, emptyFieldsReasons); err != nil {
		return nil, formError(err)
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Info("login rejected: unknown email", slog.String("email", in.Email))
			return nil, apperror.Unauthorized(MsgInvalidCredentials)
		}
		return nil, fmt.Errorf("service/auth: looking up %s: %w", in.Email, err)
	}

	if !s.passwords.Verify(user.Password, in.Password) {
		s.logger.Info("login rejected: wrong password", slog.String("userID", user.ID))
		return nil, apperror.Unauthorized(MsgInvalidCredentials)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))
	return &AuthResult{User: user, Token: token}, nil
}

// formError reduces a "required" failure list to one "Empty Fields" entry:
// the form shows the message once no matter how many fields were blank.
func formError(err error) error {
	var list apperror.ValidationErrors
	if !errors.As(err, &list) {
		return err
	}
	out := apperror.ValidationErrors{}
	for _, fe := range list {
		if fe.Reason == MsgEmptyFields {
			if !containsReason(out, MsgEmptyFields) {
				out = append(out, apperror.FieldError{Field: "form", Reason: MsgEmptyFields})
			}
			continue
		}
		out = append(out, fe)
	}
	return out
}

func containsReason(list apperror.ValidationErrors, reason string) bool {
	for _, fe := range list {
		if fe.Reason == reason {
			return true
		}
	}
	return false
}

// GetUserByID returns the account a verified token refers to.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user id is required")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: getting user %s: %w", id, err)
	}
	return user, nil
}
