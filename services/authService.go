package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/prostore-api/events"
	"github.com/Kariqs/prostore-api/models"
	"github.com/Kariqs/prostore-api/repositories"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// SignInHook runs after credentials are verified and before the session
// token is issued. Hook errors are logged and never fail the sign in.
type SignInHook func(ctx context.Context, sessionCartID string, user *models.User) error

type TokenIssuer interface {
	Issue(user *models.User) (string, time.Time, error)
}

type Session struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type AuthService struct {
	users  repositories.UserRepository
	tokens TokenIssuer
	events events.Publisher
	hooks  []SignInHook
	log    *zap.Logger
}

func NewAuthService(users repositories.UserRepository, tokens TokenIssuer, publisher events.Publisher, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, events: publisher, log: log}
}

func (s *AuthService) OnSignIn(hook SignInHook) {
	s.hooks = append(s.hooks, hook)
}

func (s *AuthService) SignIn(ctx context.Context, form models.SignInForm, sessionCartID string) (*Session, error) {
	user, err := s.users.FindUserByEmail(ctx, form.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	for _, hook := range s.hooks {
		if err := hook(ctx, sessionCartID, user); err != nil {
			s.log.Warn("Sign-in hook failed", zap.Uint("userId", user.ID), zap.Error(err))
		}
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// SignUp creates the account and signs the new user in.
func (s *AuthService) SignUp(ctx context.Context, form models.SignUpForm, sessionCartID string) (*Session, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:          form.Name,
		Email:         form.Email,
		Password:      string(hashed),
		Role:          models.RoleUser,
		PaymentMethod: models.DefaultPaymentMethod,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if err := s.events.Publish(ctx, events.UserCreated, map[string]any{
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
	}); err != nil {
		s.log.Warn("Publishing user.created failed", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return s.SignIn(ctx, models.SignInForm{Email: form.Email, Password: form.Password}, sessionCartID)
}
