package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/accounts_admin/internal/events"
	"github.com/Skotchmaster/accounts_admin/internal/hash"
	"github.com/Skotchmaster/accounts_admin/internal/logging"
	"github.com/Skotchmaster/accounts_admin/internal/models"
	"github.com/Skotchmaster/accounts_admin/internal/repo"
	"github.com/Skotchmaster/accounts_admin/internal/tokens"
)

type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id uint) (*models.Account, error)
}

type TokenIssuer interface {
	Issue(accountID uint) (tokens.Token, error)
}

type AuthService struct {
	Repo   AccountStore
	Tokens TokenIssuer
	Events events.Publisher
}

type LoginResult struct {
	Account models.Account
	Token   tokens.Token
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	if email == "" || password == "" {
		return nil, ErrValidation
	}

	account, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 400, "reason", "account not found")
			return nil, ErrNotFoundAccount
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("login: find account: %w", err)
	}
	if !account.IsActive {
		l.Warn("login_failed", "status", 400, "reason", "account inactive", "account_id", account.ID)
		return nil, ErrNotFoundAccount
	}

	if !hash.CheckPassword(account.Password, password) {
		l.Warn("login_failed", "status", 400, "reason", "invalid password", "account_id", account.ID)
		return nil, ErrInvalidCredentials
	}

	tok, err := s.Tokens.Issue(account.ID)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.publish(ctx, events.TypeAccountLoggedIn, account)
	l.Info("login_successful", "account_id", account.ID)

	return &LoginResult{Account: *account, Token: tok}, nil
}

// Logout only emits the event; tokens are stateless and expire on their own.
func (s *AuthService) Logout(ctx context.Context, account *models.Account) {
	if account == nil {
		return
	}
	s.publish(ctx, events.TypeAccountLoggedOut, account)
}

func (s *AuthService) Me(ctx context.Context, id uint) (*models.Account, error) {
	account, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFoundAccount
		}
		return nil, fmt.Errorf("me: find account: %w", err)
	}
	return account, nil
}

func (s *AuthService) publish(ctx context.Context, typ string, account *models.Account) {
	if s.Events == nil {
		return
	}
	ev := events.Event{
		Type:      typ,
		AccountID: account.ID,
		Email:     account.Email,
		Role:      string(account.Role),
		At:        time.Now().UTC(),
	}
	if err := s.Events.Publish(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", typ, "account_id", account.ID, "error", err)
	}
}
