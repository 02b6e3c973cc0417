// Package services contains server-side business logic. This file implements
// SessionService, which handles account creation, login, access-token refresh
// and logout.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/hasher"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notekeeper/internal/server/revocation"
)

// TokenCodec issues and verifies the tokens handed out by SessionService.
// *auth.Codec satisfies it.
type TokenCodec interface {
	IssueAccess(customerID string) (string, error)
	IssueRefresh(customerID string) (string, error)
	VerifyRefresh(token string) (string, error)
}

type AccountInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	UserType       string
	ProfilePicture string
}

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Customer     models.Profile
	AccessToken  string
	RefreshToken string
}

type SessionService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	hasher      hasher.Hasher
	tokens      TokenCodec
	revoked     revocation.Registry
	log         logging.Logger
}

func NewSessionService(tx dbx.Transactor, m repomanager.RepositoryManager, h hasher.Hasher,
	tokens TokenCodec, revoked revocation.Registry, log logging.Logger) *SessionService {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &SessionService{
		tx:          tx,
		repomanager: m,
		hasher:      h,
		tokens:      tokens,
		revoked:     revoked,
		log:         log.With("component", "session"),
	}
}

func internal(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, what, err)
}

// CreateAccount registers a customer. If the email is already taken the
// stored password is replaced and the other fields are left untouched.
func (s *SessionService) CreateAccount(ctx context.Context, in AccountInput) error {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" || in.UserType == "" {
		return fmt.Errorf("%w: all fields are required", common.ErrorValidation)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return internal("hash password", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Customers(tx)

		existing, err := repo.FindByEmail(ctx, in.Email)
		switch {
		case err == nil:
			existing.PasswordHash = digest
			if err := repo.Save(ctx, existing); err != nil {
				return internal("update customer", err)
			}
			s.log.Info(ctx, "customer password replaced", "customer_id", existing.ID)
			return nil
		case errors.Is(err, common.ErrorNotFound):
			c, err := repo.Create(ctx, &models.Customer{
				Email:          in.Email,
				PasswordHash:   digest,
				FirstName:      in.FirstName,
				LastName:       in.LastName,
				UserType:       in.UserType,
				ProfilePicture: in.ProfilePicture,
			})
			if err != nil {
				return internal("create customer", err)
			}
			s.log.Info(ctx, "customer created", "customer_id", c.ID)
			return nil
		default:
			return internal("find customer", err)
		}
	})
	if err != nil && !errors.Is(err, common.ErrorInternal) {
		// BeginTx / Commit failures
		return internal("transaction", err)
	}
	return err
}

// Login checks credentials and mints an access/refresh token pair.
func (s *SessionService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	customer, err := s.repomanager.Customers(s.tx.Conn()).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: customer %s", common.ErrorNotFound, email)
		}
		return nil, internal("find customer", err)
	}

	ok, err := s.hasher.Compare(password, customer.PasswordHash)
	if err != nil {
		return nil, internal("compare password", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: invalid password", common.ErrorUnauthorized)
	}

	access, err := s.tokens.IssueAccess(customer.ID)
	if err != nil {
		return nil, internal("issue access token", err)
	}
	refresh, err := s.tokens.IssueRefresh(customer.ID)
	if err != nil {
		return nil, internal("issue refresh token", err)
	}

	s.log.Info(ctx, "customer logged in", "customer_id", customer.ID)

	return &LoginResult{
		Customer:     customer.Profile(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself stays valid until it expires or is revoked.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", fmt.Errorf("%w: refresh token is required", common.ErrorValidation)
	}

	customerID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			return "", err
		}
		return "", internal("verify refresh token", err)
	}

	if s.revoked.IsRevoked(refreshToken) {
		return "", common.ErrTokenRevoked
	}

	access, err := s.tokens.IssueAccess(customerID)
	if err != nil {
		return "", internal("issue access token", err)
	}
	s.log.Debug(ctx, "access token refreshed", "customer_id", customerID)
	return access, nil
}

// Logout revokes refreshToken. The token is not verified first, so garbage
// and already revoked tokens are accepted too.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("%w: refresh token is required", common.ErrorValidation)
	}
	s.revoked.Revoke(refreshToken)
	s.log.Debug(ctx, "refresh token revoked")
	return nil
}
