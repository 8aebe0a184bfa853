package credentials

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taskglow/taskglow/internal/dependencies/identity"
	"github.com/taskglow/taskglow/internal/model"
	"github.com/taskglow/taskglow/internal/passcode"
	"github.com/taskglow/taskglow/internal/storage"
)

// Service manages the collection of registered accounts. Every mutation
// persists the entire collection in a single write; the store's Set is the
// unit of atomicity.
//
// Email comparison is case-insensitive for every operation, including login.
type Service struct {
	storage storage.Store
	idgen   identity.Generator
	logger  *slog.Logger
}

// New creates a new credentials service
func New(store storage.Store, idgen identity.Generator, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		idgen:   idgen,
		logger:  logger,
	}
}

// Register creates a new account. It fails with ErrEmailExists when an
// account with the same email (case-insensitive) is already registered,
// leaving the collection unchanged.
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.Account, error) {
	accounts, err := s.accounts(ctx)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if findByEmail(accounts, email) >= 0 {
		return nil, model.ErrEmailExists
	}

	account := model.Account{
		ID:             s.idgen.AccountID(),
		Name:           strings.TrimSpace(name),
		Email:          email,
		PasswordSecret: passcode.Encode(password),
	}

	if err := s.storage.Set(ctx, storage.AccountsKey, append(accounts, account)); err != nil {
		return nil, err
	}

	s.logger.Info("account registered", slog.String("account_id", string(account.ID)))
	return &account, nil
}

// VerifyLogin returns the account matching the given email and password, or
// ErrInvalidCredentials. The same error covers unknown email and wrong
// password so callers cannot distinguish the two.
func (s *Service) VerifyLogin(ctx context.Context, email, password string) (*model.Account, error) {
	accounts, err := s.accounts(ctx)
	if err != nil {
		return nil, err
	}

	i := findByEmail(accounts, email)
	if i < 0 || !passcode.Matches(password, accounts[i].PasswordSecret) {
		return nil, model.ErrInvalidCredentials
	}

	account := accounts[i]
	return &account, nil
}

// AccountExists reports whether an account with the given email is
// registered. The password-recovery flow uses this before allowing a reset.
func (s *Service) AccountExists(ctx context.Context, email string) (bool, error) {
	accounts, err := s.accounts(ctx)
	if err != nil {
		return false, err
	}
	return findByEmail(accounts, email) >= 0, nil
}

// ResetPassword re-encodes and overwrites the password secret for the account
// with the given email. Returns ErrAccountNotFound when no account matches.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	accounts, err := s.accounts(ctx)
	if err != nil {
		return err
	}

	i := findByEmail(accounts, email)
	if i < 0 {
		return model.ErrAccountNotFound
	}

	accounts[i].PasswordSecret = passcode.Encode(newPassword)
	if err := s.storage.Set(ctx, storage.AccountsKey, accounts); err != nil {
		return err
	}

	s.logger.Info("password reset", slog.String("account_id", string(accounts[i].ID)))
	return nil
}

// UpdateProfile merges the given profile fields into the matching account
// record and persists the collection. Returns the updated account.
func (s *Service) UpdateProfile(ctx context.Context, id model.AccountID, update model.ProfileUpdate) (*model.Account, error) {
	accounts, err := s.accounts(ctx)
	if err != nil {
		return nil, err
	}

	i := findByID(accounts, id)
	if i < 0 {
		return nil, model.ErrAccountNotFound
	}

	if update.Name != nil {
		accounts[i].Name = strings.TrimSpace(*update.Name)
	}
	if update.ProfileImage != nil {
		accounts[i].ProfileImage = *update.ProfileImage
	}

	if err := s.storage.Set(ctx, storage.AccountsKey, accounts); err != nil {
		return nil, err
	}

	account := accounts[i]
	s.logger.Info("profile updated", slog.String("account_id", string(account.ID)))
	return &account, nil
}

// Lookup returns the live account record for an id, or ErrAccountNotFound.
// Session reconciliation uses this to refresh stale snapshots.
func (s *Service) Lookup(ctx context.Context, id model.AccountID) (*model.Account, error) {
	accounts, err := s.accounts(ctx)
	if err != nil {
		return nil, err
	}

	i := findByID(accounts, id)
	if i < 0 {
		return nil, model.ErrAccountNotFound
	}

	account := accounts[i]
	return &account, nil
}

// accounts loads the full account collection; an absent or corrupt key is an
// empty collection
func (s *Service) accounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if _, err := s.storage.Get(ctx, storage.AccountsKey, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func findByEmail(accounts []model.Account, email string) int {
	for i := range accounts {
		if strings.EqualFold(accounts[i].Email, email) {
			return i
		}
	}
	return -1
}

func findByID(accounts []model.Account, id model.AccountID) int {
	for i := range accounts {
		if accounts[i].ID == id {
			return i
		}
	}
	return -1
}
