package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskglow/taskglow/internal/model"
	"github.com/taskglow/taskglow/internal/services/credentials"
	"github.com/taskglow/taskglow/internal/storage"
)

// Service tracks which account, if any, is currently logged in.
//
// The session is a full account snapshot persisted under its own key, so it
// survives restarts until an explicit logout. The snapshot is a denormalized
// copy of the credential store's record; every read reconciles it against the
// live record so profile edits show up without a re-login.
type Service struct {
	storage     storage.Store
	credentials *credentials.Service
	logger      *slog.Logger
}

// New creates a new session service
func New(store storage.Store, creds *credentials.Service, logger *slog.Logger) *Service {
	return &Service{
		storage:     store,
		credentials: creds,
		logger:      logger,
	}
}

// Login verifies the given credentials and, on success, stores the account
// snapshot as the current session. On failure any existing session is left
// untouched.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Account, error) {
	account, err := s.credentials.VerifyLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Set(ctx, storage.SessionKey, account); err != nil {
		return nil, err
	}

	s.logger.Info("session started", slog.String("account_id", string(account.ID)))
	return account, nil
}

// Logout clears the session. Logging out with no session is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.storage.Delete(ctx, storage.SessionKey); err != nil {
		return err
	}
	s.logger.Info("session cleared")
	return nil
}

// Current returns the logged-in account, or ErrNoSession. The stored snapshot
// is compared against the live credential record on every read: drift is
// repaired by persisting the live record, and a deleted account clears the
// session.
func (s *Service) Current(ctx context.Context) (*model.Account, error) {
	var snapshot model.Account
	found, err := s.storage.Get(ctx, storage.SessionKey, &snapshot)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrNoSession
	}

	live, err := s.credentials.Lookup(ctx, snapshot.ID)
	if errors.Is(err, model.ErrAccountNotFound) {
		if err := s.storage.Delete(ctx, storage.SessionKey); err != nil {
			return nil, err
		}
		return nil, model.ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	if *live != snapshot {
		if err := s.storage.Set(ctx, storage.SessionKey, live); err != nil {
			return nil, err
		}
		s.logger.Debug("session snapshot refreshed", slog.String("account_id", string(live.ID)))
	}

	return live, nil
}

// Run watches the store and reconciles the session whenever the account
// collection changes, e.g. after a profile edit written by another process
// sharing the store. It blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	events, err := s.storage.Watch(ctx)
	if err != nil {
		return err
	}

	for event := range events {
		if event.Key != storage.AccountsKey {
			continue
		}
		if _, err := s.Current(ctx); err != nil && !errors.Is(err, model.ErrNoSession) {
			s.logger.Warn("session reconciliation failed", slog.String("error", err.Error()))
		}
	}

	return nil
}
