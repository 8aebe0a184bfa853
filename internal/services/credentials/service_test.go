package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/taskglow/taskglow/internal/dependencies/identity"
	"github.com/taskglow/taskglow/internal/dependencies/random"
	"github.com/taskglow/taskglow/internal/model"
	"github.com/taskglow/taskglow/internal/passcode"
	"github.com/taskglow/taskglow/internal/storage"
	"github.com/taskglow/taskglow/internal/storage/memory"
	"github.com/taskglow/taskglow/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, identity.New(random.New()), testutil.NopLogger())
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	account, err := s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")
	s.Require().NoError(err)

	s.NotEmpty(account.ID)
	s.Equal("Ann", account.Name)
	s.Equal("ann@x.com", account.Email)
	s.Equal(passcode.Encode("secret1"), account.PasswordSecret)
}

func (s *ServiceSuite) TestRegisterPersistsCollection() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	var accounts []model.Account
	found, err := s.storage.Get(s.ctx, storage.AccountsKey, &accounts)
	s.Require().NoError(err)
	s.True(found)
	s.Len(accounts, 1)
}

func (s *ServiceSuite) TestRegisterFailsOnDuplicateEmail() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	_, err := s.service.Register(s.ctx, "Other Ann", "ann@x.com", "secret2")
	s.ErrorIs(err, model.ErrEmailExists)
}

func (s *ServiceSuite) TestRegisterDuplicateCheckIsCaseInsensitive() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	_, err := s.service.Register(s.ctx, "Other Ann", "ANN@X.COM", "secret2")
	s.ErrorIs(err, model.ErrEmailExists)
}

func (s *ServiceSuite) TestRegisterFailureLeavesStoreUnchanged() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")
	_, _ = s.service.Register(s.ctx, "Other Ann", "ann@x.com", "secret2")

	var accounts []model.Account
	_, _ = s.storage.Get(s.ctx, storage.AccountsKey, &accounts)
	s.Require().Len(accounts, 1)
	s.Equal("Ann", accounts[0].Name)
}

func (s *ServiceSuite) TestRegisterAssignsUniqueIDs() {
	a, _ := s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")
	b, _ := s.service.Register(s.ctx, "Bob", "bob@x.com", "secret2")

	s.NotEqual(a.ID, b.ID)
}

// VerifyLogin tests

func (s *ServiceSuite) TestVerifyLoginSucceeds() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	account, err := s.service.VerifyLogin(s.ctx, "ann@x.com", "secret1")
	s.Require().NoError(err)
	s.Equal("Ann", account.Name)
}

func (s *ServiceSuite) TestVerifyLoginIsCaseInsensitiveOnEmail() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	account, err := s.service.VerifyLogin(s.ctx, "Ann@X.com", "secret1")
	s.Require().NoError(err)
	s.Equal("Ann", account.Name)
}

func (s *ServiceSuite) TestVerifyLoginFailsWithWrongPassword() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	_, err := s.service.VerifyLogin(s.ctx, "ann@x.com", "wrong")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

func (s *ServiceSuite) TestVerifyLoginFailsWithUnknownEmail() {
	_, err := s.service.VerifyLogin(s.ctx, "nobody@x.com", "secret1")
	s.ErrorIs(err, model.ErrInvalidCredentials)
}

// AccountExists tests

func (s *ServiceSuite) TestAccountExists() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	exists, err := s.service.AccountExists(s.ctx, "ANN@x.com")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.service.AccountExists(s.ctx, "bob@x.com")
	s.Require().NoError(err)
	s.False(exists)
}

// ResetPassword tests

func (s *ServiceSuite) TestResetPasswordReplacesSecret() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	err := s.service.ResetPassword(s.ctx, "ann@x.com", "secret2")
	s.Require().NoError(err)

	_, err = s.service.VerifyLogin(s.ctx, "ann@x.com", "secret1")
	s.ErrorIs(err, model.ErrInvalidCredentials)

	_, err = s.service.VerifyLogin(s.ctx, "ann@x.com", "secret2")
	s.NoError(err)
}

func (s *ServiceSuite) TestResetPasswordIsCaseInsensitive() {
	_, _ = s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	s.NoError(s.service.ResetPassword(s.ctx, "ANN@X.COM", "secret2"))
}

func (s *ServiceSuite) TestResetPasswordFailsForUnknownEmail() {
	err := s.service.ResetPassword(s.ctx, "nobody@x.com", "secret2")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// UpdateProfile tests

func (s *ServiceSuite) TestUpdateProfileName() {
	account, _ := s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	name := "Ann Smith"
	updated, err := s.service.UpdateProfile(s.ctx, account.ID, model.ProfileUpdate{Name: &name})
	s.Require().NoError(err)
	s.Equal("Ann Smith", updated.Name)

	live, err := s.service.Lookup(s.ctx, account.ID)
	s.Require().NoError(err)
	s.Equal("Ann Smith", live.Name)
}

func (s *ServiceSuite) TestUpdateProfileImage() {
	account, _ := s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")

	image := "data:image/png;base64,iVBORw0KGgo="
	updated, err := s.service.UpdateProfile(s.ctx, account.ID, model.ProfileUpdate{ProfileImage: &image})
	s.Require().NoError(err)
	s.Equal(image, updated.ProfileImage)
	s.Equal("Ann", updated.Name, "unset fields stay unchanged")
}

func (s *ServiceSuite) TestUpdateProfileFailsForUnknownID() {
	_, err := s.service.UpdateProfile(s.ctx, "nope", model.ProfileUpdate{})
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// Lookup tests

func (s *ServiceSuite) TestLookupFailsForUnknownID() {
	_, err := s.service.Lookup(s.ctx, "nope")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// Corruption handling

func (s *ServiceSuite) TestCorruptCollectionIsTreatedAsEmpty() {
	s.storage.SetRaw(storage.AccountsKey, []byte("{definitely not json"))

	account, err := s.service.Register(s.ctx, "Ann", "ann@x.com", "secret1")
	s.Require().NoError(err)
	s.NotNil(account)
}
