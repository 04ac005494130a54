package login

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	c "taskminder/internal/core/domain/common"
	"taskminder/internal/core/domain/logging"
	"taskminder/internal/core/domain/user"
	"taskminder/internal/core/services"
)

const (
	EMAIL    = "test@test.test"
	PASSWORD = "test-password"
	TOKEN    = "test-session-token"
)

var NOW time.Time = time.Now().UTC()

type stubPasswordHasher struct{}

func (h stubPasswordHasher) HashPassword(password user.RawPassword) (user.PasswordHash, error) {
	return user.PasswordHash("hashed::" + string(password)), nil
}

func (h stubPasswordHasher) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	return user.PasswordHash("hashed::"+string(password)) == hash
}

type stubTokenGenerator struct{}

func (g stubTokenGenerator) GenerateToken() user.SessionToken {
	return user.SessionToken(TOKEN)
}

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	UserRepository    *user.TestUserRepository
	SessionRepository *user.TestSessionRepository
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewTestUserRepository()
	suite.SessionRepository = user.NewTestSessionRepository(suite.UserRepository)
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.SessionRepository,
		stubPasswordHasher{},
		stubTokenGenerator{},
		func() time.Time { return NOW },
	)
}

func TestLogInService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUser()

	result, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Password: PASSWORD},
	)

	s.Nil(err)
	s.Equal(user.SessionToken(TOKEN), result.Token)

	authenticated, err := s.SessionRepository.GetUserByToken(context.Background(), result.Token)
	s.Nil(err)
	s.Equal(u.ID, authenticated.ID)
}

func (s *testSuite) TestUnknownEmail() {
	s.createUser()

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail("unknown@test.test"), Password: PASSWORD},
	)

	s.True(errors.Is(err, user.ErrInvalidCredentials))
	s.Equal(0, len(s.SessionRepository.Sessions))
}

func (s *testSuite) TestInvalidPassword() {
	s.createUser()

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Password: "invalid-password"},
	)

	s.True(errors.Is(err, user.ErrInvalidCredentials))
	s.Equal(0, len(s.SessionRepository.Sessions))
}

func (s *testSuite) TestSessionCreationErrorReturned() {
	s.createUser()
	createErr := errors.New("session store unavailable")
	s.SessionRepository.CreateError = createErr

	_, err := s.Service.Run(
		context.Background(),
		Input{Email: c.NewEmail(EMAIL), Password: PASSWORD},
	)

	s.True(errors.Is(err, createErr))
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	hash, err := stubPasswordHasher{}.HashPassword(PASSWORD)
	if err != nil {
		s.FailNow(err.Error())
	}
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: hash,
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}
