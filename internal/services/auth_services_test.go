package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"UserAuthAPI/internal/model"
	"UserAuthAPI/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// Mock UserStore
// =============================================================================

type mockUserStore struct {
	createFunc      func(ctx context.Context, u *model.User) (int64, error)
	getByEmailFunc  func(ctx context.Context, email string) (*model.User, error)
	emailExistsFunc func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserStore) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return 0, errors.New("not implemented")
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.emailExistsFunc != nil {
		return m.emailExistsFunc(ctx, email)
	}
	return false, errors.New("not implemented")
}

func newTestAuthService(store UserStore) *AuthService {
	hasher := NewPasswordHasher(bcrypt.MinCost)
	tokens := NewTokenService("this-is-a-test-secret", time.Hour)
	return NewAuthService(store, hasher, tokens)
}

func validInput() RegisterInput {
	return RegisterInput{
		FirstName:   "Jane",
		LastName:    "Doe",
		Gender:      "female",
		DateOfBirth: "1990-04-12",
		Phone:       "5551234567",
		Email:       "jane@x.com",
		Password:    "p1ssw0rd!",
	}
}

// =============================================================================
// Register
// =============================================================================

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	var stored *model.User
	store := &mockUserStore{
		emailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		createFunc: func(ctx context.Context, u *model.User) (int64, error) {
			stored = u
			return 7, nil
		},
	}
	svc := newTestAuthService(store)

	created, err := svc.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "jane@x.com", created.Email)

	require.NotNil(t, stored)
	assert.NotEqual(t, "p1ssw0rd!", stored.PasswordHash)
	assert.True(t, svc.Hasher.Check("p1ssw0rd!", stored.PasswordHash))
	assert.Equal(t, 1990, stored.DateOfBirth.Year())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	createCalled := false
	store := &mockUserStore{
		emailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
		createFunc: func(ctx context.Context, u *model.User) (int64, error) {
			createCalled = true
			return 1, nil
		},
	}
	svc := newTestAuthService(store)

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.False(t, createCalled, "no write must happen for a duplicate email")
}

func TestRegister_DuplicateRace(t *testing.T) {
	t.Parallel()

	// existence check passes but the insert hits the unique index
	store := &mockUserStore{
		emailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		createFunc: func(ctx context.Context, u *model.User) (int64, error) {
			return 0, repository.ErrDuplicateEmail
		},
	}
	svc := newTestAuthService(store)

	_, err := svc.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRegister_InvalidDateOfBirth(t *testing.T) {
	t.Parallel()

	createCalled := false
	store := &mockUserStore{
		emailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		createFunc: func(ctx context.Context, u *model.User) (int64, error) {
			createCalled = true
			return 1, nil
		},
	}
	svc := newTestAuthService(store)

	in := validInput()
	in.DateOfBirth = "not-a-date"

	_, err := svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, createCalled)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing email", func(in *RegisterInput) { in.Email = "" }},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }},
		{"missing first name", func(in *RegisterInput) { in.FirstName = "" }},
		{"short password", func(in *RegisterInput) { in.Password = "short" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(&mockUserStore{})
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// =============================================================================
// Login
// =============================================================================

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("p1ssw0rd!")
	require.NoError(t, err)

	store := &mockUserStore{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{
				ID:           7,
				FirstName:    "Jane",
				LastName:     "Doe",
				Email:        "jane@x.com",
				PasswordHash: hash,
			}, nil
		},
	}
	svc := newTestAuthService(store)

	result, err := svc.Login(context.Background(), "jane@x.com", "p1ssw0rd!")
	require.NoError(t, err)

	assert.Equal(t, SafeUser{ID: 7, Email: "jane@x.com", FirstName: "Jane", LastName: "Doe"}, result.User)

	claims, err := svc.Tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "jane@x.com", claims.Email)
}

func TestLogin_IndistinguishableFailures(t *testing.T) {
	t.Parallel()

	hasher := NewPasswordHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("right-password")
	require.NoError(t, err)

	store := &mockUserStore{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email == "known@x.com" {
				return &model.User{ID: 1, Email: email, PasswordHash: hash}, nil
			}
			return nil, repository.ErrUserNotFound
		},
	}
	svc := newTestAuthService(store)

	_, unknownErr := svc.Login(context.Background(), "unknown@x.com", "whatever")
	_, wrongPwErr := svc.Login(context.Background(), "known@x.com", "wrong-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongPwErr, "both failures must be observably identical")
}
