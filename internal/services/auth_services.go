package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"UserAuthAPI/internal/model"
	"UserAuthAPI/internal/repository"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dateOfBirth accepts a plain calendar date or a full timestamp.
var dobLayouts = []string{"2006-01-02", time.RFC3339}

// UserStore is the persistence surface the auth flows need.
type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	Users  UserStore
	Hasher *PasswordHasher
	Tokens *TokenService
}

func NewAuthService(store UserStore, hasher *PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{Users: store, Hasher: hasher, Tokens: tokens}
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (r RegisterInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.DateOfBirth, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

// CreatedUser is the public subset returned after signup.
type CreatedUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// SafeUser is the subset of user fields safe to echo back at login.
type SafeUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginResult struct {
	Token string
	User  SafeUser
}

// Register validates input, rejects duplicate emails, hashes the password
// and persists the user. The date of birth is parsed before any hashing
// work so malformed requests never pay the bcrypt cost.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*CreatedUser, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	exists, err := s.Users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	dob, err := parseDateOfBirth(in.DateOfBirth)
	if err != nil {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Gender:       in.Gender,
		DateOfBirth:  dob,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hash,
	}
	id, err := s.Users.CreateUser(ctx, user)
	if err != nil {
		// the unique index closes the race between the check and the insert
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return &CreatedUser{ID: id, Email: user.Email}, nil
}

// Login authenticates by email and password and issues a bearer token.
// An unknown email and a wrong password return the same error, so the
// response never reveals whether an email is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.Hasher.Check(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("could not issue token: %w", err)
	}
	return &LoginResult{
		Token: token,
		User: SafeUser{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		},
	}, nil
}

func parseDateOfBirth(value string) (time.Time, error) {
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid dateOfBirth format", ErrInvalidInput)
}
