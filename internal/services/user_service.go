package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/karnikjan/EasyEvent/internal/helpers"
	"github.com/karnikjan/EasyEvent/internal/models"
)

type UserService struct {
	userRepo        models.UserRepo
	hasher          helpers.PasswordHasher
	tokens          helpers.TokenManager
	strongPasswords bool
}

func NewUserService(userRepo models.UserRepo, hasher helpers.PasswordHasher, tokens helpers.TokenManager, strongPasswords bool) *UserService {
	return &UserService{
		userRepo:        userRepo,
		hasher:          hasher,
		tokens:          tokens,
		strongPasswords: strongPasswords,
	}
}

// AuthData is what a successful login hands back to the client.
type AuthData struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	TTL       time.Duration
}

// CreateUser registers a new account. The returned user never carries the password hash.
func (us *UserService) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	email = helpers.NormalizeEmail(email)
	if err := models.Validate.Struct(&models.User{Email: email, Password: password}); err != nil {
		return nil, validationError(err)
	}
	if len(password) > helpers.MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, helpers.MaxPasswordBytes)
	}
	if us.strongPasswords && !helpers.IsPasswordStrong(password) {
		return nil, fmt.Errorf("%w: password is not strong enough", ErrValidation)
	}

	_, err := us.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: user already exists", ErrAuthentication)
	case !errors.Is(err, models.ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := us.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, helpers.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, helpers.MaxPasswordBytes)
		}
		return nil, err
	}

	user, err := us.userRepo.CreateUser(ctx, &models.User{Email: email, Password: hashed})
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, fmt.Errorf("%w: user already exists", ErrAuthentication)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	public := *user
	public.Password = ""
	return &public, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*AuthData, error) {
	email = helpers.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrAuthentication)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := us.hasher.Compare(user.Password, password); err != nil {
		if errors.Is(err, helpers.ErrPasswordMismatch) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrAuthentication)
		}
		return nil, err
	}

	issued, err := us.tokens.IssueToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, err
	}

	return &AuthData{
		UserID:    user.ID.Hex(),
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		TTL:       issued.TTL,
	}, nil
}

func (us *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := us.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, classifyLookup(err, "user")
	}
	public := *user
	public.Password = ""
	return &public, nil
}

// classifyLookup turns repository lookup failures into error kinds.
func classifyLookup(err error, what string) error {
	switch {
	case errors.Is(err, models.ErrInvalidID):
		return fmt.Errorf("%w: invalid %s id", ErrValidation, what)
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrBookingNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return fmt.Errorf("failed to get %s: %w", what, err)
	}
}
