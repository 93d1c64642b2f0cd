package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/brightsteps/brightsteps-backend/internal/logger"
	"github.com/brightsteps/brightsteps-backend/internal/repos"
	"github.com/brightsteps/brightsteps-backend/internal/types"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// AccountService handles the password-backed register/login flow that
// coexists with the lightweight contact-entry flow.
type AccountService interface {
	Register(ctx context.Context, email, password, parentName string) (*types.User, error)
	Login(ctx context.Context, email, password string) (*types.User, error)
}

type accountService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewAccountService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) AccountService {
	serviceLog := log.With("service", "AccountService")
	return &accountService{db: db, log: serviceLog, userRepo: userRepo}
}

func (as *accountService) Register(ctx context.Context, email, password, parentName string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	contactType, err := ClassifyContact(email)
	if err != nil || contactType != types.ContactTypeEmail {
		return nil, ErrInvalidContact
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		Email:      email,
		Password:   string(hash),
		ParentName: strings.TrimSpace(parentName),
	}
	created, err := as.userRepo.Create(ctx, nil, user)
	if err != nil {
		// Unique index may race a concurrent register for the same email.
		if existing, getErr := as.userRepo.GetByEmail(ctx, nil, email); getErr == nil && existing != nil {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	as.log.Info("registered account", "user_id", created.ID)
	return created, nil
}

func (as *accountService) Login(ctx context.Context, email, password string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
