package auth

import (
	"context"
	"errors"

	"rentstock/internal/domain"
	"rentstock/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")

type Service struct {
	coord  *store.Coordinator
	tokens *TokenManager
	logger *zap.Logger
}

func NewService(coord *store.Coordinator, tokens *TokenManager, logger *zap.Logger) *Service {
	return &Service{
		coord:  coord,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies the credentials against the users collection and
// returns a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	var user *domain.User
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		users, err := store.LoadAll[domain.User](tx, store.Users)
		if err != nil {
			return err
		}
		for i := range users {
			if users[i].Email == email {
				user = &users[i]
				break
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if user == nil {
		return "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		s.logger.Warn("failed login attempt", zap.String("email", email))
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(*user)
}

// EnsureAdmin seeds the default admin account when the users collection
// is empty, so a fresh deployment is reachable.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seeded := false
	err = s.coord.Exec(ctx, func(tx *store.Tx) error {
		users, err := store.LoadAll[domain.User](tx, store.Users)
		if err != nil {
			return err
		}
		if len(users) > 0 {
			return nil
		}

		admin := domain.User{
			ID:             uuid.NewString(),
			Email:          email,
			Name:           "Admin User",
			Role:           "admin",
			HashedPassword: string(hash),
		}
		seeded = true
		return store.StageAll(tx, store.Users, []domain.User{admin})
	})
	if err != nil {
		return err
	}

	if seeded {
		s.logger.Info("seeded admin user", zap.String("email", email))
	}
	return nil
}
