package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aspiro/internal/domain/user"
	"aspiro/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidInput = errors.New("invalid input")

type CreateInput struct {
	Email    string
	FullName *string
	Password string
}

type Service struct {
	users      user.Repository
	bcryptCost int
	metrics    *metrics.Manager
	logger     *zap.Logger
}

type Option func(*Service)

func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(users user.Repository, opts ...Option) *Service {
	s := &Service{users: users, bcryptCost: bcrypt.DefaultCost, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser registers a new active user unless the email is already taken.
// The password is stored as a bcrypt hash and never returned.
func (s *Service) CreateUser(ctx context.Context, in CreateInput) (user.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidInput
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		s.metrics.ObserveUserCreate(metrics.OutcomeDuplicate)
		return user.User{}, user.ErrDuplicateEmail
	case !errors.Is(err, user.ErrNotFound):
		s.metrics.ObserveUserCreate(metrics.OutcomeError)
		return user.User{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return user.User{}, fmt.Errorf("%w: password longer than 72 bytes", ErrInvalidInput)
		}
		s.metrics.ObserveUserCreate(metrics.OutcomeError)
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.CreateIfAbsent(ctx, user.NewUser{
		Email:          email,
		FullName:       in.FullName,
		HashedPassword: string(hash),
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			s.metrics.ObserveUserCreate(metrics.OutcomeDuplicate)
			return user.User{}, user.ErrDuplicateEmail
		}
		s.metrics.ObserveUserCreate(metrics.OutcomeError)
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.metrics.ObserveUserCreate(metrics.OutcomeOK)
	s.logger.Info("user created", zap.Int64("user_id", created.ID))
	return sanitizeUser(created), nil
}

func sanitizeUser(u user.User) user.User {
	u.HashedPassword = ""
	return u
}
