package user

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/mailer"
	"github.com/jwalitptl/clinic-api/pkg/security"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

// dummyPassword is hashed once and compared against on unknown usernames so
// both authentication failures cost one bcrypt comparison.
const dummyPassword = "clinic-api-dummy-password"

type UserService interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	SetPassword(ctx context.Context, id uuid.UUID, password string) (*model.User, error)
	ResetPasswordByEmail(ctx context.Context, email, password string) (*model.User, error)
}

type Service struct {
	tx     repository.Transactor
	repo   repository.UserRepository
	hasher security.PasswordHasher
	mail   mailer.Mailer
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewService(tx repository.Transactor, repo repository.UserRepository, hasher security.PasswordHasher, mail mailer.Mailer) *Service {
	return &Service{
		tx:     tx,
		repo:   repo,
		hasher: hasher,
		mail:   mail,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if err := validator.Required(
		validator.Field{Name: "username", Value: req.Username},
		validator.Field{Name: "email", Value: req.Email},
		validator.Field{Name: "password", Value: req.Password},
	); err != nil {
		return nil, err
	}

	email, err := validator.CheckEmail(req.Email)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = model.UserRoleAdmin
	}

	user := &model.User{
		Base:         model.NewBase(s.now()),
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureUnique(ctx, uuid.Nil, user.Username, user.Email); err != nil {
			return err
		}
		return s.repo.Create(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *Service) ensureUnique(ctx context.Context, self uuid.UUID, username, email string) error {
	if username != "" {
		existing, err := s.repo.GetByUsername(ctx, username)
		if err := service.EnsureUnique("username", self, existing, err); err != nil {
			return err
		}
	}
	if email != "" {
		existing, err := s.repo.GetByEmail(ctx, email)
		if err := service.EnsureUnique("email", self, existing, err); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

// Update applies the non-empty fields of req. A new password is re-hashed.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	var username, email, hash string
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		e, err := validator.CheckEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		email = e
	}
	if req.Password != nil && *req.Password != "" {
		h, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var user *model.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}

		if username == user.Username {
			username = ""
		}
		if email == user.Email {
			email = ""
		}
		if err := s.ensureUnique(ctx, id, username, email); err != nil {
			return err
		}

		if username != "" {
			user.Username = username
		}
		if email != "" {
			user.Email = email
		}
		if hash != "" {
			user.PasswordHash = hash
		}
		return s.repo.Update(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.MissingField("username")
	}
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email, err := validator.CheckEmail(email)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByEmail(ctx, email)
}

// Authenticate verifies the credentials. Unknown users and wrong passwords
// fail with the same InvalidCredentials error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.HasCode(err, errors.ErrNotFound) {
			return nil, err
		}
		_ = s.hasher.Compare(s.dummy(), password)
		return nil, errors.InvalidCredentials()
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, errors.InvalidCredentials()
	}
	return user, nil
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash dummy password")
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func (s *Service) SetPassword(ctx context.Context, id uuid.UUID, password string) (*model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	var user *model.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		return s.repo.Update(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set password: %w", err)
	}

	s.notifyPasswordChanged(ctx, user)
	return user, nil
}

func (s *Service) ResetPasswordByEmail(ctx context.Context, email, password string) (*model.User, error) {
	email, err := validator.CheckEmail(email)
	if err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	var user *model.User
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		return s.repo.Update(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset password: %w", err)
	}

	s.notifyPasswordChanged(ctx, user)
	return user, nil
}

// notifyPasswordChanged is best effort: the password change already committed.
func (s *Service) notifyPasswordChanged(ctx context.Context, user *model.User) {
	if err := s.mail.SendPasswordChanged(ctx, user.Email, user.Username); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to send password change notice")
	}
}
