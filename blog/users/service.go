package users

import (
	"context"

	"github.com/kbukum/blogapi/auth/jwt"
	"github.com/kbukum/blogapi/auth/password"
	"github.com/kbukum/blogapi/authz"
	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/errors"
	"github.com/kbukum/blogapi/logger"
)

// Service implements registration, login, and user management.
type Service struct {
	store  Store
	hasher password.Hasher
	tokens *jwt.Service[*authz.Claims]
	log    *logger.Logger
}

// NewService creates a user Service.
func NewService(store Store, hasher password.Hasher, tokens *jwt.Service[*authz.Claims], log *logger.Logger) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		log:    log.WithComponent("users"),
	}
}

// Register creates a new account with the default user role. The email must
// not be taken.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*blog.User, error) {
	existing, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.AlreadyExists("user")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.InvalidInput("password", err.Error())
	}

	user := &blog.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
		Role:      string(authz.RoleUser),
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, *blog.User, error) {
	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, errors.InvalidCredentials()
	}
	if err := s.hasher.Verify(req.Password, user.Password); err != nil {
		return "", nil, errors.InvalidCredentials()
	}

	token, err := s.tokens.GenerateAccess(&authz.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return "", nil, errors.Internal(err)
	}

	s.log.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})
	return token, user, nil
}

// Get returns a single user by id.
func (s *Service) Get(ctx context.Context, id int64) (*blog.User, error) {
	return s.store.GetByID(ctx, id)
}

// List returns a page of users with the total count.
func (s *Service) List(ctx context.Context, params blog.ListParams) ([]blog.User, int64, error) {
	return s.store.List(ctx, params)
}

// Update modifies a user's profile. Empty fields are left unchanged; a new
// password is re-hashed.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*blog.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" && req.Email != user.Email {
		existing, err := s.store.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, errors.AlreadyExists("user")
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := s.hasher.Hash(req.Password)
		if err != nil {
			return nil, errors.InvalidInput("password", err.Error())
		}
		user.Password = hash
	}

	if err := s.store.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user and, via cascading foreign keys, their posts and
// comments.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("User deleted", map[string]interface{}{
		"user_id": id,
	})
	return nil
}
