package users

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/kbukum/blogapi/auth/jwt"
	"github.com/kbukum/blogapi/auth/password"
	"github.com/kbukum/blogapi/authz"
	"github.com/kbukum/blogapi/blog"
	"github.com/kbukum/blogapi/errors"
	"github.com/kbukum/blogapi/logger"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	nextID int64
	users  map[int64]*blog.User
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, users: make(map[int64]*blog.User)}
}

func (s *memStore) Create(_ context.Context, user *blog.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return errors.AlreadyExists("user")
		}
	}
	user.ID = s.nextID
	s.nextID++
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*blog.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, errors.NotFound("user", "")
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*blog.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) List(_ context.Context, params blog.ListParams) ([]blog.User, int64, error) {
	var list []blog.User
	for id := int64(1); id < s.nextID; id++ {
		if u, ok := s.users[id]; ok {
			list = append(list, *u)
		}
	}
	total := int64(len(list))
	if params.Skip < len(list) {
		list = list[params.Skip:]
	} else {
		list = nil
	}
	if params.Take < len(list) {
		list = list[:params.Take]
	}
	return list, total, nil
}

func (s *memStore) Update(_ context.Context, user *blog.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return errors.NotFound("user", "")
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return errors.NotFound("user", "")
	}
	delete(s.users, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	tokens, err := jwt.NewService(&jwt.Config{Secret: "test-secret-at-least-32-characters!!"}, func() *authz.Claims {
		return &authz.Claims{}
	})
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}
	store := newMemStore()
	hasher := password.NewBcryptHasher(password.WithCost(bcrypt.MinCost))
	return NewService(store, hasher, tokens, logger.NewDefault("test")), store
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, store := newTestService(t)

	user, err := svc.Register(context.Background(), RegisterRequest{
		FirstName: "Alice",
		LastName:  "Archer",
		Email:     "alice@example.com",
		Password:  "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != "user" {
		t.Errorf("role = %q, want user", user.Role)
	}

	stored := store.users[user.ID]
	if stored.Password == "correct horse" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{FirstName: "A", LastName: "A", Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterRequest{FirstName: "B", LastName: "B", Email: "a@example.com", Password: "password2"})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeAlreadyExists {
		t.Fatalf("err = %v, want ALREADY_EXISTS", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterRequest{FirstName: "A", LastName: "A", Email: "a@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user.ID = %d, want %d", user.ID, registered.ID)
	}

	verifier := authz.NewTokenVerifier(svc.tokens)
	identity, err := verifier.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify issued token: %v", err)
	}
	if identity.ID != registered.ID || identity.Role != authz.RoleUser {
		t.Errorf("identity = %+v, want ID=%d role=user", identity, registered.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{FirstName: "A", LastName: "A", Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name  string
		email string
		pass  string
	}{
		{"wrong password", "a@example.com", "nope nope nope"},
		{"unknown email", "ghost@example.com", "password1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, LoginRequest{Email: tt.email, Password: tt.pass})
			appErr, ok := errors.AsAppError(err)
			if !ok || appErr.Code != errors.ErrCodeUnauthorized {
				t.Fatalf("err = %v, want UNAUTHORIZED", err)
			}
		})
	}
}

func TestUpdateRehashesPassword(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{FirstName: "A", LastName: "A", Email: "a@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	oldHash := store.users[user.ID].Password

	updated, err := svc.Update(ctx, user.ID, UpdateRequest{FirstName: "Alice", Password: "different1"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FirstName != "Alice" {
		t.Errorf("first name = %q, want Alice", updated.FirstName)
	}
	if updated.LastName != "A" {
		t.Errorf("last name = %q, want unchanged A", updated.LastName)
	}
	if store.users[user.ID].Password == oldHash {
		t.Error("password hash unchanged after update")
	}
}

func TestUpdateRejectsTakenEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{FirstName: "A", LastName: "A", Email: "a@example.com", Password: "password1"}); err != nil {
		t.Fatalf("Register A: %v", err)
	}
	b, err := svc.Register(ctx, RegisterRequest{FirstName: "B", LastName: "B", Email: "b@example.com", Password: "password2"})
	if err != nil {
		t.Fatalf("Register B: %v", err)
	}

	_, err = svc.Update(ctx, b.ID, UpdateRequest{Email: "a@example.com"})
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeAlreadyExists {
		t.Fatalf("err = %v, want ALREADY_EXISTS", err)
	}
}

func TestDeleteMissingUser(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), 404)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}
