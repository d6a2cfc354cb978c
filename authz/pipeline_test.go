package authz

import (
	"context"
	"errors"
	"testing"
)

// stubVerifier returns a fixed identity, or rejects every credential.
type stubVerifier struct {
	identity Identity
	reject   bool
	calls    int
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (Identity, error) {
	v.calls++
	if v.reject {
		return Identity{}, errors.New("bad credential")
	}
	return v.identity, nil
}

// stubLookup is an in-memory AuthorLookup that counts reads.
type stubLookup struct {
	postAuthors    map[int64]int64
	commentAuthors map[int64]int64
	err            error
	postCalls      int
	commentCalls   int
}

func (l *stubLookup) PostAuthorID(_ context.Context, postID int64) (int64, bool, error) {
	l.postCalls++
	if l.err != nil {
		return 0, false, l.err
	}
	author, ok := l.postAuthors[postID]
	return author, ok, nil
}

func (l *stubLookup) CommentAuthorID(_ context.Context, commentID int64) (int64, bool, error) {
	l.commentCalls++
	if l.err != nil {
		return 0, false, l.err
	}
	author, ok := l.commentAuthors[commentID]
	return author, ok, nil
}

func newTestPipeline(v Verifier, l AuthorLookup) *Pipeline {
	return NewPipeline(v, l, nil)
}

func TestAuthorize_InvalidCredential_ShortCircuits(t *testing.T) {
	verifier := &stubVerifier{reject: true}
	lookup := &stubLookup{}
	p := newTestPipeline(verifier, lookup)

	op := Operation{
		Name:       "posts.update",
		Roles:      []Role{RoleAdmin},
		Ownership:  OwnershipPostAuthor,
		Combinator: RoleOrOwnership,
	}

	_, decision, err := p.Authorize(context.Background(), "garbage", op, PathParams{PostID: "42"})
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}
	if decision.Allowed {
		t.Error("expected denial")
	}
	if decision.Reason != ReasonUnauthenticated {
		t.Errorf("reason = %s, want %s", decision.Reason, ReasonUnauthenticated)
	}
	if lookup.postCalls != 0 || lookup.commentCalls != 0 {
		t.Error("no storage read may happen for an unauthenticated request")
	}
}

func TestAuthorize_NoRoleRequirement_Allows(t *testing.T) {
	verifier := &stubVerifier{identity: Identity{ID: 3, Role: RoleUser}}
	p := newTestPipeline(verifier, &stubLookup{})

	op := Operation{Name: "posts.create.open"}
	_, decision, err := p.Authorize(context.Background(), "tok", op, PathParams{})
	if err != nil {
		t.Fatal(err)
	}
	if !decision.Allowed {
		t.Errorf("decision = %+v, want allowed", decision)
	}
}

func TestAuthorize_RoleOnly(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		allowed bool
	}{
		{"admin allowed", RoleAdmin, true},
		{"user denied", RoleUser, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &stubVerifier{identity: Identity{ID: 1, Role: tc.role}}
			p := newTestPipeline(verifier, &stubLookup{})

			op := Operation{Name: "users.get", Roles: []Role{RoleAdmin}}
			_, decision, err := p.Authorize(context.Background(), "tok", op, PathParams{ID: "1"})
			if err != nil {
				t.Fatal(err)
			}
			if decision.Allowed != tc.allowed {
				t.Errorf("allowed = %v, want %v", decision.Allowed, tc.allowed)
			}
			if !tc.allowed && decision.Reason != ReasonForbidden {
				t.Errorf("reason = %s, want %s", decision.Reason, ReasonForbidden)
			}
		})
	}
}

func TestAuthorize_RoleOrOwnership_PostAuthor(t *testing.T) {
	op := Operation{
		Name:       "posts.update",
		Roles:      []Role{RoleAdmin},
		Ownership:  OwnershipPostAuthor,
		Combinator: RoleOrOwnership,
	}

	t.Run("owner allowed via ownership", func(t *testing.T) {
		verifier := &stubVerifier{identity: Identity{ID: 7, Role: RoleUser}}
		lookup := &stubLookup{postAuthors: map[int64]int64{42: 7}}
		p := newTestPipeline(verifier, lookup)

		_, decision, err := p.Authorize(context.Background(), "tok", op, PathParams{PostID: "42"})
		if err != nil {
			t.Fatal(err)
		}
		if !decision.Allowed {
			t.Errorf("decision = %+v, want allowed", decision)
		}
		if lookup.postCalls != 1 {
			t.Errorf("post lookups = %d, want exactly 1", lookup.postCalls)
		}
	})

	t.Run("non-owner denied", func(t *testing.T) {
		verifier := &stubVerifier{identity: Identity{ID: 7, Role: RoleUser}}
		lookup := &stubLookup{postAuthors: map[int64]int64{42: 9}}
		p := newTestPipeline(verifier, lookup)

		_, decision, err := p.Authorize(context.Background(), "tok", op, PathParams{PostID: "42"})
		if err != nil {
			t.Fatal(err)
		}
		if decision.Allowed || decision.Reason != ReasonForbidden {
			t.Errorf("decision = %+v, want forbidden", decision)
		}
	})

	t.Run("admin allowed without storage read", func(t *testing.T) {
		verifier := &stubVerifier{identity: Identity{ID: 1, Role: RoleAdmin}}
		lookup := &stubLookup{postAuthors: map[int64]int64{42: 9}}
		p := newTestPipeline(verifier, lookup)

		_, decision, err := p.Authorize(context.Background(), "tok", op, PathParams{PostID: "42"})
		if err != nil {
			t.Fatal(err)
		}
		if !decision.Allowed {
			t.Errorf("decision = %+v, want allowed", decision)
		}
		if lookup.postCalls != 0 {
			t.Errorf("post lookups = %d, want 0 (role short-circuits)", lookup.postCalls)
		}
	})

	t.Run("missing post denies instead of erroring", func(t *testing.T) {
		verifier := &stubVerifier{identity: Identity{ID: 7, Role: RoleUser}}
		lookup := &stubLookup{postAuthors: map[int64]int64{}}
		p := newTestPipeline(verifier, lookup)

		_, decision, err := p.Authorize(context.Background(), "tok", op, PathParams{PostID: "999"})
		if err != nil {
			t.Fatalf("missing resource must not surface as an error, got %v", err)
		}
		if decision.Allowed || decision.Reason != ReasonForbidden {
			t.Errorf("decision = %+v, want forbidden", decision)
		}
	})
}

func TestAuthorize_RoleOrOwnership_CommentAuthor(t *testing.T) {
	op := Operation{
		Name:       "comments.delete",
		Roles:      []Role{RoleAdmin},
		Ownership:  OwnershipCommentAuthor,
		Combinator: RoleOrOwnership,
	}

	verifier := &stubVerifier{identity: Identity{ID: 5, Role: RoleUser}}
	lookup := &stubLookup{commentAuthors: map[int64]int64{12: 5}}
	p := newTestPipeline(verifier, lookup)

	_, decision, err := p.Authorize(context.Background(), "tok", op, PathParams{ID: "12"})
	if err != nil {
		t.Fatal(err)
	}
	if !decision.Allowed {
		t.Errorf("decision = %+v, want allowed", decision)
	}
	if lookup.commentCalls != 1 {
		t.Errorf("comment lookups = %d, want 1", lookup.commentCalls)
	}
}

func TestAuthorize_RoleOrOwnership_UserIDParam(t *testing.T) {
	op := Operation{
		Name:       "users.update",
		Roles:      []Role{RoleAdmin},
		Ownership:  OwnershipUserIDParam,
		Combinator: RoleOrOwnership,
	}

	tests := []struct {
		name    string
		id      int64
		param   string
		allowed bool
	}{
		{"self", 5, "5", true},
		{"other user", 5, "6", false},
		{"leading zero rejected", 5, "05", false},
		{"trailing space rejected", 5, "5 ", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &stubVerifier{identity: Identity{ID: tc.id, Role: RoleUser}}
			p := newTestPipeline(verifier, &stubLookup{})

			_, decision, err := p.Authorize(context.Background(), "tok", op, PathParams{ID: tc.param})
			if err != nil {
				t.Fatal(err)
			}
			if decision.Allowed != tc.allowed {
				t.Errorf("allowed = %v, want %v", decision.Allowed, tc.allowed)
			}
		})
	}
}

func TestAuthorize_LookupFaultSurfacesAsError(t *testing.T) {
	op := Operation{
		Name:       "posts.update",
		Roles:      []Role{RoleAdmin},
		Ownership:  OwnershipPostAuthor,
		Combinator: RoleOrOwnership,
	}

	verifier := &stubVerifier{identity: Identity{ID: 7, Role: RoleUser}}
	lookup := &stubLookup{err: errors.New("connection reset")}
	p := newTestPipeline(verifier, lookup)

	_, _, err := p.Authorize(context.Background(), "tok", op, PathParams{PostID: "42"})
	if err == nil {
		t.Fatal("infrastructure failure must not be masked as a denial")
	}
}

func TestAuthorize_Idempotent(t *testing.T) {
	op := Operation{
		Name:       "posts.update",
		Roles:      []Role{RoleAdmin},
		Ownership:  OwnershipPostAuthor,
		Combinator: RoleOrOwnership,
	}

	verifier := &stubVerifier{identity: Identity{ID: 7, Role: RoleUser}}
	lookup := &stubLookup{postAuthors: map[int64]int64{42: 7}}
	p := newTestPipeline(verifier, lookup)

	_, first, err := p.Authorize(context.Background(), "tok", op, PathParams{PostID: "42"})
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := p.Authorize(context.Background(), "tok", op, PathParams{PostID: "42"})
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("decisions differ: %+v vs %+v", first, second)
	}
	if lookup.postCalls != 2 {
		t.Errorf("post lookups = %d, want 2 (one fresh read per request)", lookup.postCalls)
	}
}

func TestAuthorize_AllowedIdentityPropagates(t *testing.T) {
	verifier := &stubVerifier{identity: Identity{ID: 11, Role: RoleAdmin}}
	p := newTestPipeline(verifier, &stubLookup{})

	identity, decision, err := p.Authorize(context.Background(), "tok",
		Operation{Name: "users.get", Roles: []Role{RoleAdmin}}, PathParams{ID: "11"})
	if err != nil {
		t.Fatal(err)
	}
	if !decision.Allowed {
		t.Fatal("expected allow")
	}
	if identity.ID != 11 || identity.Role != RoleAdmin {
		t.Errorf("identity = %+v", identity)
	}
}
