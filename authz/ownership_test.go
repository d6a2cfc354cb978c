package authz

import (
	"context"
	"testing"
)

func TestParseResourceID(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"5", 5, true},
		{"0", 0, true},
		{"42", 42, true},
		{"9223372036854775807", 1<<63 - 1, true},
		{"", 0, false},
		{"05", 0, false},
		{"5 ", 0, false},
		{" 5", 0, false},
		{"+5", 0, false},
		{"-5", 0, false},
		{"5x", 0, false},
		{"9223372036854775808", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := ParseResourceID(tc.input)
			if ok != tc.ok || got != tc.want {
				t.Errorf("ParseResourceID(%q) = (%d, %v), want (%d, %v)", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestResolve_UserIDParam_NoLookup(t *testing.T) {
	lookup := &stubLookup{}
	r := NewOwnershipResolver(lookup)

	owns, err := r.Resolve(context.Background(), OwnershipUserIDParam,
		PathParams{ID: "5"}, Identity{ID: 5, Role: RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	if !owns {
		t.Error("expected ownership to hold")
	}
	if lookup.postCalls+lookup.commentCalls != 0 {
		t.Error("user-id-param ownership must not touch storage")
	}
}

func TestResolve_None_NeverOwns(t *testing.T) {
	r := NewOwnershipResolver(&stubLookup{})

	owns, err := r.Resolve(context.Background(), OwnershipNone,
		PathParams{ID: "5"}, Identity{ID: 5, Role: RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	if owns {
		t.Error("no configured ownership rule must never grant ownership")
	}
}

func TestResolve_PostAuthor_SingleRead(t *testing.T) {
	lookup := &stubLookup{postAuthors: map[int64]int64{42: 7}}
	r := NewOwnershipResolver(lookup)

	owns, err := r.Resolve(context.Background(), OwnershipPostAuthor,
		PathParams{PostID: "42"}, Identity{ID: 7, Role: RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	if !owns {
		t.Error("author must own the post")
	}
	if lookup.postCalls != 1 {
		t.Errorf("post lookups = %d, want exactly 1", lookup.postCalls)
	}
}

func TestResolve_UnparseableParamDenies(t *testing.T) {
	lookup := &stubLookup{postAuthors: map[int64]int64{42: 7}}
	r := NewOwnershipResolver(lookup)

	owns, err := r.Resolve(context.Background(), OwnershipPostAuthor,
		PathParams{PostID: "forty-two"}, Identity{ID: 7, Role: RoleUser})
	if err != nil {
		t.Fatal(err)
	}
	if owns {
		t.Error("unparseable resource id must deny")
	}
	if lookup.postCalls != 0 {
		t.Error("no storage read for an unparseable id")
	}
}
