package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	svc, _ := newTestService(t)
	h := NewHandler(svc)

	router := gin.New()
	router.POST("/users/register", h.Register)
	router.POST("/users/login", h.Login)
	router.GET("/users", h.List)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(router, "/users/register",
		`{"first_name":"Alice","last_name":"Archer","email":"alice@example.com","password":"password1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			ID        int64  `json:"id"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
			Role      string `json:"role"`
			Password  string `json:"password"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Data.ID == 0 || body.Data.Role != "user" {
		t.Errorf("data = %+v, want assigned id and role user", body.Data)
	}
	if body.Data.FirstName != "Alice" || body.Data.LastName != "Archer" {
		t.Errorf("name = %q %q, want Alice Archer", body.Data.FirstName, body.Data.LastName)
	}
	if body.Data.Password != "" {
		t.Error("password leaked in response")
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"first_name":`},
		{"missing email", `{"first_name":"A","last_name":"A","password":"password1"}`},
		{"missing last name", `{"first_name":"A","email":"a@example.com","password":"password1"}`},
		{"bad email", `{"first_name":"A","last_name":"A","email":"nope","password":"password1"}`},
		{"short password", `{"first_name":"A","last_name":"A","email":"a@example.com","password":"short"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(router, "/users/register", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(router, "/users/register",
		`{"first_name":"Alice","last_name":"Archer","email":"alice@example.com","password":"password1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rec.Code)
	}

	rec = postJSON(router, "/users/login",
		`{"email":"alice@example.com","password":"password1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Data.Token == "" {
		t.Error("no token in login response")
	}

	rec = postJSON(router, "/users/login",
		`{"email":"alice@example.com","password":"wrong-password"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", rec.Code)
	}
}
