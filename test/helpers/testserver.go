package helpers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/app"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/auth"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/config"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
)

// TestServer is a fully wired application over a temporary database,
// exercised in-process through httptest.
type TestServer struct {
	T      *testing.T
	Router *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := SetTestConfig(t)
	db := OpenTestDB(t)
	router := app.SetupRouter(db)

	return &TestServer{
		T:      t,
		Router: router,
		DB:     db,
		Config: cfg,
	}
}

// Request performs an in-process request. body is marshalled to JSON when
// non-nil; token, when non-empty, is sent as a bearer token.
func (s *TestServer) Request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			s.T.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)
	return rec
}

// DecodeJSON unmarshals a response body, failing the test on bad JSON.
func (s *TestServer) DecodeJSON(rec *httptest.ResponseRecorder, target interface{}) {
	s.T.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		s.T.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// RegisterUser creates an account through the API and returns its token and id.
func (s *TestServer) RegisterUser(name, email, password string) (string, uint) {
	s.T.Helper()

	rec := s.Request(http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		s.T.Fatalf("register %s: status %d, body %s", email, rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	s.DecodeJSON(rec, &resp)
	return resp.Token, resp.User.ID
}

// CreateAdmin inserts an admin account directly and returns a token for it.
func (s *TestServer) CreateAdmin(name, email, password string) (string, uint) {
	s.T.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.T.Fatalf("hash admin password: %v", err)
	}

	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := s.DB.Create(admin).Error; err != nil {
		s.T.Fatalf("create admin: %v", err)
	}

	token, err := auth.GenerateToken(admin.ID, string(admin.Role), admin.Email, admin.Name)
	if err != nil {
		s.T.Fatalf("generate admin token: %v", err)
	}
	return token, admin.ID
}
