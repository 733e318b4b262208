package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ironledger/ironledger/api"
	"github.com/ironledger/ironledger/internal/models"
	"github.com/ironledger/ironledger/pkg/repository/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "testsecret"

func newAuthHandler(m *mock.Mocks) *api.AuthHandler {
	return api.NewAuthHandler(m.UserRepo, m.ProfileRepo, testSecret, time.Hour, bcrypt.MinCost)
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		prepare    func(m *mock.Mocks)
		wantStatus int
		check      func(t *testing.T, m *mock.Mocks, body []byte)
	}{
		{
			name:       "InvalidRequest",
			body:       "not a json",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingName",
			body:       map[string]string{"email": "alice@example.com", "password": "s3cretpass"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadEmail",
			body:       map[string]string{"name": "Alice", "email": "nope", "password": "s3cretpass"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ShortPassword",
			body:       map[string]string{"name": "Alice", "email": "alice@example.com", "password": "pw"},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, m *mock.Mocks, b []byte) {
				var resp struct {
					Details []struct {
						Field string `json:"field"`
					} `json:"details"`
				}
				if err := json.Unmarshal(b, &resp); err != nil {
					t.Fatalf("unmarshal details: %v", err)
				}
				if len(resp.Details) == 0 {
					t.Fatalf("expected field-level details, got %s", string(b))
				}
			},
		},
		{
			name:       "FirstUserBecomesAdmin",
			body:       map[string]string{"name": "Alice", "email": "alice@example.com", "password": "s3cretpass"},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, m *mock.Mocks, b []byte) {
				var resp struct {
					UserID string `json:"userId"`
				}
				if err := json.Unmarshal(b, &resp); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}
				if resp.UserID == "" {
					t.Fatalf("expected userId in response: %s", string(b))
				}
				if len(m.UserRepo.Stored) != 1 {
					t.Fatalf("expected 1 stored user, got %d", len(m.UserRepo.Stored))
				}
				stored := m.UserRepo.Stored[0]
				if stored.Role != models.RoleAdmin {
					t.Fatalf("first user must be ADMIN, got %s", stored.Role)
				}
				if stored.PasswordHash == "s3cretpass" {
					t.Fatalf("password must be hashed")
				}
				if len(m.ProfileRepo.Stored) != 1 || m.ProfileRepo.Stored[0].UserID != resp.UserID {
					t.Fatalf("expected profile row for new user, got %#v", m.ProfileRepo.Stored)
				}
			},
		},
		{
			name: "SecondUserIsAthlete",
			body: map[string]string{"name": "Bob", "email": "bob@example.com", "password": "s3cretpass"},
			prepare: func(m *mock.Mocks) {
				m.UserRepo.Stored = []*models.User{{ID: "user-0", Email: "alice@example.com", Role: models.RoleAdmin}}
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, m *mock.Mocks, b []byte) {
				stored := m.UserRepo.Stored[len(m.UserRepo.Stored)-1]
				if stored.Role != models.RoleAthlete {
					t.Fatalf("second user must be ATHLETE, got %s", stored.Role)
				}
			},
		},
		{
			name: "DuplicateEmail",
			body: map[string]string{"name": "Dup", "email": "alice@example.com", "password": "s3cretpass"},
			prepare: func(m *mock.Mocks) {
				m.UserRepo.Stored = []*models.User{{ID: "user-0", Email: "alice@example.com", Role: models.RoleAdmin}}
			},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, m *mock.Mocks, b []byte) {
				if len(m.UserRepo.Stored) != 1 {
					t.Fatalf("duplicate signup must not create a row, got %d", len(m.UserRepo.Stored))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			if tt.prepare != nil {
				tt.prepare(mocks)
			}
			handler := newAuthHandler(mocks)

			var bodyReader io.Reader
			if s, ok := tt.body.(string); ok {
				bodyReader = bytes.NewReader([]byte(s))
			} else if tt.body != nil {
				b, _ := json.Marshal(tt.body)
				bodyReader = bytes.NewReader(b)
			}
			req := httptest.NewRequest(http.MethodPost, "/signup", bodyReader)
			w := httptest.NewRecorder()
			handler.Signup(w, req)

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, res.StatusCode, string(data))
			}
			if tt.check != nil {
				tt.check(t, mocks, data)
			}
		})
	}
}

func TestSignin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	seeded := &models.User{ID: "user-1", Email: "bob@example.com", Role: models.RoleAthlete, PasswordHash: string(hash)}

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"InvalidRequest", "not a json", http.StatusBadRequest},
		{"MissingPassword", map[string]string{"email": "bob@example.com"}, http.StatusBadRequest},
		{"UnknownEmail", map[string]string{"email": "missing@example.com", "password": "nope1234"}, http.StatusUnauthorized},
		{"WrongPassword", map[string]string{"email": "bob@example.com", "password": "wrongpass"}, http.StatusUnauthorized},
		{"Success", map[string]string{"email": "bob@example.com", "password": "hunter2hunter2"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mocks := mock.NewMocks()
			mocks.UserRepo.Stored = []*models.User{seeded}
			handler := newAuthHandler(mocks)

			var bodyReader io.Reader
			if s, ok := tt.body.(string); ok {
				bodyReader = bytes.NewReader([]byte(s))
			} else {
				b, _ := json.Marshal(tt.body)
				bodyReader = bytes.NewReader(b)
			}
			req := httptest.NewRequest(http.MethodPost, "/signin", bodyReader)
			w := httptest.NewRecorder()
			handler.Signin(w, req)

			res := w.Result()
			defer res.Body.Close()
			data, _ := io.ReadAll(res.Body)
			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d got %d body=%s", tt.wantStatus, res.StatusCode, string(data))
			}

			if tt.wantStatus != http.StatusOK {
				return
			}

			var ar struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(data, &ar); err != nil || ar.Token == "" {
				t.Fatalf("expected token in response: %s", string(data))
			}
			tok, err := jwt.Parse(ar.Token, func(token *jwt.Token) (any, error) { return []byte(testSecret), nil })
			if err != nil {
				t.Fatalf("parse token: %v", err)
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				t.Fatalf("unexpected claims type")
			}
			if claims["user_id"] != "user-1" {
				t.Fatalf("expected user_id claim, got %v", claims["user_id"])
			}
			if expF, ok := claims["exp"].(float64); !ok || int64(expF) < time.Now().Unix() {
				t.Fatalf("invalid exp claim")
			}
		})
	}
}

func TestSignout(t *testing.T) {
	handler := newAuthHandler(mock.NewMocks())
	req := httptest.NewRequest(http.MethodPost, "/signout", nil)
	w := httptest.NewRecorder()
	handler.Signout(w, req)

	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !bytes.Contains(b, []byte("signed out")) {
		t.Fatalf("unexpected body: %s", string(b))
	}
}

func TestMe(t *testing.T) {
	mocks := mock.NewMocks()
	mocks.UserRepo.Stored = []*models.User{{ID: "user-1", Name: "Alice", Email: "alice@example.com", Role: models.RoleAdmin, PasswordHash: "hash"}}
	mocks.ProfileRepo.Stored = []*models.Profile{{ID: "profile-1", UserID: "user-1"}}
	handler := newAuthHandler(mocks)

	// no session short-circuits before storage
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	handler.Me(w, req)
	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Result().StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), api.CtxUserID, "user-1"))
	w = httptest.NewRecorder()
	handler.Me(w, req)
	res := w.Result()
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !bytes.Contains(b, []byte("alice@example.com")) || !bytes.Contains(b, []byte("profile-1")) {
		t.Fatalf("unexpected body: %s", string(b))
	}
	if bytes.Contains(b, []byte("hash")) {
		t.Fatalf("password hash must never be serialized: %s", string(b))
	}
}
