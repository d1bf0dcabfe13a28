package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pakket-admin/internal/data/entity"
	"pakket-admin/internal/data/repository"
	"pakket-admin/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubSessions struct {
	repository.SessionRepository
	sessions map[uuid.UUID]*entity.Session
	err      error
}

func (s stubSessions) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[token], nil
}

type stubUsers struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (s stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	token, _ := utils.GetTokenFromContext(r.Context())
	w.Header().Set("X-User", userID.String())
	w.Header().Set("X-Role", role)
	w.Header().Set("X-Token", token.String())
	w.WriteHeader(http.StatusOK)
}

func TestAuthSession(t *testing.T) {
	user := &entity.User{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Email: "admin@example.com", Role: entity.RoleAdmin}
	token := uuid.New()
	orphan := uuid.New()

	sessions := stubSessions{sessions: map[uuid.UUID]*entity.Session{
		token:  {UserID: user.ID, Token: token},
		orphan: {UserID: uuid.New(), Token: orphan},
	}}
	users := stubUsers{users: map[uuid.UUID]*entity.User{user.ID: user}}

	tests := []struct {
		name           string
		header         string
		sessions       stubSessions
		expectedStatus int
	}{
		{name: "valid session", header: "Bearer " + token.String(), sessions: sessions, expectedStatus: http.StatusOK},
		{name: "lower case scheme", header: "bearer " + token.String(), sessions: sessions, expectedStatus: http.StatusOK},
		{name: "missing header", sessions: sessions, expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", sessions: sessions, expectedStatus: http.StatusUnauthorized},
		{name: "not a uuid", header: "Bearer nope", sessions: sessions, expectedStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer " + uuid.NewString(), sessions: sessions, expectedStatus: http.StatusUnauthorized},
		{name: "deleted user", header: "Bearer " + orphan.String(), sessions: sessions, expectedStatus: http.StatusUnauthorized},
		{name: "store failure", header: "Bearer " + token.String(), sessions: stubSessions{err: errors.New("down")}, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthSession(tt.sessions, users, zap.NewNop())(http.HandlerFunc(echoUser))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, user.ID.String(), rec.Header().Get("X-User"))
				assert.Equal(t, string(entity.RoleAdmin), rec.Header().Get("X-Role"))
				assert.Equal(t, token.String(), rec.Header().Get("X-Token"))
			}
		})
	}
}

func TestAdmin(t *testing.T) {
	handler := Admin(zap.NewNop())(http.HandlerFunc(echoUser))

	tests := []struct {
		name           string
		ctx            func(context.Context) context.Context
		expectedStatus int
	}{
		{
			name:           "anonymous",
			ctx:            func(ctx context.Context) context.Context { return ctx },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "seller",
			ctx: func(ctx context.Context) context.Context {
				return utils.SetUserContext(ctx, uuid.New(), string(entity.RoleSeller))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "admin",
			ctx: func(ctx context.Context) context.Context {
				return utils.SetUserContext(ctx, uuid.New(), string(entity.RoleAdmin))
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req = req.WithContext(tt.ctx(req.Context()))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	t.Run("listed origin", func(t *testing.T) {
		handler := CORS([]string{"https://office.example.com"})(next)
		req := httptest.NewRequest(http.MethodGet, "/api/shipping-prices", nil)
		req.Header.Set("Origin", "https://office.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "https://office.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin", func(t *testing.T) {
		handler := CORS([]string{"https://office.example.com"})(next)
		req := httptest.NewRequest(http.MethodGet, "/api/shipping-prices", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		handler := CORS([]string{"*"})(next)
		req := httptest.NewRequest(http.MethodOptions, "/api/packages", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
