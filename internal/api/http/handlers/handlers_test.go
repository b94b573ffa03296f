package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/library-catalog/internal/api/http"
	"github.com/spec-kit/library-catalog/internal/api/http/handlers"
	"github.com/spec-kit/library-catalog/internal/auth"
	"github.com/spec-kit/library-catalog/internal/config"
	"github.com/spec-kit/library-catalog/internal/domain"
	"github.com/spec-kit/library-catalog/internal/observability"
	"github.com/spec-kit/library-catalog/internal/repository"
	"github.com/spec-kit/library-catalog/internal/service"
)

// In-memory repositories standing in for the Postgres-backed ones. They
// honor the same contracts: pgx.ErrNoRows for misses, ErrUsernameTaken for
// uniqueness violations.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Username == user.Username {
			return repository.ErrUsernameTaken
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

type memoryBookRepo struct {
	mu    sync.Mutex
	books map[string]*domain.Book
}

func newMemoryBookRepo() *memoryBookRepo {
	return &memoryBookRepo{books: make(map[string]*domain.Book)}
}

func (r *memoryBookRepo) Create(_ context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	book.ID = uuid.NewString()
	book.CreatedAt = time.Now()
	clone := *book
	r.books[book.ID] = &clone
	return nil
}

func (r *memoryBookRepo) Update(_ context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[book.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *book
	r.books[book.ID] = &clone
	return nil
}

func (r *memoryBookRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.books, id)
	return nil
}

func (r *memoryBookRepo) GetByID(_ context.Context, id string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *book
	return &clone, nil
}

func (r *memoryBookRepo) List(_ context.Context) ([]*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Book, 0, len(r.books))
	for _, book := range r.books {
		clone := *book
		out = append(out, &clone)
	}
	return out, nil
}

func newTestApp(t *testing.T) (*fiber.App, *memoryUserRepo) {
	t.Helper()

	userRepo := newMemoryUserRepo()
	bookRepo := newMemoryBookRepo()

	authCfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            bcrypt.MinCost,
	}
	authService := service.NewAuthService(authCfg, userRepo)
	accountService := service.NewAccountService(userRepo, bcrypt.MinCost)
	catalogService := service.NewCatalogService(bookRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("library-catalog", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Books:          handlers.NewBooksHandler(catalogService),
		Users:          handlers.NewUsersHandler(accountService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})
	return app, userRepo
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func register(t *testing.T, app *fiber.App, username, password string, isAdmin bool) {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{
		"username": username,
		"password": password,
		"is_admin": isAdmin,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func login(t *testing.T, app *fiber.App, username, password string) *http.Cookie {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("login response carries no session cookie")
	return nil
}

func TestRegister_MissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{"password": "pw123"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{"username": "alice"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_SanitizedResponse(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{
		"username": "alice",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, "alice", body["username"])
	require.Equal(t, false, body["is_admin"])
	require.NotEmpty(t, body["id"])
	require.NotContains(t, body, "password")
	require.NotContains(t, body, "password_hash")
	require.NotContains(t, body, "credential_hash")
}

func TestRegister_DuplicateUsernameConflicts(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "alice", "pw123", false)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/register", map[string]any{
		"username": "alice",
		"password": "other",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin_UniformRejection(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "alice", "pw123", false)

	respWrongPw, bodyWrongPw := doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{
		"username": "alice",
		"password": "wrong",
	})
	respNoUser, bodyNoUser := doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{
		"username": "nobody",
		"password": "pw123",
	})

	require.Equal(t, http.StatusUnauthorized, respWrongPw.StatusCode)
	require.Equal(t, http.StatusUnauthorized, respNoUser.StatusCode)
	// Identical bodies: the endpoint must not reveal which check failed.
	require.Equal(t, string(bodyWrongPw), string(bodyNoUser))
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "alice", "pw123", true)

	resp, raw := doJSON(t, app, http.MethodPost, "/auth/login", map[string]any{
		"username": "alice",
		"password": "pw123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, true, body["is_admin"])
	require.NotContains(t, body, "password_hash")

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	require.Equal(t, int((15 * time.Minute).Seconds()), cookie.MaxAge)
}

func TestLogout_ClearsCookieAndLocksOutClient(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "alice", "pw123", false)
	session := login(t, app, "alice", "pw123")

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/logout", nil, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cleared *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)

	// The client now presents the cleared cookie; protected routes reject it.
	resp, _ = doJSON(t, app, http.MethodPost, "/books", map[string]any{"title": "x"}, cleared)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBooks_EndToEnd(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "alice", "pw123", false)
	session := login(t, app, "alice", "pw123")

	// Public read works without a session.
	resp, _ := doJSON(t, app, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Writes require the cookie.
	bookReq := map[string]any{
		"title":          "The Go Programming Language",
		"description":    "Reference",
		"author":         "Donovan & Kernighan",
		"genres":         []string{"programming"},
		"image":          "gopl.png",
		"published_year": 2015,
	}
	resp, _ = doJSON(t, app, http.MethodPost, "/books", bookReq)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodPost, "/books", bookReq, session)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]any
	require.NoError(t, json.Unmarshal(raw, &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	resp, raw = doJSON(t, app, http.MethodGet, "/books/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched map[string]any
	require.NoError(t, json.Unmarshal(raw, &fetched))
	require.Equal(t, "The Go Programming Language", fetched["title"])

	resp, raw = doJSON(t, app, http.MethodPatch, "/books/"+id, map[string]any{"author": "Alan Donovan, Brian Kernighan"}, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated map[string]any
	require.NoError(t, json.Unmarshal(raw, &updated))
	require.Equal(t, "Alan Donovan, Brian Kernighan", updated["author"])
	require.Equal(t, "The Go Programming Language", updated["title"])

	resp, _ = doJSON(t, app, http.MethodDelete, "/books/"+uuid.NewString(), nil, session)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/books/"+id, nil, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/books/"+id, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsers_NotFoundIsUnified(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/users/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUsers_ListIsSanitized(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "alice", "pw123", false)

	resp, raw := doJSON(t, app, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotContains(t, string(raw), "password")
	require.NotContains(t, string(raw), "hash")
}

func TestUsers_UpdateRequiresSession(t *testing.T) {
	app, repo := newTestApp(t)
	register(t, app, "alice", "pw123", false)
	session := login(t, app, "alice", "pw123")

	alice, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodPatch, "/users/"+alice.ID, map[string]any{"username": "alice2"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodPatch, "/users/"+alice.ID, map[string]any{"username": "alice2"}, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, "alice2", body["username"])
}

func TestUsers_PasswordUpdateIsRehashed(t *testing.T) {
	app, repo := newTestApp(t)
	register(t, app, "alice", "pw123", false)
	session := login(t, app, "alice", "pw123")

	alice, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodPatch, "/users/"+alice.ID, map[string]any{"password": "newpw"}, session)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEqual(t, "newpw", stored.PasswordHash)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "newpw"))

	// Old session stays valid until expiry; new logins need the new password.
	login(t, app, "alice", "newpw")
}

func TestUsers_DeleteIsAdminOnly(t *testing.T) {
	app, repo := newTestApp(t)
	register(t, app, "alice", "pw123", false)
	register(t, app, "root", "rootpw", true)

	alice, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)

	standard := login(t, app, "alice", "pw123")
	resp, _ := doJSON(t, app, http.MethodDelete, "/users/"+alice.ID, nil, standard)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := login(t, app, "root", "rootpw")
	resp, _ = doJSON(t, app, http.MethodDelete, "/users/"+alice.ID, nil, admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/users/"+alice.ID, nil, admin)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth_Live(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, "alive", body["status"])
}
