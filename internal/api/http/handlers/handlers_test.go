package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/field-activity-service/internal/api/http"
	"github.com/spec-kit/field-activity-service/internal/api/http/handlers"
	"github.com/spec-kit/field-activity-service/internal/auth"
	"github.com/spec-kit/field-activity-service/internal/config"
	"github.com/spec-kit/field-activity-service/internal/domain"
	"github.com/spec-kit/field-activity-service/internal/observability"
	"github.com/spec-kit/field-activity-service/internal/service"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return domain.ErrDuplicateUser
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	stored := *user
	s.users[user.Username] = &stored
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	found := *user
	return &found, nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			user.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *stubUserRepo) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, user := range s.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (s *stubUserRepo) usernameByID(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			return user.Username
		}
	}
	return ""
}

type stubActivityRepo struct {
	mu         sync.Mutex
	activities []domain.Activity
	users      *stubUserRepo
	clock      time.Time
}

func newStubActivityRepo(users *stubUserRepo) *stubActivityRepo {
	return &stubActivityRepo{
		users: users,
		clock: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *stubActivityRepo) Insert(ctx context.Context, activity *domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Second)
	activity.ID = uuid.NewString()
	activity.CreatedAt = s.clock
	s.activities = append(s.activities, *activity)
	return nil
}

func (s *stubActivityRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Activity
	for _, activity := range s.activities {
		if activity.UserID == ownerID {
			result = append(result, activity)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *stubActivityRepo) CountByType(ctx context.Context, activityType domain.ActivityType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, activity := range s.activities {
		if activity.Type == activityType {
			count++
		}
	}
	return count, nil
}

func (s *stubActivityRepo) ListRecent(ctx context.Context, limit int) ([]domain.RecentActivity, error) {
	s.mu.Lock()
	sorted := make([]domain.Activity, len(s.activities))
	copy(sorted, s.activities)
	s.mu.Unlock()

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}

	result := make([]domain.RecentActivity, 0, len(sorted))
	for _, activity := range sorted {
		result = append(result, domain.RecentActivity{
			Username:  s.users.usernameByID(activity.UserID),
			Type:      activity.Type,
			Timestamp: activity.CreatedAt,
			Lat:       activity.Lat,
			Lng:       activity.Lng,
		})
	}
	return result, nil
}

type testEnv struct {
	app  *fiber.App
	auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTLHours: 24,
			BcryptCost:    bcrypt.MinCost,
		},
	}

	users := newStubUserRepo()
	activities := newStubActivityRepo(users)

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users})
	activityService := service.NewActivityService(service.ActivityDependencies{
		ActivityRepo: activities,
		UserRepo:     users,
	})

	logger := zap.NewNop()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Activities:     handlers.NewActivityHandler(activityService),
		Dashboard:      handlers.NewDashboardHandler(activityService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	return &testEnv{app: app, auth: authService}
}

func (e *testEnv) provision(t *testing.T, username, password string, role domain.Role) {
	t.Helper()
	if _, err := e.auth.ProvisionUser(context.Background(), username, password, role, nil); err != nil {
		t.Fatalf("provision %s: %v", username, err)
	}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	return body.Data.Token
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(raw)
}
