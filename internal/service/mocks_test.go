package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/field-activity-service/internal/domain"
)

// mockUserRepo is an in-memory stand-in for the Postgres user store.
type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by username
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Username]; exists {
		return domain.ErrDuplicateUser
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	found := *user
	return &found, nil
}

func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			user.PasswordHash = hash
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockUserRepo) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, user := range m.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) usernameByID(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.ID == id {
			return user.Username
		}
	}
	return ""
}

// mockActivityRepo is an in-memory stand-in for the Postgres activity
// store. Timestamps advance strictly so newest-first ordering is
// deterministic in tests.
type mockActivityRepo struct {
	mu         sync.Mutex
	activities []domain.Activity
	users      *mockUserRepo
	clock      time.Time
}

func newMockActivityRepo(users *mockUserRepo) *mockActivityRepo {
	return &mockActivityRepo{
		users: users,
		clock: time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *mockActivityRepo) Insert(ctx context.Context, activity *domain.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Second)
	activity.ID = uuid.NewString()
	activity.CreatedAt = m.clock
	m.activities = append(m.activities, *activity)
	return nil
}

func (m *mockActivityRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Activity
	for _, activity := range m.activities {
		if activity.UserID == ownerID {
			result = append(result, activity)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockActivityRepo) CountByType(ctx context.Context, activityType domain.ActivityType) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, activity := range m.activities {
		if activity.Type == activityType {
			count++
		}
	}
	return count, nil
}

func (m *mockActivityRepo) ListRecent(ctx context.Context, limit int) ([]domain.RecentActivity, error) {
	m.mu.Lock()
	sorted := make([]domain.Activity, len(m.activities))
	copy(sorted, m.activities)
	m.mu.Unlock()

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if limit < len(sorted) {
		sorted = sorted[:limit]
	}

	result := make([]domain.RecentActivity, 0, len(sorted))
	for _, activity := range sorted {
		result = append(result, domain.RecentActivity{
			Username:  m.users.usernameByID(activity.UserID),
			Type:      activity.Type,
			Timestamp: activity.CreatedAt,
			Lat:       activity.Lat,
			Lng:       activity.Lng,
		})
	}
	return result, nil
}
