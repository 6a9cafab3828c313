package admin

import (
	"context"
	"testing"

	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	users   []domain.User
	admins  int
	deleted []string
}

func (s *stubUserRepo) List(_ context.Context) ([]domain.User, error) { return s.users, nil }

func (s *stubUserRepo) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubUserRepo) Count(_ context.Context) (int, error)       { return len(s.users), nil }
func (s *stubUserRepo) CountAdmins(_ context.Context) (int, error) { return s.admins, nil }

type stubCounter int

func (c stubCounter) Count(_ context.Context) (int, error) { return int(c), nil }

func TestDashboard(t *testing.T) {
	users := &stubUserRepo{
		users:  []domain.User{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}},
		admins: 1,
	}
	svc := New(users, stubCounter(25), stubCounter(7), Settings{})

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{
		TotalUsers:       3,
		TotalAdmins:      1,
		TotalProducts:    25,
		TotalSubscribers: 7,
	}, stats)
}

func TestUserManagement(t *testing.T) {
	users := &stubUserRepo{users: []domain.User{{ID: "u1"}, {ID: "u2"}}}
	svc := New(users, stubCounter(0), stubCounter(0), Settings{})

	listed, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, svc.DeleteUser(context.Background(), "u2"))
	assert.Equal(t, []string{"u2"}, users.deleted)
}

func TestSettings(t *testing.T) {
	svc := New(&stubUserRepo{}, stubCounter(0), stubCounter(0), Settings{WelcomeMessage: "hello"})

	assert.Equal(t, "hello", svc.Settings().WelcomeMessage)
	assert.False(t, svc.MaintenanceMode())

	updated := svc.UpdateSettings(Settings{MaintenanceMode: true, WelcomeMessage: "closed"})
	assert.True(t, updated.MaintenanceMode)
	assert.True(t, svc.MaintenanceMode())
	assert.Equal(t, "closed", svc.Settings().WelcomeMessage)
}
