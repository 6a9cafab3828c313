package admin

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// Settings is mutable application state editable from the admin panel. It is
// injected into the service and only reachable through the guarded accessors.
type Settings struct {
	MaintenanceMode bool   `json:"maintenanceMode"`
	WelcomeMessage  string `json:"welcomeMessage"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalAdmins      int `json:"totalAdmins"`
	TotalProducts    int `json:"totalProducts"`
	TotalSubscribers int `json:"totalSubscribers"`
}

// Service backs the admin panel: dashboard counts, user management and
// settings.
type Service struct {
	users       userRepo
	products    productCounter
	subscribers subscriberCounter

	mu       sync.RWMutex
	settings Settings
}

type userRepo interface {
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	CountAdmins(ctx context.Context) (int, error)
}

type productCounter interface {
	Count(ctx context.Context) (int, error)
}

type subscriberCounter interface {
	Count(ctx context.Context) (int, error)
}

func New(users userRepo, products productCounter, subscribers subscriberCounter, initial Settings) *Service {
	return &Service{
		users:       users,
		products:    products,
		subscribers: subscribers,
		settings:    initial,
	}
}

func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalAdmins, err = s.users.CountAdmins(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalProducts, err = s.products.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.TotalSubscribers, err = s.subscribers.Count(ctx); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings replaces the settings and returns the new value.
func (s *Service) UpdateSettings(in Settings) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = in
	return s.settings
}

// MaintenanceMode reports whether the store is closed to non-admin traffic.
func (s *Service) MaintenanceMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.MaintenanceMode
}
