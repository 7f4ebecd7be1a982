package hrmsapi

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/backend"
)

type dashboardRepositoryImpl struct {
	client *backend.Client
}

func NewDashboardRepository(client *backend.Client) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{client: client}
}

// GetStats returns the server snapshot of GET /dashboard
func (r *dashboardRepositoryImpl) GetStats(ctx context.Context) (dashboard.Stats, error) {
	var stats dashboard.Stats
	if err := r.client.Get(ctx, "/dashboard", nil, &stats); err != nil {
		return dashboard.Stats{}, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return stats, nil
}
