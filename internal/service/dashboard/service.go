package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hrms-lite-console/internal/domain/dashboard"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
	}
}

// GetOverview trusts the server rate and only derives the pending count.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context) (dashboard.Overview, error) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return dashboard.Overview{}, err
	}
	return dashboard.NewOverview(stats), nil
}
