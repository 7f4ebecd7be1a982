package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetOverview fetches the server snapshot and derives the pending count
	GetOverview(ctx context.Context) (Overview, error)
}
