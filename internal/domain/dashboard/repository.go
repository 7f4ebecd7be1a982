package dashboard

import "context"

// DashboardRepository is the backend's dashboard resource
type DashboardRepository interface {
	GetStats(ctx context.Context) (Stats, error)
}
