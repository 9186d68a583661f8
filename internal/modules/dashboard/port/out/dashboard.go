package out

import (
	"context"

	"codestreak/internal/modules/dashboard/domain"
)

// StatusGateway is the remote status service.
type StatusGateway interface {
	Status(ctx context.Context, force bool) (domain.StatusSnapshot, error)
	History(ctx context.Context, days int) (domain.Week, error)
	SaveSettings(ctx context.Context, patch domain.SettingsPatch) error
}

// Navigator performs hard navigation to another page mode. The current
// session ends with it.
type Navigator interface {
	Navigate(mode domain.Mode)
}

// Haptics is the host's tactile feedback, if any.
type Haptics interface {
	ImpactLight()
}

// Gate marks a remote call as in flight for the busy indicator.
type Gate interface {
	Do(fn func() error) error
}
