package in

import (
	"context"

	"codestreak/internal/modules/dashboard/dto"
)

type Usecase interface {
	Load(ctx context.Context, force bool) (dto.LoadOutput, error)
	Heatmap(ctx context.Context) (dto.HeatmapOutput, bool)
	Insight(ctx context.Context, date string) (dto.InsightOutput, error)
	SaveSettings(ctx context.Context, input dto.SettingsInput) (dto.LoadOutput, error)
	Session(ctx context.Context) dto.SessionOutput
}
