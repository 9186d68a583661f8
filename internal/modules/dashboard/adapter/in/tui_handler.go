package in

import (
	"context"

	"codestreak/internal/modules/dashboard/dto"
	dashboardin "codestreak/internal/modules/dashboard/port/in"
)

type TUIHandler struct {
	usecase dashboardin.Usecase
}

func NewTUIHandler(usecase dashboardin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Load(ctx context.Context, force bool) (dto.LoadOutput, error) {
	return h.usecase.Load(ctx, force)
}

func (h TUIHandler) Save(ctx context.Context, input dto.SettingsInput) (dto.LoadOutput, error) {
	return h.usecase.SaveSettings(ctx, input)
}

func (h TUIHandler) Insight(ctx context.Context, date string) (dto.InsightOutput, error) {
	return h.usecase.Insight(ctx, date)
}

func (h TUIHandler) Session(ctx context.Context) dto.SessionOutput {
	return h.usecase.Session(ctx)
}
