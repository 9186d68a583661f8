package usecase

import (
	"context"
	"fmt"

	"codestreak/internal/modules/dashboard/domain"
	"codestreak/internal/modules/dashboard/dto"
	apperrors "codestreak/internal/platform/errors"
)

// SaveSettings sends only the changed fields and then re-runs the whole
// sync; the store is never patched locally. A failed save leaves the store
// exactly as it was.
func (i *Interactor) SaveSettings(ctx context.Context, input dto.SettingsInput) (dto.LoadOutput, error) {
	out := dto.LoadOutput{Mode: i.session.Mode}
	if i.session.Ended() {
		return out, apperrors.ErrSessionEnded
	}
	patch, err := domain.SettingsPatch(input).Normalize(i.session.Store.NeedsSetup())
	if err != nil {
		return out, err
	}
	if !i.session.HasIdentity() {
		return out, fmt.Errorf("save settings: %w", apperrors.ErrMissingIdentity)
	}
	if patch.Avatar != nil && i.haptics != nil {
		i.haptics.ImpactLight()
	}
	if err := i.gateway.SaveSettings(ctx, patch); err != nil {
		i.log.Error("failed to save settings", "kind", apperrors.Kind(err), "err", err)
		return out, fmt.Errorf("save settings: %w", err)
	}
	i.log.Info("settings saved", "fields", changedFields(patch))
	return i.Load(ctx, false)
}

func changedFields(p domain.SettingsPatch) []string {
	var fields []string
	if p.Goals != nil {
		fields = append(fields, "goals")
	}
	if p.Reminders != nil {
		fields = append(fields, "reminders")
	}
	if p.Repos != nil {
		fields = append(fields, "repos")
	}
	if p.Avatar != nil {
		fields = append(fields, "avatar")
	}
	if p.GitHubUsername != nil {
		fields = append(fields, "github_username")
	}
	if p.LeetCodeUsername != nil {
		fields = append(fields, "leetcode_username")
	}
	return fields
}
