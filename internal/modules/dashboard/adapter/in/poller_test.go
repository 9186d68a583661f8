package in_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	in "codestreak/internal/modules/dashboard/adapter/in"
	"codestreak/internal/modules/dashboard/dto"
	apperrors "codestreak/internal/platform/errors"
	"codestreak/internal/platform/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeUsecase struct {
	mu     sync.Mutex
	loads  int
	loadFn func(n int) (dto.LoadOutput, error)
	saved  []dto.SettingsInput
}

func (f *fakeUsecase) Load(_ context.Context, _ bool) (dto.LoadOutput, error) {
	f.mu.Lock()
	f.loads++
	n := f.loads
	f.mu.Unlock()
	if f.loadFn != nil {
		return f.loadFn(n)
	}
	return dto.LoadOutput{}, nil
}

func (f *fakeUsecase) Heatmap(context.Context) (dto.HeatmapOutput, bool) {
	return dto.HeatmapOutput{}, false
}

func (f *fakeUsecase) Insight(_ context.Context, date string) (dto.InsightOutput, error) {
	return dto.InsightOutput{Date: date}, nil
}

func (f *fakeUsecase) SaveSettings(_ context.Context, input dto.SettingsInput) (dto.LoadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, input)
	return dto.LoadOutput{}, nil
}

func (f *fakeUsecase) Session(context.Context) dto.SessionOutput {
	return dto.SessionOutput{}
}

func (f *fakeUsecase) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

func TestPollerNextDelay(t *testing.T) {
	t.Parallel()
	p := in.NewPoller(&fakeUsecase{}, 10*time.Second, logging.Discard())
	if got := p.NextDelay(nil); got != 10*time.Second {
		t.Fatalf("success must wait the full interval, got %s", got)
	}
	failure := fmt.Errorf("get /api/status: %w", apperrors.ErrTransport)
	first := p.NextDelay(failure)
	if first <= 0 || first > 10*time.Second {
		t.Fatalf("retry delay out of range: %s", first)
	}
	for range 20 {
		if d := p.NextDelay(failure); d > 10*time.Second {
			t.Fatalf("retry delay exceeded interval: %s", d)
		}
	}
	if got := p.NextDelay(nil); got != 10*time.Second {
		t.Fatalf("success must reset to the interval, got %s", got)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	t.Parallel()
	p := in.NewPoller(&fakeUsecase{}, 0, logging.Discard())
	if got := p.NextDelay(nil); got != in.DefaultInterval {
		t.Fatalf("expected default interval, got %s", got)
	}
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	uc := &fakeUsecase{}
	uc.loadFn = func(n int) (dto.LoadOutput, error) {
		if n == 3 {
			cancel()
		}
		return dto.LoadOutput{}, nil
	}
	p := in.NewPoller(uc, time.Millisecond, logging.Discard())

	var reports int
	err := p.Run(ctx, false, func(dto.LoadOutput, error) { reports++ })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if uc.count() != 3 || reports != 2 {
		t.Fatalf("expected 3 loads and 2 reports, got %d and %d", uc.count(), reports)
	}
}

func TestPollerRunStopsOnTerminalErrors(t *testing.T) {
	t.Parallel()
	uc := &fakeUsecase{loadFn: func(int) (dto.LoadOutput, error) {
		return dto.LoadOutput{}, fmt.Errorf("load status: %w", apperrors.ErrMissingIdentity)
	}}
	p := in.NewPoller(uc, time.Millisecond, logging.Discard())
	if err := p.Run(context.Background(), false, nil); !errors.Is(err, apperrors.ErrMissingIdentity) {
		t.Fatalf("expected missing identity, got %v", err)
	}
	if uc.count() != 1 {
		t.Fatalf("terminal errors must not be retried, got %d loads", uc.count())
	}
}

func TestPollerRunStopsAfterRedirect(t *testing.T) {
	t.Parallel()
	uc := &fakeUsecase{loadFn: func(int) (dto.LoadOutput, error) {
		return dto.LoadOutput{Redirected: true}, nil
	}}
	p := in.NewPoller(uc, time.Millisecond, logging.Discard())
	if err := p.Run(context.Background(), false, nil); err != nil {
		t.Fatalf("redirect is not an error, got %v", err)
	}
	if uc.count() != 1 {
		t.Fatalf("expected a single load, got %d", uc.count())
	}
}

func TestPollerRetriesTransientFailures(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc := &fakeUsecase{}
	uc.loadFn = func(n int) (dto.LoadOutput, error) {
		if n < 3 {
			return dto.LoadOutput{}, fmt.Errorf("get /api/status: %w", apperrors.ErrTransport)
		}
		cancel()
		return dto.LoadOutput{}, nil
	}
	p := in.NewPoller(uc, 5*time.Millisecond, logging.Discard())
	if err := p.Run(ctx, true, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancel, got %v", err)
	}
	if uc.count() != 3 {
		t.Fatalf("expected two retries before success, got %d loads", uc.count())
	}
}
