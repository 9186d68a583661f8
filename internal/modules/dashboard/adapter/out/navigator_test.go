package out_test

import (
	"bytes"
	"strings"
	"testing"

	out "codestreak/internal/modules/dashboard/adapter/out"
	"codestreak/internal/modules/dashboard/domain"
)

func TestChannelNavigatorKeepsFirstRequest(t *testing.T) {
	t.Parallel()
	nav := out.NewChannelNavigator()
	nav.Navigate(domain.ModeSettings)
	nav.Navigate(domain.ModeStatus)
	if got := <-nav.Requests(); got != domain.ModeSettings {
		t.Fatalf("expected settings, got %s", got)
	}
	select {
	case extra := <-nav.Requests():
		t.Fatalf("unexpected second request %s", extra)
	default:
	}
}

func TestWriterNavigatorPointsAtSetup(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	nav := out.NewWriterNavigator(&buf)
	if nav.Navigated() {
		t.Fatalf("fresh navigator must not report navigation")
	}
	nav.Navigate(domain.ModeSettings)
	if !nav.Navigated() || !strings.Contains(buf.String(), "settings handles") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestHapticsBellOnlyWhenEnabled(t *testing.T) {
	t.Parallel()
	var on, off bytes.Buffer
	out.NewHaptics(&on, true).ImpactLight()
	out.NewHaptics(&off, false).ImpactLight()
	if on.String() != "\a" || off.Len() != 0 {
		t.Fatalf("unexpected haptics output %q / %q", on.String(), off.String())
	}
}
