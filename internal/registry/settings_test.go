package registry_test

import (
	"testing"

	"github.com/Gunvolt24/consumer_handler/internal/registry"
)

func intPtr(v int) *int { return &v }
func boolPtr(v bool) *bool { return &v }
func strPtr(v string) *string { return &v }

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"my-consumer", "my_consumer"},
		{"My_Consumer", "my_consumer"},
		{"  orders.created ", "orders_created"},
		{"already_normal", "already_normal"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := registry.NormalizeName(tt.in); got != tt.want {
			t.Fatalf("NormalizeName(%q): want %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSettingsMerge(t *testing.T) {
	t.Parallel()

	def := registry.DefaultSettings()
	if def.StopSleepSeconds != 1 || !def.ClearSession || def.LoggerID != "default" || def.SessionID != "default" {
		t.Fatalf("unexpected defaults: %+v", def)
	}

	tests := []struct {
		name     string
		override *registry.Override
		want     registry.Settings
	}{
		{"nil override", nil, def},
		{"empty override", &registry.Override{}, def},
		{
			"only sleep (zero is a real value)",
			&registry.Override{StopSleepSeconds: intPtr(0)},
			registry.Settings{StopSleepSeconds: 0, ClearSession: true, LoggerID: "default", SessionID: "default"},
		},
		{
			"full override",
			&registry.Override{
				StopSleepSeconds: intPtr(3),
				ClearSession:     boolPtr(false),
				LoggerID:         strPtr("my_custom_logger"),
				SessionID:        strPtr("reporting"),
			},
			registry.Settings{StopSleepSeconds: 3, ClearSession: false, LoggerID: "my_custom_logger", SessionID: "reporting"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := def.Merge(tt.override); got != tt.want {
				t.Fatalf("Merge: want %+v, got %+v", tt.want, got)
			}
		})
	}
}
