package registrar

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apps.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadApps(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, `
apps:
  - name: placement
    display_name: Placement Agent Directory
  - name: relocation
    display_name: Global Relocation Directory
`)

	apps, err := LoadApps(path)
	if err != nil {
		t.Fatalf("LoadApps: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 apps, got %d", len(apps))
	}
	if apps[0].Name != "placement" || apps[0].DisplayName != "Placement Agent Directory" {
		t.Fatalf("unexpected first app: %+v", apps[0])
	}
}

func TestLoadAppsRejectsBadManifests(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "apps: []"},
		{"missing name", "apps:\n  - display_name: X"},
		{"uppercase", "apps:\n  - name: Placement"},
		{"duplicate", "apps:\n  - name: placement\n  - name: placement"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := LoadApps(writeManifest(t, tt.content)); err == nil {
				t.Fatalf("expected error for %s manifest", tt.name)
			}
		})
	}
}

func TestLoadAppsMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := LoadApps(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestScheduleID(t *testing.T) {
	t.Parallel()
	if got := ScheduleID("placement"); got != "news-monitor-placement" {
		t.Fatalf("ScheduleID = %q", got)
	}
}
