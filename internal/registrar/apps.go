package registrar

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DefaultApps is the fixed app list registered at startup when no manifest
// is given.
func DefaultApps() []App {
	return []App{
		{Name: "placement", DisplayName: "Placement Agent Directory"},
		{Name: "relocation", DisplayName: "Global Relocation Directory"},
	}
}

type appsManifest struct {
	Apps []App `yaml:"apps"`
}

// LoadApps reads an app manifest:
//
//	apps:
//	  - name: placement
//	    display_name: Placement Agent Directory
//
// App names become part of schedule keys, so they must be short lowercase
// tokens.
func LoadApps(path string) ([]App, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("apps manifest: %w", err)
	}

	var m appsManifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("apps manifest %s: %w", path, err)
	}
	if len(m.Apps) == 0 {
		return nil, fmt.Errorf("apps manifest %s: no apps", path)
	}

	seen := make(map[string]struct{}, len(m.Apps))
	for i, app := range m.Apps {
		name := strings.TrimSpace(app.Name)
		if name == "" {
			return nil, fmt.Errorf("apps manifest %s: entry %d has no name", path, i)
		}
		if name != strings.ToLower(name) || strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("apps manifest %s: %q is not a lowercase token", path, name)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("apps manifest %s: duplicate app %q", path, name)
		}
		seen[name] = struct{}{}
		m.Apps[i].Name = name
	}
	return m.Apps, nil
}
