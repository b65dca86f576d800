package platform

import (
	"path/filepath"
	"testing"
)

func TestPathsFor(t *testing.T) {
	cases := []struct {
		name       string
		goos       string
		env        map[string]string
		bases      Bases
		wantConfig string
		wantData   string
		wantLog    string
	}{
		{
			name: "linux xdg",
			goos: "linux",
			env: map[string]string{
				"XDG_CONFIG_HOME": "/xdg/config",
				"XDG_DATA_HOME":   "/xdg/data",
				"XDG_STATE_HOME":  "/xdg/state",
			},
			bases:      Bases{Config: "/fallback/config", Data: "/fallback/data", State: "/fallback/state"},
			wantConfig: filepath.Join("/xdg/config", "kanvas", "config.toml"),
			wantData:   filepath.Join("/xdg/data", "kanvas"),
			wantLog:    filepath.Join("/xdg/state", "kanvas", "log"),
		},
		{
			name:       "linux without xdg",
			goos:       "linux",
			env:        map[string]string{},
			bases:      Bases{Config: "/home/me/.config", Data: "/home/me/.local/share", State: "/home/me/.local/state"},
			wantConfig: filepath.Join("/home/me/.config", "kanvas", "config.toml"),
			wantData:   filepath.Join("/home/me/.local/share", "kanvas"),
			wantLog:    filepath.Join("/home/me/.local/state", "kanvas", "log"),
		},
		{
			name:       "windows appdata",
			goos:       "windows",
			env:        map[string]string{"APPDATA": `C:\Users\me\AppData\Roaming`, "LOCALAPPDATA": `C:\Users\me\AppData\Local`},
			bases:      Bases{Config: `C:\fallback\config`, Data: `C:\fallback\data`},
			wantConfig: filepath.Join(`C:\Users\me\AppData\Roaming`, "kanvas", "config.toml"),
			wantData:   filepath.Join(`C:\Users\me\AppData\Local`, "kanvas"),
			wantLog:    filepath.Join(`C:\Users\me\AppData\Local`, "kanvas", "log"),
		},
		{
			name:       "darwin ignores xdg",
			goos:       "darwin",
			env:        map[string]string{"XDG_CONFIG_HOME": "/ignored", "XDG_STATE_HOME": "/ignored"},
			bases:      Bases{Config: "/Users/me/Library/Application Support", Data: "/Users/me/Library/Application Support"},
			wantConfig: filepath.Join("/Users/me/Library/Application Support", "kanvas", "config.toml"),
			wantData:   filepath.Join("/Users/me/Library/Application Support", "kanvas"),
			wantLog:    filepath.Join("/Users/me/Library/Application Support", "kanvas", "log"),
		},
		{
			name:       "unknown os",
			goos:       "freebsd",
			bases:      Bases{Config: "/cfg", Data: "/data", State: "/state"},
			wantConfig: filepath.Join("/cfg", "kanvas", "config.toml"),
			wantData:   filepath.Join("/data", "kanvas"),
			wantLog:    filepath.Join("/state", "kanvas", "log"),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := PathsFor(tc.goos, tc.env, tc.bases, "kanvas")
			if err != nil {
				t.Fatalf("PathsFor() error = %v", err)
			}
			if p.ConfigPath != tc.wantConfig {
				t.Fatalf("unexpected config path %q", p.ConfigPath)
			}
			if p.DataDir != tc.wantData {
				t.Fatalf("unexpected data dir %q", p.DataDir)
			}
			if p.RenderPath != filepath.Join(tc.wantData, "kanvas.png") {
				t.Fatalf("unexpected render path %q", p.RenderPath)
			}
			if p.LogDir != tc.wantLog {
				t.Fatalf("unexpected log dir %q", p.LogDir)
			}
		})
	}
}

func TestPathsForRejectsEmptyInput(t *testing.T) {
	if _, err := PathsFor("darwin", nil, Bases{Data: "/tmp/data"}, "kanvas"); err == nil {
		t.Fatal("expected error for empty dirs")
	}
	if _, err := PathsFor("linux", nil, Bases{Config: "/cfg", Data: "/data"}, "  "); err == nil {
		t.Fatal("expected error for empty app name")
	}
}

func TestEnvironOnlyReadsKnownPlatforms(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", " /state ")
	env := environ("linux")
	if env["XDG_STATE_HOME"] != "/state" {
		t.Fatalf("expected trimmed XDG_STATE_HOME, got %q", env["XDG_STATE_HOME"])
	}
	if environ("plan9") != nil {
		t.Fatal("expected no overrides on unknown platforms")
	}
}

func TestDefaultPathsSmoke(t *testing.T) {
	p, err := DefaultPaths()
	if err != nil {
		t.Fatalf("DefaultPaths() error = %v", err)
	}
	if p.ConfigPath == "" || p.RenderPath == "" || p.DataDir == "" || p.LogDir == "" {
		t.Fatalf("expected non-empty paths, got %#v", p)
	}
	if filepath.Base(p.RenderPath) != "kanvas.png" {
		t.Fatalf("expected default app name, got %q", p.RenderPath)
	}
}

func TestDefaultPathsWithOptionsDevMode(t *testing.T) {
	p, err := DefaultPathsWithOptions(Options{AppName: "kanvas", DevMode: true})
	if err != nil {
		t.Fatalf("DefaultPathsWithOptions() error = %v", err)
	}
	if filepath.Base(filepath.Dir(p.ConfigPath)) != "kanvas-dev" {
		t.Fatalf("expected dev config dir suffix, got %q", p.ConfigPath)
	}
	if filepath.Base(p.RenderPath) != "kanvas-dev.png" {
		t.Fatalf("expected dev render name, got %q", p.RenderPath)
	}
}
