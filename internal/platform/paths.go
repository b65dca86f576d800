package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// defaultAppName names the per-user directories when none is configured.
const defaultAppName = "kanvas"

// Paths are the per-user locations the CLI reads and writes.
type Paths struct {
	ConfigPath string
	DataDir    string
	// RenderPath is the default PNG target of the render command.
	RenderPath string
	LogDir     string
}

// Options selects the application directory name.
type Options struct {
	AppName string
	DevMode bool
}

// Bases are the user-level roots that application directories live under.
type Bases struct {
	Config string
	Data   string
	State  string
}

// envOverrides names the variables that relocate each base, per GOOS.
var envOverrides = map[string]Bases{
	"linux":   {Config: "XDG_CONFIG_HOME", Data: "XDG_DATA_HOME", State: "XDG_STATE_HOME"},
	"windows": {Config: "APPDATA", Data: "LOCALAPPDATA", State: "LOCALAPPDATA"},
}

// DefaultPaths resolves paths for the default application name.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{})
}

// DefaultPathsWithOptions resolves paths for the current user and OS. Dev
// mode appends "-dev" to the application name.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	appName := strings.TrimSpace(opts.AppName)
	if appName == "" {
		appName = defaultAppName
	}
	if opts.DevMode {
		appName += "-dev"
	}
	bases, err := userBases(runtime.GOOS)
	if err != nil {
		return Paths{}, err
	}
	return PathsFor(runtime.GOOS, environ(runtime.GOOS), bases, appName)
}

// userBases returns the OS defaults before any env override.
func userBases(goos string) (Bases, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Bases{}, fmt.Errorf("user config dir: %w", err)
	}
	if goos != "linux" {
		return Bases{Config: configDir, Data: configDir, State: configDir}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Bases{}, fmt.Errorf("user home dir: %w", err)
	}
	return Bases{
		Config: configDir,
		Data:   filepath.Join(home, ".local", "share"),
		State:  filepath.Join(home, ".local", "state"),
	}, nil
}

// environ snapshots the override variables that matter on goos.
func environ(goos string) map[string]string {
	names, ok := envOverrides[goos]
	if !ok {
		return nil
	}
	env := map[string]string{}
	for _, name := range []string{names.Config, names.Data, names.State} {
		env[name] = strings.TrimSpace(os.Getenv(name))
	}
	return env
}

// PathsFor resolves Paths for one platform. XDG variables apply on linux,
// APPDATA and LOCALAPPDATA on windows; other platforms use bases as given.
// Logs go under the state base.
func PathsFor(goos string, env map[string]string, bases Bases, appName string) (Paths, error) {
	if bases.Config == "" || bases.Data == "" {
		return Paths{}, errors.New("empty base dirs")
	}
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, errors.New("empty app name")
	}
	if bases.State == "" {
		bases.State = bases.Data
	}
	if names, ok := envOverrides[goos]; ok {
		bases.Config = override(env, names.Config, bases.Config)
		bases.Data = override(env, names.Data, bases.Data)
		bases.State = override(env, names.State, bases.State)
	}

	dataDir := filepath.Join(bases.Data, appName)
	return Paths{
		ConfigPath: filepath.Join(bases.Config, appName, "config.toml"),
		DataDir:    dataDir,
		RenderPath: filepath.Join(dataDir, appName+".png"),
		LogDir:     filepath.Join(bases.State, appName, "log"),
	}, nil
}

func override(env map[string]string, name, fallback string) string {
	if v := env[name]; v != "" {
		return v
	}
	return fallback
}
