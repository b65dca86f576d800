package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/hylla/kanvas/internal/adapters/raster"
	"github.com/hylla/kanvas/internal/app"
	"github.com/hylla/kanvas/internal/board"
	"github.com/hylla/kanvas/internal/config"
	"github.com/hylla/kanvas/internal/platform"
	"github.com/hylla/kanvas/internal/tui"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// version is stamped at build time.
var version = "dev"

// program is the part of tea.Program the CLI drives.
type program interface {
	Run() (tea.Model, error)
}

// programFactory is swapped in tests.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes the command tree; fang prints errors and usage.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCommand()
	root.SetArgs(args)
	root.SetIn(os.Stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version))
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	appName    string
	devMode    bool
}

// session is the resolved runtime state of one command invocation.
type session struct {
	cfg    config.Config
	logger *runtimeLogger
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{appName: "kanvas", devMode: version == "dev"}
	if envApp := strings.TrimSpace(os.Getenv("KANVAS_APP_NAME")); envApp != "" {
		flags.appName = envApp
	}
	if envDev, ok := parseBoolEnv("KANVAS_DEV_MODE"); ok {
		flags.devMode = envDev
	}

	root := &cobra.Command{
		Use:           "kanvas",
		Short:         "Drag tasks between three columns on a canvas board",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, flags, "tui", runTUI)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&flags.appName, "app", flags.appName, "application name for config/data path resolution")
	root.PersistentFlags().BoolVar(&flags.devMode, "dev", flags.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(
		newPathsCommand(flags),
		newInitCommand(flags),
		newRenderCommand(flags),
		newReplayCommand(flags),
	)
	return root
}

func newPathsCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config, data and log locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := resolvePaths(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "app: %s\n", flags.appName)
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", flags.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", paths.ConfigPath)
			_, _ = fmt.Fprintf(out, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "render: %s\n", paths.RenderPath)
			_, _ = fmt.Fprintf(out, "log_dir: %s\n", paths.LogDir)
			return nil
		},
	}
}

func newInitCommand(flags *globalFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := resolvePaths(flags)
			if err != nil {
				return err
			}
			target := firstNonEmpty(flags.configPath, os.Getenv("KANVAS_CONFIG"), paths.ConfigPath)
			if _, err := os.Stat(target); err == nil && !force {
				return fmt.Errorf("config %q already exists (use --force to overwrite)", target)
			}
			defaults := config.Default(paths.RenderPath)
			for _, seed := range app.DefaultSeed() {
				defaults.Tasks = append(defaults.Tasks, config.TaskConfig{ID: seed.ID, Title: seed.Title, Status: seed.Status})
			}
			content, err := toml.Marshal(defaults)
			if err != nil {
				return fmt.Errorf("encode default config: %w", err)
			}
			if err := config.EnsureConfigDir(target); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			if err := os.WriteFile(target, content, 0o644); err != nil {
				return fmt.Errorf("write config %q: %w", target, err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}

func newRenderCommand(flags *globalFlags) *cobra.Command {
	var (
		outPath string
		scale   float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the configured board to a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, flags, "render", func(cmd *cobra.Command, s *session) error {
				b, surface, err := newRasterBoard(s, scale)
				if err != nil {
					return err
				}
				target := firstNonEmpty(outPath, s.cfg.Render.Output)
				if err := writePNG(surface, target); err != nil {
					return err
				}
				s.logger.Info("board rendered", "path", target, "tasks", len(b.Tasks()))
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output PNG path (default from config)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixels per logical unit (default from config)")
	return cmd
}

func newReplayCommand(flags *globalFlags) *cobra.Command {
	var (
		outPath   string
		framesDir string
		scale     float64
	)
	cmd := &cobra.Command{
		Use:   "replay <script.toml>",
		Short: "Replay a pointer script against the board and render the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, flags, "replay", func(cmd *cobra.Command, s *session) error {
				script, err := loadReplayScript(args[0])
				if err != nil {
					return fmt.Errorf("load replay script %q: %w", args[0], err)
				}
				b, surface, err := newRasterBoard(s, scale)
				if err != nil {
					return err
				}
				changes, err := replay(b, surface, script, framesDir)
				if err != nil {
					return fmt.Errorf("replay: %w", err)
				}
				s.logger.Info("replay complete", "events", len(script.Events), "changes", changes)

				target := firstNonEmpty(outPath, s.cfg.Render.Output)
				if err := writePNG(surface, target); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, task := range b.Tasks() {
					_, _ = fmt.Fprintf(out, "%s\t%s\t%s\n", task.ID, task.Status, task.Title)
				}
				_, _ = fmt.Fprintf(out, "wrote %s\n", target)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "output PNG path (default from config)")
	cmd.Flags().StringVar(&framesDir, "frames", "", "directory for one PNG per changed frame")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixels per logical unit (default from config)")
	return cmd
}

func runTUI(_ *cobra.Command, s *session) error {
	// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the board is active.
	s.logger.SetConsoleEnabled(false)
	store, err := newStore(s.cfg)
	if err != nil {
		return err
	}
	s.logger.Debug("tasks seeded", "counts", store.Counts())
	palette, err := s.cfg.ParsedPalette()
	if err != nil {
		return err
	}
	m := tui.NewModel(store,
		tui.WithGeometry(s.cfg.Geometry()),
		tui.WithPalette(palette),
		tui.WithKeyConfig(tui.KeyConfig{
			Quit:   s.cfg.Keys.Quit,
			Cancel: s.cfg.Keys.Cancel,
			Help:   s.cfg.Keys.Help,
			Copy:   s.cfg.Keys.Copy,
		}),
		tui.WithLogger(s.logger.Component("board")),
	)
	s.logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		s.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	return nil
}

// withSession resolves paths, config and logging, then runs fn.
func withSession(cmd *cobra.Command, flags *globalFlags, command string, fn func(*cobra.Command, *session) error) error {
	paths, err := resolvePaths(flags)
	if err != nil {
		return err
	}
	configPath := strings.TrimSpace(flags.configPath)
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("KANVAS_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	cfg, err := config.Load(configPath, config.Default(paths.RenderPath))
	if err != nil {
		return fmt.Errorf("load config %q: %w", configPath, err)
	}

	logger, err := newRuntimeLogger(cmd.ErrOrStderr(), flags.appName, flags.devMode, cfg.Logging, paths.LogDir, time.Now)
	if err != nil {
		return fmt.Errorf("configure runtime logger: %w", err)
	}
	defer func() {
		if closeErr := logger.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: close runtime log sink: %v\n", closeErr)
		}
	}()

	logger.Info("startup configuration resolved", "app", flags.appName, "dev_mode", flags.devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	s := &session{cfg: cfg, logger: logger}
	if err := fn(cmd, s); err != nil {
		logger.Error("command flow failed", "command", command, "err", err)
		return err
	}
	logger.Info("command flow complete", "command", command)
	return nil
}

func resolvePaths(flags *globalFlags) (platform.Paths, error) {
	return platform.DefaultPathsWithOptions(platform.Options{
		AppName: flags.appName,
		DevMode: flags.devMode,
	})
}

// newStore seeds the task store from [[tasks]], falling back to the
// built-in demo tasks. Blank ids get a UUID.
func newStore(cfg config.Config) (*app.Store, error) {
	seeds := app.DefaultSeed()
	if len(cfg.Tasks) > 0 {
		seeds = make([]app.TaskSeed, 0, len(cfg.Tasks))
		for _, task := range cfg.Tasks {
			seeds = append(seeds, app.TaskSeed{ID: task.ID, Title: task.Title, Status: task.Status})
		}
	}
	store, err := app.NewSeededStore(seeds, uuid.NewString)
	if err != nil {
		return nil, fmt.Errorf("seed tasks: %w", err)
	}
	return store, nil
}

// newRasterBoard builds a board painting onto a PNG surface.
func newRasterBoard(s *session, scale float64) (*board.Board, *raster.Surface, error) {
	store, err := newStore(s.cfg)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debug("tasks seeded", "counts", store.Counts())
	palette, err := s.cfg.ParsedPalette()
	if err != nil {
		return nil, nil, err
	}
	if scale <= 0 {
		scale = s.cfg.Render.Scale
	}
	g := s.cfg.Geometry()
	surface, err := raster.New(g, raster.WithScale(scale), raster.WithFontPath(s.cfg.Font.Path))
	if err != nil {
		return nil, nil, fmt.Errorf("create raster surface: %w", err)
	}
	b := board.New(store,
		board.WithGeometry(g),
		board.WithPalette(palette),
		board.WithSurface(surface),
		board.WithLogger(s.logger.Component("board")),
	)
	return b, surface, nil
}

func writePNG(surface *raster.Surface, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	return surface.SavePNG(path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
