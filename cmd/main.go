package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jguhlin/burn/xtask/pkg"
	"github.com/jguhlin/burn/xtask/pkg/cargo"
	"github.com/jguhlin/burn/xtask/pkg/xtask"
)

var (
	startTime           = time.Now()
	logOutput io.Writer = os.Stderr
	state     *appState
)

// appState is prepared once per invocation before the selected command runs.
type appState struct {
	ctx    context.Context
	router *xtask.Router
}

var rootCmd = &cobra.Command{
	Use:   "xtask",
	Short: "Build tasks for the Burn workspace",
	Long: `This command bundles the tasks used to develop and release Burn: building and testing
the workspace (including no-std targets), linting, documentation, coverage, publishing, ...`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("environment", "e", "std", "execution environment (std or no-std)")
	flags.BoolP("dry-run", "n", false, "dry run; only print the commands, don't execute anything")
	flags.BoolP("verbose", "v", false, "print debug messages")
	flags.String("root", "", "workspace root (defaults to the nearest Cargo.toml with a [workspace])")
	flags.String("config", "xtask.yml", "optional config file, relative to the workspace root")

	for _, name := range []string{"environment", "dry-run", "verbose", "root", "config"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	viper.SetEnvPrefix("XTASK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setup(cmd *cobra.Command) error {
	level := zerolog.InfoLevel
	if viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(NewConsoleWriter(logOutput)).Level(level)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = pkg.WithLogger(ctx, &logger)

	env, err := xtask.ParseExecutionEnvironment(viper.GetString("environment"))
	if err != nil {
		return err
	}

	root := viper.GetString("root")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}

		root, err = pkg.GetProjectRoot(wd)
		if err != nil {
			return err
		}
	}

	cfgPath := viper.GetString("config")
	if cfgPath != "" && !filepath.IsAbs(cfgPath) {
		cfgPath = filepath.Join(root, cfgPath)
	}

	cfg, err := xtask.LoadConfig(cfgPath, os.LookupEnv)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("environment", env.String()).
		Str("path", root).
		Bool("disableWgpu", cfg.DisableWgpu).
		Msg("Loaded configuration")

	toolchain := cargo.New(cargo.NewShellExecutor(viper.GetBool("dry-run")), root)
	state = &appState{
		ctx:    ctx,
		router: xtask.NewRouter(toolchain, cfg, env, startTime),
	}

	return nil
}

// run hands command to the router prepared by setup.
func run(command xtask.Command) error {
	return state.router.Run(state.ctx, command)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
