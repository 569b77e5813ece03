// Package cli implements the docgen command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-doctemplate/pkg/prompt"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// Config keys shared by flags, environment and the config file.
const (
	keyDB        = "db"
	keyTemplates = "templates"
	keyLogLevel  = "log-level"
	keyFormat    = "format"
	keyLocale    = "locale"
)

// Option customises the command tree, mainly for tests.
type Option func(*app)

// WithOutput redirects standard output and standard error.
func WithOutput(out, errOut io.Writer) Option {
	return func(a *app) {
		if out != nil {
			a.out = out
		}
		if errOut != nil {
			a.errOut = errOut
		}
	}
}

// WithPromptDriver replaces the survey driver used by render --interactive.
func WithPromptDriver(driver prompt.Driver) Option {
	return func(a *app) {
		if driver != nil {
			a.driver = driver
		}
	}
}

type app struct {
	v          *viper.Viper
	configFile string
	out        io.Writer
	errOut     io.Writer
	logger     zerolog.Logger
	driver     prompt.Driver
}

// NewRootCommand builds the docgen command tree.
func NewRootCommand(options ...Option) *cobra.Command {
	a := &app{
		v:      viper.New(),
		out:    os.Stdout,
		errOut: os.Stderr,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}

	cmd := &cobra.Command{
		Use:   "docgen",
		Short: "Render Thai business documents from templates",
		Long: `docgen validates document templates, fills their {{placeholders}}
from contract records or supplied values and exports the result as HTML,
plain text or JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig(cmd)
		},
	}
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./docgen.yaml)")
	flags.String(keyDB, "", "sqlite database path (empty keeps the catalog in memory)")
	flags.String(keyTemplates, "", "directory of YAML/JSON template definitions")
	flags.String(keyLogLevel, "warn", "log level (debug, info, warn, error)")
	flags.String(keyFormat, "html", "export format (html, text, json, markdown)")
	flags.String(keyLocale, "th", "formatting locale (th, en)")

	cmd.AddCommand(
		a.validateCmd(),
		a.sampleCmd(),
		a.renderCmd(),
		a.projectCmd(),
		a.templatesCmd(),
		a.recordsCmd(),
		a.versionCmd(),
	)
	return cmd
}

// Execute runs the command tree against os.Args and exits on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	a.v.SetEnvPrefix("DOCGEN")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.configFile != "" {
		a.v.SetConfigFile(a.configFile)
	} else {
		a.v.SetConfigName("docgen")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			a.v.AddConfigPath(dir + "/docgen")
		}
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(a.v.GetString(keyLogLevel)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.v.GetString(keyLogLevel), err)
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: a.errOut, NoColor: a.errOut != os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("config_file", used).Msg("config loaded")
	}
	return nil
}
