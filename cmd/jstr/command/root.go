// Package command implements the jstr command tree.
package command

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rawbytedev/jstring/pkg/codec"
)

// JstrCommand holds the state shared by every jstr subcommand.
type JstrCommand struct {
	fs     afero.Fs
	v      *viper.Viper
	logger *slog.Logger
	policy codec.Policy
}

// GetRootCommand creates the root jstr command with all subcommands. All
// file access goes through fs.
func GetRootCommand(fs afero.Fs) *cobra.Command {
	jc := &JstrCommand{
		fs:     fs,
		v:      viper.New(),
		logger: slog.New(slog.DiscardHandler),
	}
	jc.v.SetFs(fs)

	root := &cobra.Command{
		Use:   "jstr",
		Short: "Convert and inspect UTF-8 and UTF-16 strings",
		Long: `jstr converts text between UTF-8 and UTF-16LE and runs the string
library over it from the command line.

Configuration:
  Every flag can also be set through the environment with a JSTR_ prefix
  (JSTR_POLICY=lenient) or in a YAML file passed with --config-file.
  Flags win over the environment, which wins over the file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// flag errors have been reported by now
			cmd.SilenceUsage = true
			return jc.load(cmd)
		},
	}

	registerFlags(root.PersistentFlags())

	AddEncodeCommand(root, jc)
	AddDecodeCommand(root, jc)
	AddTokenizeCommand(root, jc)
	AddInspectCommand(root, jc)

	return root
}

// registerFlags adds the flags every subcommand shares.
func registerFlags(pf *pflag.FlagSet) {
	pf.String("in", "", "input file (default stdin)")
	pf.String("out", "", "output file (default stdout)")
	pf.String("policy", codec.Strict.String(), "malformed input handling: strict or lenient")
	pf.String("log-level", "warn", "log level: debug, info, warn or error")
	pf.String("config-file", "", "YAML config file")
}

// load resolves configuration from flags, environment and config file and
// builds the logger.
func (jc *JstrCommand) load(cmd *cobra.Command) error {
	v := jc.v
	v.SetEnvPrefix("JSTR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if path := v.GetString("config-file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	jc.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	policy, err := codec.ParsePolicy(v.GetString("policy"))
	if err != nil {
		return err
	}
	jc.policy = policy
	return nil
}
