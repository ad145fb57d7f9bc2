package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "VALUEITERATION"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "valueiteration",
		Short:         "Plan optimal policies for finite MDPs with value iteration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	cmd.PersistentFlags().Bool("quiet", false, "Do not log to stderr")
	cmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")
	cmd.PersistentFlags().String("config", "", "YAML file with flag defaults")

	NewRunCmd(cmd)
	NewInspectCmd(cmd)
	NewVersionCmd(cmd)
	return cmd
}

// Execute runs the command tree and exits with the code carried by the
// returned error.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// settings layers flags over env over the optional config file.
func settings(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, NewExitError(ExitBadInput, fmt.Errorf("reading config: %w", err))
		}
	}
	return v, nil
}

func newLogger(cmd *cobra.Command, v *viper.Viper) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if v.GetBool("quiet") {
		logger.SetOutput(io.Discard)
	}
	if v.GetBool("debug") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
