// Command llmdc compiles Markdown into LLMD, a line-oriented text format
// optimized for LLM context windows.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"go.llmdc.dev/compiler/llmd"
	"go.llmdc.dev/compiler/log"
	"go.llmdc.dev/compiler/profile"
	"go.llmdc.dev/compiler/version"
)

const envPrefix = "LLMDC"

func main() {
	cfg := llmd.NewConfig()
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()

	var (
		output     string
		configFile string
		dictFile   string
	)

	rootCmd := &cobra.Command{
		Use:   "llmdc [flags] <file.md|-> [file2.md ...]",
		Short: "Compile Markdown into LLMD",
		Long: `llmdc compiles Markdown documents into LLMD, a line-oriented text format
that trades human readability for token density in LLM context windows.

Multiple file arguments are sorted lexicographically and concatenated before
compiling, so the compiled scopes always nest the same way regardless of the
order arguments were given on the command line.`,
		Args:          cobra.MinimumNArgs(1),
		Version:       versionString(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := bindViper(v, cmd, configFile); err != nil {
				return err
			}

			if err := llmd.ValidateConfig(cfg); err != nil {
				return err
			}

			if dictFile != "" {
				dict, err := loadDictionary(dictFile)
				if err != nil {
					return err
				}

				applyDictionary(cfg, dict)
			}

			return run(cmd, cfg, logCfg, profileCfg, output, args)
		},
	}

	rootCmd.Flags().StringVarP(&output, "output", "o", "-", "output file path (- for stdout)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "YAML config file overriding defaults (env: LLMDC_CONFIG)")
	rootCmd.Flags().StringVar(&dictFile, "dictionary", "",
		"YAML file overriding stopwords/protect_words/phrase_map/units")

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())
	profileCfg.RegisterFlags(rootCmd.Flags())

	for _, registrar := range []interface {
		RegisterCompletions(*cobra.Command) error
	}{cfg, logCfg, profileCfg} {
		if err := registrar.RegisterCompletions(rootCmd); err != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// bindViper layers environment variables (LLMDC_*) and an optional --config
// YAML file underneath cmd's already-parsed flags: a flag the user set
// explicitly always wins, otherwise the env var or config file value (if
// any) is applied on top of RegisterFlags' defaults.
func bindViper(v *viper.Viper, cmd *cobra.Command, configFile string) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = v.GetString("config")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	var walkErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if walkErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}

		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
			walkErr = fmt.Errorf("applying %s from config/env: %w", f.Name, err)
		}
	})

	return walkErr
}

// versionString formats the version package's build-time and VCS metadata
// into a single line for cobra's --version output.
func versionString() string {
	v := version.Version
	if v == "" {
		v = "dev"
	}

	return fmt.Sprintf("%s (revision %s, %s %s/%s)",
		v, version.Revision, version.GoVersion, version.GoOS, version.GoArch)
}
