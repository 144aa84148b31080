package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"go.llmdc.dev/compiler/llmd"
	"go.llmdc.dev/compiler/log"
	"go.llmdc.dev/compiler/profile"
)

// run reads args (file paths, or "-" for stdin), compiles them with cfg, and
// writes the result to output ("-" for stdout). Diagnostics are logged via
// logCfg; cpu/heap/etc. profiles are written per profileCfg if enabled.
func run(cmd *cobra.Command, cfg *llmd.Config, logCfg *log.Config, profileCfg *profile.Config, output string, args []string) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return fmt.Errorf("building log handler: %w", err)
	}

	logger := slog.New(handler)

	pub := log.NewPublisher()
	defer pub.Close()

	cfg.Diagnostics = pub

	sub := pub.Subscribe()
	drainDone := drainDiagnostics(sub, logger)

	prof := profileCfg.NewProfiler()
	if err := prof.Start(); err != nil {
		return fmt.Errorf("starting profiler: %w", err)
	}

	compiled, err := compileArgs(args, cfg)
	if err != nil {
		_ = prof.Stop()

		return err
	}

	if err := prof.Stop(); err != nil {
		return fmt.Errorf("stopping profiler: %w", err)
	}

	if err := writeOutput(cmd, output, compiled); err != nil {
		return err
	}

	pub.Close()
	<-drainDone

	return nil
}

// drainDiagnostics logs every entry delivered to sub until its channel
// closes, and closes the returned channel when done.
func drainDiagnostics(sub *log.Subscription, logger *slog.Logger) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		for entry := range sub.C() {
			logger.Info(strings.TrimSuffix(string(entry), "\n"))
		}
	}()

	return done
}

// compileArgs resolves args into compiled LLMD text. A single "-" reads
// stdin, and "-" combined with any other argument is an error; otherwise
// args are file paths, sorted lexicographically and concatenated per
// [llmd.CompileFiles].
func compileArgs(args []string, cfg *llmd.Config) (string, error) {
	if slices.Contains(args, "-") {
		if len(args) != 1 {
			return "", fmt.Errorf("%w: \"-\" (stdin) cannot be combined with other file arguments", llmd.ErrReadInput)
		}

		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %w", llmd.ErrReadInput, err)
		}

		return llmd.Compile(string(data), cfg), nil
	}

	return llmd.CompileFiles(args, cfg)
}

// writeOutput writes compiled to output, or to cmd's stdout when output is
// "-" or empty.
func writeOutput(cmd *cobra.Command, output, compiled string) error {
	if output == "" || output == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), compiled)
		if err != nil {
			return fmt.Errorf("%w: stdout: %w", llmd.ErrWriteOutput, err)
		}

		return nil
	}

	if err := os.WriteFile(output, []byte(compiled), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", llmd.ErrWriteOutput, output, err)
	}

	return nil
}
