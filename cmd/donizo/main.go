// Command donizo drives the pricing truth engine: run an event stream
// through the kernel, replay one against an expected fingerprint, or
// generate a synthetic event stream for exercising both.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/donizo/truth-engine/internal/generate"
	"github.com/donizo/truth-engine/internal/runner"
)

type runCmd struct {
	Events string `help:"Path to the line-delimited input events file." required:""`
	State  string `help:"Path to the persistent state file (created if absent)." required:""`
	Audit  string `help:"Path to write the audit log to." required:""`
}

func (c *runCmd) Run(cli *cliContext) error {
	hash, err := runner.Run(cli.log, c.Events, c.State, c.Audit)
	if err != nil {
		return err
	}
	fmt.Printf("RUN OK — Final state hash: %s\n", hash)
	return nil
}

type replayCmd struct {
	Events string `help:"Path to the line-delimited input events file." required:""`
	State  string `help:"Path to write the replayed state to." required:""`
	Audit  string `help:"Path to write the audit log to." required:""`
	Verify string `help:"Path to a file containing the expected final state hash." required:""`
}

func (c *replayCmd) Run(cli *cliContext) error {
	expected, err := os.ReadFile(c.Verify)
	if err != nil {
		return err
	}

	match, hash, err := runner.Replay(cli.log, c.Events, c.State, c.Audit, strings.TrimSpace(string(expected)))
	if err != nil {
		return err
	}
	if !match {
		fmt.Printf("REPLAY MISMATCH — got %s\n", hash)
		return errExitCode{1}
	}
	fmt.Printf("REPLAY OK — Final state hash: %s\n", hash)
	return nil
}

type generateCmd struct {
	Output string `help:"Path to write the generated events file to." required:""`
	Count  int    `help:"Minimum number of events to generate." default:"1000"`
	Seed   int64  `help:"Seed for the deterministic generator." default:"42"`
}

func (c *generateCmd) Run(cli *cliContext) error {
	events := generate.Generate(c.Count, c.Seed)
	if err := generate.WriteEventsFile(c.Output, events); err != nil {
		return err
	}
	fmt.Printf("GENERATE OK — wrote %d events to %s\n", len(events), c.Output)
	return nil
}

var cli struct {
	Verbose bool `short:"v" help:"Enable debug-level logging."`

	Run      runCmd      `cmd:"" help:"Run an event stream through the kernel, persisting state and audit output."`
	Replay   replayCmd   `cmd:"" help:"Replay an event stream from an empty state and verify the final hash."`
	Generate generateCmd `cmd:"" help:"Generate a synthetic event stream."`
}

// cliContext carries the logger into each subcommand's Run method,
// kong's convention for passing shared dependencies without globals.
type cliContext struct {
	log *zap.Logger
}

// errExitCode lets a subcommand signal a specific process exit code
// (a replay mismatch is not itself a logging-worthy error) without
// kong printing a misleading "error:" line for it.
type errExitCode struct{ code int }

func (e errExitCode) Error() string { return "" }

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("donizo"),
		kong.Description("Deterministic pricing decision engine."),
		kong.UsageOnError(),
	)

	var zcfg zap.Config
	if cli.Verbose {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig.TimeKey = ""
	}
	log, err := zcfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	runErr := ctx.Run(&cliContext{log: log})
	if runErr == nil {
		return
	}

	if ec, ok := runErr.(errExitCode); ok {
		os.Exit(ec.code)
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
	os.Exit(1)
}
