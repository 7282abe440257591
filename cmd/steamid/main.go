// SteamID CLI - Command-line tool for SteamID conversion and a small player index
//
// Usage:
//
//	steamid parse <id>               Parse and inspect a SteamID
//	steamid convert <id> <format>    Render a SteamID in another format
//	steamid validate <id>            Validate a SteamID
//	steamid bench                    Run performance benchmarks
//	steamid index <action> [args]    Manage the player index
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sxyafiq/steamid"
	"github.com/sxyafiq/steamid/internal/config"
	"github.com/sxyafiq/steamid/store"
)

const version = "1.0.0"

// exitError carries a process exit code out of run.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func main() {
	slog.SetDefault(newLogger(config.DefaultLogLevel, config.DefaultLogFormat, os.Stderr))

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.msg != "" {
				fmt.Fprintln(os.Stderr, exitErr.msg)
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches a command line. Output goes to stdout, usage text and logs to
// stderr.
func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return &exitError{code: 1}
	}

	command := args[0]
	switch command {
	case "parse", "p":
		return cmdParse(args[1:], stdout, stderr)
	case "convert", "conv", "c":
		return cmdConvert(args[1:], stdout, stderr)
	case "validate", "val", "v":
		return cmdValidate(args[1:], stdout, stderr)
	case "bench", "benchmark", "b":
		return cmdBench(args[1:], stdout, stderr)
	case "index", "idx", "i":
		return cmdIndex(args[1:], stdout, stderr)
	case "version", "--version":
		fmt.Fprintf(stdout, "steamid CLI version %s\n", version)
		return nil
	case "help", "--help", "-h":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return &exitError{code: 1}
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `SteamID CLI - Convert and inspect 64-bit player identifiers

Usage:
  steamid <command> [flags]

Commands:
  parse, p              Parse and inspect a SteamID
  convert, conv, c      Render a SteamID in another format
  validate, val, v      Validate a SteamID
  bench, b              Run performance benchmarks
  index, idx, i         Manage the player index (add, get, list, rm)
  version               Show version information
  help                  Show this help message

Accepted input forms:
  322356345             Community number
  76561198282622073     Steam64
  STEAM_1:1:161178172   Standard
  [U:1:322356345]       Bracketed (brackets optional)

Examples:
  steamid parse STEAM_0:1:161178172
  steamid parse --json "[U:1:322356345]"
  steamid convert 76561198282622073 steam3
  steamid validate 76561197960265728
  steamid index --config steamid.hcl add 76561198282622073 alice

For detailed help on a command:
  steamid <command> --help

`)
}

// ============================================================================
// Parse Command
// ============================================================================

// idInfo is the --json output of the parse command.
type idInfo struct {
	Input           string          `json:"input"`
	Shape           string          `json:"shape"`
	SteamID         steamid.SteamID `json:"steamid"`
	Steam2          string          `json:"steam2"`
	Steam3          string          `json:"steam3"`
	CommunityNumber uint32          `json:"community_number"`
	AccountNumber   uint32          `json:"account_number"`
	AccountType     string          `json:"account_type"`
	Universe        string          `json:"universe"`
	Instance        uint32          `json:"instance"`
	Hex             string          `json:"hex"`
}

func newIDInfo(input string, id steamid.SteamID) idInfo {
	return idInfo{
		Input:           input,
		Shape:           inputShape(input),
		SteamID:         id,
		Steam2:          id.Steam2(),
		Steam3:          id.Steam3(),
		CommunityNumber: id.CommunityNumber(),
		AccountNumber:   id.AccountNumber(),
		AccountType:     id.AccountType().String(),
		Universe:        id.Universe().String(),
		Instance:        id.Instance(),
		Hex:             id.Hex(),
	}
}

func cmdParse(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: steamid parse [flags] <id>

Parse and inspect a SteamID in any accepted form.

Flags:
  --json             Output as JSON

Examples:
  steamid parse 76561198282622073
  steamid parse --json STEAM_0:0:79208088
`)
	}

	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return &exitError{code: 1}
	}

	input := fs.Arg(0)
	id, err := parseFlexible(input)
	if err != nil {
		return fmt.Errorf("unable to parse %q: %w", input, err)
	}

	info := newIDInfo(input, id)
	if *jsonOutput {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	fmt.Fprintf(stdout, "SteamID:      %s\n", id)
	fmt.Fprintf(stdout, "Input shape:  %s\n", info.Shape)
	fmt.Fprintf(stdout, "\n")
	fmt.Fprintf(stdout, "Fields:\n")
	fmt.Fprintf(stdout, "  Universe:          %s\n", info.Universe)
	fmt.Fprintf(stdout, "  Account type:      %s\n", info.AccountType)
	fmt.Fprintf(stdout, "  Instance:          %d\n", info.Instance)
	fmt.Fprintf(stdout, "  Account number:    %d\n", info.AccountNumber)
	fmt.Fprintf(stdout, "  Community number:  %d\n", info.CommunityNumber)
	fmt.Fprintf(stdout, "\n")
	fmt.Fprintf(stdout, "Renderings:\n")
	fmt.Fprintf(stdout, "  Steam64:   %s\n", id)
	fmt.Fprintf(stdout, "  Steam2:    %s\n", info.Steam2)
	fmt.Fprintf(stdout, "  Steam3:    %s\n", info.Steam3)
	fmt.Fprintf(stdout, "  Hex:       %s\n", info.Hex)
	return nil
}

// parseFlexible accepts every Parse form plus "steam:<hex>", so the
// steamhex output of convert reads back.
func parseFlexible(s string) (steamid.SteamID, error) {
	if strings.HasPrefix(s, steamid.HexPrefix) {
		return steamid.ParseHex(s)
	}
	return steamid.Parse(s)
}

func inputShape(s string) string {
	if strings.HasPrefix(s, steamid.HexPrefix) {
		return "hex"
	}
	return steamid.Classify(s).String()
}

// ============================================================================
// Convert Command
// ============================================================================

func cmdConvert(args []string, stdout, stderr io.Writer) error {
	if len(args) < 2 {
		fmt.Fprintf(stderr, "Usage: steamid convert <id> <format>\n")
		fmt.Fprintf(stderr, "\nRender a SteamID in a different format.\n")
		fmt.Fprintf(stderr, "\nFormats:\n")
		fmt.Fprintf(stderr, "  steam64, 64        Steam64 decimal (default)\n")
		fmt.Fprintf(stderr, "  steam2, standard   STEAM_1:Y:Z\n")
		fmt.Fprintf(stderr, "  steam3, bracket    [U:1:N]\n")
		fmt.Fprintf(stderr, "  community, 32      Community number N\n")
		fmt.Fprintf(stderr, "  account            Account number Z (not re-parseable)\n")
		fmt.Fprintf(stderr, "  hex, x             Hexadecimal (read back with the steam: prefix)\n")
		fmt.Fprintf(stderr, "  steamhex           Hexadecimal with steam: prefix\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  steamid convert 76561198282622073 steam2\n")
		fmt.Fprintf(stderr, "  steamid convert STEAM_0:1:161178172 community\n")
		return &exitError{code: 1}
	}

	input, format := args[0], strings.ToLower(args[1])

	id, err := parseFlexible(input)
	if err != nil {
		return fmt.Errorf("unable to parse %q: %w", input, err)
	}

	fmt.Fprintln(stdout, id.Format(format))
	return nil
}

// ============================================================================
// Validate Command
// ============================================================================

func cmdValidate(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintf(stderr, "Usage: steamid validate <id>\n")
		fmt.Fprintf(stderr, "\nCheck that a SteamID is well-formed and within range.\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  steamid validate STEAM_1:1:161178172\n")
		return &exitError{code: 1}
	}

	input := args[0]
	id, err := parseFlexible(input)
	if err != nil {
		fmt.Fprintf(stdout, "INVALID: %q\n", input)
		if parseErr, ok := steamid.GetParseError(err); ok {
			fmt.Fprintf(stdout, "  Shape:  %s\n", inputShape(input))
			fmt.Fprintf(stdout, "  Rule:   %s\n", parseErr.Rule)
		}
		fmt.Fprintf(stdout, "  Error:  %v\n", err)
		return &exitError{code: 1}
	}

	fmt.Fprintf(stdout, "VALID: %s\n", id)
	fmt.Fprintf(stdout, "  Shape:  %s\n", inputShape(input))
	fmt.Fprintf(stdout, "  Steam2: %s\n", id.Steam2())
	fmt.Fprintf(stdout, "  Steam3: %s\n", id.Steam3())
	return nil
}

// ============================================================================
// Benchmark Command
// ============================================================================

func cmdBench(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	duration := fs.Duration("duration", 3*time.Second, "Duration of each benchmark")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: steamid bench [flags]

Run parse and render throughput benchmarks.

Flags:
  --duration D      Duration of each benchmark (default: 3s)

Examples:
  steamid bench --duration 5s
`)
	}

	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}

	fmt.Fprintf(stdout, "Running benchmarks (duration: %v)\n\n", *duration)

	inputs := []struct {
		name  string
		input string
	}{
		{"Community", "322356345"},
		{"Steam64", "76561198282622073"},
		{"Standard", "STEAM_1:1:161178172"},
		{"Bracketed", "[U:1:322356345]"},
	}

	fmt.Fprintf(stdout, "1. Parse:\n")
	for _, in := range inputs {
		count := 0
		start := time.Now()
		deadline := start.Add(*duration)
		for time.Now().Before(deadline) {
			if _, err := steamid.Parse(in.input); err != nil {
				return fmt.Errorf("benchmark input %q: %w", in.input, err)
			}
			count++
		}
		elapsed := time.Since(start)
		fmt.Fprintf(stdout, "   %-10s %12.0f ops/sec (%6.0f ns/op)\n", in.name+":",
			float64(count)/elapsed.Seconds(), float64(elapsed.Nanoseconds())/float64(count))
	}

	fmt.Fprintf(stdout, "\n2. Render (1000 operations):\n")
	id := steamid.MustParse("76561198282622073")
	renderTests := []struct {
		name string
		fn   func() string
	}{
		{"Steam64", id.String},
		{"Steam2", id.Steam2},
		{"Steam3", id.Steam3},
		{"Hex", id.Hex},
	}

	for _, test := range renderTests {
		start := time.Now()
		for i := 0; i < 1000; i++ {
			_ = test.fn()
		}
		elapsed := time.Since(start)
		nsPerOp := float64(elapsed.Nanoseconds()) / 1000
		fmt.Fprintf(stdout, "   %-10s %6.0f ns/op\n", test.name+":", nsPerOp)
	}

	fmt.Fprintf(stdout, "\nBenchmark complete!\n")
	return nil
}

// ============================================================================
// Index Command
// ============================================================================

func cmdIndex(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to an HCL config file")
	logLevel := fs.String("log-level", "", "Override the configured log level")
	jsonOutput := fs.Bool("json", false, "Output as JSON")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: steamid index [flags] <action> [args]

Manage the player index.

Actions:
  add <id> <name>    Insert or update a player
  get <id>           Show one player
  list               List every player in ascending SteamID order
  rm <id>            Remove a player

Flags:
  --config FILE      HCL config file (default: sqlite at %s)
  --log-level L      debug, info, warn or error
  --json             Output as JSON

Examples:
  steamid index add STEAM_0:1:161178172 alice
  steamid index --config steamid.hcl list
`, config.DefaultDSN)
	}

	if err := fs.Parse(args); err != nil {
		return flagError(err)
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return &exitError{code: 1}
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	ctx := context.Background()

	st, err := store.Open(ctx, cfg.Store.Options(), logger)
	if err != nil {
		return err
	}
	defer st.Close()

	action, rest := fs.Arg(0), fs.Args()[1:]
	logger.Debug("Running index action", "action", action, "driver", cfg.Store.Driver)

	switch action {
	case "add":
		if len(rest) < 2 {
			return &exitError{code: 1, msg: "Usage: steamid index add <id> <name>"}
		}
		id, err := parseFlexible(rest[0])
		if err != nil {
			return fmt.Errorf("unable to parse %q: %w", rest[0], err)
		}
		p := store.Player{
			SteamID: id,
			Name:    strings.Join(rest[1:], " "),
			SeenAt:  time.Now().UTC().Truncate(time.Millisecond),
		}
		if err := st.Put(ctx, p); err != nil {
			return err
		}
		logger.Info("Player stored", "steamid", id, "name", p.Name)
		return nil

	case "get":
		if len(rest) < 1 {
			return &exitError{code: 1, msg: "Usage: steamid index get <id>"}
		}
		id, err := parseFlexible(rest[0])
		if err != nil {
			return fmt.Errorf("unable to parse %q: %w", rest[0], err)
		}
		p, err := st.Get(ctx, id)
		if err != nil {
			return err
		}
		return printPlayers(stdout, []store.Player{p}, *jsonOutput)

	case "list", "ls":
		players, err := st.List(ctx)
		if err != nil {
			return err
		}
		return printPlayers(stdout, players, *jsonOutput)

	case "rm", "delete":
		if len(rest) < 1 {
			return &exitError{code: 1, msg: "Usage: steamid index rm <id>"}
		}
		id, err := parseFlexible(rest[0])
		if err != nil {
			return fmt.Errorf("unable to parse %q: %w", rest[0], err)
		}
		if err := st.Delete(ctx, id); err != nil {
			return err
		}
		logger.Info("Player removed", "steamid", id)
		return nil

	default:
		fmt.Fprintf(stderr, "Unknown index action: %s\n\n", action)
		fs.Usage()
		return &exitError{code: 1}
	}
}

func printPlayers(w io.Writer, players []store.Player, asJSON bool) error {
	if asJSON {
		if players == nil {
			players = []store.Player{}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(players)
	}

	for _, p := range players {
		fmt.Fprintf(w, "%s  %-22s  %s  %s\n",
			p.SteamID, p.SteamID.Steam2(), p.SeenAt.Format(time.RFC3339), p.Name)
	}
	return nil
}

// flagError maps -h/--help to a clean exit.
func flagError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return &exitError{code: 2, msg: err.Error()}
}
