package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/sxyafiq/steamid/store"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	exitErr, ok := err.(*exitError)
	require.True(t, ok, "expected *exitError, got %T: %v", err, err)
	require.Equal(t, code, exitErr.code)
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCLI(t)
	requireExitCode(t, err, 1)
	require.Contains(t, stderr, "Usage:")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "help")
	require.NoError(t, err)
	require.Contains(t, stdout, "Commands:")
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	require.Equal(t, "steamid CLI version "+version+"\n", stdout)
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCLI(t, "frobnicate")
	requireExitCode(t, err, 1)
	require.Contains(t, stderr, "Unknown command: frobnicate")
}

func TestParse_Text(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "parse", "STEAM_0:1:161178172")
	require.NoError(t, err)
	require.Contains(t, stdout, "SteamID:      76561198282622073")
	require.Contains(t, stdout, "Input shape:  standard")
	require.Contains(t, stdout, "Community number:  322356345")
	require.Contains(t, stdout, "Account number:    161178172")
	require.Contains(t, stdout, "Steam3:    [U:1:322356345]")
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "parse", "--json", "[U:1:322356345]")
	require.NoError(t, err)

	var info idInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	require.Equal(t, "bracket", info.Shape)
	require.Equal(t, uint64(76561198282622073), info.SteamID.Uint64())
	require.Equal(t, "STEAM_1:1:161178172", info.Steam2)
	require.Equal(t, uint32(322356345), info.CommunityNumber)
	require.Equal(t, uint32(161178172), info.AccountNumber)
	require.Equal(t, "Individual", info.AccountType)
	require.Equal(t, "Public", info.Universe)
	require.Equal(t, uint32(1), info.Instance)
	require.Equal(t, "11000011336c479", info.Hex)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCLI(t, "parse")
	requireExitCode(t, err, 1)
	require.Contains(t, stderr, "Usage: steamid parse")

	_, _, err = runCLI(t, "parse", "garbage")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unrecognized format")

	_, _, err = runCLI(t, "parse", "--help")
	require.NoError(t, err)
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		format string
		want   string
	}{
		{"76561198282622073", "steam2", "STEAM_1:1:161178172"},
		{"76561198282622073", "STEAM3", "[U:1:322356345]"},
		{"STEAM_0:1:161178172", "community", "322356345"},
		{"STEAM_0:1:161178172", "account", "161178172"},
		{"322356345", "steam64", "76561198282622073"},
		{"[U:1:322356345]", "hex", "11000011336c479"},
		{"steam:11000011336c479", "steam3", "[U:1:322356345]"},
	}

	for _, tt := range tests {
		t.Run(tt.input+"/"+tt.format, func(t *testing.T) {
			stdout, _, err := runCLI(t, "convert", tt.input, tt.format)
			require.NoError(t, err)
			require.Equal(t, tt.want+"\n", stdout)
		})
	}

	_, _, err := runCLI(t, "convert", "1")
	requireExitCode(t, err, 1)
}

func TestConvert_HexReadsBack(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"steamhex", "hex", "x"} {
		t.Run(format, func(t *testing.T) {
			stdout, _, err := runCLI(t, "convert", "[U:1:1]", format)
			require.NoError(t, err)

			rendered := strings.TrimSpace(stdout)
			if !strings.HasPrefix(rendered, "steam:") {
				rendered = "steam:" + rendered
			}

			stdout, _, err = runCLI(t, "validate", rendered)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(stdout, "VALID: 76561197960265729"), stdout)
			require.Contains(t, stdout, "Shape:  hex")
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "validate", "[U:1:322356345]")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "VALID: 76561198282622073"))

	stdout, _, err = runCLI(t, "validate", "76561197960265728")
	requireExitCode(t, err, 1)
	require.Contains(t, stdout, "INVALID")
	require.Contains(t, stdout, "out_of_range_64")

	stdout, _, err = runCLI(t, "validate", "0")
	requireExitCode(t, err, 1)
	require.Contains(t, stdout, "out_of_range_32")

	stdout, _, err = runCLI(t, "validate", "hello")
	requireExitCode(t, err, 1)
	require.Contains(t, stdout, "unrecognized_format")
}

func TestBench(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "bench", "--duration", "5ms")
	require.NoError(t, err)
	require.Contains(t, stdout, "Bracketed:")
	require.Contains(t, stdout, "Benchmark complete!")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "steamid.hcl")
	err := os.WriteFile(path, []byte(body), 0600)
	require.NoError(t, err, "failed to set up config file")
	return path
}

// indexScenario adds, reads, lists and removes players through the CLI.
func indexScenario(t *testing.T, configPath string) {
	t.Helper()

	_, _, err := runCLI(t, "index", "--config", configPath, "add", "STEAM_0:1:161178172", "alice", "smith")
	require.NoError(t, err)
	_, _, err = runCLI(t, "index", "--config", configPath, "add", "STEAM_0:0:79208088", "bob")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "index", "--config", configPath, "get", "[U:1:322356345]")
	require.NoError(t, err)
	require.Contains(t, stdout, "76561198282622073")
	require.Contains(t, stdout, "alice smith")

	stdout, _, err = runCLI(t, "index", "--config", configPath, "--json", "list")
	require.NoError(t, err)
	var players []store.Player
	require.NoError(t, json.Unmarshal([]byte(stdout), &players))
	require.Len(t, players, 2)
	require.Equal(t, "bob", players[0].Name)
	require.Equal(t, "alice smith", players[1].Name)

	_, _, err = runCLI(t, "index", "--config", configPath, "rm", "76561198118681904")
	require.NoError(t, err)

	_, _, err = runCLI(t, "index", "--config", configPath, "rm", "76561198118681904")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, _, err = runCLI(t, "index", "--config", configPath, "get", "[U:1:1]")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestIndex_SQLite(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "players.db")
	path := writeConfig(t, fmt.Sprintf("store {\n  driver = \"sqlite\"\n  dsn = %q\n}\n", dsn))
	indexScenario(t, path)
}

func TestIndex_Redis(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	path := writeConfig(t, fmt.Sprintf("store {\n  driver = \"redis\"\n  addr = %q\n}\n", mr.Addr()))
	indexScenario(t, path)

	require.True(t, mr.Exists("steamid:player:76561198282622073"))
}

func TestIndex_Errors(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "players.db")
	path := writeConfig(t, fmt.Sprintf("store {\n  dsn = %q\n}\n", dsn))

	_, _, err := runCLI(t, "index", "--config", path)
	requireExitCode(t, err, 1)

	_, _, err = runCLI(t, "index", "--config", path, "add", "garbage", "x")
	require.Error(t, err)

	_, _, err = runCLI(t, "index", "--config", path, "add", "[U:1:1]")
	requireExitCode(t, err, 1)

	_, _, err = runCLI(t, "index", "--config", path, "explode")
	requireExitCode(t, err, 1)

	_, _, err = runCLI(t, "index", "--config", path, "--log-level", "loud", "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "log_level")

	bad := writeConfig(t, `store { driver = "mongo" }`)
	_, _, err = runCLI(t, "index", "--config", bad, "list")
	require.Error(t, err)
	require.Contains(t, err.Error(), "store.driver")
}

func TestIndex_DebugLogging(t *testing.T) {
	t.Parallel()

	dsn := filepath.Join(t.TempDir(), "players.db")
	path := writeConfig(t, fmt.Sprintf("log_level = \"debug\"\nstore {\n  dsn = %q\n}\n", dsn))

	_, stderr, err := runCLI(t, "index", "--config", path, "add", "[U:1:2]", "x")
	require.NoError(t, err)
	require.Contains(t, stderr, "Stored player")
	require.Contains(t, stderr, "steamid=76561197960265730")
}
