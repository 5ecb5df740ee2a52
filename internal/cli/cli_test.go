package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/puffin/internal/adapters/memory"
	"github.com/aretw0/puffin/internal/config"
	"github.com/aretw0/puffin/internal/logging"
	"github.com/aretw0/puffin/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulate_JSONLog(t *testing.T) {
	var out, errOut bytes.Buffer
	err := Simulate(context.Background(), SimulateOptions{
		ConfigPath: testutils.ConfigPath(t),
		JSON:       true,
		Presses:    []string{"2:confirm", "50:down", "52:down", "54:confirm"},
		Devices:    []string{"40:connect:1"},
	}, &out, &errOut)
	require.NoError(t, err)

	var lines []logLine
	for _, raw := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var l logLine
		require.NoError(t, json.Unmarshal([]byte(raw), &l), raw)
		lines = append(lines, l)
	}

	want := []logLine{
		{Tick: 2, Kind: "begin", Detail: "title -> main_menu (step 0.03)"},
		{Tick: 36, Kind: "end", Detail: "main_menu"},
		{Tick: 40, Kind: "device", Detail: "gamepad_connected{index: 1}"},
		{Tick: 54, Kind: "quit", Detail: "main_menu"},
		{Tick: 54, Kind: "final", Detail: "quit main_menu [main_menu]"},
	}
	assert.Equal(t, want, lines)
}

func TestSimulate_TickBudget(t *testing.T) {
	var out bytes.Buffer
	err := Simulate(context.Background(), SimulateOptions{
		ConfigPath: testutils.ConfigPath(t),
		Ticks:      5,
	}, &out, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "stopped title [title]")
}

func TestSimulate_Errors(t *testing.T) {
	err := Simulate(context.Background(), SimulateOptions{
		ConfigPath: testutils.ConfigPath(t),
		Presses:    []string{"soon:confirm"},
	}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)

	path := testutils.WriteConfig(t, "initial_state: lobby")
	err = Simulate(context.Background(), SimulateOptions{ConfigPath: path}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestStates_Formats(t *testing.T) {
	var plain bytes.Buffer
	require.NoError(t, States(StatesOptions{ConfigPath: testutils.ConfigPath(t), Format: FormatPlain}, &plain))
	assert.Contains(t, plain.String(), "# Scene states")
	assert.Contains(t, plain.String(), "**title** *(initial)*")

	var mermaid bytes.Buffer
	require.NoError(t, States(StatesOptions{ConfigPath: testutils.ConfigPath(t), Format: FormatMermaid}, &mermaid))
	assert.True(t, strings.HasPrefix(mermaid.String(), "stateDiagram-v2\n"))
	assert.Contains(t, mermaid.String(), "[*] --> title")

	var md bytes.Buffer
	require.NoError(t, States(StatesOptions{ConfigPath: testutils.ConfigPath(t)}, &md))
	assert.Contains(t, md.String(), "Scene states")

	assert.Error(t, States(StatesOptions{ConfigPath: testutils.ConfigPath(t), Format: "svg"}, &bytes.Buffer{}))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()

	store, closeFn, err := openStore(ctx, config.SnapshotConfig{Backend: config.BackendNone}, logger)
	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, closeFn())

	store, _, err = openStore(ctx, config.SnapshotConfig{Backend: config.BackendMemory}, logger)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)

	mr := miniredis.RunT(t)
	store, closeFn, err = openStore(ctx, config.SnapshotConfig{Backend: config.BackendRedis, RedisAddr: mr.Addr(), Prefix: "test:"}, logger)
	require.NoError(t, err)
	require.NotNil(t, store)
	runs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, closeFn())

	addr := mr.Addr()
	mr.Close()
	_, _, err = openStore(ctx, config.SnapshotConfig{Backend: config.BackendRedis, RedisAddr: addr}, logger)
	assert.Error(t, err)

	_, _, err = openStore(ctx, config.SnapshotConfig{Backend: "s3"}, logger)
	assert.Error(t, err)
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, handleExecutionError(nil))
	assert.NoError(t, handleExecutionError(context.Canceled))
	assert.NoError(t, handleExecutionError(fmt.Errorf("tick 3: %w", context.Canceled)))

	boom := errors.New("boom")
	assert.ErrorIs(t, handleExecutionError(boom), boom)
}

func TestExecute_RejectsWatchHeadless(t *testing.T) {
	err := Execute(context.Background(), RunOptions{Watch: true, Headless: true})
	assert.Error(t, err)
}

func TestExecute_Headless(t *testing.T) {
	path := testutils.WriteConfig(t, "tick_rate: 1ms\nsnapshot: {backend: none}\n")

	err := Execute(context.Background(), RunOptions{ConfigPath: path, Headless: true, MaxTicks: 3})
	assert.NoError(t, err)
}
