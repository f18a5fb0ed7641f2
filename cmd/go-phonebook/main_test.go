package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-phonebook/internal/book"
	"github.com/tartampluch/go-phonebook/internal/commands"
	"github.com/tartampluch/go-phonebook/internal/config"
	"github.com/tartampluch/go-phonebook/internal/engine"
	"go.uber.org/goleak"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	color.Disable()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return filepath.Join(t.TempDir(), "book.snap")
}

func TestRunMain_Version(t *testing.T) {
	var out bytes.Buffer
	code := runMain([]string{"--version"}, strings.NewReader(""), &out)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.True(t, strings.HasPrefix(out.String(), config.AppName+" version "))
}

// TestRunMain_PersistsAcrossSessions runs two sessions against the same snapshot.
func TestRunMain_PersistsAcrossSessions(t *testing.T) {
	path := setupEnv(t)

	var out bytes.Buffer
	input := "hello\nadd Alice 0501234567\n\nadd-birthday Alice 01.01.1990\nexit\n"
	code := runMain([]string{"--file", path}, strings.NewReader(input), &out)
	require.Equal(t, config.ExitCodeSuccess, code)
	assert.Contains(t, out.String(), "Hello! How can I assist you today?")
	assert.Contains(t, out.String(), "New contact 'Alice' added with phone number '0501234567'.")
	assert.Contains(t, out.String(), "Goodbye!")

	out.Reset()
	code = runMain([]string{"--file", path}, strings.NewReader("show-birthday Alice\nclose\n"), &out)
	require.Equal(t, config.ExitCodeSuccess, code)
	assert.Contains(t, out.String(), "Alice's birthday: 01.01.1990")
}

func TestRunMain_EndOfInputSaves(t *testing.T) {
	path := setupEnv(t)

	var out bytes.Buffer
	code := runMain([]string{"--file", path}, strings.NewReader("add Bob 0670000000"), &out)
	require.Equal(t, config.ExitCodeSuccess, code)

	dir, err := engine.LoadFile(path)
	require.NoError(t, err)
	_, ok := dir.Find("Bob")
	assert.True(t, ok)
}

func TestRunMain_French(t *testing.T) {
	path := setupEnv(t)

	var out bytes.Buffer
	code := runMain([]string{"--file", path, "--lang", "fr"}, strings.NewReader("all\nexit\n"), &out)
	require.Equal(t, config.ExitCodeSuccess, code)
	assert.Contains(t, out.String(), "Le carnet d'adresses est vide.")
}

func TestRunMain_CorruptSnapshot(t *testing.T) {
	path := setupEnv(t)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))

	var out bytes.Buffer
	code := runMain([]string{"--file", path}, strings.NewReader("exit\n"), &out)
	assert.Equal(t, config.ExitCodeError, code, "A corrupt snapshot is not silently replaced")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(data))
}

func TestRunMain_UnexpectedArgument(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer
	assert.Equal(t, config.ExitCodeError, runMain([]string{"stray"}, strings.NewReader(""), &out))
}

func newTestSession(t *testing.T, input string) (*session, *bytes.Buffer, *commands.Handler) {
	t.Helper()
	color.Disable()
	h := &commands.Handler{
		Book:         book.NewDirectory(),
		Clock:        engine.FixedClock{At: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		Messages:     commands.NewMessages("en"),
		SnapshotPath: filepath.Join(t.TempDir(), "book.snap"),
	}
	var out bytes.Buffer
	return newSession(h, strings.NewReader(input), &out), &out, h
}

func TestSession_StopsAtExit(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreAnyFunction("os/signal.loop"))

	s, out, h := newTestSession(t, "add Alice 0501234567\nexit\nadd Bob 0670000000\n")
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 1, h.Book.Len(), "Lines after exit are not executed")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestSession_ErrorsDoNotStopTheLoop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreAnyFunction("os/signal.loop"))

	s, out, h := newTestSession(t, "bogus\nadd Alice 12\nadd Alice 0501234567\nexit\n")
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Error: Invalid command. Please try again.")
	assert.Contains(t, out.String(), "Error: Phone number must be 10 digits and contain only digits")
	assert.Equal(t, 1, h.Book.Len())
}

func TestSession_CancelledContextSaves(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreAnyFunction("os/signal.loop"))

	// A reader that never yields keeps the session waiting for input.
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	s, out, h := newTestSession(t, "")
	s.in = pr
	h.Book.Add(mustRecord(t, "Alice"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Run(ctx))
	assert.Contains(t, out.String(), "Goodbye!")

	_ = pw.Close()
	dir, err := engine.LoadFile(h.SnapshotPath)
	require.NoError(t, err)
	assert.Equal(t, 1, dir.Len())
}

func TestSession_SaveFailureIsReturned(t *testing.T) {
	s, _, h := newTestSession(t, "")
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	h.SnapshotPath = filepath.Join(blocker, "book.snap")

	err := s.Run(context.Background())
	assert.ErrorIs(t, err, engine.ErrPersistence)
}

func mustRecord(t *testing.T, name string) *book.Record {
	t.Helper()
	r, err := book.NewRecord(name)
	require.NoError(t, err)
	return r
}
