package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/koywe/apierr"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	args     [][]string
	failWith error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Status(context.Context) error { return f.record("status", nil) }
func (f *fakeExec) Documents(_ context.Context, args []string) error {
	return f.record("documents", args)
}
func (f *fakeExec) Document(_ context.Context, args []string) error {
	return f.record("document", args)
}
func (f *fakeExec) DeleteDocument(_ context.Context, args []string) error {
	return f.record("delete-document", args)
}
func (f *fakeExec) Account(_ context.Context, args []string) error {
	return f.record("account", args)
}
func (f *fakeExec) CreateAccount(context.Context) error { return f.record("create-account", nil) }

func runLines(exec *fakeExec, lines ...string) string {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "(s)" }, in, &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}
	out := runLines(exec,
		"help",
		"login",
		"help",
		"",
		"documents 2 5",
		"ls",
		"document 42",
		"delete-document 42",
		"account 7",
		"create-account",
		"status",
		"logout",
		"foobar",
		"exit",
		"status",
	)

	assert.Equal(t, []string{
		"login", "documents", "documents", "document", "delete-document",
		"account", "create-account", "status", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"2", "5"}, exec.args[1])
	assert.Empty(t, exec.args[2])
	assert.Equal(t, []string{"42"}, exec.args[3])

	assert.Contains(t, out, helpLoggedOut)
	assert.Contains(t, out, helpLoggedIn)
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
	assert.Contains(t, out, "koywe (s)> ")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	exec := &fakeExec{}
	out := runLines(exec, "status")

	assert.Equal(t, []string{"status"}, exec.calls)
	assert.NotContains(t, out, "Bye!")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{failWith: apierr.New(apierr.KindNotFound, "resource not found", 404, map[string]any{"detail": "gone"})}
	out := runLines(exec, "document 1", "account 2", "quit")

	assert.Equal(t, []string{"document", "account"}, exec.calls)
	assert.Contains(t, out, `error: resource not found (status 404): {"detail":"gone"}`)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "boom", describe(errors.New("boom")))
	assert.Equal(t, "rate limit exceeded (status 429)",
		describe(apierr.New(apierr.KindRateLimit, "rate limit exceeded", 429, nil)))
}
