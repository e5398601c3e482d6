package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) isLoggedIn() bool                 { return s.loggedIn }
func (s *stubExec) Login(ctx context.Context) error  { return s.record("login") }
func (s *stubExec) Logout(ctx context.Context) error { return s.record("logout") }
func (s *stubExec) SubmitHash(ctx context.Context) error {
	return s.record("submithash")
}
func (s *stubExec) SubmitGuess(ctx context.Context) error {
	return s.record("submitguess")
}
func (s *stubExec) Reveal(ctx context.Context) error    { return s.record("reveal") }
func (s *stubExec) Verify(ctx context.Context) error    { return s.record("verify") }
func (s *stubExec) Show(ctx context.Context) error      { return s.record("show") }
func (s *stubExec) ShowGuess(ctx context.Context) error { return s.record("showguess") }
func (s *stubExec) List(ctx context.Context) error      { return s.record("list") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	var lines []string
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, v := range a {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	return &lines
}

func runScript(t *testing.T, exec *stubExec, script string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "" }, scanner)
}

func TestREPL_DispatchesCommands(t *testing.T) {
	_ = captureOutput(t)
	exec := &stubExec{loggedIn: true}

	runScript(t, exec, "submithash\nsubmitguess\nreveal\nverify\nshow\nshowguess\nlist\nlogout\nexit\n")

	require.Equal(t,
		[]string{"submithash", "submitguess", "reveal", "verify", "show", "showguess", "list", "logout"},
		exec.calls)
}

func TestREPL_ShortListAlias(t *testing.T) {
	_ = captureOutput(t)
	exec := &stubExec{loggedIn: true}

	runScript(t, exec, "l\nquit\n")
	require.Equal(t, []string{"list"}, exec.calls)
}

func TestREPL_UnknownCommand(t *testing.T) {
	out := captureOutput(t)
	exec := &stubExec{}

	runScript(t, exec, "frobnicate\nexit\n")
	require.Empty(t, exec.calls)

	joined := strings.Join(*out, "\n")
	require.Contains(t, joined, "Unknown command:")
}

func TestREPL_HelpDependsOnLogin(t *testing.T) {
	out := captureOutput(t)

	runScript(t, &stubExec{loggedIn: false}, "help\nexit\n")
	joined := strings.Join(*out, "\n")
	require.Contains(t, joined, "login, exit")
	require.NotContains(t, joined, "submithash")

	out2 := captureOutput(t)
	runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	joined2 := strings.Join(*out2, "\n")
	require.Contains(t, joined2, "submithash")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	_ = captureOutput(t)
	exec := &stubExec{}

	// no exit command; the scanner just runs dry
	runScript(t, exec, "help\n")
	require.Empty(t, exec.calls)
}
