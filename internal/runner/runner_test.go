//go:build !windows

package runner

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleuristes/fleur/internal/testutil"
)

func staticEnviron(entries ...string) func() []string {
	return func() []string { return append([]string(nil), entries...) }
}

func TestExecRun_CapturesOutput(t *testing.T) {
	dir := t.TempDir()
	script := testutil.WriteScript(t, dir, "talk", "echo out\necho err >&2")

	r := &Exec{environ: staticEnviron("PATH=/usr/bin:/bin")}
	res, err := r.Run(context.Background(), Command{Name: script})
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestExecRun_ReportsExitCode(t *testing.T) {
	dir := t.TempDir()
	script := testutil.WriteStubWithExit(t, dir, "fail", 3)

	r := &Exec{environ: staticEnviron("PATH=/usr/bin:/bin")}
	res, err := r.Run(context.Background(), Command{Name: script})
	require.NoError(t, err)
	assert.False(t, res.Success())
	assert.Equal(t, 3, res.ExitCode)
}

func TestExecRun_PassesEnvAndArgs(t *testing.T) {
	dir := t.TempDir()
	script := testutil.WriteScript(t, dir, "env", `echo "$GREETING $1"`)

	r := &Exec{environ: staticEnviron("PATH=/usr/bin:/bin")}
	res, err := r.Run(context.Background(), Command{Name: script, Args: []string{"world"}, Env: []string{"GREETING=hello"}})
	require.NoError(t, err)
	assert.Equal(t, "hello world", strings.TrimSpace(res.Stdout))
}

func TestExecRun_MissingBinary(t *testing.T) {
	r := NewExec(nil)
	_, err := r.Run(context.Background(), Command{Name: "/definitely/not/here"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start /definitely/not/here")
}

func TestExecRun_EmptyCommand(t *testing.T) {
	_, err := NewExec(nil).Run(context.Background(), Command{})
	require.Error(t, err)
}

func TestShell(t *testing.T) {
	cmd := Shell("echo hi")
	assert.Equal(t, "bash", cmd.Name)
	assert.Equal(t, []string{"-c", "echo hi"}, cmd.Args)
}
