package updatewarn

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fleuristes/fleur/internal/update"
)

func stubCheck(result update.Result, err error, calls *int) CheckFunc {
	return func(context.Context, string) (update.Result, error) {
		*calls++
		return result, err
	}
}

func TestWarnIfOutdated_SkipsWhenDisabled(t *testing.T) {
	t.Setenv(update.EnvNoUpdateCheck, "1")
	called := 0

	var stderr bytes.Buffer
	WarnIfOutdated(context.Background(), "1.0.0", stubCheck(update.Result{Outdated: true}, nil, &called), &stderr)
	assert.Zero(t, called)
	assert.Empty(t, stderr.String())
}

func TestWarnIfOutdated_NilWriterAndCheck(t *testing.T) {
	t.Setenv(update.EnvNoUpdateCheck, "")
	called := 0

	assert.NotPanics(t, func() {
		WarnIfOutdated(context.Background(), "1.0.0", nil, nil)
		WarnIfOutdated(context.Background(), "1.0.0", stubCheck(update.Result{Outdated: true, Latest: "2.0.0"}, nil, &called), nil)
	})
	assert.Equal(t, 1, called)
}

func TestWarnIfOutdated_ErrorDevAndOutdated(t *testing.T) {
	t.Setenv(update.EnvNoUpdateCheck, "")
	cases := []struct {
		name   string
		result update.Result
		err    error
		want   string
	}{
		{name: "error", err: errors.New("boom"), want: "failed to check for fleur updates: boom"},
		{name: "dev", result: update.Result{CurrentIsDev: true, Latest: "2.0.0"}, want: "running a dev build"},
		{name: "outdated", result: update.Result{Outdated: true, Latest: "2.0.0", Current: "1.0.0"}, want: "update available: 2.0.0 (current 1.0.0)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := 0
			var stderr bytes.Buffer
			WarnIfOutdated(context.Background(), "1.0.0", stubCheck(tc.result, tc.err, &called), &stderr)
			assert.Contains(t, stderr.String(), tc.want)
		})
	}
}

func TestWarnIfOutdated_QuietCases(t *testing.T) {
	t.Setenv(update.EnvNoUpdateCheck, "")
	cases := []struct {
		name   string
		result update.Result
		err    error
	}{
		{name: "rate limited", err: &update.RateLimitError{Status: "429 Too Many Requests"}},
		{name: "up to date", result: update.Result{Current: "1.0.0", Latest: "1.0.0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := 0
			var stderr bytes.Buffer
			WarnIfOutdated(context.Background(), "1.0.0", stubCheck(tc.result, tc.err, &called), &stderr)
			assert.Equal(t, 1, called)
			assert.Empty(t, stderr.String())
		})
	}
}
