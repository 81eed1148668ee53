// Package update checks GitHub releases for a newer fleur build.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/version"
)

// Repo identifies the GitHub repository used for release checks.
const Repo = "fleuristes/fleur"

// ReleasesURL is where users download new builds.
const ReleasesURL = "https://github.com/" + Repo + "/releases"

// LatestReleaseURL is the GitHub API endpoint for the newest release.
const LatestReleaseURL = "https://api.github.com/repos/" + Repo + "/releases/latest"

// EnvNoUpdateCheck disables release checks when set to any non-empty value.
const EnvNoUpdateCheck = "FLEUR_NO_UPDATE_CHECK"

const (
	defaultTimeout = 10 * time.Second
	retryCount     = 1
)

// RateLimitError indicates GitHub's API rate limit was hit.
type RateLimitError struct {
	StatusCode int
	Status     string
	Remaining  *int
}

func (e *RateLimitError) Error() string {
	remaining := "unknown"
	if e.Remaining != nil {
		remaining = strconv.Itoa(*e.Remaining)
	}
	return fmt.Sprintf(messages.UpdateRateLimitedFmt, e.Status, remaining)
}

// IsRateLimitError reports whether err represents a GitHub API rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Result captures the latest release check outcome.
type Result struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
}

// Options configures a Checker. Zero values select the GitHub API defaults.
type Options struct {
	URL        string
	Client     *http.Client
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Checker queries the latest release.
type Checker struct {
	url        string
	client     *http.Client
	retryDelay time.Duration
	logger     *zap.Logger
	sleep      func(time.Duration)
}

// NewChecker applies defaults to opts.
func NewChecker(opts Options) *Checker {
	c := &Checker{
		url:        opts.URL,
		client:     opts.Client,
		retryDelay: opts.RetryDelay,
		logger:     opts.Logger,
		sleep:      time.Sleep,
	}
	if c.url == "" {
		c.url = LatestReleaseURL
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: defaultTimeout}
	}
	if c.retryDelay == 0 {
		c.retryDelay = 250 * time.Millisecond
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Check compares current against the latest release. Dev builds are never outdated.
func (c *Checker) Check(ctx context.Context, current string) (Result, error) {
	result := Result{Current: version.Dev, CurrentIsDev: version.IsDev(current)}
	if !result.CurrentIsDev {
		normalized, err := version.Normalize(current)
		if err != nil {
			return Result{}, fmt.Errorf(messages.UpdateInvalidCurrentVersionFmt, current, err)
		}
		result.Current = normalized
	}

	latest, err := c.latest(ctx)
	if err != nil {
		return Result{}, err
	}
	result.Latest = latest
	if !result.CurrentIsDev {
		cmp, err := version.Compare(result.Current, latest)
		if err != nil {
			return Result{}, err
		}
		result.Outdated = cmp < 0
	}
	c.logger.Debug("release check complete",
		zap.String("current", result.Current),
		zap.String("latest", latest),
		zap.Bool("outdated", result.Outdated))
	return result, nil
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// latest returns the normalized tag of the newest release, retrying once on
// network errors and 5xx responses.
func (c *Checker) latest(ctx context.Context) (string, error) {
	for attempt := 0; ; attempt++ {
		tag, retry, err := c.fetch(ctx)
		if err == nil {
			normalized, err := version.Normalize(tag)
			if err != nil {
				return "", fmt.Errorf(messages.UpdateInvalidTagFmt, tag, err)
			}
			return normalized, nil
		}
		if !retry || attempt >= retryCount {
			return "", err
		}
		c.logger.Debug("retrying release check", zap.Error(err))
		c.sleep(c.retryDelay)
	}
}

func (c *Checker) fetch(ctx context.Context) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", false, fmt.Errorf(messages.UpdateCreateRequestFmt, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "fleur")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", isTransient(err), fmt.Errorf(messages.UpdateFetchFmt, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		if rl := rateLimitError(resp); rl != nil {
			return "", false, rl
		}
		retry := resp.StatusCode >= 500 && resp.StatusCode <= 599
		return "", retry, fmt.Errorf(messages.UpdateStatusFmt, resp.Status)
	}

	var payload releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf(messages.UpdateDecodeFmt, err)
	}
	if strings.TrimSpace(payload.TagName) == "" {
		return "", false, errors.New(messages.UpdateMissingTag)
	}
	return payload.TagName, false, nil
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// rateLimitError recognizes 429s and the 403 GitHub sends when the
// unauthenticated quota is exhausted.
func rateLimitError(resp *http.Response) *RateLimitError {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
	case http.StatusForbidden:
		remaining, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining")))
		if err != nil || remaining != 0 {
			return nil
		}
		return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status, Remaining: &remaining}
	}
	return nil
}
