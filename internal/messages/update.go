package messages

// Release check messages.
const (
	// UpdateRateLimitedFmt formats GitHub rate-limit errors.
	UpdateRateLimitedFmt           = "github api rate limit exceeded (%s, remaining=%s)"
	UpdateInvalidCurrentVersionFmt = "invalid current version %q: %w"
	UpdateInvalidTagFmt            = "invalid latest release tag %q: %w"
	UpdateCreateRequestFmt         = "create release request: %w"
	UpdateFetchFmt                 = "fetch latest release: %w"
	UpdateStatusFmt                = "fetch latest release: unexpected status %s"
	UpdateDecodeFmt                = "decode latest release: %w"
	UpdateMissingTag               = "latest release is missing tag_name"

	// VersionInvalidFmt formats malformed version strings.
	VersionInvalidFmt        = "version %q must be X.Y.Z"
	VersionInvalidSegmentFmt = "invalid version segment %q: %w"
)

// Update warnings printed before long-running commands.
const (
	UpdateWarnCheckFailedFmt = "warning: failed to check for fleur updates: %v\n"
	UpdateWarnDevBuildFmt    = "warning: running a dev build of fleur; latest release is %s\n"
	UpdateWarnAvailableFmt   = "warning: fleur update available: %s (current %s); see %s\n"
)
