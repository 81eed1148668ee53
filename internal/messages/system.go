package messages

// System messages for filesystem, process, and dotenv helpers.
const (
	// FsutilCreateTempFileFmt formats temp file creation errors.
	FsutilCreateTempFileFmt = "create temp file for %s: %w"
	FsutilSetPermissionsFmt = "set permissions for %s: %w"
	FsutilWriteTempFileFmt  = "write temp file for %s: %w"
	FsutilSyncTempFileFmt   = "sync temp file for %s: %w"
	FsutilCloseTempFileFmt  = "close temp file for %s: %w"
	FsutilRenameTempFileFmt = "rename temp file for %s: %w"
	FsutilOpenLockFmt       = "open lock file %s: %w"
	FsutilLockFmt           = "lock %s: %w"
	FsutilLockTimeoutFmt    = "timed out after %s waiting for file lock"

	// RunnerCommandRequired indicates an empty command name.
	RunnerCommandRequired = "command name is required"
	RunnerStartFailedFmt  = "start %s: %w"
	RunnerLoginPathEmpty  = "login shell reported an empty PATH"

	// EnvfileLineErrorFmt formats envfile line errors.
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "failed to read env content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "invalid trailing characters after quoted value"

	// TemplatesReadFailedFmt formats embedded template read errors.
	TemplatesReadFailedFmt = "read template %s: %w"

	// LoggingInvalidLevelFmt formats unknown log level errors.
	LoggingInvalidLevelFmt = "invalid log level %q: %w"
	LoggingCreateDirFmt    = "create log directory %s: %w"
	LoggingBuildFailedFmt  = "build logger: %w"
	LoggingResolveHomeFmt  = "resolve home directory for log file: %w"
)
