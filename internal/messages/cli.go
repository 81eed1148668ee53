package messages

// Root command strings.
const (
	RootUse   = "fleur"
	RootShort = "Install and manage MCP apps for Claude desktop"
	RootLong  = "fleur installs MCP server apps from the Fleur registry into Claude desktop's claude_desktop_config.json,\nbootstrapping uv, nvm, and Node on first use."

	FlagSettingsUsage = "settings file (default $FLEUR_SETTINGS or ~/.config/fleur/config.toml)"
	FlagVerboseUsage  = "log progress to stderr"
	FlagYesUsage      = "skip the confirmation prompt"
	FlagEnvUsage      = "environment variable KEY=VALUE stored with the entry (repeatable)"
	FlagEnvFileUsage  = "read environment variables from a .env file"
	FlagPromptUsage   = "prompt for the value of KEY without echoing it (repeatable)"
	FlagDryRunUsage   = "print the config diff without writing it"
	FlagJSONUsage     = "print JSON"
	FlagFormatUsage   = "output format: dotenv or json"
	FlagWriteUsage    = "merge the values into a .env file instead of printing them"
	FlagForceUsage    = "overwrite an existing settings file"
	FlagCheckUsage    = "check GitHub for a newer release"
)

// Subcommand strings.
const (
	InstallUse        = "install [app]"
	InstallShort      = "Add an app to the Claude desktop config"
	UninstallUse      = "uninstall <app>"
	UninstallShort    = "Remove an app from the Claude desktop config"
	StatusUse         = "status [app]"
	StatusShort       = "Show which registry apps are installed"
	EnvUse            = "env"
	EnvShort          = "Read or update environment variables stored for an app"
	EnvGetUse         = "get <app>"
	EnvGetShort       = "Print an installed app's environment variables"
	EnvSetUse         = "set <app> [KEY=VALUE...]"
	EnvSetShort       = "Merge environment variables into an installed app's entry"
	RegistryUse       = "registry"
	RegistryShort     = "Print the app registry JSON"
	SetupUse          = "setup"
	SetupShort        = "Install uv, nvm, and Node now and wait for them"
	ServeUse          = "serve"
	ServeShort        = "Serve fleur's operations as MCP tools over stdio"
	SettingsUse       = "settings"
	SettingsShort     = "Manage fleur's settings file"
	SettingsInitUse   = "init"
	SettingsInitShort = "Write the default settings file"
	VersionUse        = "version"
	VersionShort      = "Print the fleur version"
)

// CLI output and errors.
const (
	VersionTemplate  = "{{.Version}}\n"
	VersionFullFmt   = "%s (%s)"
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"

	CLIAppRequired           = "an app name is required"
	CLIEnvAssignmentFmt      = "invalid environment assignment %q: expected KEY=VALUE"
	CLIEnvFileReadFmt        = "read env file %s: %w"
	CLIEnvFileParseFmt       = "parse env file %s: %w"
	CLIEnvValuesRequired     = "no environment values given; pass KEY=VALUE, --file, or --prompt"
	CLIEnvFormatFmt          = "unknown format %q: expected dotenv or json"
	CLIEnvWriteFmt           = "write env file %s: %w"
	CLIEnvWrittenFmt         = "Wrote %d values to %s\n"
	CLIUninstallConfirmFmt   = "Remove %s from the Claude desktop config?"
	CLIUninstallCancelled    = "Nothing removed."
	CLIStatusInstalled       = "installed"
	CLIStatusAvailable       = "available"
	CLIStatusUnconfigured    = "unavailable"
	CLIStatusLineFmt         = "%-24s %s\n"
	CLIStatusNotInstalledFmt = "%s is not installed\n"
	CLIStatusInstalledFmt    = "%s is installed\n"
	CLISetupNPXFmt           = "npx: %s\n"
	CLISetupUVXFmt           = "uvx: %s\n"
	CLISetupDone             = "Environment is ready."
	CLISettingsWrittenFmt    = "Wrote %s\n"
	CLIResolveHomeFmt        = "resolve home directory: %w"
	CLIHostConfigPathFmt     = "resolve Claude desktop config path: %w"
	CLIRegistryFormatFmt     = "format registry JSON: %w"

	UpdateAvailableFmt   = "fleur %s is available (you have %s): %s\n"
	UpdateUpToDateFmt    = "fleur %s is up to date\n"
	UpdateDevBuildFmt    = "development build; latest release is %s\n"
	UpdateRateLimitedMsg = "could not check for updates: GitHub rate limit reached"
	UpdateCheckFailedFmt = "could not check for updates: %v"
)
