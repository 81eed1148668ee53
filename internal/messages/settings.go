package messages

// Settings messages for ~/.config/fleur/config.toml.
const (
	// SettingsResolveHomeFmt formats home directory lookup failures.
	SettingsResolveHomeFmt       = "resolve home directory: %w"
	SettingsReadFmt              = "read settings %s: %w"
	SettingsInvalidFmt           = "invalid settings %s: %w"
	SettingsUnrecognizedKeysFmt  = "settings %s contain unrecognized keys: %w"
	SettingsExpandPathFmt        = "expand %s: %w"
	SettingsNodeVersionFmt       = "toolchain.node_version %q must look like vX.Y.Z"
	SettingsURLFmt               = "%s %q must be an http or https URL"
	SettingsTimeoutFmt           = "registry.timeout %q: %w"
	SettingsTimeoutPositiveFmt   = "registry.timeout %q must be positive"
	SettingsLogLevelFmt          = "log.level %q: %w"
	SettingsPreloadEmptyEntryFmt = "preload.packages[%d] is empty"
	SettingsExistsFmt            = "settings file %s already exists; use --force to overwrite"
	SettingsWriteFmt             = "write settings %s: %w"
	SettingsCreateDirFmt         = "create settings directory %s: %w"
)
