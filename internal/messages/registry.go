package messages

// Registry and host configuration messages.
const (
	// RegistryRequestFmt formats request construction errors.
	RegistryRequestFmt      = "build app registry request: %w"
	RegistryTransportFmt    = "failed to fetch app registry from %s: %v"
	RegistryStatusFmt       = "failed to fetch app registry from %s: unexpected status %d"
	RegistryParseFmt        = "failed to parse app registry JSON from %s: %v"
	RegistryParseBareFmt    = "failed to parse app registry JSON: %v"
	RegistryNotArray        = "app registry is not an array"
	RegistryEntryNotObject  = "entry is not an object"
	RegistryFieldMissingFmt = "app registry entry %d: %s is missing"
	RegistryEntryInvalidFmt = "app registry entry %d: %s"
	RegistryURLRequired     = "app registry URL is required"
	RegistryFetchedFmt      = "fetched app registry (%d bytes)"

	// HostconfigResolveHomeFmt formats home directory lookup failures.
	HostconfigResolveHomeFmt  = "could not find home directory: %w"
	HostconfigAppDataMissing  = "APPDATA is not set"
	HostconfigCreateFmt       = "create config file %s: %w"
	HostconfigReadFmt         = "failed to read config file %s: %w"
	HostconfigParseFmt        = "failed to parse config JSON %s: %w"
	HostconfigTrailingData    = "unexpected data after the top-level JSON value"
	HostconfigSerializeFmt    = "failed to serialize config: %w"
	HostconfigWriteFmt        = "failed to write config file %s: %w"
	HostconfigLockDirFmt      = "create lock directory %s: %w"
	HostconfigServersNotMap   = "mcpServers in config is not an object"
	HostconfigServerNotMapFmt = "mcpServers.%s is not an object"
	HostconfigEnvNotMapFmt    = "mcpServers.%s.env is not an object"
)
