package messages

// App orchestration messages returned to callers.
const (
	// AppAddedFmt reports a successful install.
	AppAddedFmt              = "Added %s configuration for %s"
	AppNoConfigurationFmt    = "No configuration available for %s"
	AppNoConfigurationErrFmt = "No configuration available for '%s'"
	AppRemovedFmt            = "Removed %s configuration for %s"
	AppConfigNotFoundFmt     = "Configuration for %s was not found"
	AppEnvSavedFmt           = "Saved ENV values for app '%s'"
	AppNotInstalled          = "App is not installed."
	AppNotInstalledFmt       = "App '%s' is not installed"
	AppNoChanges             = "No changes."
	AppLoadConfigFmt         = "load host config: %w"
	AppUpdateConfigFmt       = "update host config: %w"
	AppCacheWarmFailedFmt    = "npm cache add %s exited %d: %s"
	AppEnvironmentRequired   = "environment is required"
	AppRegistryRequired      = "registry is required"
	AppStoreRequired         = "config store is required"
)
