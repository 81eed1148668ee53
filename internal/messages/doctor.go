package messages

// Doctor check names.
const (
	DoctorCheckNameSettings   = "Settings"
	DoctorCheckNameHostConfig = "Claude"
	DoctorCheckNameToolchain  = "Toolchain"
	DoctorCheckNameShim       = "Shim"
	DoctorCheckNameRegistry   = "Registry"
	DoctorCheckNameUpdate     = "Update"
)

// Doctor results and recommendations.
const (
	DoctorSettingsOKFmt               = "Settings loaded from %s"
	DoctorSettingsDefaultsFmt         = "No settings file at %s; using defaults"
	DoctorSettingsFailedFmt           = "Settings are invalid: %v"
	DoctorSettingsRecommend           = "Fix the file or regenerate it with `fleur settings init --force`."
	DoctorHostConfigOKFmt             = "%s is valid (%d MCP servers)"
	DoctorHostConfigMissingFmt        = "%s does not exist yet; it is created on first install"
	DoctorHostConfigFailedFmt         = "Cannot read Claude desktop config: %v"
	DoctorHostConfigRecommend         = "Repair the JSON by hand or move the file aside so fleur can recreate it."
	DoctorToolReadyFmt                = "%s is installed"
	DoctorToolMissingFmt              = "%s is not installed"
	DoctorToolMissingRecommend        = "Run `fleur setup` to install uv, nvm, and Node."
	DoctorShimOKFmt                   = "npx-fleur shim present at %s"
	DoctorShimMissingFmt              = "npx-fleur shim not found at %s"
	DoctorShimRecommend               = "Run `fleur setup`; installed apps launch through this shim."
	DoctorRegistryOKFmt               = "%d apps available from %s"
	DoctorRegistryFailedFmt           = "Cannot load the app registry: %v"
	DoctorRegistryRecommend           = "Check network access or set registry.url in the settings file."
	DoctorUpdateSkippedFmt            = "Update check skipped because %s is set"
	DoctorUpdateRateLimited           = "Update check skipped due to GitHub API rate limit (HTTP 403/429)"
	DoctorUpdateFailedFmt             = "Failed to check for updates: %v"
	DoctorUpdateFailedRecommend       = "Verify network access and try again."
	DoctorUpdateDevBuildFmt           = "Running dev build; latest release is %s"
	DoctorUpdateAvailableFmt          = "fleur update available: %s (current %s)"
	DoctorUpdateAvailableRecommendFmt = "Download the new release from %s."
	DoctorUpToDateFmt                 = "fleur is up to date (%s)"
)

// Doctor command output.
const (
	DoctorUse                  = "doctor"
	DoctorShort                = "Check settings, toolchains, and the Claude desktop config"
	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       -> "
	DoctorRecommendationIndent = "          "
	DoctorSuccessSummary       = "All checks passed."
	DoctorFailureSummary       = "Some checks failed."
)
