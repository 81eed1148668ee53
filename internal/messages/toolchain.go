package messages

// Toolchain messages for uv, nvm, and Node bootstrap.
const (
	// ToolchainUVReady is returned once uv is usable.
	ToolchainUVReady              = "UV environment is ready"
	ToolchainNodeReady            = "Node environment is ready"
	ToolchainSetupInProgress      = "Environment setup already in progress"
	ToolchainSetupStarted         = "Environment setup started"
	ToolchainHomeRequired         = "home directory is required"
	ToolchainRunnerRequired       = "command runner is required"
	ToolchainNVMMissing           = "nvm not found after sourcing"
	ToolchainInstallStartFmt      = "%s installation could not start: %v"
	ToolchainInstallFailedFmt     = "%s installation failed (exit %d): %s"
	ToolchainNodeVersionFailedFmt = "node --version exited %d: %s"
	ToolchainNodePathsFmt         = "failed to get node and npx paths: %w"
	ToolchainNodePathsFailed      = "failed to get node and npx paths"
	ToolchainNodePathMissing      = "failed to get node path"
	ToolchainNPXPathMissing       = "failed to get npx path"
	ToolchainNodeNotFromNVMFmt    = "node path %s is not from an nvm installation"
	ToolchainUVXNotFound          = "uvx not found in PATH"
	ToolchainSetupUVFmt           = "failed to set up UV environment: %w"
	ToolchainSetupNodeFmt         = "failed to set up Node environment: %w"
	ToolchainEnsureShimFmt        = "failed to ensure NPX shim: %w"
	ToolchainUVXPathFmt           = "failed to get UVX path: %w"

	// ShimResolveFmt formats shim target resolution errors.
	ShimResolveFmt   = "resolve shim target: %w"
	ShimCreateDirFmt = "create shim directory %s: %w"
	ShimWriteFmt     = "write shim script %s: %w"
	ShimStatFmt      = "check shim %s: %w"
)
