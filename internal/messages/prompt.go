package messages

// Prompt messages for interactive input.
const (
	// PromptRequiresTerminal indicates a prompt was requested without a TTY.
	PromptRequiresTerminal = "interactive prompts require a terminal; pass values as KEY=VALUE arguments instead"
	PromptCancelled        = "prompt cancelled"
	PromptEnvValueFmt      = "Value for %s (%s)"
	PromptChooseApp        = "Choose an app"
	PromptNoApps           = "the app registry is empty"
)
