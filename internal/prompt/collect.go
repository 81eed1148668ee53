package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fleuristes/fleur/internal/messages"
)

// CollectEnv asks for a masked value for each key. Blank answers are skipped.
func CollectEnv(ui UI, app string, keys []string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		var value string
		if err := ui.SecretInput(fmt.Sprintf(messages.PromptEnvValueFmt, key, app), &value); err != nil {
			return nil, err
		}
		if value = strings.TrimSpace(value); value != "" {
			values[key] = value
		}
	}
	return values, nil
}

// ChooseApp asks the user to pick one of names.
func ChooseApp(ui UI, names []string) (string, error) {
	if len(names) == 0 {
		return "", errors.New(messages.PromptNoApps)
	}
	choice := names[0]
	if err := ui.Select(messages.PromptChooseApp, names, &choice); err != nil {
		return "", err
	}
	return choice, nil
}
