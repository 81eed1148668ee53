package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fleuristes/fleur/internal/envfile"
	"github.com/fleuristes/fleur/internal/messages"
	"github.com/fleuristes/fleur/internal/prompt"
)

var newPromptUI = func() prompt.UI { return prompt.NewHuhUI() }

// envInput gathers env values from assignments, a .env file, and prompts.
type envInput struct {
	assignments []string
	file        string
	prompts     []string
}

// provided reports whether any env source was given.
func (in envInput) provided() bool {
	return len(in.assignments) > 0 || in.file != "" || len(in.prompts) > 0
}

// collect merges the sources; later sources win: file, then assignments, then prompts.
func (in envInput) collect(app string) (map[string]string, error) {
	values := map[string]string{}
	if in.file != "" {
		data, err := os.ReadFile(in.file)
		if err != nil {
			return nil, fmt.Errorf(messages.CLIEnvFileReadFmt, in.file, err)
		}
		parsed, err := envfile.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf(messages.CLIEnvFileParseFmt, in.file, err)
		}
		for k, v := range parsed {
			values[k] = v
		}
	}
	assigned, err := parseAssignments(in.assignments)
	if err != nil {
		return nil, err
	}
	for k, v := range assigned {
		values[k] = v
	}
	if len(in.prompts) > 0 {
		prompted, err := prompt.CollectEnv(newPromptUI(), app, in.prompts)
		if err != nil {
			return nil, err
		}
		for k, v := range prompted {
			values[k] = v
		}
	}
	return values, nil
}

// parseAssignments splits KEY=VALUE arguments. Values may contain '='.
func parseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf(messages.CLIEnvAssignmentFmt, arg)
		}
		values[key] = value
	}
	return values, nil
}
