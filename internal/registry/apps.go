package registry

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/fleuristes/fleur/internal/messages"
)

const (
	// RuntimeNPX apps launch through the npx shim.
	RuntimeNPX = "npx"
	// RuntimeUVX apps launch through uvx.
	RuntimeUVX = "uvx"
)

// App is one validated registry entry.
type App struct {
	Name    string
	MCPKey  string
	Runtime string
	Args    []string
}

// Commands maps runtime keywords to the executables that serve them.
type Commands struct {
	NPX string
	UVX string
}

// Resolved is an App with its launch command chosen for this machine.
type Resolved struct {
	Name    string
	MCPKey  string
	Runtime string
	Command string
	Args    []string
}

// ParseApps validates a registry document. Any malformed entry rejects the
// whole document. Non-string arguments become empty strings.
func ParseApps(raw []byte) ([]App, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	entries, ok := doc.([]any)
	if !ok {
		return nil, &ValidationError{Index: -1, Reason: messages.RegistryNotArray}
	}

	apps := make([]App, 0, len(entries))
	for i, entry := range entries {
		app, err := parseApp(i, entry)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func parseApp(index int, entry any) (App, error) {
	obj, ok := entry.(map[string]any)
	if !ok {
		return App{}, &ValidationError{Index: index, Reason: messages.RegistryEntryNotObject}
	}
	name, ok := obj["name"].(string)
	if !ok {
		return App{}, &ValidationError{Index: index, Field: "name"}
	}
	config, ok := obj["config"].(map[string]any)
	if !ok {
		return App{}, &ValidationError{Index: index, Field: "config"}
	}
	mcpKey, ok := config["mcpKey"].(string)
	if !ok {
		return App{}, &ValidationError{Index: index, Field: "mcpKey"}
	}
	runtime, ok := config["runtime"].(string)
	if !ok {
		return App{}, &ValidationError{Index: index, Field: "runtime"}
	}
	rawArgs, ok := config["args"].([]any)
	if !ok {
		return App{}, &ValidationError{Index: index, Field: "args"}
	}

	args := make([]string, len(rawArgs))
	for i, arg := range rawArgs {
		if s, ok := arg.(string); ok {
			args[i] = s
		}
	}
	return App{Name: name, MCPKey: mcpKey, Runtime: runtime, Args: args}, nil
}

// Resolve chooses a command for every app: npx apps get the shim, uvx apps get
// the uvx path, and any other runtime is used as a literal command.
func Resolve(apps []App, cmds Commands) []Resolved {
	out := make([]Resolved, 0, len(apps))
	for _, app := range apps {
		command := app.Runtime
		switch app.Runtime {
		case RuntimeNPX:
			command = cmds.NPX
		case RuntimeUVX:
			command = cmds.UVX
		}
		out = append(out, Resolved{
			Name:    app.Name,
			MCPKey:  app.MCPKey,
			Runtime: app.Runtime,
			Command: command,
			Args:    append([]string(nil), app.Args...),
		})
	}
	return out
}

// Find returns the resolved app called name.
func Find(apps []Resolved, name string) (Resolved, bool) {
	for _, app := range apps {
		if app.Name == name {
			return app, true
		}
	}
	return Resolved{}, false
}

// PackageName returns the npm package an npx app runs: the first argument that
// is not a flag. It is empty for other runtimes.
func (r Resolved) PackageName() string {
	if r.Runtime != RuntimeNPX {
		return ""
	}
	for _, arg := range r.Args {
		if arg != "" && !strings.HasPrefix(arg, "-") {
			return arg
		}
	}
	return ""
}
