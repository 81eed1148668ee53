package hostconfig

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fleuristes/fleur/internal/messages"
)

// ServersKey is the top-level key holding MCP server entries.
const ServersKey = "mcpServers"

// Document is the decoded host config. Keys other than mcpServers are kept
// as decoded and written back untouched.
type Document map[string]any

// ServerEntry is one mcpServers value.
type ServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// NewDocument returns a document with an empty mcpServers object.
func NewDocument() Document {
	return Document{ServersKey: map[string]any{}}
}

// servers returns the mcpServers object, inserting it when absent.
func (d Document) servers() (map[string]any, error) {
	raw, ok := d[ServersKey]
	if !ok || raw == nil {
		servers := map[string]any{}
		d[ServersKey] = servers
		return servers, nil
	}
	servers, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New(messages.HostconfigServersNotMap)
	}
	return servers, nil
}

// Validate reports an mcpServers value that is not an object.
func (d Document) Validate() error {
	_, err := d.servers()
	return err
}

// ServerKeys returns the keys under mcpServers.
func (d Document) ServerKeys() []string {
	servers, err := d.servers()
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(servers))
	for key := range servers {
		keys = append(keys, key)
	}
	return keys
}

// HasServer reports whether key exists under mcpServers.
func (d Document) HasServer(key string) bool {
	servers, err := d.servers()
	if err != nil {
		return false
	}
	_, ok := servers[key]
	return ok
}

// SetServer inserts or replaces the entry under key.
func (d Document) SetServer(key string, entry ServerEntry) error {
	servers, err := d.servers()
	if err != nil {
		return err
	}
	value := map[string]any{
		"command": entry.Command,
		"args":    stringsToAny(entry.Args),
	}
	if entry.Env != nil {
		env := make(map[string]any, len(entry.Env))
		for k, v := range entry.Env {
			env[k] = v
		}
		value["env"] = env
	}
	servers[key] = value
	return nil
}

// RemoveServer deletes key and reports whether it was present.
func (d Document) RemoveServer(key string) (bool, error) {
	servers, err := d.servers()
	if err != nil {
		return false, err
	}
	if _, ok := servers[key]; !ok {
		return false, nil
	}
	delete(servers, key)
	return true, nil
}

// Server decodes the entry under key.
func (d Document) Server(key string) (ServerEntry, bool, error) {
	servers, err := d.servers()
	if err != nil {
		return ServerEntry{}, false, err
	}
	raw, ok := servers[key]
	if !ok {
		return ServerEntry{}, false, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return ServerEntry{}, true, err
	}
	var entry ServerEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return ServerEntry{}, true, fmt.Errorf(messages.HostconfigServerNotMapFmt, key)
	}
	return entry, true, nil
}

// ServerEnv returns the env object of the entry under key. The boolean is
// false when the entry does not exist; an entry without env yields an empty map.
func (d Document) ServerEnv(key string) (map[string]string, bool, error) {
	server, ok, err := d.serverObject(key)
	if err != nil || !ok {
		return nil, ok, err
	}
	out := map[string]string{}
	raw, present := server["env"]
	if !present || raw == nil {
		return out, true, nil
	}
	env, isMap := raw.(map[string]any)
	if !isMap {
		return nil, true, fmt.Errorf(messages.HostconfigEnvNotMapFmt, key)
	}
	for k, v := range env {
		out[k] = stringify(v)
	}
	return out, true, nil
}

// MergeServerEnv adds values to the env object of the entry under key,
// creating env when absent. Existing keys not in values are kept. The boolean
// is false when the entry does not exist.
func (d Document) MergeServerEnv(key string, values map[string]string) (bool, error) {
	server, ok, err := d.serverObject(key)
	if err != nil || !ok {
		return ok, err
	}
	raw, present := server["env"]
	if !present || raw == nil {
		raw = map[string]any{}
		server["env"] = raw
	}
	env, isMap := raw.(map[string]any)
	if !isMap {
		return true, fmt.Errorf(messages.HostconfigEnvNotMapFmt, key)
	}
	for k, v := range values {
		env[k] = v
	}
	return true, nil
}

func (d Document) serverObject(key string) (map[string]any, bool, error) {
	servers, err := d.servers()
	if err != nil {
		return nil, false, err
	}
	raw, ok := servers[key]
	if !ok {
		return nil, false, nil
	}
	server, isMap := raw.(map[string]any)
	if !isMap {
		return nil, true, fmt.Errorf(messages.HostconfigServerNotMapFmt, key)
	}
	return server, true, nil
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return cloneValue(map[string]any(d)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case json.Number:
		return t.String()
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}
