package hostconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_ServerLifecycle(t *testing.T) {
	doc := Document{}

	assert.False(t, doc.HasServer("puppeteer"))
	require.NoError(t, doc.SetServer("puppeteer", ServerEntry{Command: "/shim", Args: []string{"-y", "pkg"}}))
	assert.True(t, doc.HasServer("puppeteer"))
	assert.ElementsMatch(t, []string{"puppeteer"}, doc.ServerKeys())

	entry, ok, err := doc.Server("puppeteer")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ServerEntry{Command: "/shim", Args: []string{"-y", "pkg"}}, entry)

	removed, err := doc.RemoveServer("puppeteer")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = doc.RemoveServer("puppeteer")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDocument_SetServerWritesEnvOnlyWhenProvided(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.SetServer("a", ServerEntry{Command: "c", Args: []string{}}))
	require.NoError(t, doc.SetServer("b", ServerEntry{Command: "c", Args: []string{}, Env: map[string]string{"K": "V"}}))

	data, err := Encode(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mcpServers":{"a":{"command":"c","args":[]},"b":{"command":"c","args":[],"env":{"K":"V"}}}}`, string(data))
}

func TestDocument_MergeServerEnv(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.SetServer("x", ServerEntry{Command: "c", Args: []string{}}))

	ok, err := doc.MergeServerEnv("x", map[string]string{"A": "1"})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = doc.MergeServerEnv("x", map[string]string{"B": "2"})
	require.NoError(t, err)
	assert.True(t, ok)

	env, ok, err := doc.ServerEnv("x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, env)

	ok, err = doc.MergeServerEnv("missing", map[string]string{"A": "1"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDocument_ServerEnvDefaultsToEmpty(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.SetServer("x", ServerEntry{Command: "c", Args: []string{}}))

	env, ok, err := doc.ServerEnv("x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, env)

	_, ok, err = doc.ServerEnv("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDocument_ServerEnvStringifiesValues(t *testing.T) {
	doc, err := Decode([]byte(`{"mcpServers":{"x":{"command":"c","args":[],"env":{"PORT":8080,"DEBUG":true,"EMPTY":null}}}}`))
	require.NoError(t, err)

	env, _, err := doc.ServerEnv("x")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"PORT": "8080", "DEBUG": "true", "EMPTY": ""}, env)
}

func TestDocument_MalformedShapes(t *testing.T) {
	doc, err := Decode([]byte(`{"mcpServers":{"x":"oops","y":{"env":[]}}}`))
	require.NoError(t, err)

	_, _, err = doc.ServerEnv("x")
	assert.EqualError(t, err, "mcpServers.x is not an object")
	_, err = doc.MergeServerEnv("y", map[string]string{"A": "1"})
	assert.EqualError(t, err, "mcpServers.y.env is not an object")

	bad := Document{ServersKey: []any{}}
	assert.False(t, bad.HasServer("x"))
	assert.Error(t, bad.SetServer("x", ServerEntry{}))
	assert.Nil(t, bad.ServerKeys())
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.SetServer("x", ServerEntry{Command: "c", Args: []string{"a"}, Env: map[string]string{"K": "V"}}))

	clone := doc.Clone()
	_, err := clone.MergeServerEnv("x", map[string]string{"K": "changed"})
	require.NoError(t, err)

	env, _, err := doc.ServerEnv("x")
	require.NoError(t, err)
	assert.Equal(t, "V", env["K"])
	assert.Nil(t, Document(nil).Clone())
}

func TestDecode_PreservesNumbers(t *testing.T) {
	doc, err := Decode([]byte(`{"globalShortcut":"Cmd+Space","scale":1.50,"big":12345678901234567890}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), doc["big"])

	data, err := Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"big": 12345678901234567890`)
	assert.Contains(t, string(data), `"scale": 1.50`)
}

func TestDecode_Null(t *testing.T) {
	doc, err := Decode([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, doc)
}

func TestDocument_Validate(t *testing.T) {
	doc := Document{}
	require.NoError(t, doc.Validate())
	assert.Contains(t, doc, ServersKey)

	bad := Document{ServersKey: []any{"x"}}
	require.Error(t, bad.Validate())
}
