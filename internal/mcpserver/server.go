// Package mcpserver exposes the app service as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/fleuristes/fleur/internal/app"
	"github.com/fleuristes/fleur/internal/messages"
)

// Name is the implementation name announced to clients.
const Name = "fleur"

// Service is the subset of app.Service the tools call.
type Service interface {
	Install(ctx context.Context, name string, env map[string]string) (string, error)
	Uninstall(ctx context.Context, name string) (string, error)
	IsInstalled(ctx context.Context, name string) (bool, error)
	GetAppStatuses(ctx context.Context) (app.Statuses, error)
	SaveAppEnv(ctx context.Context, name string, values map[string]string) (string, error)
	GetAppEnv(ctx context.Context, name string) (map[string]string, error)
	GetAppRegistry(ctx context.Context) (json.RawMessage, error)
	EnsureEnvironment(ctx context.Context) (string, error)
}

// AppInput names a registry app.
type AppInput struct {
	App string `json:"app" jsonschema:"registry name of the app, for example Browser"`
}

// InstallInput names an app and optional env values written with its entry.
type InstallInput struct {
	App string            `json:"app" jsonschema:"registry name of the app"`
	Env map[string]string `json:"env,omitempty" jsonschema:"environment variables stored in the server entry"`
}

// EnvInput carries env values merged into an installed app's entry.
type EnvInput struct {
	App string            `json:"app" jsonschema:"registry name of the app"`
	Env map[string]string `json:"env" jsonschema:"environment variables to merge into the server entry"`
}

// EmptyInput is used by tools without arguments.
type EmptyInput struct{}

type serverRunner func(ctx context.Context, server *mcp.Server) error

// NewServer registers one tool per service operation.
func NewServer(svc Service, version string, logger *zap.Logger) (*mcp.Server, error) {
	if svc == nil {
		return nil, errors.New(messages.MCPServiceRequired)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	server := mcp.NewServer(&mcp.Implementation{Name: Name, Version: version}, nil)
	h := &handlers{svc: svc, logger: logger}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "install",
		Description: "Add an app's MCP server entry to the Claude desktop config.",
	}, h.install)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "uninstall",
		Description: "Remove an app's MCP server entry from the Claude desktop config.",
	}, h.uninstall)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "is_installed",
		Description: "Report whether an app has an entry in the Claude desktop config.",
	}, h.isInstalled)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_app_statuses",
		Description: "Report installed and configured state for every registry app.",
	}, h.statuses)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_app_env",
		Description: "Merge environment variables into an installed app's entry.",
	}, h.saveEnv)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_app_env",
		Description: "Return the environment variables stored for an app.",
	}, h.getEnv)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_app_registry",
		Description: "Return the app registry JSON.",
	}, h.registry)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ensure_environment",
		Description: "Start installing uv, nvm, and Node in the background.",
	}, h.ensureEnvironment)

	return server, nil
}

// Run serves the tools over stdio until ctx ends or the client disconnects.
func Run(ctx context.Context, svc Service, version string, logger *zap.Logger) error {
	return run(ctx, svc, version, logger, defaultServerRunner)
}

func run(ctx context.Context, svc Service, version string, logger *zap.Logger, runner serverRunner) error {
	if runner == nil {
		return fmt.Errorf(messages.MCPServeFailedFmt, errors.New(messages.MCPRunnerRequired))
	}
	server, err := NewServer(svc, version, logger)
	if err != nil {
		return err
	}
	if err := runner(ctx, server); err != nil {
		return fmt.Errorf(messages.MCPServeFailedFmt, err)
	}
	return nil
}

func defaultServerRunner(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

type handlers struct {
	svc    Service
	logger *zap.Logger
}

func (h *handlers) install(ctx context.Context, _ *mcp.CallToolRequest, in InstallInput) (*mcp.CallToolResult, any, error) {
	if err := requireApp(in.App); err != nil {
		return h.fail("install", err), nil, nil
	}
	msg, err := h.svc.Install(ctx, in.App, in.Env)
	if err != nil {
		return h.fail("install", err), nil, nil
	}
	return text(msg), nil, nil
}

func (h *handlers) uninstall(ctx context.Context, _ *mcp.CallToolRequest, in AppInput) (*mcp.CallToolResult, any, error) {
	if err := requireApp(in.App); err != nil {
		return h.fail("uninstall", err), nil, nil
	}
	msg, err := h.svc.Uninstall(ctx, in.App)
	if err != nil {
		return h.fail("uninstall", err), nil, nil
	}
	return text(msg), nil, nil
}

func (h *handlers) isInstalled(ctx context.Context, _ *mcp.CallToolRequest, in AppInput) (*mcp.CallToolResult, any, error) {
	if err := requireApp(in.App); err != nil {
		return h.fail("is_installed", err), nil, nil
	}
	installed, err := h.svc.IsInstalled(ctx, in.App)
	if err != nil {
		return h.fail("is_installed", err), nil, nil
	}
	return text(strconv.FormatBool(installed)), nil, nil
}

func (h *handlers) statuses(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, any, error) {
	statuses, err := h.svc.GetAppStatuses(ctx)
	if err != nil {
		return h.fail("get_app_statuses", err), nil, nil
	}
	return h.jsonResult("get_app_statuses", statuses)
}

func (h *handlers) saveEnv(ctx context.Context, _ *mcp.CallToolRequest, in EnvInput) (*mcp.CallToolResult, any, error) {
	if err := requireApp(in.App); err != nil {
		return h.fail("save_app_env", err), nil, nil
	}
	msg, err := h.svc.SaveAppEnv(ctx, in.App, in.Env)
	if err != nil {
		return h.fail("save_app_env", err), nil, nil
	}
	return text(msg), nil, nil
}

func (h *handlers) getEnv(ctx context.Context, _ *mcp.CallToolRequest, in AppInput) (*mcp.CallToolResult, any, error) {
	if err := requireApp(in.App); err != nil {
		return h.fail("get_app_env", err), nil, nil
	}
	env, err := h.svc.GetAppEnv(ctx, in.App)
	if err != nil {
		return h.fail("get_app_env", err), nil, nil
	}
	if env == nil {
		env = map[string]string{}
	}
	return h.jsonResult("get_app_env", env)
}

func (h *handlers) registry(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, any, error) {
	raw, err := h.svc.GetAppRegistry(ctx)
	if err != nil {
		return h.fail("get_app_registry", err), nil, nil
	}
	return text(string(raw)), nil, nil
}

func (h *handlers) ensureEnvironment(ctx context.Context, _ *mcp.CallToolRequest, _ EmptyInput) (*mcp.CallToolResult, any, error) {
	msg, err := h.svc.EnsureEnvironment(ctx)
	if err != nil {
		return h.fail("ensure_environment", err), nil, nil
	}
	return text(msg), nil, nil
}

func (h *handlers) jsonResult(tool string, v any) (*mcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return h.fail(tool, err), nil, nil
	}
	return text(string(data)), nil, nil
}

// fail reports err to the client as a tool error rather than a protocol error.
func (h *handlers) fail(tool string, err error) *mcp.CallToolResult {
	h.logger.Warn("tool call failed", zap.String("tool", tool), zap.Error(err))
	result := text(err.Error())
	result.IsError = true
	return result
}

func requireApp(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(messages.MCPAppRequired)
	}
	return nil
}

func text(s string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: s}}}
}
