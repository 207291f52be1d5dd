// Package rpc implements backend.Backend against a remote backend server.
package rpc

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/types"
)

// DefaultTimeout bounds a single call
const DefaultTimeout = 30 * time.Second

// Client calls POST /invoke/{plugin}/{command} on a backend server
type Client struct {
	http *resty.Client
}

var _ backend.Backend = (*Client)(nil)

// New creates a client for the server at baseURL
func New(baseURL string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(DefaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// Health checks that the server answers
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("%w: %v", backend.ErrUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return backend.Errorf(backend.ErrUnavailable, "health check returned %s", resp.Status())
	}
	return nil
}

// invoke posts args and decodes the result into out (which may be nil)
func (c *Client) invoke(ctx context.Context, plugin, command string, args, out interface{}) error {
	if args == nil {
		args = struct{}{}
	}

	req := c.http.R().
		SetContext(ctx).
		SetBody(args).
		SetError(&backend.ErrorBody{})
	if out != nil {
		req.SetResult(out)
	}

	resp, err := req.Post("/invoke/" + plugin + "/" + command)
	if err != nil {
		return fmt.Errorf("%s/%s: %w: %v", plugin, command, backend.ErrUnavailable, err)
	}
	if !resp.IsError() {
		return nil
	}

	message := resp.Status()
	if body, ok := resp.Error().(*backend.ErrorBody); ok && body.Error != "" {
		message = body.Error
	}
	return backend.Errorf(kindFor(resp.StatusCode()), "%s", message)
}

func kindFor(status int) error {
	switch status {
	case http.StatusBadRequest:
		return backend.ErrInvalid
	case http.StatusNotFound:
		return backend.ErrNotFound
	case http.StatusConflict:
		return backend.ErrAlreadyExists
	default:
		return backend.ErrUnavailable
	}
}

func (c *Client) CreateInstance(ctx context.Context, opts types.InstanceOptions) (types.Instance, error) {
	var out types.Instance
	err := c.invoke(ctx, backend.PluginInstance, backend.CmdCreateInstance, backend.CreateInstanceArgs{Options: opts}, &out)
	return out, err
}

func (c *Client) GetInstance(ctx context.Context, identifier string) (types.Instance, error) {
	var out types.Instance
	err := c.invoke(ctx, backend.PluginInstance, backend.CmdGetInstance, backend.IdentifierArgs{Identifier: identifier}, &out)
	return out, err
}

func (c *Client) GetInstances(ctx context.Context) ([]types.Instance, error) {
	var out []types.Instance
	if err := c.invoke(ctx, backend.PluginInstance, backend.CmdGetInstances, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.Instance{}
	}
	return out, nil
}

func (c *Client) RemoveInstance(ctx context.Context, identifier string) error {
	return c.invoke(ctx, backend.PluginInstance, backend.CmdRemoveInstance, backend.IdentifierArgs{Identifier: identifier}, nil)
}

func (c *Client) RenameInstance(ctx context.Context, identifier, newName string) (types.Instance, error) {
	var out types.Instance
	args := backend.RenameInstanceArgs{Options: types.RenameInstanceOptions{Identifier: identifier, NewName: newName}}
	err := c.invoke(ctx, backend.PluginInstance, backend.CmdRenameInstance, args, &out)
	return out, err
}

func (c *Client) UpdateInstanceIcon(ctx context.Context, identifier string, iconData *string) (types.Instance, error) {
	var out types.Instance
	args := backend.UpdateInstanceIconArgs{Options: types.UpdateInstanceIconOptions{Identifier: identifier, IconData: iconData}}
	err := c.invoke(ctx, backend.PluginInstance, backend.CmdUpdateInstanceIcon, args, &out)
	return out, err
}

func (c *Client) AuthenticateAccount(ctx context.Context) (types.AccountRecord, error) {
	var out types.AccountRecord
	var args backend.AuthenticateArgs
	if username, ok := backend.LoginHint(ctx); ok {
		args.Username = username
	}
	err := c.invoke(ctx, backend.PluginAccount, backend.CmdAuthenticate, args, &out)
	return out, err
}

func (c *Client) GetAllAccounts(ctx context.Context) ([]types.AccountSummary, error) {
	var out []types.AccountSummary
	if err := c.invoke(ctx, backend.PluginAccount, backend.CmdGetAll, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.AccountSummary{}
	}
	return out, nil
}

func (c *Client) GetActiveAccount(ctx context.Context) (*types.AccountSummary, error) {
	var out *types.AccountSummary
	if err := c.invoke(ctx, backend.PluginAccount, backend.CmdGetActive, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetActiveAccount(ctx context.Context, uuid string) error {
	return c.invoke(ctx, backend.PluginAccount, backend.CmdSetActive, backend.UUIDArgs{UUID: uuid}, nil)
}

func (c *Client) RemoveAccount(ctx context.Context, uuid string) error {
	return c.invoke(ctx, backend.PluginAccount, backend.CmdRemove, backend.UUIDArgs{UUID: uuid}, nil)
}
