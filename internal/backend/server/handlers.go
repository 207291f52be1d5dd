package server

import (
	"context"
	"encoding/json"

	"github.com/studiowebux/launcher/internal/backend"
)

func (s *Server) createInstance(ctx context.Context, body json.RawMessage) (interface{}, error) {
	var args backend.CreateInstanceArgs
	if err := decode(body, &args); err != nil {
		return nil, err
	}
	return s.backend.CreateInstance(ctx, args.Options)
}

func (s *Server) getInstance(ctx context.Context, body json.RawMessage) (interface{}, error) {
	var args backend.IdentifierArgs
	if err := decode(body, &args); err != nil {
		return nil, err
	}
	return s.backend.GetInstance(ctx, args.Identifier)
}

func (s *Server) getInstances(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	return s.backend.GetInstances(ctx)
}

func (s *Server) removeInstance(ctx context.Context, body json.RawMessage) (interface{}, error) {
	var args backend.IdentifierArgs
	if err := decode(body, &args); err != nil {
		return nil, err
	}
	return nil, s.backend.RemoveInstance(ctx, args.Identifier)
}

func (s *Server) renameInstance(ctx context.Context, body json.RawMessage) (interface{}, error) {
	var args backend.RenameInstanceArgs
	if err := decode(body, &args); err != nil {
		return nil, err
	}
	return s.backend.RenameInstance(ctx, args.Options.Identifier, args.Options.NewName)
}

func (s *Server) updateInstanceIcon(ctx context.Context, body json.RawMessage) (interface{}, error) {
	var args backend.UpdateInstanceIconArgs
	if err := decode(body, &args); err != nil {
		return nil, err
	}
	return s.backend.UpdateInstanceIcon(ctx, args.Options.Identifier, args.Options.IconData)
}

func (s *Server) authenticate(ctx context.Context, body json.RawMessage) (interface{}, error) {
	var args backend.AuthenticateArgs
	if err := decode(body, &args); err != nil {
		return nil, err
	}
	if args.Username != "" {
		ctx = backend.WithLoginHint(ctx, args.Username)
	}
	return s.backend.AuthenticateAccount(ctx)
}

func (s *Server) getAllAccounts(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	return s.backend.GetAllAccounts(ctx)
}

func (s *Server) getActiveAccount(ctx context.Context, _ json.RawMessage) (interface{}, error) {
	return s.backend.GetActiveAccount(ctx)
}

func (s *Server) setActiveAccount(ctx context.Context, body json.RawMessage) (interface{}, error) {
	var args backend.UUIDArgs
	if err := decode(body, &args); err != nil {
		return nil, err
	}
	return nil, s.backend.SetActiveAccount(ctx, args.UUID)
}

func (s *Server) removeAccount(ctx context.Context, body json.RawMessage) (interface{}, error) {
	var args backend.UUIDArgs
	if err := decode(body, &args); err != nil {
		return nil, err
	}
	return nil, s.backend.RemoveAccount(ctx, args.UUID)
}
