package mcp

import (
	"context"

	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

type stubGateway struct {
	res domain.Result
}

func (g stubGateway) Invoke(context.Context, string, map[string]any) domain.Result { return g.res }
func (g stubGateway) Catalog() []domain.Operation                                  { return nil }

func mcpRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}
