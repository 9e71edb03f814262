package api

import (
	"context"
	"strings"

	"github.com/daleelhq/daleel/pkg/command"
	"github.com/daleelhq/daleel/pkg/contact"
	"github.com/daleelhq/daleel/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the assistant tools on the MCP server.
// The tools dispatch to the same endpoints as the HTTP routes.
func RegisterMCPTools(srv *server.MCPServer, endpoints Endpoints, d *command.Dispatcher) {
	registerSendMessage(srv, endpoints)
	registerChat(srv, endpoints)
	registerAddContact(srv, d)
	registerSearchContacts(srv, d)
	registerExtractContact(srv, endpoints)
}

func registerChat(srv *server.MCPServer, endpoints Endpoints) {
	tool := mcp.NewTool("chat",
		mcp.WithDescription("Route a free-form request about the directory. Retrieve and insert are served; update and delete answer that they are not supported yet."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The free-form request, e.g. 'do we know anyone at Acme?'")),
	)

	kit.RegisterMCPTool(srv, tool, endpoints.Chat, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		text, _ := args["text"].(string)
		return &kit.MCPDecodeResult{
			Request: &chatReq{Text: text},
			EnrichCtx: func(ctx context.Context) context.Context {
				return kit.WithChannel(ctx, "mcp")
			},
		}, nil
	})
}

func registerSendMessage(srv *server.MCPServer, endpoints Endpoints) {
	tool := mcp.NewTool("send_message",
		mcp.WithDescription("Send a free-text directory command (add/search/help) and get the assistant's reply."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The command text, e.g. 'أضف Acme, Ali, 0555000001, ali@acme.sa'")),
	)

	kit.RegisterMCPTool(srv, tool, endpoints.Message, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		text, _ := args["text"].(string)
		return &kit.MCPDecodeResult{
			Request: &messageReq{Text: text},
			EnrichCtx: func(ctx context.Context) context.Context {
				return kit.WithChannel(ctx, "mcp")
			},
		}, nil
	})
}

func registerAddContact(srv *server.MCPServer, d *command.Dispatcher) {
	tool := mcp.NewTool("add_contact",
		mcp.WithDescription("Add a contact record. Rejects duplicates by name, email, or mobile."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Contact name")),
		mcp.WithString("company_name", mcp.Description("Company name")),
		mcp.WithString("mobile", mcp.Description("Mobile number, digits as a string")),
		mcp.WithString("email", mcp.Description("Email address")),
	)

	type addResult struct {
		Added     bool `json:"added"`
		Duplicate bool `json:"duplicate"`
	}

	kit.RegisterMCPTool(srv, tool, func(ctx context.Context, request any) (any, error) {
		rec := request.(*contact.Record)
		added, err := d.Insert(ctx, *rec)
		if err != nil {
			return nil, err
		}
		return addResult{Added: added, Duplicate: !added}, nil
	}, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		rec := &contact.Record{}
		rec.Name, _ = args["name"].(string)
		rec.Company, _ = args["company_name"].(string)
		rec.Mobile, _ = args["mobile"].(string)
		rec.Email, _ = args["email"].(string)
		return &kit.MCPDecodeResult{Request: rec}, nil
	})
}

func registerSearchContacts(srv *server.MCPServer, d *command.Dispatcher) {
	tool := mcp.NewTool("search_contacts",
		mcp.WithDescription("Search contacts by company-name substring (case-insensitive)."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring of the company name")),
	)

	type searchReq struct{ Query string }
	type searchResult struct {
		Contacts []contact.Record `json:"contacts"`
		Count    int              `json:"count"`
	}

	kit.RegisterMCPTool(srv, tool, func(ctx context.Context, request any) (any, error) {
		req := request.(*searchReq)
		records, err := d.Find(ctx, req.Query)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = []contact.Record{}
		}
		return searchResult{Contacts: records, Count: len(records)}, nil
	}, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		query, _ := args["query"].(string)
		if strings.TrimSpace(query) == "" {
			return nil, command.ErrEmptyQuery
		}
		return &kit.MCPDecodeResult{Request: &searchReq{Query: query}}, nil
	})
}

func registerExtractContact(srv *server.MCPServer, endpoints Endpoints) {
	tool := mcp.NewTool("extract_contact",
		mcp.WithDescription("Extract contact fields from unstructured text (email signature, chat export) and file the contact if it is new."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The unstructured text to mine")),
	)

	kit.RegisterMCPTool(srv, tool, endpoints.Extract, func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		text, _ := args["text"].(string)
		return &kit.MCPDecodeResult{Request: &extractReq{Text: text}}, nil
	})
}
