package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/daleelhq/daleel/pkg/command"
	"github.com/daleelhq/daleel/pkg/contact"
	"github.com/daleelhq/daleel/pkg/extract"
	"github.com/daleelhq/daleel/pkg/kit"
)

// Shared request/response types used by both HTTP and MCP transports.

type messageReq struct {
	Text string
}

type extractReq struct {
	Text string
}

type chatReq struct {
	Text string
}

type chatResponse struct {
	Action string `json:"action"`
	command.Reply
}

type extractResponse struct {
	Extracted bool              `json:"extracted"`
	Contact   *contact.Record   `json:"contact,omitempty"`
	Added     bool              `json:"added"`
	Duplicate bool              `json:"duplicate"`
	Warnings  []contact.Warning `json:"warnings,omitempty"`
}

type contactsResponse struct {
	Contacts []contact.Record `json:"contacts"`
	Count    int              `json:"count"`
}

// Endpoints bundles the assistant actions shared by every transport.
type Endpoints struct {
	Message  kit.Endpoint
	Chat     kit.Endpoint
	Extract  kit.Endpoint
	Contacts kit.Endpoint
}

// NewEndpoints builds the endpoints around the dispatcher. The extractor
// may be nil (no LLM configured); the extract endpoint then reports that.
func NewEndpoints(d *command.Dispatcher, ex *extract.Extractor, logger *slog.Logger) Endpoints {
	if logger == nil {
		logger = slog.Default()
	}
	wrap := func(name string, e kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.RequestID(), kit.Logging(logger, name))(e)
	}
	return Endpoints{
		Message:  wrap("message", messageEndpoint(d)),
		Chat:     wrap("chat", chatEndpoint(d, ex)),
		Extract:  wrap("extract", extractEndpoint(d, ex)),
		Contacts: wrap("contacts", contactsEndpoint(d)),
	}
}

// messageEndpoint runs the full command round-trip. It never returns an
// error: the dispatcher converts every failure into a reply.
func messageEndpoint(d *command.Dispatcher) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*messageReq)
		return d.Handle(ctx, req.Text), nil
	}
}

// chatEndpoint interprets a free-form request onto the action vocabulary
// and dispatches it: retrieve runs the search branch, insert the add
// branch, update and delete answer that they are not supported yet.
func chatEndpoint(d *command.Dispatcher, ex *extract.Extractor) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		if ex == nil {
			return nil, fmt.Errorf("chat interpretation is not configured (no LLM provider)")
		}
		req := request.(*chatReq)
		if req.Text == "" {
			return nil, fmt.Errorf("text is empty")
		}

		intent, err := ex.Interpret(ctx, req.Text)
		if err != nil {
			return nil, err
		}

		resp := chatResponse{Action: string(intent.Action)}
		switch intent.Action {
		case extract.ActionRetrieve:
			resp.Reply = d.Retrieve(ctx, intent.Query)
		case extract.ActionInsert:
			var rec contact.Record
			if intent.Contact != nil {
				rec = *intent.Contact
			}
			resp.Reply = d.Add(ctx, rec)
		case extract.ActionUpdate, extract.ActionDelete:
			resp.Reply = d.Unsupported()
		default:
			resp.Reply = d.Fallback()
		}
		return resp, nil
	}
}

// extractEndpoint pulls contact fields from raw text and feeds a hit
// through the same dedup+append path as the add command.
func extractEndpoint(d *command.Dispatcher, ex *extract.Extractor) kit.Endpoint {
	checker := contact.NewChecker()
	return func(ctx context.Context, request any) (any, error) {
		if ex == nil {
			return nil, fmt.Errorf("extraction is not configured (no LLM provider)")
		}
		req := request.(*extractReq)
		if req.Text == "" {
			return nil, fmt.Errorf("text is empty")
		}

		rec, ok, err := ex.Extract(ctx, req.Text)
		if err != nil {
			return nil, err
		}
		if !ok {
			return extractResponse{Extracted: false}, nil
		}

		added, err := d.Insert(ctx, rec)
		if err != nil {
			return nil, err
		}
		return extractResponse{
			Extracted: true,
			Contact:   &rec,
			Added:     added,
			Duplicate: !added,
			Warnings:  checker.Check(rec),
		}, nil
	}
}

func contactsEndpoint(d *command.Dispatcher) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		records, err := d.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = []contact.Record{}
		}
		return contactsResponse{Contacts: records, Count: len(records)}, nil
	}
}
