package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/daleelhq/daleel/pkg/command"
	"github.com/daleelhq/daleel/pkg/kit"
)

// NewRouter returns an http.Handler with all assistant routes.
func NewRouter(endpoints Endpoints, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()
	h := &handler{endpoints: endpoints, logger: logger}

	mux.HandleFunc("POST /webhook", h.handleWebhook)
	mux.HandleFunc("POST /v1/message", h.handleMessage)
	mux.HandleFunc("POST /v1/chat", h.handleChat)
	mux.HandleFunc("POST /v1/extract", h.handleExtract)
	mux.HandleFunc("GET /v1/contacts", h.handleContacts)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	endpoints Endpoints
	logger    *slog.Logger
}

// --- messaging webhook (form-encoded, XML reply) ---

// handleWebhook accepts the form-encoded webhook of a messaging
// integration. The command text arrives in the Body field; the reply is
// an XML envelope. Domain failures still answer 200 with a reply.
func (h *handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	if err := r.ParseForm(); err != nil {
		writeTwiML(w, command.DefaultReplies().Unknown)
		return
	}
	body := r.PostFormValue("Body")
	if body == "" {
		body = r.PostFormValue("message")
	}

	ctx := kit.WithChannel(r.Context(), "whatsapp")
	resp, err := h.endpoints.Message(ctx, &messageReq{Text: body})
	if err != nil {
		// The message endpoint never errors; belt and braces for the
		// webhook contract.
		h.logger.Error("webhook dispatch", "error", err)
		writeTwiML(w, command.DefaultReplies().Failure)
		return
	}
	writeTwiML(w, resp.(command.Reply).Text)
}

// --- JSON message API ---

type messageBody struct {
	Message string `json:"message"`
}

func (h *handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var req messageBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := kit.WithChannel(r.Context(), "web")
	resp, err := h.endpoints.Message(ctx, &messageReq{Text: req.Message})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- interpreted chat ---

type chatBody struct {
	Text string `json:"text"`
}

func (h *handler) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var req chatBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := kit.WithChannel(r.Context(), "web")
	resp, err := h.endpoints.Chat(ctx, &chatReq{Text: req.Text})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- extraction ---

type extractBody struct {
	Text string `json:"text"`
}

func (h *handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256*1024)
	var req extractBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.endpoints.Extract(r.Context(), &extractReq{Text: req.Text})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list ---

func (h *handler) handleContacts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.endpoints.Contacts(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status   string `json:"status"`
	Contacts int    `json:"contacts"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp, err := h.endpoints.Contacts(r.Context(), nil)
	if err != nil {
		writeJSON(w, http.StatusOK, healthResponse{Status: "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Contacts: resp.(contactsResponse).Count,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
