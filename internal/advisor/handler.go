package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RouterHaus/routerhaus/internal/prefs"
)

// AskRequest carries one advisor question.
type AskRequest struct {
	Question string `json:"question"`
}

// Handler serves the advisor API.
type Handler struct {
	advisor *Advisor
	prefs   *prefs.Service
	logger  *zap.Logger
}

// NewHandler creates an advisor API handler.
func NewHandler(advisor *Advisor, svc *prefs.Service, logger *zap.Logger) *Handler {
	return &Handler{advisor: advisor, prefs: svc, logger: logger}
}

// RegisterRoutes registers the advisor routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/advisor/ask", h.handleAsk)
	mux.HandleFunc("GET /api/v1/advisor/history", h.handleHistory)
	mux.HandleFunc("GET /api/v1/advisor/chat", h.handleChat)
}

// handleAsk answers a single question.
//
//	@Summary		Ask the advisor
//	@Tags			advisor
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AskRequest	true	"Question"
//	@Success		200		{object}	Advice
//	@Failure		400		{object}	map[string]any	"Empty question or malformed body"
//	@Router			/advisor/ask [post]
func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "body must carry a question")
		return
	}

	advice := h.advisor.Ask(req.Question)
	h.remember(r.Context(), req.Question, advice)
	writeJSON(w, http.StatusOK, advice)
}

// handleHistory returns the persisted transcript, oldest first.
//
//	@Summary		Get the advisor transcript
//	@Tags			advisor
//	@Produce		json
//	@Success		200	{array}	prefs.ChatMessage
//	@Router			/advisor/history [get]
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := h.prefs.ChatHistory(r.Context())
	if history == nil {
		history = []prefs.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, history)
}

// remember appends the exchange to the transcript unless the shopper opted
// out of personalization. Persistence failures degrade to an unsaved chat.
func (h *Handler) remember(ctx context.Context, question string, advice Advice) {
	if h.prefs.OptOut(ctx) {
		return
	}
	now := time.Now().UTC()
	err := h.prefs.AppendChat(ctx,
		prefs.ChatMessage{Role: "user", Text: question, At: now},
		prefs.ChatMessage{Role: "bot", Text: advice.Reply, At: now},
	)
	if err != nil {
		h.logger.Warn("failed to persist chat exchange", zap.Error(err))
	}
}

// -- helpers --

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://routerhaus.com/problems/" + strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "-")),
		"title":  http.StatusText(status),
		"status": status,
		"detail": detail,
	})
}
