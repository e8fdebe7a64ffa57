package advisor

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Chat pacing: a question every two seconds sustained, short bursts allowed.
const (
	chatRate  = rate.Limit(0.5)
	chatBurst = 3
)

// chatEvent is one websocket frame in either direction.
type chatEvent struct {
	Role  string `json:"role"` // "user" in, "bot" out
	Text  string `json:"text"`
	Query string `json:"query,omitempty"`
	URL   string `json:"url,omitempty"`
}

// handleChat upgrades to a websocket and answers questions until the client
// goes away. Each connection gets its own rate limiter; paced-out questions
// receive a "slow down" line instead of advice.
//
//	@Summary		Open an advisor chat
//	@Description	Websocket endpoint. Frames are JSON {"role","text"}; the transcript replays on connect.
//	@Tags			advisor
//	@Router			/advisor/chat [get]
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected shutdown")

	ctx := r.Context()
	limiter := rate.NewLimiter(chatRate, chatBurst)

	// Replay the stored transcript so the shopper resumes mid-conversation.
	for _, msg := range h.prefs.ChatHistory(ctx) {
		if err := wsjson.Write(ctx, conn, chatEvent{Role: msg.Role, Text: msg.Text}); err != nil {
			return
		}
	}

	for {
		var in chatEvent
		if err := wsjson.Read(ctx, conn, &in); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway ||
				errors.Is(err, context.Canceled) {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			h.logger.Debug("chat read failed", zap.Error(err))
			return
		}

		question := strings.TrimSpace(in.Text)
		if question == "" {
			continue
		}

		if !limiter.Allow() {
			out := chatEvent{Role: "bot", Text: "One question at a time — give me a second."}
			if err := wsjson.Write(ctx, conn, out); err != nil {
				return
			}
			continue
		}

		advice := h.advisor.Ask(question)
		h.remember(ctx, question, advice)

		out := chatEvent{Role: "bot", Text: advice.Reply, Query: advice.Query, URL: advice.URL}
		if err := wsjson.Write(ctx, conn, out); err != nil {
			return
		}
	}
}
