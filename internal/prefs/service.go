package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/RouterHaus/routerhaus/internal/kits"
	"github.com/RouterHaus/routerhaus/pkg/models"
)

// Preference keys. Quiz answers, switches and the chat transcript are
// durable per-shopper state under global keys; the compare tray is a
// per-visit scratchpad, so it alone is keyed by session.
const (
	keyQuiz        = "quiz.answers"
	keyFacetPanels = "facet.panels"
	keyLowData     = "lowData"
	keyOptOut      = "optOut"
	keyChatHistory = "chat.history"

	trayKeyPrefix = "compare."
)

// MaxChatHistory caps the persisted advisor transcript.
const MaxChatHistory = 50

// ChatMessage is one line of the advisor transcript.
type ChatMessage struct {
	Role string    `json:"role"` // "user" or "bot"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Service exposes typed accessors over the preference store. A missing or
// unreadable value never fails a read: the caller gets the zero default and
// the corrupt entry is left for the next write to replace.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a preference service over the repository.
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Quiz returns the stored quiz answers, or nil when none are stored.
func (s *Service) Quiz(ctx context.Context) *models.QuizAnswers {
	var answers models.QuizAnswers
	if !s.load(ctx, keyQuiz, &answers) {
		return nil
	}
	return &answers
}

// SetQuiz stores the quiz answers.
func (s *Service) SetQuiz(ctx context.Context, answers models.QuizAnswers) error {
	return s.save(ctx, keyQuiz, answers)
}

// ClearQuiz removes the stored quiz answers.
func (s *Service) ClearQuiz(ctx context.Context) error {
	if err := s.repo.Delete(ctx, keyQuiz); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// FacetPanels returns the open/closed state of the filter panels by facet id.
func (s *Service) FacetPanels(ctx context.Context) map[string]bool {
	panels := map[string]bool{}
	s.load(ctx, keyFacetPanels, &panels)
	return panels
}

// SetFacetPanels stores the filter panel state.
func (s *Service) SetFacetPanels(ctx context.Context, panels map[string]bool) error {
	return s.save(ctx, keyFacetPanels, panels)
}

// LowData reports whether the shopper asked for the low-data experience.
func (s *Service) LowData(ctx context.Context) bool {
	var v bool
	s.load(ctx, keyLowData, &v)
	return v
}

// SetLowData stores the low-data switch.
func (s *Service) SetLowData(ctx context.Context, v bool) error {
	return s.save(ctx, keyLowData, v)
}

// OptOut reports whether the shopper opted out of personalization.
func (s *Service) OptOut(ctx context.Context) bool {
	var v bool
	s.load(ctx, keyOptOut, &v)
	return v
}

// SetOptOut stores the personalization opt-out.
func (s *Service) SetOptOut(ctx context.Context, v bool) error {
	return s.save(ctx, keyOptOut, v)
}

// ChatHistory returns the persisted advisor transcript, oldest first.
func (s *Service) ChatHistory(ctx context.Context) []ChatMessage {
	var history []ChatMessage
	s.load(ctx, keyChatHistory, &history)
	return history
}

// AppendChat appends messages to the transcript, dropping the oldest lines
// beyond MaxChatHistory.
func (s *Service) AppendChat(ctx context.Context, msgs ...ChatMessage) error {
	history := append(s.ChatHistory(ctx), msgs...)
	if len(history) > MaxChatHistory {
		history = history[len(history)-MaxChatHistory:]
	}
	return s.save(ctx, keyChatHistory, history)
}

// ClearChat removes the persisted transcript.
func (s *Service) ClearChat(ctx context.Context) error {
	if err := s.repo.Delete(ctx, keyChatHistory); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// Tray returns the compare tray for a session, empty when none is stored.
func (s *Service) Tray(ctx context.Context, session string) kits.Tray {
	var tray kits.Tray
	s.load(ctx, trayKey(session), &tray)
	return tray
}

// SetTray stores a session's compare tray.
func (s *Service) SetTray(ctx context.Context, session string, tray kits.Tray) error {
	return s.save(ctx, trayKey(session), tray)
}

// ClearTray removes a session's compare tray.
func (s *Service) ClearTray(ctx context.Context, session string) error {
	if err := s.repo.Delete(ctx, trayKey(session)); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func trayKey(session string) string { return trayKeyPrefix + session }

// load decodes the entry at key into out. It returns false, leaving out
// untouched or partially filled with the zero value, when the key is absent
// or the stored JSON does not parse.
func (s *Service) load(ctx context.Context, key string, out any) bool {
	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("read preference", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(entry.Value), out); err != nil {
		s.logger.Warn("corrupt preference ignored", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, key, string(data))
}
