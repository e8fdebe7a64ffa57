// Package api serves the RouterHaus shopping API: catalog queries, facet
// options, quick picks, recommendations, the quiz and the compare tray.
package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RouterHaus/routerhaus/internal/kits"
	"github.com/RouterHaus/routerhaus/internal/prefs"
	"github.com/RouterHaus/routerhaus/pkg/models"
	"github.com/RouterHaus/routerhaus/pkg/presets"
)

// sessionCookie scopes the compare tray to a browser session.
const sessionCookie = "rh_session"

// FacetGroup is one facet with its selectable options and panel state.
type FacetGroup struct {
	ID      string        `json:"id"`
	Label   string        `json:"label"`
	Open    bool          `json:"open"`
	Options []kits.Option `json:"options"`
}

// CompareResponse is the compare tray with its resolved kits.
type CompareResponse struct {
	IDs   []string     `json:"ids"`
	Items []models.Kit `json:"items"`
	Limit int          `json:"limit"`
}

// ApplyQuizResponse carries the catalog state after seeding facets from
// the quiz.
type ApplyQuizResponse struct {
	Query string `json:"query"`
	URL   string `json:"url"`
}

// Handler provides the shopping API handlers.
type Handler struct {
	engine  *kits.Engine
	prefs   *prefs.Service
	presets *presets.Catalog
	logger  *zap.Logger
}

// NewHandler creates a shopping API handler.
func NewHandler(engine *kits.Engine, svc *prefs.Service, pc *presets.Catalog, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, prefs: svc, presets: pc, logger: logger}
}

// RegisterRoutes registers the shopping API routes on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/kits", h.handleListKits)
	mux.HandleFunc("GET /api/v1/kits/facets", h.handleFacets)
	mux.HandleFunc("GET /api/v1/kits/presets", h.handlePresets)
	mux.HandleFunc("GET /api/v1/kits/recommendations", h.handleRecommendations)
	mux.HandleFunc("GET /api/v1/kits/picks", h.handlePicks)
	mux.HandleFunc("GET /api/v1/kits/export", h.handleExport)

	mux.HandleFunc("GET /api/v1/compare", h.handleGetCompare)
	mux.HandleFunc("POST /api/v1/compare", h.handleToggleCompare)
	mux.HandleFunc("DELETE /api/v1/compare", h.handleClearCompare)

	mux.HandleFunc("GET /api/v1/quiz", h.handleGetQuiz)
	mux.HandleFunc("PUT /api/v1/quiz", h.handlePutQuiz)
	mux.HandleFunc("DELETE /api/v1/quiz", h.handleDeleteQuiz)
	mux.HandleFunc("POST /api/v1/quiz/apply", h.handleApplyQuiz)

	mux.HandleFunc("GET /api/v1/prefs", h.handleGetPrefs)
	mux.HandleFunc("PUT /api/v1/prefs", h.handlePutPrefs)
}

// handleListKits evaluates one catalog query.
//
//	@Summary		Query the kit catalog
//	@Description	Filter, sort and paginate the catalog. Facet parameters take comma-separated value lists.
//	@Tags			kits
//	@Produce		json
//	@Param			q		query	string	false	"Free-text search"
//	@Param			sort	query	string	false	"Sort strategy"	default(relevance)
//	@Param			page	query	int		false	"Page number"	default(1)
//	@Param			ps		query	int		false	"Page size"		default(12)
//	@Success		200	{object}	kits.Result
//	@Router			/kits [get]
func (h *Handler) handleListKits(w http.ResponseWriter, r *http.Request) {
	q := kits.DecodeQuery(r.URL.Query())
	writeJSON(w, http.StatusOK, h.engine.Evaluate(q))
}

// handleFacets returns every facet with its options counted against the
// current query's other constraints, plus the shopper's panel state.
//
//	@Summary		List facet options
//	@Tags			kits
//	@Produce		json
//	@Success		200	{array}	FacetGroup
//	@Router			/kits/facets [get]
func (h *Handler) handleFacets(w http.ResponseWriter, r *http.Request) {
	q := kits.DecodeQuery(r.URL.Query())
	opts := h.engine.FacetOptions(q)
	panels := h.prefs.FacetPanels(r.Context())

	groups := make([]FacetGroup, 0, len(h.engine.Defs()))
	for _, def := range h.engine.Defs() {
		open, known := panels[def.ID]
		if !known {
			open = true
		}
		groups = append(groups, FacetGroup{
			ID:      def.ID,
			Label:   def.Label,
			Open:    open,
			Options: opts[def.ID],
		})
	}
	writeJSON(w, http.StatusOK, groups)
}

// handlePresets returns the curated quick picks.
//
//	@Summary		List quick picks
//	@Tags			kits
//	@Produce		json
//	@Success		200	{array}	presets.Preset
//	@Router			/kits/presets [get]
func (h *Handler) handlePresets(w http.ResponseWriter, _ *http.Request) {
	list, err := h.presets.Presets()
	if err != nil {
		h.logger.Error("failed to load presets", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load presets")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleRecommendations returns the ranked recommendation rail. Stored quiz
// answers narrow the pool; recos=0 hides the rail entirely.
//
//	@Summary		Get recommendations
//	@Tags			kits
//	@Produce		json
//	@Param			recos	query	string	false	"Set to 0 to hide recommendations"
//	@Success		200	{array}	models.Kit
//	@Router			/kits/recommendations [get]
func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	q := kits.DecodeQuery(r.URL.Query())
	quiz := h.prefs.Quiz(r.Context())
	recos := h.engine.Recommendations(quiz, q.ShowRecos)
	if recos == nil {
		recos = []models.Kit{}
	}
	writeJSON(w, http.StatusOK, recos)
}

// handlePicks returns the strict-match shortlist for the stored quiz.
//
//	@Summary		Get "Your Picks"
//	@Tags			kits
//	@Produce		json
//	@Success		200	{array}	models.Kit
//	@Router			/kits/picks [get]
func (h *Handler) handlePicks(w http.ResponseWriter, r *http.Request) {
	quiz := h.prefs.Quiz(r.Context())
	optOut := h.prefs.OptOut(r.Context())
	picks := h.engine.Picks(quiz, optOut)
	if picks == nil {
		picks = []models.Kit{}
	}
	writeJSON(w, http.StatusOK, picks)
}

// handleExport streams the full filtered and sorted result set as CSV,
// ignoring pagination.
//
//	@Summary		Export matching kits as CSV
//	@Tags			kits
//	@Produce		text/csv
//	@Success		200	{string}	string
//	@Router			/kits/export [get]
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	q := kits.DecodeQuery(r.URL.Query())
	q.Page = 1
	q.PageSize = h.engine.Size() + 1
	res := h.engine.Evaluate(q)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="kits.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write(csvHeaders())
	for _, k := range res.Items {
		_ = cw.Write(kitToCSVRow(k))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.logger.Error("csv export failed", zap.Error(err))
	}
}

// handleGetCompare returns the session's compare tray.
//
//	@Summary		Get the compare tray
//	@Tags			compare
//	@Produce		json
//	@Success		200	{object}	CompareResponse
//	@Router			/compare [get]
func (h *Handler) handleGetCompare(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	tray := h.prefs.Tray(r.Context(), session)
	writeCompare(w, h.engine, tray)
}

// handleToggleCompare toggles one kit in and out of the tray.
//
//	@Summary		Toggle a kit in the compare tray
//	@Tags			compare
//	@Accept			json
//	@Produce		json
//	@Param			request	body		object{id=string}	true	"Kit id to toggle"
//	@Success		200		{object}	CompareResponse
//	@Failure		400		{object}	map[string]any	"Unknown kit id or malformed body"
//	@Failure		409		{object}	map[string]any	"Tray already holds the maximum"
//	@Router			/compare [post]
func (h *Handler) handleToggleCompare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "body must carry a kit id")
		return
	}
	if !h.knownKit(req.ID) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown kit id %q", req.ID))
		return
	}

	session := h.session(w, r)
	tray := h.prefs.Tray(r.Context(), session)
	if _, err := tray.Toggle(req.ID); err != nil {
		writeError(w, http.StatusConflict,
			fmt.Sprintf("compare tray holds at most %d kits", kits.MaxCompareItems))
		return
	}
	if err := h.prefs.SetTray(r.Context(), session, tray); err != nil {
		h.logger.Error("failed to save compare tray", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save compare tray")
		return
	}
	writeCompare(w, h.engine, tray)
}

// handleClearCompare empties the session's tray.
//
//	@Summary		Clear the compare tray
//	@Tags			compare
//	@Success		204
//	@Router			/compare [delete]
func (h *Handler) handleClearCompare(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if err := h.prefs.ClearTray(r.Context(), session); err != nil {
		h.logger.Error("failed to clear compare tray", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to clear compare tray")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetQuiz returns the stored quiz answers.
//
//	@Summary		Get stored quiz answers
//	@Tags			quiz
//	@Produce		json
//	@Success		200	{object}	models.QuizAnswers
//	@Failure		404	{object}	map[string]any	"No answers stored"
//	@Router			/quiz [get]
func (h *Handler) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz := h.prefs.Quiz(r.Context())
	if quiz == nil {
		writeError(w, http.StatusNotFound, "no quiz answers stored")
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// handlePutQuiz validates and stores quiz answers. Unanswered questions are
// stored as empty strings and impose no constraint later.
//
//	@Summary		Store quiz answers
//	@Tags			quiz
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.QuizAnswers	true	"Answers"
//	@Success		200		{object}	models.QuizAnswers
//	@Failure		400		{object}	map[string]any	"Answer outside its value set"
//	@Router			/quiz [put]
func (h *Handler) handlePutQuiz(w http.ResponseWriter, r *http.Request) {
	var answers models.QuizAnswers
	if err := json.NewDecoder(r.Body).Decode(&answers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if detail := validateQuiz(answers); detail != "" {
		writeError(w, http.StatusBadRequest, detail)
		return
	}
	if h.prefs.OptOut(r.Context()) {
		writeError(w, http.StatusForbidden, "personalization is opted out")
		return
	}
	if err := h.prefs.SetQuiz(r.Context(), answers); err != nil {
		h.logger.Error("failed to save quiz", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save quiz answers")
		return
	}
	writeJSON(w, http.StatusOK, answers)
}

// handleDeleteQuiz removes the stored answers.
//
//	@Summary		Delete stored quiz answers
//	@Tags			quiz
//	@Success		204
//	@Router			/quiz [delete]
func (h *Handler) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.prefs.ClearQuiz(r.Context()); err != nil {
		h.logger.Error("failed to clear quiz", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to clear quiz answers")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleApplyQuiz seeds the catalog query from the stored answers: the
// coverage, devices and use answers replace those facets' selections, other
// request parameters pass through, and the canonical URL comes back.
//
//	@Summary		Apply quiz answers to the catalog query
//	@Tags			quiz
//	@Produce		json
//	@Success		200	{object}	ApplyQuizResponse
//	@Failure		404	{object}	map[string]any	"No answers stored"
//	@Router			/quiz/apply [post]
func (h *Handler) handleApplyQuiz(w http.ResponseWriter, r *http.Request) {
	quiz := h.prefs.Quiz(r.Context())
	if quiz == nil {
		writeError(w, http.StatusNotFound, "no quiz answers stored")
		return
	}

	q := kits.DecodeQuery(r.URL.Query()).WithQuiz(quiz.Coverage, quiz.Devices, quiz.Use)
	canonical := q.String()
	url := "/kits"
	if canonical != "" {
		url += "?" + canonical
	}
	writeJSON(w, http.StatusOK, ApplyQuizResponse{Query: canonical, URL: url})
}

// PrefsResponse is the shopper's switch and panel state.
type PrefsResponse struct {
	LowData     bool            `json:"lowData"`
	OptOut      bool            `json:"optOut"`
	FacetPanels map[string]bool `json:"facetPanels"`
}

// handleGetPrefs returns the privacy switches and panel state.
//
//	@Summary		Get preferences
//	@Tags			prefs
//	@Produce		json
//	@Success		200	{object}	PrefsResponse
//	@Router			/prefs [get]
func (h *Handler) handleGetPrefs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PrefsResponse{
		LowData:     h.prefs.LowData(r.Context()),
		OptOut:      h.prefs.OptOut(r.Context()),
		FacetPanels: h.prefs.FacetPanels(r.Context()),
	})
}

// handlePutPrefs updates the switches and panel state. Opting out wipes the
// personalized state: quiz answers and chat history.
//
//	@Summary		Update preferences
//	@Tags			prefs
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PrefsResponse	true	"Preferences"
//	@Success		200		{object}	PrefsResponse
//	@Router			/prefs [put]
func (h *Handler) handlePutPrefs(w http.ResponseWriter, r *http.Request) {
	var req PrefsResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if err := h.prefs.SetLowData(ctx, req.LowData); err != nil {
		h.logger.Error("failed to save preferences", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	if err := h.prefs.SetOptOut(ctx, req.OptOut); err != nil {
		h.logger.Error("failed to save preferences", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	if req.FacetPanels != nil {
		if err := h.prefs.SetFacetPanels(ctx, req.FacetPanels); err != nil {
			h.logger.Error("failed to save preferences", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save preferences")
			return
		}
	}
	if req.OptOut {
		if err := h.prefs.ClearQuiz(ctx); err != nil {
			h.logger.Error("failed to clear quiz on opt-out", zap.Error(err))
		}
		if err := h.prefs.ClearChat(ctx); err != nil {
			h.logger.Error("failed to clear chat on opt-out", zap.Error(err))
		}
	}
	h.handleGetPrefs(w, r)
}

// session returns the compare session id from the request cookie, minting
// and setting one when absent.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) knownKit(id string) bool {
	for _, k := range h.engine.Catalog() {
		if k.ID == id {
			return true
		}
	}
	return false
}

func writeCompare(w http.ResponseWriter, engine *kits.Engine, tray kits.Tray) {
	ids := tray.IDs
	if ids == nil {
		ids = []string{}
	}
	items := tray.Resolve(engine.Catalog())
	if items == nil {
		items = []models.Kit{}
	}
	writeJSON(w, http.StatusOK, CompareResponse{
		IDs:   ids,
		Items: items,
		Limit: kits.MaxCompareItems,
	})
}

// validateQuiz checks each answered question against its closed value set.
// It returns the problem detail, or "" when the answers are acceptable.
func validateQuiz(a models.QuizAnswers) string {
	if a.Coverage != "" && !slices.Contains(models.CoverageBuckets, a.Coverage) {
		return fmt.Sprintf("coverage must be one of %s", strings.Join(models.CoverageBuckets, ", "))
	}
	if a.Devices != "" && !slices.Contains(models.DeviceLoads, a.Devices) {
		return fmt.Sprintf("devices must be one of %s", strings.Join(models.DeviceLoads, ", "))
	}
	if a.Price != "" && !slices.Contains(models.PriceBuckets, a.Price) {
		return fmt.Sprintf("price must be one of %s", strings.Join(models.PriceBuckets, ", "))
	}
	if a.Mesh != "" && a.Mesh != models.MeshYes && a.Mesh != models.MeshNo {
		return `mesh must be "yes", "no" or empty`
	}
	if a.WanTierLabel != "" && !slices.Contains(models.WanTiers, a.WanTierLabel) {
		return fmt.Sprintf("wanTierLabel must be one of %s", strings.Join(models.WanTiers, ", "))
	}
	return ""
}

func csvHeaders() []string {
	return []string{
		"id", "brand", "model", "wifi_standard", "mesh_ready", "coverage",
		"wan_tier", "device_load", "primary_use", "price_usd", "price_bucket",
		"rating", "review_count",
	}
}

// kitToCSVRow converts a kit to a CSV row (matching csvHeaders order).
func kitToCSVRow(k models.Kit) []string {
	return []string{
		k.ID,
		k.Brand,
		k.Model,
		string(k.WifiStandard),
		strconv.FormatBool(k.MeshReady),
		k.CoverageBucket,
		k.WanTierLabel,
		k.DeviceLoad,
		k.PrimaryUse,
		strconv.FormatFloat(k.PriceUsd, 'f', -1, 64),
		k.PriceBucket,
		strconv.FormatFloat(k.Rating, 'f', -1, 64),
		strconv.FormatFloat(k.ReviewCount, 'f', -1, 64),
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
