package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tineo1298-dev/my-trade-journal/internal/analytics"
	"github.com/tineo1298-dev/my-trade-journal/internal/journal"
	"github.com/tineo1298-dev/my-trade-journal/internal/supabase"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log  *zap.Logger
	svc  *journal.Service
	auth supabase.AuthClientInterface
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, svc *journal.Service, auth supabase.AuthClientInterface) *APIHandler {
	return &APIHandler{log: log, svc: svc, auth: auth}
}

// Register wires all endpoints onto the mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/signup", h.SignUpHandler)
	mux.HandleFunc("POST /api/auth/signin", h.SignInHandler)
	mux.HandleFunc("POST /api/auth/signout", h.SignOutHandler)

	mux.HandleFunc("GET /api/trades", h.TradesHandler)
	mux.HandleFunc("POST /api/trades", h.CreatePlanHandler)
	mux.HandleFunc("POST /api/trades/{id}/close", h.CloseOrderHandler)
	mux.HandleFunc("DELETE /api/trades/{id}", h.DeleteHandler)

	mux.HandleFunc("GET /api/dashboard", h.DashboardHandler)
	mux.HandleFunc("GET /api/chart/{symbol}", h.ChartHandler)
}

// session resolves the bearer token of a request to an authenticated session.
func (h *APIHandler) session(r *http.Request) (journal.Session, error) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		return journal.Session{}, errors.New("missing bearer token")
	}
	user, err := h.auth.User(r.Context(), token)
	if err != nil {
		return journal.Session{}, err
	}
	return journal.Session{UserID: user.UserID, Email: user.Email}, nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}

// SignUpHandler registers a new user through the auth collaborator.
func (h *APIHandler) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	session, err := h.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Error("Sign up failed", zap.Error(err))
		http.Error(w, "Sign up failed", http.StatusUnauthorized)
		return
	}
	writeJSON(w, sessionResponse{UserID: session.UserID, Email: session.Email, AccessToken: session.AccessToken})
}

// SignInHandler exchanges credentials for an access token.
func (h *APIHandler) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	session, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Error("Sign in failed", zap.Error(err))
		http.Error(w, "Sign in failed", http.StatusUnauthorized)
		return
	}
	writeJSON(w, sessionResponse{UserID: session.UserID, Email: session.Email, AccessToken: session.AccessToken})
}

// SignOutHandler revokes the caller's token.
func (h *APIHandler) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.auth.SignOut(r.Context(), token); err != nil {
		h.log.Error("Sign out failed", zap.Error(err))
		http.Error(w, "Sign out failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TradesHandler returns the user's full history, most recent first.
func (h *APIHandler) TradesHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	records, err := h.svc.History(r.Context(), session)
	if err != nil {
		h.log.Error("Failed to get trades from database", zap.Error(err))
		http.Error(w, "Failed to get trades", http.StatusInternalServerError)
		return
	}
	writeJSON(w, records)
}

type createPlanRequest struct {
	Date        string  `json:"date"`
	Coin        string  `json:"coin"`
	Position    string  `json:"position"`
	Leverage    int     `json:"leverage"`
	Margin      float64 `json:"margin"`
	EntryPrice  float64 `json:"entry_price"`
	PlanTP      float64 `json:"plan_tp"`
	PlanSL      float64 `json:"plan_sl"`
	PlanNote    string  `json:"plan_note"`
	ImageBase64 string  `json:"image_base64,omitempty"`
}

// CreatePlanHandler logs a new planned trade.
func (h *APIHandler) CreatePlanHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	image, err := decodeImage(req.ImageBase64)
	if err != nil {
		http.Error(w, "Invalid image encoding", http.StatusBadRequest)
		return
	}

	record, err := h.svc.CreatePlan(r.Context(), session, journal.PlanInput{
		Date:       date,
		Coin:       req.Coin,
		Position:   req.Position,
		Leverage:   req.Leverage,
		Margin:     req.Margin,
		EntryPrice: req.EntryPrice,
		TakeProfit: req.PlanTP,
		StopLoss:   req.PlanSL,
		Note:       req.PlanNote,
		Image:      image,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

type closeOrderRequest struct {
	RealPnl     float64 `json:"real_pnl"`
	ExitNote    string  `json:"exit_note"`
	ImageBase64 string  `json:"image_base64,omitempty"`
}

// CloseOrderHandler settles an open trade with its realized PnL.
func (h *APIHandler) CloseOrderHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	var req closeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	image, err := decodeImage(req.ImageBase64)
	if err != nil {
		http.Error(w, "Invalid image encoding", http.StatusBadRequest)
		return
	}

	record, err := h.svc.CloseOrder(r.Context(), session, uint(id), journal.CloseInput{
		RealPnl:  req.RealPnl,
		ExitNote: req.ExitNote,
		Image:    image,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, record)
}

// DeleteHandler removes a record in either status.
func (h *APIHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return
	}
	if err := h.svc.DeleteRecord(r.Context(), session, uint(id)); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DashboardResponse is the structure for the /api/dashboard endpoint.
type DashboardResponse struct {
	Summary       analytics.Summary       `json:"summary"`
	EquityCurve   []analytics.EquityPoint `json:"equity_curve"`
	TimeHeatmap   [7][24]int              `json:"time_heatmap"`
	DailyActivity []analytics.DayCount    `json:"daily_activity"`
}

// DashboardHandler computes all derived statistics over the user's snapshot.
// A failing store read degrades to the empty snapshot instead of an error.
func (h *APIHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	session, err := h.session(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	records, err := h.svc.History(r.Context(), session)
	if err != nil {
		h.log.Warn("Store read failed, serving empty dashboard", zap.Error(err))
		records = nil
	}

	writeJSON(w, DashboardResponse{
		Summary:       analytics.Summarize(records, time.Now()),
		EquityCurve:   analytics.EquityCurve(records),
		TimeHeatmap:   analytics.TimeHeatmap(records),
		DailyActivity: analytics.DailyActivity(records),
	})
}

// ChartHandler serves the TradingView embed for a symbol. Display only; no
// data flows back into the journal.
func (h *APIHandler) ChartHandler(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))
	if symbol == "" {
		symbol = "BTC"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, chartTemplate, symbol)
}

const chartTemplate = `<div class="tradingview-widget-container">
  <div id="tradingview_chart"></div>
  <script type="text/javascript" src="https://s3.tradingview.com/tv.js"></script>
  <script type="text/javascript">
  new TradingView.widget({
    "width": "100%%", "height": 800,
    "symbol": "BINANCE:%sUSDT",
    "interval": "60", "theme": "dark", "style": "1", "locale": "en",
    "allow_symbol_change": true, "container_id": "tradingview_chart"
  });
  </script>
</div>
`

// writeError maps core errors onto HTTP statuses.
func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, journal.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, journal.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, journal.ErrRecordNotOpen):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, journal.ErrStoreUnavailable):
		h.log.Error("Store unavailable", zap.Error(err))
		http.Error(w, "Store unavailable", http.StatusServiceUnavailable)
	default:
		h.log.Error("Unexpected error", zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func decodeImage(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
