// Package api exposes the session over a JSON HTTP API.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cardtab/cardtab/internal/service"
)

// Handlers wires the HTTP surface to the session service.
type Handlers struct {
	svc *service.SessionService
}

// NewHandlers creates the handler set for the given service.
func NewHandlers(svc *service.SessionService) *Handlers {
	return &Handlers{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("Failed to encode response: %v", err), http.StatusInternalServerError)
	}
}

// CreatePlayerDto represents the input data for adding a player.
type CreatePlayerDto struct {
	Name string `json:"name"`
}

// CreatePlayer adds a player to the roster.
func (h *Handlers) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input CreatePlayerDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	player, err := h.svc.AddPlayer(r.Context(), input.Name)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to add player: %v", err), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, player)
}

// ListPlayers returns the roster.
func (h *Handlers) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.ListPlayers(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list players: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, players)
}

// RenamePlayer changes a player's display name.
func (h *Handlers) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	var input CreatePlayerDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	player, err := h.svc.RenamePlayer(r.Context(), playerID, input.Name)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to rename player: %v", err), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

// DeletePlayer removes a player from the roster, cascading into rounds.
func (h *Handlers) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	if err := h.svc.RemovePlayer(r.Context(), playerID); err != nil {
		http.Error(w, fmt.Sprintf("Failed to remove player: %v", err), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateRoundDto represents the input data for appending a round.
type CreateRoundDto struct {
	BankerID string `json:"bankerId"`
}

// CreateRound appends a round; the banker defaults to the previous round's.
func (h *Handlers) CreateRound(w http.ResponseWriter, r *http.Request) {
	var input CreateRoundDto
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
			return
		}
	}

	round, err := h.svc.CreateRound(r.Context(), input.BankerID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create round: %v", err), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, round)
}

// ListRounds returns all rounds in sequence order.
func (h *Handlers) ListRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.svc.ListRounds(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list rounds: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, rounds)
}

// SetBanker assigns a round's banker.
func (h *Handlers) SetBanker(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")

	var input CreateRoundDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	round, err := h.svc.SetBanker(r.Context(), roundID, input.BankerID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to set banker: %v", err), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, round)
}

// SetValueDto represents the input data for recording a player's amount.
type SetValueDto struct {
	PlayerID string `json:"playerId"`
	Amount   int64  `json:"amount"` // minor units, signed
}

// SetValue records one player's signed amount for a round.
func (h *Handlers) SetValue(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")

	var input SetValueDto
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Failed to decode request body: %v", err), http.StatusBadRequest)
		return
	}

	round, err := h.svc.SetValue(r.Context(), roundID, input.PlayerID, input.Amount)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to set value: %v", err), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, round)
}

// DeleteRound removes a round.
func (h *Handlers) DeleteRound(w http.ResponseWriter, r *http.Request) {
	roundID := chi.URLParam(r, "roundID")

	if err := h.svc.DeleteRound(r.Context(), roundID); err != nil {
		http.Error(w, fmt.Sprintf("Failed to delete round: %v", err), http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetBalances returns every player's running total.
func (h *Handlers) GetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.svc.GetBalances(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute balances: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, balances)
}

// GetLedger returns the per-round debt ledger.
func (h *Handlers) GetLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.svc.GetLedger(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute ledger: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ledger)
}

// GetSettlement returns the settlement plan and per-person summary.
func (h *Handlers) GetSettlement(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.GetSettlement(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute settlement: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}
