package http

import (
	"fmt"
	"net/http"

	"car-rental-backend/internal/domain"

	"github.com/gorilla/mux"
)

type bookCarRequest struct {
	CarID          string  `json:"car_id"`
	Days           int32   `json:"days"`
	AdditionalFees float64 `json:"additional_fees"`
}

type decisionRequest struct {
	Action string `json:"action"`
}

func (h *Handler) bookCar(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, domain.RoleCustomer) {
		return
	}
	var req bookCarRequest
	if err := decode(r, &req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrValidation))
		return
	}
	rental, err := h.system.BookCar(r.Context(), claimsFrom(r).Username, req.CarID, req.Days, req.AdditionalFees)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rental)
}

// listRentals is the admin view over the rental history, optionally
// filtered with ?status=.
func (h *Handler) listRentals(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, domain.RoleAdmin) {
		return
	}
	if status := r.URL.Query().Get("status"); status != "" {
		parsed := domain.RentalStatus(status)
		if !parsed.Valid() {
			respondError(w, fmt.Errorf("unknown rental status %q: %w", status, domain.ErrValidation))
			return
		}
		respondJSON(w, http.StatusOK, h.system.RentalsByStatus(parsed))
		return
	}
	respondJSON(w, http.StatusOK, h.system.AllRentals())
}

func (h *Handler) myRentals(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.system.CustomerRentals(claimsFrom(r).Username))
}

func (h *Handler) getRental(w http.ResponseWriter, r *http.Request) {
	rental, err := h.system.FindRentalByID(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	claims := claimsFrom(r)
	if claims.Role != string(domain.RoleAdmin) && rental.CustomerUsername != claims.Username {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *Handler) returnCar(w http.ResponseWriter, r *http.Request) {
	rentalID := mux.Vars(r)["id"]
	rental, err := h.system.FindRentalByID(rentalID)
	if err != nil {
		respondError(w, err)
		return
	}
	claims := claimsFrom(r)
	if claims.Role != string(domain.RoleAdmin) && rental.CustomerUsername != claims.Username {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
		return
	}
	returned, err := h.system.ReturnCar(r.Context(), rentalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, returned)
}

func (h *Handler) decideRental(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, domain.RoleAdmin) {
		return
	}
	var req decisionRequest
	if err := decode(r, &req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrValidation))
		return
	}
	rentalID := mux.Vars(r)["id"]
	if err := h.system.ManageRentalRequest(r.Context(), rentalID, req.Action); err != nil {
		respondError(w, err)
		return
	}
	rental, err := h.system.FindRentalByID(rentalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}
