package http

import (
	"fmt"
	"net/http"

	"car-rental-backend/internal/domain"

	"github.com/gorilla/mux"
)

type updateCarRequest struct {
	Mileage   int32   `json:"mileage"`
	DailyRate float64 `json:"daily_rate"`
}

func (h *Handler) listCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.system.AllCars(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cars)
}

func (h *Handler) listAvailableCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.system.AvailableCars(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cars)
}

func (h *Handler) getCar(w http.ResponseWriter, r *http.Request) {
	car, err := h.system.FindCarByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, car)
}

func (h *Handler) addCar(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, domain.RoleAdmin) {
		return
	}
	var car domain.Car
	if err := decode(r, &car); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrValidation))
		return
	}
	if err := h.system.AddCar(r.Context(), &car); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, car)
}

func (h *Handler) updateCar(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, domain.RoleAdmin) {
		return
	}
	var req updateCarRequest
	if err := decode(r, &req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrValidation))
		return
	}
	if err := h.system.UpdateCar(r.Context(), mux.Vars(r)["id"], req.Mileage, req.DailyRate); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messageResponse{Message: "car information updated"})
}

func (h *Handler) removeCar(w http.ResponseWriter, r *http.Request) {
	if !requireRole(w, r, domain.RoleAdmin) {
		return
	}
	if err := h.system.RemoveCar(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
