// Package http is the thin REST front end over the rental system. Handlers
// decode requests, call the system, and map errors; no business rules live
// here.
package http

import (
	"encoding/json"
	"net/http"

	"car-rental-backend/internal/security"
	"car-rental-backend/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	system *service.System
	tokens security.TokenManager
}

func NewHandler(system *service.System, tokens security.TokenManager) *Handler {
	return &Handler{system: system, tokens: tokens}
}

// Routes builds the router. Everything except registration and login
// requires a bearer token.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID)

	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(Authenticate(h.tokens))

	authed.HandleFunc("/cars", h.listCars).Methods(http.MethodGet)
	authed.HandleFunc("/cars/available", h.listAvailableCars).Methods(http.MethodGet)
	authed.HandleFunc("/cars", h.addCar).Methods(http.MethodPost)
	authed.HandleFunc("/cars/{id}", h.getCar).Methods(http.MethodGet)
	authed.HandleFunc("/cars/{id}", h.updateCar).Methods(http.MethodPut)
	authed.HandleFunc("/cars/{id}", h.removeCar).Methods(http.MethodDelete)

	authed.HandleFunc("/rentals", h.bookCar).Methods(http.MethodPost)
	authed.HandleFunc("/rentals", h.listRentals).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/mine", h.myRentals).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id}", h.getRental).Methods(http.MethodGet)
	authed.HandleFunc("/rentals/{id}/return", h.returnCar).Methods(http.MethodPost)
	authed.HandleFunc("/rentals/{id}/decision", h.decideRental).Methods(http.MethodPost)

	return r
}

func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
