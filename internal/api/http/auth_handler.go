package http

import (
	"fmt"
	"net/http"

	"car-rental-backend/internal/domain"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrValidation))
		return
	}
	if err := h.system.RegisterCustomer(r.Context(), req.Username, req.Password); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, messageResponse{Message: "customer registration successful"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", domain.ErrValidation))
		return
	}
	user := h.system.Authenticate(req.Username, req.Password)
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid username or password"})
		return
	}
	token, err := h.tokens.Generate(user.Username, string(user.Role))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, Username: user.Username, Role: string(user.Role)})
}
