package handlers

import (
	"net/http"

	"github.com/bombers-fc/club-manager/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.ListPayments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, payments, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PaymentHandler) GetPaymentMatrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.paymentService.GetPaymentMatrix(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, matrix, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type setPaidInput struct {
	Paid bool `json:"paid"`
}

// SetPaymentPaid toggles the paid flag of one (player, match) payment.
func (h *PaymentHandler) SetPaymentPaid(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input setPaidInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.paymentService.SetPaymentPaid(r.Context(), playerID, matchID, input.Paid)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, payment, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PaymentHandler) MarkAllPaid(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.paymentService.MarkAllPaidForPlayer(r.Context(), playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"ok": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
