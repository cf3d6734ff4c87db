package handler

import (
	"net/http"

	"clinic-booking-api/internal/httpx"
	"clinic-booking-api/internal/middleware"
)

// Book serves POST /api/book. Exactly one of N concurrent requests for the
// same slot gets a 201; the rest see SLOT_TAKEN.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SlotID string `json:"slotId"`
	}
	if err := httpx.Decode(w, r, &req); err != nil {
		return
	}
	if req.SlotID == "" {
		httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "slot ID is required")
		return
	}

	u := middleware.UserFromContext(r.Context())
	bk, err := h.store.BookSlot(r.Context(), req.SlotID, u.ID)
	if err != nil {
		storeError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toBookingDTO(bk))
}

func (h *Handler) MyBookings(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	h.listBookings(w, r, u.ID)
}

func (h *Handler) AllBookings(w http.ResponseWriter, r *http.Request) {
	h.listBookings(w, r, "")
}

func (h *Handler) listBookings(w http.ResponseWriter, r *http.Request, userID string) {
	bookings, err := h.store.ListBookings(r.Context(), userID)
	if err != nil {
		storeError(w, err)
		return
	}

	out := make([]bookingDTO, len(bookings))
	for i := range bookings {
		out[i] = toBookingDTO(&bookings[i])
	}
	httpx.JSON(w, http.StatusOK, out)
}
