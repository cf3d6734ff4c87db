package handler

import (
	"net/http"
	"time"

	"clinic-booking-api/internal/httpx"
	"clinic-booking-api/internal/slotgen"
)

type slotDTO struct {
	ID       string          `json:"id"`
	StartAt  time.Time       `json:"startAt"`
	EndAt    time.Time       `json:"endAt"`
	IsBooked bool            `json:"isBooked"`
	Booking  *slotBookingDTO `json:"booking"`
}

type slotBookingDTO struct {
	ID     string  `json:"id"`
	UserID string  `json:"userId"`
	User   userDTO `json:"user"`
}

// ListSlots serves GET /api/slots?from&to. Defaults cover the rolling booking
// horizon starting now.
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from := now
	to := now.AddDate(0, 0, slotgen.HorizonDays)

	var ok bool
	if v := r.URL.Query().Get("from"); v != "" {
		if from, ok = parseTimeParam(v); !ok {
			httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid 'from' parameter")
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, ok = parseTimeParam(v); !ok {
			httpx.Error(w, http.StatusBadRequest, httpx.CodeValidation, "invalid 'to' parameter")
			return
		}
	}

	slots, err := h.store.ListSlots(r.Context(), from, to)
	if err != nil {
		storeError(w, err)
		return
	}

	out := make([]slotDTO, len(slots))
	for i, s := range slots {
		dto := slotDTO{ID: s.ID, StartAt: s.StartAt, EndAt: s.EndAt}
		if s.Booking != nil {
			dto.IsBooked = true
			dto.Booking = &slotBookingDTO{
				ID:     s.Booking.ID,
				UserID: s.Booking.UserID,
				User:   userDTO{ID: s.Booking.User.ID, Name: s.Booking.User.Name, Email: s.Booking.User.Email},
			}
		}
		out[i] = dto
	}
	httpx.JSON(w, http.StatusOK, out)
}

// accepts RFC 3339 or a bare date
func parseTimeParam(v string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", v, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
