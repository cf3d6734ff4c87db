package handler

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"clinic-booking-api/internal/httpx"
	"clinic-booking-api/internal/logger"
	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/store"
)

type Handler struct {
	store      *store.Store
	secret     string
	refreshTTL time.Duration
}

func New(st *store.Store, secret string, refreshTTL time.Duration) *Handler {
	return &Handler{store: st, secret: secret, refreshTTL: refreshTTL}
}

// ----- response shapes -----

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type slotRefDTO struct {
	ID      string    `json:"id"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

type bookingDTO struct {
	ID        string     `json:"id"`
	SlotID    string     `json:"slotId"`
	UserID    string     `json:"userId"`
	Slot      slotRefDTO `json:"slot"`
	User      userDTO    `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toUserDTO(u *model.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func toBookingDTO(b *model.Booking) bookingDTO {
	return bookingDTO{
		ID:        b.ID,
		SlotID:    b.SlotID,
		UserID:    b.UserID,
		Slot:      slotRefDTO{ID: b.Slot.ID, StartAt: b.Slot.StartAt, EndAt: b.Slot.EndAt},
		User:      userDTO{ID: b.User.ID, Name: b.User.Name, Email: b.User.Email},
		CreatedAt: b.CreatedAt,
	}
}

// storeError maps store sentinels onto the wire envelope; anything else is
// logged and hidden behind a 500.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrSlotNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeSlotNotFound, "slot not found")
	case errors.Is(err, store.ErrSlotTaken):
		httpx.Error(w, http.StatusConflict, httpx.CodeSlotTaken, "this slot is already booked")
	case errors.Is(err, store.ErrSlotExpired):
		httpx.Error(w, http.StatusBadRequest, httpx.CodeSlotExpired, "cannot book slots in the past")
	case errors.Is(err, store.ErrNotFound):
		httpx.Error(w, http.StatusNotFound, httpx.CodeNotFound, "not found")
	default:
		logger.Log.Error("store", zap.Error(err))
		httpx.Error(w, http.StatusInternalServerError, httpx.CodeInternal, "internal error")
	}
}
