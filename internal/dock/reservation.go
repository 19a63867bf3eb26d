package dock

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

var ErrReservationReleased = errors.New("edge reservation already released")

// StrutTarget publishes a strut for a window. Publishing the zero strut
// must clear the reservation.
type StrutTarget interface {
	SetStrut(Strut) error
}

// Reservation is a published edge reservation. It must be released before
// the window goes away so other windows can reclaim the space.
type Reservation struct {
	target   StrutTarget
	current  Strut
	released bool
	mu       sync.Mutex
}

// Reserve publishes strut on target and returns the handle that clears it.
func Reserve(target StrutTarget, strut Strut) (*Reservation, error) {
	if err := target.SetStrut(strut); err != nil {
		return nil, fmt.Errorf("failed to reserve edge: %w", err)
	}

	log.Printf("[DOCK] Reserved strut %v", strut)
	return &Reservation{target: target, current: strut}, nil
}

// Update republishes a new strut, e.g. after the screen was resized.
func (r *Reservation) Update(strut Strut) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReservationReleased
	}
	if strut == r.current {
		return nil
	}

	if err := r.target.SetStrut(strut); err != nil {
		return fmt.Errorf("failed to update edge reservation: %w", err)
	}
	r.current = strut
	log.Printf("[DOCK] Updated strut %v", strut)
	return nil
}

// Current returns the published strut, which is zero once released.
func (r *Reservation) Current() Strut {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Release zeroes the reservation. Only the first call has an effect.
func (r *Reservation) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return nil
	}
	r.released = true
	r.current = Strut{}

	if err := r.target.SetStrut(Strut{}); err != nil {
		return fmt.Errorf("failed to release edge reservation: %w", err)
	}
	log.Printf("[DOCK] Released strut")
	return nil
}
