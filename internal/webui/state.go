// Package webui holds the browser page: its state machine, the view derived
// from a state and the embedded template and script.
package webui

import (
	"errors"
	"time"

	"news_monitor/internal/models"
)

// Status of the page.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Messages shown by the page.
const (
	ListErrorMessage    = "No se pudieron obtener las noticias."
	GenericErrorMessage = "Ocurrió un error inesperado."
)

// ErrNoPendingLoad is returned when a result arrives without an outstanding load.
var ErrNoPendingLoad = errors.New("no pending load")

// State is the whole UI state of one page session. Transitions return a new
// State and never modify the receiver.
type State struct {
	Status    Status
	Items     []models.NewsItem
	Err       string
	UpdatedAt time.Time
	Pending   int
}

// Initial is the state on mount, before the first load starts.
func Initial() State {
	return State{Status: StatusIdle}
}

// Load starts a listing request: on mount or on "Actualizar noticias".
func (s State) Load() State {
	s.Status = StatusLoading
	s.Err = ""
	s.Pending++
	return s
}

// Resolve applies a successful listing response received at the given time.
// Overlapping requests are not guarded: whichever resolves last wins.
func (s State) Resolve(items []models.NewsItem, at time.Time) (State, error) {
	if s.Pending == 0 {
		return s, ErrNoPendingLoad
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	s.Pending--
	s.Status = StatusSuccess
	s.Items = items
	s.UpdatedAt = at
	return s, nil
}

// Reject applies a failed listing request. An empty message becomes GenericErrorMessage.
// Items and UpdatedAt of the last success are kept.
func (s State) Reject(msg string) (State, error) {
	if s.Pending == 0 {
		return s, ErrNoPendingLoad
	}
	if msg == "" {
		msg = GenericErrorMessage
	}
	s.Pending--
	s.Status = StatusError
	s.Err = msg
	return s, nil
}
