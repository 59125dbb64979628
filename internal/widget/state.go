// Package widget holds the BTC price widget state machine and its display model.
package widget

// Status represents the state of the widget.
type Status string

// Status values for the widget lifecycle.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusIdle, StatusLoading, StatusSuccess, StatusError:
		return true
	}
	return false
}

// Quote is the fetched price and its display-formatted timestamp.
type Quote struct {
	RateUSD   float64 `json:"rate_usd"`
	UpdatedAt string  `json:"updated_at"`
}

// IsZero reports whether q carries no quote.
func (q Quote) IsZero() bool {
	return q.RateUSD == 0 && q.UpdatedAt == ""
}

// State is the value held by the store slice.
type State struct {
	Status Status `json:"status"`
	Quote  Quote  `json:"quote"`
}

// Normalize returns s with an empty status mapped to idle.
func (s State) Normalize() State {
	if !s.Status.Valid() {
		s.Status = StatusIdle
	}
	return s
}

// ActionType names a widget transition.
type ActionType string

// Action types dispatched to Reduce.
const (
	ActionFetchStarted   ActionType = "fetch_started"
	ActionFetchSucceeded ActionType = "fetch_succeeded"
	ActionFetchFailed    ActionType = "fetch_failed"
	ActionCleared        ActionType = "cleared"
)

// Action is a transition request. Quote is only read for ActionFetchSucceeded.
type Action struct {
	Type  ActionType
	Quote Quote
}

// FetchStarted marks the start of a fetch.
func FetchStarted() Action { return Action{Type: ActionFetchStarted} }

// FetchSucceeded carries a freshly fetched quote.
func FetchSucceeded(q Quote) Action { return Action{Type: ActionFetchSucceeded, Quote: q} }

// FetchFailed marks a failed fetch.
func FetchFailed() Action { return Action{Type: ActionFetchFailed} }

// Cleared resets the widget.
func Cleared() Action { return Action{Type: ActionCleared} }

// Reduce applies a to s and returns the next state. Unknown actions leave s unchanged.
func Reduce(s State, a Action) State {
	s = s.Normalize()
	switch a.Type {
	case ActionFetchStarted:
		s.Status = StatusLoading
	case ActionFetchSucceeded:
		s.Status = StatusSuccess
		s.Quote = a.Quote
	case ActionFetchFailed:
		s.Status = StatusError
		s.Quote = Quote{}
	case ActionCleared:
		s = State{Status: StatusIdle}
	}
	return s
}
