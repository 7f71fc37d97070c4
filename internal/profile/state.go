package profile

import (
	"encoding/json"
	"errors"
	"time"

	"fitprofile/internal/healthstore"
)

type Status string

const (
	StatusUnauthorized Status = "unauthorized"
	StatusAuthorized   Status = "authorized"
	StatusLoaded       Status = "loaded"
	StatusUnavailable  Status = "unavailable"
)

var (
	// ErrNotAuthorized is returned when samples are loaded before authorization was requested.
	ErrNotAuthorized = errors.New("health data authorization has not been requested")
	// ErrSuperseded means the profile was reset while the load was running.
	ErrSuperseded = errors.New("profile was reset during load")
)

// State is an immutable snapshot of the profile. BMI is derived from the
// height and weight of the same snapshot when it is built and cannot be set.
type State struct {
	status     Status
	age        *int
	heightM    *float64
	weightKg   *float64
	bmi        *float64
	err        error
	loadedAt   time.Time
	generation uint64
}

func unauthorizedState() State {
	return State{status: StatusUnauthorized}
}

func authorizedState(at time.Time) State {
	return State{status: StatusAuthorized, loadedAt: at}
}

// unavailableState clears every field so nothing stale survives a failure.
func unavailableState(err error, at time.Time) State {
	return State{status: StatusUnavailable, err: err, loadedAt: at}
}

func loadedState(age *int, heightM, weightKg *float64, err error, at time.Time) State {
	st := State{
		status:   StatusLoaded,
		age:      age,
		heightM:  heightM,
		weightKg: weightKg,
		loadedAt: at,
	}
	if heightM != nil && weightKg != nil {
		bmi, bmiErr := ComputeBMI(*heightM, *weightKg)
		if bmiErr == nil {
			st.bmi = &bmi
		} else {
			err = errors.Join(err, bmiErr)
		}
	}
	st.err = err
	return st
}

func (s State) withGeneration(g uint64) State {
	s.generation = g
	return s
}

func (s State) Status() Status { return s.status }

func (s State) Age() (int, bool) {
	if s.age == nil {
		return 0, false
	}
	return *s.age, true
}

func (s State) Height() (float64, bool) {
	if s.heightM == nil {
		return 0, false
	}
	return *s.heightM, true
}

func (s State) Weight() (float64, bool) {
	if s.weightKg == nil {
		return 0, false
	}
	return *s.weightKg, true
}

func (s State) BMI() (float64, bool) {
	if s.bmi == nil {
		return 0, false
	}
	return *s.bmi, true
}

// Err is the reason fields are missing, or nil when everything loaded.
func (s State) Err() error { return s.err }

func (s State) LoadedAt() time.Time { return s.loadedAt }

// Generation increases by one for every state a Screen stores.
func (s State) Generation() uint64 { return s.generation }

const (
	reasonNotAuthorized = "not_authorized"
	reasonDenied        = "authorization_denied"
	reasonNoSample      = "no_sample"
	reasonQueryFailed   = "query_failed"
	reasonDivision      = "division_undefined"
	reasonInvalidWeight = "invalid_weight"
	reasonUnknown       = "unknown"
)

// Reason is a stable code for Err, used in API responses and the cache.
func (s State) Reason() string {
	return reasonOf(s.err)
}

func reasonOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotAuthorized):
		return reasonNotAuthorized
	case errors.Is(err, healthstore.ErrAuthorizationDenied):
		return reasonDenied
	case errors.Is(err, healthstore.ErrQueryFailed):
		return reasonQueryFailed
	case errors.Is(err, ErrDivisionUndefined):
		return reasonDivision
	case errors.Is(err, ErrInvalidWeight):
		return reasonInvalidWeight
	case errors.Is(err, healthstore.ErrNoSampleAvailable):
		return reasonNoSample
	}
	return reasonUnknown
}

func errorOf(reason string) error {
	switch reason {
	case "":
		return nil
	case reasonNotAuthorized:
		return ErrNotAuthorized
	case reasonDenied:
		return healthstore.ErrAuthorizationDenied
	case reasonNoSample:
		return healthstore.ErrNoSampleAvailable
	case reasonQueryFailed:
		return healthstore.ErrQueryFailed
	case reasonDivision:
		return ErrDivisionUndefined
	case reasonInvalidWeight:
		return ErrInvalidWeight
	}
	return errors.New(reason)
}

type stateJSON struct {
	Status     Status    `json:"status"`
	Age        *int      `json:"age"`
	HeightM    *float64  `json:"height_m"`
	WeightKg   *float64  `json:"weight_kg"`
	BMI        *float64  `json:"bmi"`
	Reason     string    `json:"reason,omitempty"`
	LoadedAt   time.Time `json:"loaded_at"`
	Generation uint64    `json:"generation"`
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{
		Status:     s.status,
		Age:        s.age,
		HeightM:    s.heightM,
		WeightKg:   s.weightKg,
		BMI:        s.bmi,
		Reason:     s.Reason(),
		LoadedAt:   s.loadedAt,
		Generation: s.generation,
	})
}

// UnmarshalJSON rebuilds the state through the same constructors, so BMI is
// recomputed from height and weight rather than trusted from the payload.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var st State
	switch raw.Status {
	case StatusLoaded:
		var err error
		if raw.Reason != reasonDivision && raw.Reason != reasonInvalidWeight {
			err = errorOf(raw.Reason)
		}
		st = loadedState(raw.Age, raw.HeightM, raw.WeightKg, err, raw.LoadedAt)
	case StatusAuthorized:
		st = authorizedState(raw.LoadedAt)
	case StatusUnavailable:
		st = unavailableState(errorOf(raw.Reason), raw.LoadedAt)
	case StatusUnauthorized:
		st = unauthorizedState()
	default:
		return errors.New("unknown profile status " + string(raw.Status))
	}

	*s = st.withGeneration(raw.Generation)
	return nil
}
