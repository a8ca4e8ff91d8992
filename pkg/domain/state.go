package domain

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Recognized top-level state keys.
const (
	KeyConfiguration = "configuration"
	KeyReferences    = "references"
	KeyData          = "data"
	KeyResponse      = "response"
)

// Configuration holds the connection settings of the target system.
// Operations read it and never modify it.
type Configuration struct {
	BaseURL  string            `json:"baseUrl,omitempty" yaml:"baseUrl" mapstructure:"baseUrl"`
	Username string            `json:"username,omitempty" yaml:"username" mapstructure:"username"`
	Password string            `json:"password,omitempty" yaml:"password" mapstructure:"password"`
	Headers  map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" mapstructure:"headers"`
}

// Response is the result of the most recent HTTP call.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`

	// Body and Data both carry the decoded payload. Body mirrors the
	// request-library shape, Data the promise-client shape.
	Body any `json:"body,omitempty"`
	Data any `json:"data,omitempty"`
}

// State is the record threaded through an operation sequence.
type State struct {
	// Configuration is read-only for every operation.
	Configuration *Configuration

	// References holds prior payloads, most recent first.
	References []any

	// Data is the primary payload of the last completed operation.
	Data any

	// Response is the result of the most recent HTTP call, if any.
	Response *Response

	// Extras holds caller-supplied keys outside the recognized set.
	// They are carried through untouched.
	Extras map[string]any
}

// NewState returns the default seed: no references and no data.
func NewState() *State {
	return &State{
		References: []any{},
	}
}

// Clone returns a copy that shares no slice or map with s.
// Payload values themselves are shared; operations treat them as immutable.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	if s.References != nil {
		next.References = slices.Clone(s.References)
	}
	if s.Extras != nil {
		next.Extras = maps.Clone(s.Extras)
	}
	return &next
}

// Validate checks that Extras does not shadow a recognized key.
func (s *State) Validate() error {
	if s == nil {
		return ErrNilState
	}
	for k := range s.Extras {
		if isReserved(k) {
			return fmt.Errorf("%w: %q", ErrReservedKey, k)
		}
	}
	return nil
}

// Config returns the configuration or ErrMissingConfiguration.
func (s *State) Config() (*Configuration, error) {
	if s == nil {
		return nil, ErrNilState
	}
	if s.Configuration == nil {
		return nil, ErrMissingConfiguration
	}
	return s.Configuration, nil
}

// MarshalJSON flattens Extras next to the recognized keys.
func (s *State) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extras)+4)
	for k, v := range s.Extras {
		if !isReserved(k) {
			out[k] = v
		}
	}
	if s.Configuration != nil {
		out[KeyConfiguration] = s.Configuration
	}
	refs := s.References
	if refs == nil {
		refs = []any{}
	}
	out[KeyReferences] = refs
	out[KeyData] = s.Data
	if s.Response != nil {
		out[KeyResponse] = s.Response
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the recognized keys into their fields and keeps the
// rest in Extras.
func (s *State) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var next State
	for k, v := range raw {
		var err error
		switch k {
		case KeyConfiguration:
			if string(v) != "null" {
				next.Configuration = &Configuration{}
				err = json.Unmarshal(v, next.Configuration)
			}
		case KeyReferences:
			err = json.Unmarshal(v, &next.References)
		case KeyData:
			err = json.Unmarshal(v, &next.Data)
		case KeyResponse:
			if string(v) != "null" {
				next.Response = &Response{}
				err = json.Unmarshal(v, next.Response)
			}
		default:
			var val any
			err = json.Unmarshal(v, &val)
			if next.Extras == nil {
				next.Extras = make(map[string]any)
			}
			next.Extras[k] = val
		}
		if err != nil {
			return fmt.Errorf("state key %q: %w", k, err)
		}
	}
	*s = next
	return nil
}

func isReserved(key string) bool {
	switch key {
	case KeyConfiguration, KeyReferences, KeyData, KeyResponse:
		return true
	}
	return false
}
