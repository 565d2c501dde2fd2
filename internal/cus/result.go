package cus

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyResponse reports a response without a JSON document.
var ErrEmptyResponse = errors.New("empty response body")

// errMissingBodies reports a JSON object without the "cus" field.
var errMissingBodies = errors.New(`payload has no "cus" field`)

// LoadKind classifies the outcome of loading the payload.
type LoadKind int

// Load outcomes.
const (
	LoadSuccess LoadKind = iota
	LoadEmptyResponse
	LoadTransportError
	LoadParseError
)

func (k LoadKind) String() string {
	switch k {
	case LoadSuccess:
		return "success"
	case LoadEmptyResponse:
		return "empty_response"
	case LoadTransportError:
		return "transport_error"
	case LoadParseError:
		return "parse_error"
	default:
		return fmt.Sprintf("LoadKind(%d)", int(k))
	}
}

// LoadResult is the outcome of fetching and decoding the payload. Bodies is
// only set for LoadSuccess; Err is set for every other kind.
type LoadResult struct {
	Kind     LoadKind
	Bodies   []RegulatoryBody
	Response FetchResponse
	Err      error
}

// OK reports whether the payload was loaded.
func (r LoadResult) OK() bool {
	return r.Kind == LoadSuccess
}

// Decode parses a response body into regulatory bodies. A blank body or a
// bare JSON null yields ErrEmptyResponse.
func Decode(body []byte) ([]RegulatoryBody, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyResponse
	}
	var envelope struct {
		Bodies *[]RegulatoryBody `json:"cus"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if envelope.Bodies == nil {
		return nil, fmt.Errorf("decode payload: %w", errMissingBodies)
	}
	return *envelope.Bodies, nil
}
