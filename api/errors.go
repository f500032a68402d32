package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
)

// Error is a failed call to the backend: either a non-2xx response or a
// transport failure (Status 0).
type Error struct {
	Status   int    // HTTP status, 0 if no response was received
	Detail   string // the response's detail field, verbatim
	Fallback string // generic message of the call
	Err      error  // transport error, if any
}

// UserMessage is the text to display: the backend's detail when present,
// the generic message of the call otherwise.
func (e *Error) UserMessage() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Fallback
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Fallback, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s (%d %s)", e.Detail, e.Status, http.StatusText(e.Status))
	default:
		return fmt.Sprintf("%s (%d %s)", e.Fallback, e.Status, http.StatusText(e.Status))
	}
}

func (e *Error) Unwrap() error { return e.Err }

// detailOf extracts the detail field from an error body. Non-string details
// (e.g. validation error lists) are returned as their JSON text.
func detailOf(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return ""
	}
	d, err := jsonpath.Get("$.detail", v)
	if err != nil {
		return ""
	}
	switch d := d.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
