// Package query validates list-endpoint query strings before any store
// access, so a non-numeric limit or a malformed flag is reported to the
// client instead of surfacing as a store-layer type error.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/marektacina/task-manager/internal/validate"
)

// Params are the recognized list-query parameters. All of them are optional;
// which ones a given endpoint actually applies is up to its handler.
type Params struct {
	Text     *string  `json:"text" validate:"omitempty,min=3"`
	Limit    *int64   `json:"limit" validate:"omitempty,min=1"`
	FieldID  *string  `json:"fieldID" validate:"omitempty,min=5"`
	Priority *float64 `json:"priority"`
	IsDone   *bool    `json:"isDone"`
}

var allowedKeys = map[string]bool{
	"text":     true,
	"limit":    true,
	"fieldID":  true,
	"priority": true,
	"isDone":   true,
}

// Parse converts raw query values into typed parameters. The returned error
// message is safe to show to clients.
func Parse(values url.Values) (Params, error) {
	var p Params

	for key := range values {
		if !allowedKeys[key] {
			return p, fmt.Errorf("%q is not allowed", key)
		}
	}

	if raw := values.Get("text"); raw != "" {
		p.Text = &raw
	}
	if raw := values.Get("fieldID"); raw != "" {
		p.FieldID = &raw
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, errors.New(`"limit" must be a number`)
		}
		p.Limit = &n
	}
	if raw := values.Get("priority"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, errors.New(`"priority" must be a number`)
		}
		p.Priority = &f
	}
	if raw := values.Get("isDone"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return p, errors.New(`"isDone" must be a boolean`)
		}
		p.IsDone = &b
	}

	if err := validate.Struct(p); err != nil {
		return p, err
	}
	return p, nil
}
