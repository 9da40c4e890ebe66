// Package apimsg normalizes operation failures into user-facing messages:
// the server-supplied message when the failure carried one, a fixed
// per-operation fallback otherwise.
package apimsg

import (
	"errors"

	"github.com/studyhub-app/studyhub-go/rest"
)

// Or returns the API error message embedded in err, or fallback when err
// has none.
func Or(err error, fallback string) string {
	var apiErr *rest.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
