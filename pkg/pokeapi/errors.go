package pokeapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kerbaras/pokedex/pkg/utils"
)

// FetchError carries the URL and status of a non-2xx upstream response.
type FetchError = utils.FetchError

// ParseError reports a response that decoded but failed validation.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err comes from a 404 upstream response.
func IsNotFound(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound
}
