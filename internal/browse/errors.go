package browse

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/glabrego/rickmorty-cli/internal/catalog"
)

// Describe turns a catalog error into a message fit for the status line.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var netErr *catalog.NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "The catalog did not answer in time. Press r to retry."
		}
		return "Could not reach the catalog. Check your connection and press r to retry."
	}

	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusNotFound {
			return "Page not found in the catalog."
		}
		if apiErr.Message != "" {
			return fmt.Sprintf("Catalog error (%d): %s", apiErr.Status, apiErr.Message)
		}
		return fmt.Sprintf("Catalog error (%d)", apiErr.Status)
	}

	var parseErr *catalog.ParseError
	if errors.As(err, &parseErr) {
		return "The catalog sent an unexpected response."
	}

	return err.Error()
}
