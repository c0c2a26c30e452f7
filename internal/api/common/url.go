package common

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetAndValidateURLParam extracts, decodes, and validates a URL parameter from the request.
// The decoded value must be non-blank and must not contain whitespace.
func GetAndValidateURLParam(r *http.Request, paramName string) (string, error) {
	decoded, err := url.PathUnescape(chi.URLParam(r, paramName))
	if err != nil {
		return "", fmt.Errorf("invalid URL encoding in %s", paramName)
	}

	if strings.TrimSpace(decoded) == "" {
		return "", fmt.Errorf("%s cannot be empty", paramName)
	}
	if strings.ContainsAny(decoded, " \t\n\r") {
		return "", fmt.Errorf("%s cannot contain whitespace", paramName)
	}

	return decoded, nil
}

// SingleQueryParam returns the name and value of the only non-empty parameter among names.
// It fails when none or more than one of them is set.
func SingleQueryParam(r *http.Request, names ...string) (string, string, error) {
	query := r.URL.Query()

	var found []string
	for _, name := range names {
		if query.Get(name) != "" {
			found = append(found, name)
		}
	}

	switch len(found) {
	case 0:
		return "", "", fmt.Errorf("one of the query parameters %s is required", strings.Join(names, ", "))
	case 1:
		return found[0], query.Get(found[0]), nil
	default:
		return "", "", fmt.Errorf("only one of the query parameters %s may be given", strings.Join(found, ", "))
	}
}
