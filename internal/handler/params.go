package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"pnw_targets/internal/app"
	"pnw_targets/internal/config"
	"pnw_targets/internal/processing"
)

var errMissingNationID = fmt.Errorf("%w: Nation ID is required. Please enter a Nation ID.", app.ErrInput)

// parseNationID reads nation_id from the form body or query string
func parseNationID(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.FormValue("nation_id"))
	if raw == "" {
		return 0, errMissingNationID
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: Invalid Nation ID format. Please enter a number.", app.ErrInput)
	}
	return id, nil
}

// parseSearchOptions reads the optional limit and max_pages overrides.
// Values above config.MaxTargetLimit and config.MaxSearchPages are rejected.
func parseSearchOptions(r *http.Request) (processing.SearchOptions, error) {
	var opts processing.SearchOptions
	var err error

	if opts.Limit, err = optionalPositive(r, "limit", config.MaxTargetLimit); err != nil {
		return opts, err
	}
	if opts.MaxPages, err = optionalPositive(r, "max_pages", config.MaxSearchPages); err != nil {
		return opts, err
	}
	return opts, nil
}

func optionalPositive(r *http.Request, name string, upper int) (int, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number.", app.ErrInput, name)
	}
	if v > upper {
		return 0, fmt.Errorf("%w: %s must be at most %d.", app.ErrInput, name, upper)
	}
	return v, nil
}

// inputMessage strips the error kind prefix from an input error
func inputMessage(err error) string {
	return strings.TrimPrefix(err.Error(), app.ErrInput.Error()+": ")
}

// capitalize upper-cases the first letter of a message shown to the caller
func capitalize(msg string) string {
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
