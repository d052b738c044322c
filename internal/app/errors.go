package app

import "errors"

// Error kinds. Callers wrap one of these with fmt.Errorf("%w: ...") and the
// HTTP layer only ever looks at the kind and the message text.
var (
	ErrConfiguration  = errors.New("configuration error")
	ErrInput          = errors.New("invalid input")
	ErrAuthentication = errors.New("API authentication failed")
	ErrAuthorization  = errors.New("API access forbidden")
	ErrNotFound       = errors.New("not found")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrProtocol       = errors.New("unexpected API response")
	ErrTransport      = errors.New("API request failed")
	ErrAggregation    = errors.New("could not fetch any nation data from API")
)

var errorKinds = []error{
	ErrConfiguration,
	ErrInput,
	ErrAuthentication,
	ErrAuthorization,
	ErrNotFound,
	ErrRateLimit,
	ErrAggregation,
	ErrProtocol,
	ErrTransport,
}

// KindOf returns the first error kind found in err's chain, or nil when err
// carries none of them. ErrAggregation is checked before the upstream kinds it
// usually wraps.
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
