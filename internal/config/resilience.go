package config

import "time"

// Upstream request configuration
const (
	// APIRequestDelay is slept before every request to stay under the provider's implicit rate limit
	APIRequestDelay = 100 * time.Millisecond
	// APIRateLimitBackoff is slept after a 429 before the single retry
	APIRateLimitBackoff = 5 * time.Second
	APIRequestTimeout   = 30 * time.Second
	// NationsPageSize is the number of nations requested per page
	NationsPageSize = 500
)

// Search configuration
const (
	DefaultTargetLimit = 10
	DefaultMaxPages    = 10
	// MaxTargetLimit and MaxSearchPages bound what a single request may ask for
	MaxTargetLimit = 100
	MaxSearchPages = 5 * DefaultMaxPages
	MinScoreRatio      = 0.75
	MaxScoreRatio      = 1.5
)

// Per-requester search quota
const (
	SearchQuotaMaxRequests = 10
	SearchQuotaWindow      = 24 * time.Hour
)

// RequestConfig defines pacing and retry behaviour for upstream API calls
type RequestConfig struct {
	Delay         time.Duration
	RateLimitWait time.Duration
	Timeout       time.Duration
	PageSize      int
}

// SearchConfig defines how far a target search may page
type SearchConfig struct {
	Limit    int
	MaxPages int
}

// QuotaConfig defines the rolling per-requester search quota
type QuotaConfig struct {
	MaxRequests int
	Window      time.Duration
}

// ResilienceConfig contains all request, search and quota settings
type ResilienceConfig struct {
	APIRequest RequestConfig
	Search     SearchConfig
	Quota      QuotaConfig
}

// DefaultResilienceConfig provides sensible defaults
var DefaultResilienceConfig = ResilienceConfig{
	APIRequest: RequestConfig{
		Delay:         APIRequestDelay,
		RateLimitWait: APIRateLimitBackoff,
		Timeout:       APIRequestTimeout,
		PageSize:      NationsPageSize,
	},
	Search: SearchConfig{
		Limit:    DefaultTargetLimit,
		MaxPages: DefaultMaxPages,
	},
	Quota: QuotaConfig{
		MaxRequests: SearchQuotaMaxRequests,
		Window:      SearchQuotaWindow,
	},
}

// WithDefaults fills zero or negative fields from DefaultResilienceConfig.Search
func (s SearchConfig) WithDefaults() SearchConfig {
	if s.Limit <= 0 {
		s.Limit = DefaultResilienceConfig.Search.Limit
	}
	if s.MaxPages <= 0 {
		s.MaxPages = DefaultResilienceConfig.Search.MaxPages
	}
	return s
}
