package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameCaseOpenings        = "case_openings_total"
	MetricNameCaseOpeningDuration = "case_opening_duration_seconds"
	MetricNameItemsWon            = "items_won_total"
	MetricNameMoneySpent          = "money_spent_total"
	MetricNameMoneyDeposited      = "money_deposited_total"
	MetricNameCatalogCacheHits    = "catalog_cache_hits_total"
	MetricNameCatalogCacheMisses  = "catalog_cache_misses_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextCaseOpenings        = "Total number of case opening attempts by result"
	HelpTextCaseOpeningDuration = "Case opening unit of work latency in seconds"
	HelpTextItemsWon            = "Total number of items won by rarity"
	HelpTextMoneySpent          = "Total money spent opening cases"
	HelpTextMoneyDeposited      = "Total money added by demo deposits"
	HelpTextCatalogCacheHits    = "Total number of catalog cache hits"
	HelpTextCatalogCacheMisses  = "Total number of catalog cache misses"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelResult = "result"
	LabelRarity = "rarity"
)

// Opening result label values
const (
	ResultSuccess             = "success"
	ResultUserNotFound        = "user_not_found"
	ResultCaseNotFound        = "case_not_found"
	ResultInsufficientBalance = "insufficient_balance"
	ResultTransient           = "transient"
	ResultError               = "error"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// OpeningLatencyBuckets covers the opening transaction up to its timeout.
var OpeningLatencyBuckets = []float64{.002, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
