package driven

// MetricsRecorder receives service-level events.
// It is optional; services accept nil and skip recording.
type MetricsRecorder interface {
	// AnalysisCompleted records a successful analysis of n tokens.
	AnalysisCompleted(n int)

	// AnalysisRejected records a validation failure by reason
	// ("empty", "too_long" or "no_ingredients").
	AnalysisRejected(reason string)

	// AffiliateClick records a redirect to retailer.
	AffiliateClick(retailer string)
}
