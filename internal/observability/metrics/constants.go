// Package metrics provides Prometheus collectors for weatherapp.
package metrics

// Histogram bucket parameters shared by the collectors.
const (
	// BucketStart100ms is the starting bucket for 100ms histograms (100ms to ~100s range).
	BucketStart100ms = 0.1
	// BucketStart100B is the starting bucket for 100 byte histograms.
	BucketStart100B = 100.0

	// BucketFactor2 is the common exponential growth factor of 2 for histogram buckets.
	BucketFactor2 = 2
	// BucketFactor4 grows byte-size buckets faster.
	BucketFactor4 = 4

	BucketCount8  = 8
	BucketCount10 = 10
)

// Fetch status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
