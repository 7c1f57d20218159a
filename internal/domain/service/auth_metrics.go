package service

// AuthMetrics records authentication outcomes.
type AuthMetrics interface {
	RecordSignup(provider, result string)
	RecordLogin(provider, result string)
	RecordTokenRefresh(result string)
	RecordPurged(kind string, count int64)
}
