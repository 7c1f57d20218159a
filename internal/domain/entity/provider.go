package entity

import "strings"

// Provider is an external OAuth identity source.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderKakao  Provider = "kakao"
	ProviderNaver  Provider = "naver"

	// ProviderLocal marks email/password flows in logs and metrics. It is never stored on a user.
	ProviderLocal Provider = "local"
)

// String returns the string representation of the Provider.
func (p Provider) String() string {
	return string(p)
}

// IsSocial reports whether p is one of the supported OAuth providers.
func (p Provider) IsSocial() bool {
	switch p {
	case ProviderGoogle, ProviderKakao, ProviderNaver:
		return true
	default:
		return false
	}
}

// ParseProvider normalizes a provider name; ok is false for unsupported providers.
func ParseProvider(s string) (Provider, bool) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))

	return p, p.IsSocial()
}
