// Package entity contains the core business objects of the project.
package entity

import "fmt"

// DeviceType is the coarse form factor detected from a user agent.
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceTablet  DeviceType = "tablet"
	DeviceMobile  DeviceType = "mobile"
)

// Device is the best-effort fingerprint of the client that logged in.
// It is derived from a free-text user agent and must not be used as a security boundary.
type Device struct {
	Type    DeviceType `json:"type"`
	OS      string     `json:"os"`
	Browser string     `json:"browser"`
}

// String renders the fingerprint for logging.
func (d Device) String() string {
	return fmt.Sprintf("%s/%s/%s", d.Type, d.OS, d.Browser)
}
