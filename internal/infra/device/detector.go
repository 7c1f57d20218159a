// Package device turns user agent strings into coarse device fingerprints.
package device

import (
	"strings"

	"playground/internal/domain/entity"
	"playground/internal/domain/service"

	"github.com/mssola/useragent"
)

const unknown = "unknown"

type uaDetector struct{}

// NewDetector returns a user-agent based DeviceDetector.
func NewDetector() service.DeviceDetector {
	return uaDetector{}
}

// Detect classifies the agent. Unparseable agents report an unknown desktop.
func (uaDetector) Detect(userAgent string) entity.Device {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return entity.Device{Type: entity.DeviceDesktop, OS: unknown, Browser: unknown}
	}

	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()

	return entity.Device{
		Type:    deviceType(ua, userAgent),
		OS:      orUnknown(ua.OSInfo().Name),
		Browser: orUnknown(browser),
	}
}

func deviceType(ua *useragent.UserAgent, raw string) entity.DeviceType {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "ipad"), strings.Contains(lower, "tablet"):
		return entity.DeviceTablet
	// Android tablets omit the "Mobile" token.
	case strings.Contains(lower, "android") && !strings.Contains(lower, "mobile"):
		return entity.DeviceTablet
	case ua.Mobile():
		return entity.DeviceMobile
	default:
		return entity.DeviceDesktop
	}
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unknown
	}

	return s
}
