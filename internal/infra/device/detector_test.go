package device

import (
	"testing"

	"playground/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestDetector_Detect(t *testing.T) {
	detector := NewDetector()

	tests := []struct {
		name        string
		userAgent   string
		wantType    entity.DeviceType
		wantBrowser string
	}{
		{
			name:        "windows chrome",
			userAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			wantType:    entity.DeviceDesktop,
			wantBrowser: "Chrome",
		},
		{
			name:        "iphone safari",
			userAgent:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			wantType:    entity.DeviceMobile,
			wantBrowser: "Safari",
		},
		{
			name:        "android phone",
			userAgent:   "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			wantType:    entity.DeviceMobile,
			wantBrowser: "Chrome",
		},
		{
			name:        "ipad",
			userAgent:   "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			wantType:    entity.DeviceTablet,
			wantBrowser: "Safari",
		},
		{
			name:        "android tablet",
			userAgent:   "Mozilla/5.0 (Linux; Android 13; SM-X710) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			wantType:    entity.DeviceTablet,
			wantBrowser: "Chrome",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.Detect(tt.userAgent)
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantBrowser, got.Browser)
			assert.NotEmpty(t, got.OS)
		})
	}
}

func TestDetector_WindowsOS(t *testing.T) {
	got := NewDetector().Detect("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	assert.Equal(t, "Windows", got.OS)
}

func TestDetector_EmptyAgent(t *testing.T) {
	got := NewDetector().Detect("  ")
	assert.Equal(t, entity.Device{Type: entity.DeviceDesktop, OS: unknown, Browser: unknown}, got)
}
