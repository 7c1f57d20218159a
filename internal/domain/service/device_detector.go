package service

import "playground/internal/domain/entity"

// DeviceDetector classifies the client from its user agent string.
type DeviceDetector interface {
	Detect(userAgent string) entity.Device
}
