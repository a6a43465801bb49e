package config

import (
	"fmt"
	"time"
)

// DeviceAdapter holds network settings used by the device's remote store
// transport.
type DeviceAdapter struct {
	// BaseURL is the remote store endpoint used by the device.
	BaseURL string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// DeviceStorage groups the device's local storage settings.
type DeviceStorage struct {
	// DBPath is the SQLite file backing the local store.
	DBPath string
}

// DeviceServer holds the ephemeral local server's bind settings.
type DeviceServer struct {
	// Address is the host:port the local HTTP server binds to. The
	// realtime channel listens on port+1.
	Address string
}

// DeviceWorkers contains background worker settings for the device.
type DeviceWorkers struct {
	// SyncInterval defines how often the periodic sync pass runs.
	SyncInterval time.Duration
	// PurgeRetention is the tombstone retention window for the sweep.
	PurgeRetention time.Duration
}

// DeviceConfig is the top-level device-daemon configuration assembled from
// [StructuredConfig].
type DeviceConfig struct {
	// Adapter contains remote store transport settings.
	Adapter DeviceAdapter
	// Storage contains local store settings.
	Storage DeviceStorage
	// Server contains local server bind settings.
	Server DeviceServer
	// Workers contains background job settings.
	Workers DeviceWorkers
}

// GetDeviceConfig builds and validates a device-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the device runtime, and validates the resulting
// [DeviceConfig].
func GetDeviceConfig() (*DeviceConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	deviceCfg := &DeviceConfig{
		Adapter: DeviceAdapter{
			BaseURL:        cfg.Device.ServerURL,
			RequestTimeout: cfg.Device.RequestTimeout,
		},
		Storage: DeviceStorage{
			DBPath: cfg.Device.LocalDBPath,
		},
		Server: DeviceServer{
			Address: cfg.Device.LocalAddress,
		},
		Workers: DeviceWorkers{
			SyncInterval:   cfg.Device.SyncInterval,
			PurgeRetention: cfg.Device.PurgeRetention,
		},
	}

	return deviceCfg, deviceCfg.validate()
}
