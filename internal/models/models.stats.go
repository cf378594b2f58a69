// FilePath: internal/models/models.stats.go
package models

// DeviceStats is the full aggregation payload for one device's samples
// inside a time window. Percentage maps render their values with a
// trailing "%"; averages are rounded to two decimals.
type DeviceStats struct {
	ConnectivityPerOperator    map[string]string  `json:"connectivity_per_operator"`
	ConnectivityPerNetworkType map[string]string  `json:"connectivity_per_network_type"`
	AvgSignalPerNetworkType    map[string]float64 `json:"avg_signal_per_network_type"`
	AvgSNRPerNetworkType       map[string]float64 `json:"avg_snr_per_network_type"`
	AvgSignalDevice            float64            `json:"avg_signal_device"`
}

// GlobalAverages is the reduced cross-device payload: two means over
// every sample in the window regardless of device.
type GlobalAverages struct {
	AvgSignalAllDevices float64 `json:"avg_signal_all_devices"`
	AvgSNRAllDevices    float64 `json:"avg_snr_all_devices"`
}
