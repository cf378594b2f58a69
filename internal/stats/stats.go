// FilePath: internal/stats/stats.go

// Package stats reduces a window of samples to the grouped statistics
// payload. Everything here is pure: no storage, no clock, no ordering
// assumptions on the input.
package stats

import (
	"math"
	"strconv"
	"strings"

	"github.com/netcellhq/netcell-hub/internal/models"
)

// groupAccumulator collects one grouping key's running totals in a single
// pass over the input.
type groupAccumulator struct {
	count     int
	signalSum float64
	snrSum    float64
}

// Aggregate computes the full statistics payload over samples. The input
// must be non-empty; callers signal NoData before getting here, so the
// divisions below never see a zero total.
//
// Grouping runs over two independent keys (operator and network type)
// rather than their cross product, keeping the payload bounded: carrier
// share and radio-technology quality are reported separately.
func Aggregate(samples []models.Sample) models.DeviceStats {
	total := len(samples)

	operatorCounts := make(map[string]int)
	networkAcc := make(map[string]*groupAccumulator)
	var signalSum float64

	for _, s := range samples {
		operatorCounts[s.Operator]++

		acc := networkAcc[s.NetworkType]
		if acc == nil {
			acc = &groupAccumulator{}
			networkAcc[s.NetworkType] = acc
		}
		acc.count++
		acc.signalSum += float64(s.SignalPower)
		acc.snrSum += s.SNR

		signalSum += float64(s.SignalPower)
	}

	payload := models.DeviceStats{
		ConnectivityPerOperator:    make(map[string]string, len(operatorCounts)),
		ConnectivityPerNetworkType: make(map[string]string, len(networkAcc)),
		AvgSignalPerNetworkType:    make(map[string]float64, len(networkAcc)),
		AvgSNRPerNetworkType:       make(map[string]float64, len(networkAcc)),
		AvgSignalDevice:            Round2(signalSum / float64(total)),
	}

	for op, count := range operatorCounts {
		payload.ConnectivityPerOperator[op] = FormatPercent(float64(count) / float64(total) * 100)
	}
	for nt, acc := range networkAcc {
		payload.ConnectivityPerNetworkType[nt] = FormatPercent(float64(acc.count) / float64(total) * 100)
		payload.AvgSignalPerNetworkType[nt] = Round2(acc.signalSum / float64(acc.count))
		payload.AvgSNRPerNetworkType[nt] = Round2(acc.snrSum / float64(acc.count))
	}

	return payload
}

// Round2 rounds to two decimal places. One rule for every percentage and
// average in the payload.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPercent renders a percentage share with at most two decimals and
// at least one, plus the literal "%" suffix: 50 -> "50.0%",
// 33.333 -> "33.33%", 12.5 -> "12.5%".
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(Round2(v), 'f', 2, 64)
	if strings.HasSuffix(s, "0") {
		s = s[:len(s)-1]
	}
	return s + "%"
}
