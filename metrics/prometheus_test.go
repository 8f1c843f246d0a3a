// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// #nosec G404
package metrics

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	families := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		families[mf.GetName()] = mf
	}
	return families
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	// 2 ways of accessing it - useful to avoid lookups
	count1 := Counter("prom_count1")
	Counter("prom_count2")
	countVect := CounterVec("prom_countVec1", []string{"zeroOrOne"})
	gauge1 := Gauge("prom_gauge1")
	gaugeVec := GaugeVec("prom_gaugeVec1", []string{"zeroOrOne"})

	count1.Add(1)
	randCount2 := rand.N(100) + 1
	for range randCount2 {
		Counter("prom_count2").Add(1)
	}

	histTotal := 0
	for i := range rand.N(100) + 2 {
		HistogramVec("prom_hist", []string{"zeroOrOne"}, BucketHTTPReqs).
			ObserveWithLabels(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		histTotal += i
	}

	totalCountVec := 0
	for i := range rand.N(100) + 2 {
		countVect.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		totalCountVec += i
	}

	totalGauge := 0
	for i := range rand.N(100) + 2 {
		gaugeVec.AddWithLabel(int64(i), map[string]string{"zeroOrOne": strconv.Itoa(i % 2)})
		gauge1.Add(int64(i))
		totalGauge += i
	}

	families := gather(t)

	require.Equal(t, float64(1), families["rewardpool_prom_count1"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(randCount2), families["rewardpool_prom_count2"].Metric[0].GetCounter().GetValue())

	sumHist := families["rewardpool_prom_hist"].Metric[0].GetHistogram().GetSampleSum() +
		families["rewardpool_prom_hist"].Metric[1].GetHistogram().GetSampleSum()
	require.Equal(t, float64(histTotal), sumHist)

	sumCountVec := families["rewardpool_prom_countVec1"].Metric[0].GetCounter().GetValue() +
		families["rewardpool_prom_countVec1"].Metric[1].GetCounter().GetValue()
	require.Equal(t, float64(totalCountVec), sumCountVec)

	require.Equal(t, float64(totalGauge), families["rewardpool_prom_gauge1"].Metric[0].GetGauge().GetValue())
	sumGaugeVec := families["rewardpool_prom_gaugeVec1"].Metric[0].GetGauge().GetValue() +
		families["rewardpool_prom_gaugeVec1"].Metric[1].GetGauge().GetValue()
	require.Equal(t, float64(totalGauge), sumGaugeVec)

	gaugeVec.SetWithLabel(7, map[string]string{"zeroOrOne": "0"})
	families = gather(t)
	for _, m := range families["rewardpool_prom_gaugeVec1"].Metric {
		if m.GetLabel()[0].GetValue() == "0" {
			require.Equal(t, float64(7), m.GetGauge().GetValue())
		}
	}
}

func TestReregistrationReusesCollector(t *testing.T) {
	InitializePrometheusMetrics()
	Counter("prom_shared").Add(2)

	// a fresh service registering the same name adopts the existing collector
	metrics = &prometheusMetrics{}
	Counter("prom_shared").Add(3)

	families := gather(t)
	require.Equal(t, float64(5), families["rewardpool_prom_shared"].Metric[0].GetCounter().GetValue())
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics() // make sure it starts in the default state of noopMeter

	for _, a := range []any{
		Gauge("noopGauge"),
		GaugeVec("noopGauge", nil),
		Counter("noopCounter"),
		CounterVec("noopCounter", nil),
		HistogramVec("noopHist", nil, nil),
	} {
		require.IsType(t, &noopMeters{}, a)
	}

	lazyGauge := LazyLoadGauge("lazyGauge")
	lazyGaugeVec := LazyLoadGaugeVec("lazyGaugeVec", nil)
	lazyCounter := LazyLoadCounter("lazyCounter")
	lazyCounterVec := LazyLoadCounterVec("lazyCounterVec", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazyHistogramVec", nil, nil)

	// after initialization, newly created metrics become of the prometheus type
	InitializePrometheusMetrics()

	require.IsType(t, &promGaugeMeter{}, lazyGauge())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promCountMeter{}, lazyCounter())
	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())
}
