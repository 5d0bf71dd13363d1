package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveDB(t *testing.T) {
	m := New("clinic", prometheus.NewRegistry())

	m.ObserveDB("insert patient", time.Now(), nil)
	m.ObserveDB("insert patient", time.Now(), errors.New("boom"))
	m.ObserveDB("insert patient", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("insert patient", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DatabaseOperations.WithLabelValues("insert patient", "error")))
}

func TestObserveDBOnNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveDB("select", time.Now(), nil) })
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("clinic", reg)
	m.RequestsTotal.WithLabelValues("GET", "/api/v1/patients", "200").Inc()

	families, err := reg.Gather()
	assert.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "clinic_http_requests_total")
}
