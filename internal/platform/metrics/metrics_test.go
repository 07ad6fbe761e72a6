package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.CheckoutCreated()
	m.CheckoutCreated()
	m.WebhookEvent("checkout.session.completed", OutcomeSuccess)
	m.WebhookEvent("checkout.session.completed", OutcomeDuplicate)
	m.ImageDegraded("sigil")
	m.CacheLookup("locations", true)
	m.CacheLookup("locations", false)
	m.CacheLookup("locations", false)
	m.OperationFailed("fulfil_order", "perform")

	assert.InDelta(t, 2, testutil.ToFloat64(m.checkoutsCreated), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.webhookEvents.WithLabelValues("checkout.session.completed", OutcomeDuplicate)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.imagesDegraded.WithLabelValues("sigil")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.cacheLookups.WithLabelValues("locations", OutcomeMiss)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.operationFailures.WithLabelValues("fulfil_order", "perform")), 0)
}

func TestMetrics_FulfilmentAndQueue(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Fulfilment(OutcomeSuccess, 12*time.Second)
	m.QueueDepth(3)

	assert.InDelta(t, 1, testutil.ToFloat64(m.fulfilments.WithLabelValues(OutcomeSuccess)), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.queueDepth), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.fulfilmentDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.CheckoutCreated()
		m.WebhookEvent("x", OutcomeIgnored)
		m.Fulfilment(OutcomeFailure, time.Second)
		m.Generation(time.Second)
		m.ImageDegraded("tarot")
		m.CacheLookup("locations", true)
		m.OperationFailed("op", "validate")
		m.QueueDepth(1)
	})
}
