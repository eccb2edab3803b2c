package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/channels/{id}/next-slot", 0, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/channels/{id}/next-slot", http.StatusOK, 20*time.Millisecond)
	m.SlotLookup(true)
	m.SlotLookup(false)
	m.SlotLookup(false)
	m.Booking("ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/channels/{id}/next-slot", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotLookups.WithLabelValues("found")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotLookups.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues("ok")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "studio_slot_lookups_total")
}
