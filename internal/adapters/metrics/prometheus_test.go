package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector(map[string]string{"host": "test"})

	c.OnSendError(errors.New("refused"), 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.flushes.WithLabelValues("error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.pending))

	c.OnSendSuccess(4, 15*time.Millisecond)
	assert.Equal(t, 4.0, testutil.ToFloat64(c.recordsSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.flushes.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.pending))

	c.OnErrorsReported(make([]error, 5))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.errorReports))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector(nil)
	require.NoError(t, c.TrackQueue(func() int { return 7 }))
	c.OnSendSuccess(2, time.Millisecond)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, "gelfship_records_sent_total 2"))
	assert.True(t, strings.Contains(text, "gelfship_queued_events 7"))
}

func TestCollector_TrackQueueTwice(t *testing.T) {
	c := NewCollector(nil)
	require.NoError(t, c.TrackQueue(func() int { return 0 }))
	assert.Error(t, c.TrackQueue(func() int { return 0 }))
}

func TestCollector_QueueGaugeCarriesConstLabels(t *testing.T) {
	c := NewCollector(map[string]string{"host": "web-1"})
	require.NoError(t, c.TrackQueue(func() int { return 3 }))

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			assert.Equal(t, "web-1", labels["host"], mf.GetName())
		}
	}

	expected := `
# HELP gelfship_queued_events events waiting in the event channel.
# TYPE gelfship_queued_events gauge
gelfship_queued_events{host="web-1"} 3
`
	assert.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "gelfship_queued_events"))
}

func TestCollector_RecordsSentHelp(t *testing.T) {
	c := NewCollector(nil)
	c.OnSendSuccess(2, time.Millisecond)

	expected := `
# HELP gelfship_records_sent_total records in successfully delivered batches, including records the formatter skipped.
# TYPE gelfship_records_sent_total counter
gelfship_records_sent_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "gelfship_records_sent_total"))
}
