package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() *settings {
	return newSettings(WithNamespace("test"), WithRegistry(prometheus.NewRegistry()))
}

func TestUsageMetrics(t *testing.T) {
	s := testSettings()
	u := newUsageMetrics(s, "rpc")

	u.UsedAll(time.Now(), "repository.count")(nil)
	u.UsedAll(time.Now(), "repository.count")(errors.New("boom"))
	u.Inc("repository.list")

	assert.Equal(t, float64(2), testutil.ToFloat64(u.Count.WithLabelValues("repository.count")))
	assert.Equal(t, float64(1), testutil.ToFloat64(u.Failures.WithLabelValues("repository.count")))
	assert.Equal(t, float64(1), testutil.ToFloat64(u.Count.WithLabelValues("repository.list")))
	assert.Equal(t, 1, testutil.CollectAndCount(u.Timing))
}

func TestRegisterTwice(t *testing.T) {
	s := testSettings()
	x := newUsageMetrics(s, "cli")
	y := newUsageMetrics(s, "cli")

	x.Inc("list")
	y.Inc("list")

	require.Equal(t, x.Count, y.Count)
	assert.Equal(t, float64(2), testutil.ToFloat64(x.Count.WithLabelValues("list")))
}

func TestIOMetrics(t *testing.T) {
	s := testSettings()
	n := newIOMetrics(s, "http")

	n.IORecord(time.Now(), "get")(512, nil)
	n.IORecord(time.Now(), "get")(0, errors.New("boom"))
	n.IORecord(time.Now(), "head")(0, nil)

	assert.Equal(t, float64(2), testutil.ToFloat64(n.Count.WithLabelValues("get")))
	assert.Equal(t, float64(1), testutil.ToFloat64(n.Failures.WithLabelValues("get")))
	assert.Equal(t, float64(512), testutil.ToFloat64(n.IOSize.WithLabelValues("get")))
}

func TestNilReceivers(t *testing.T) {
	var u *UsageMetrics
	var n *IOMetrics

	assert.NotPanics(t, func() {
		u.Inc("x")
		u.Used(time.Now(), "x")
		u.UsedAll(time.Now(), "x")(errors.New("boom"))
		u.Failed("x")
		n.IORecord(time.Now(), "get")(10, nil)
	})
}

func TestFlush(t *testing.T) {
	u := NewUsageMetrics("flush_test")
	u.Inc("export")

	target := filepath.Join(t.TempDir(), "dydra.prom")
	require.NoError(t, Flush(target))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dydra_flush_test_calls_total")

	require.NoError(t, Flush(""))
}
