package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func TestProbeFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"modelName":"OLED65C2","supportDolbyVision":"true"}`))
	}))
	defer server.Close()

	probe := NewCapabilityProbe(hclog.NewNullLogger(), server.URL, time.Second)
	assert.False(t, probe.Loaded())

	result := probe.Fetch(context.Background())
	assert.True(t, probe.Loaded())
	assert.Equal(t, "OLED65C2", result.String(ProbeKeyModelName))

	dovi, ok := result.Bool(ProbeKeyDolbyVision)
	assert.True(t, ok)
	assert.True(t, dovi)
}

func TestProbeFetchCachesFirstResult(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"modelName":"first"}`))
	}))
	defer server.Close()

	probe := NewCapabilityProbe(hclog.NewNullLogger(), server.URL, time.Second)
	first := probe.Fetch(context.Background())
	second := probe.Fetch(context.Background())

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, first, second)
}

func TestProbeFetchCoalescesConcurrentCallers(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		w.Write([]byte(`{"modelName":"shared"}`))
	}))
	defer server.Close()

	probe := NewCapabilityProbe(hclog.NewNullLogger(), server.URL, 5*time.Second)

	const callers = 8
	results := make([]ProbeResult, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = probe.Fetch(context.Background())
		}(i)
	}

	// Let every goroutine pile onto the in-flight request before the
	// handler responds.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
	for _, result := range results {
		assert.Equal(t, "shared", result.String(ProbeKeyModelName))
	}
}

func TestProbeFetchServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable from the start

	probe := NewCapabilityProbe(hclog.NewNullLogger(), server.URL, time.Second)
	result := probe.Fetch(context.Background())

	// Failures resolve to an empty result and still count as loaded so
	// the query is not retried forever.
	assert.Empty(t, result)
	assert.True(t, probe.Loaded())
}

func TestProbeFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	probe := NewCapabilityProbe(hclog.NewNullLogger(), server.URL, time.Second)
	assert.Empty(t, probe.Fetch(context.Background()))
	assert.True(t, probe.Loaded())
}

func TestProbeFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	probe := NewCapabilityProbe(hclog.NewNullLogger(), server.URL, time.Second)
	assert.Empty(t, probe.Fetch(context.Background()))
	assert.True(t, probe.Loaded())
}

func TestProbeFetchNoURLConfigured(t *testing.T) {
	probe := NewCapabilityProbe(hclog.NewNullLogger(), "", time.Second)
	assert.Empty(t, probe.Fetch(context.Background()))
	assert.True(t, probe.Loaded())
}

func TestProbeCached(t *testing.T) {
	probe := NewCapabilityProbe(hclog.NewNullLogger(), "", time.Second)

	_, ok := probe.Cached()
	assert.False(t, ok)

	probe.Fetch(context.Background())
	cached, ok := probe.Cached()
	assert.True(t, ok)
	assert.Empty(t, cached)
}
