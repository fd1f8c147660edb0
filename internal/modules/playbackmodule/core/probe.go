package core

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/singleflight"
)

// Configuration keys requested from the native device-info service.
const (
	ProbeKeyModelName       = "modelName"
	ProbeKeyHDR10           = "supportHdr10"
	ProbeKeyHDR10Plus       = "supportHdr10Plus"
	ProbeKeyHLG             = "supportHlg"
	ProbeKeyDolbyVision     = "supportDolbyVision"
	ProbeKeyDolbyVisionP8   = "supportDolbyVisionProfile8"
	ProbeKeyDolbyAtmos      = "supportDolbyAtmos"
	ProbeKeyHEVCHardware    = "supportHevcDecode"
	ProbeKeyAV1Hardware     = "supportAv1Decode"
	ProbeKeyPanelResolution = "panelResolution"
)

// ProbeResult is the flat key-value response of the native device-info
// service. A missing key is unknown: neither true nor false.
type ProbeResult map[string]string

// Bool reports the value of a boolean configuration key. ok is false when
// the key is absent or not a recognizable boolean.
func (r ProbeResult) Bool(key string) (value, ok bool) {
	raw, present := r[key]
	if !present {
		return false, false
	}
	switch raw {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// String returns the value of a string configuration key, or "" when absent.
func (r ProbeResult) String(key string) string {
	return r[key]
}

// CapabilityProbe queries the native device-info service for ground-truth
// hardware flags. At most one request is ever in flight: concurrent callers
// await the same pending result. The first resolved result, empty or not, is
// cached for the process lifetime.
type CapabilityProbe struct {
	logger  hclog.Logger
	client  *http.Client
	url     string
	timeout time.Duration

	group singleflight.Group

	mu     sync.RWMutex
	loaded bool
	result ProbeResult
}

// NewCapabilityProbe creates a probe against the device-info service at url.
func NewCapabilityProbe(logger hclog.Logger, url string, timeout time.Duration) *CapabilityProbe {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CapabilityProbe{
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		url:     url,
		timeout: timeout,
	}
}

// Loaded reports whether the probe has resolved. It distinguishes "haven't
// asked yet" from "asked and got nothing back".
func (p *CapabilityProbe) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// Cached returns the resolved result without triggering a query.
func (p *CapabilityProbe) Cached() (ProbeResult, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result, p.loaded
}

// Fetch resolves the probe. Service absence, timeout, and malformed
// responses all resolve to an empty result; callers always get a usable
// (possibly empty) map and never an error. The underlying native call is
// issued once: later callers get the cached result, concurrent callers are
// coalesced onto the in-flight request.
func (p *CapabilityProbe) Fetch(ctx context.Context) ProbeResult {
	if result, ok := p.Cached(); ok {
		return result
	}

	resolved, _, _ := p.group.Do("deviceinfo", func() (interface{}, error) {
		result := p.query(ctx)

		p.mu.Lock()
		p.loaded = true
		p.result = result
		p.mu.Unlock()

		return result, nil
	})
	return resolved.(ProbeResult)
}

func (p *CapabilityProbe) query(ctx context.Context) ProbeResult {
	if p.url == "" {
		p.logger.Debug("device-info service not configured, using tier defaults")
		return ProbeResult{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.logger.Warn("device-info request invalid", "error", err)
		return ProbeResult{}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("device-info query failed", "error", err)
		return ProbeResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("device-info query returned non-OK status", "status", resp.StatusCode)
		return ProbeResult{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		p.logger.Warn("device-info response read failed", "error", err)
		return ProbeResult{}
	}

	var result ProbeResult
	if err := json.Unmarshal(body, &result); err != nil {
		p.logger.Warn("device-info response malformed", "error", err)
		return ProbeResult{}
	}

	p.logger.Info("device-info resolved",
		"model", result.String(ProbeKeyModelName),
		"keys", len(result))
	return result
}
