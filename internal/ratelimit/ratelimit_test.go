package ratelimit

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(limits Limits) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	l := New(limits)
	l.now = clock.Now
	return l, clock
}

func TestDefaultLimits(t *testing.T) {
	limits := DefaultLimits()
	assert.Equal(t, 60, limits[BucketAPI])
	assert.Equal(t, 100, limits[BucketSearch])
	assert.Equal(t, 10, limits[BucketAnalysis])
	assert.Equal(t, 30, limits[BucketAffiliate])
}

func TestAllow_ExhaustsBudget(t *testing.T) {
	l, clock := newTestLimiter(Limits{BucketAnalysis: 10})

	for i := 0; i < 10; i++ {
		d := l.Allow(BucketAnalysis, "1.2.3.4")
		require.True(t, d.Allowed, "request %d", i+1)
		assert.Equal(t, 10, d.Limit)
		assert.Equal(t, 9-i, d.Remaining)
		assert.Zero(t, d.RetryAfter)
	}

	d := l.Allow(BucketAnalysis, "1.2.3.4")
	assert.False(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)
	assert.InDelta(t, float64(6*time.Second), float64(d.RetryAfter), float64(time.Millisecond))
	assert.WithinDuration(t, clock.Now().Add(time.Minute), d.Reset, time.Millisecond)
}

func TestAllow_Refills(t *testing.T) {
	l, clock := newTestLimiter(Limits{BucketAnalysis: 10})
	for i := 0; i < 10; i++ {
		l.Allow(BucketAnalysis, "client")
	}
	require.False(t, l.Allow(BucketAnalysis, "client").Allowed)

	clock.Advance(6 * time.Second)
	assert.True(t, l.Allow(BucketAnalysis, "client").Allowed)
	assert.False(t, l.Allow(BucketAnalysis, "client").Allowed)

	clock.Advance(time.Minute)
	d := l.Allow(BucketAnalysis, "client")
	assert.True(t, d.Allowed)
	assert.Equal(t, 9, d.Remaining)
}

func TestAllow_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Limits{BucketAffiliate: 1})

	assert.True(t, l.Allow(BucketAffiliate, "a").Allowed)
	assert.False(t, l.Allow(BucketAffiliate, "a").Allowed)
	assert.True(t, l.Allow(BucketAffiliate, "b").Allowed)
	assert.Equal(t, 2, l.Clients())
}

func TestAllow_BucketsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Limits{BucketAPI: 1, BucketSearch: 1})

	assert.True(t, l.Allow(BucketAPI, "a").Allowed)
	assert.False(t, l.Allow(BucketAPI, "a").Allowed)
	assert.True(t, l.Allow(BucketSearch, "a").Allowed)
}

func TestAllow_Unlimited(t *testing.T) {
	l, _ := newTestLimiter(Limits{BucketAPI: 0})

	for i := 0; i < 1000; i++ {
		require.True(t, l.Allow(BucketAPI, "a").Allowed)
	}
	assert.True(t, l.Allow(BucketSearch, "a").Allowed)
	assert.Equal(t, 0, l.Clients())
}

func TestAllow_EmptyClientSharesUnknownBudget(t *testing.T) {
	l, _ := newTestLimiter(Limits{BucketAPI: 1})

	assert.True(t, l.Allow(BucketAPI, "").Allowed)
	assert.False(t, l.Allow(BucketAPI, UnknownClient).Allowed)
}

func TestNew_CopiesLimits(t *testing.T) {
	limits := Limits{BucketAPI: 5}
	l := New(limits)
	limits[BucketAPI] = 1
	assert.Equal(t, 5, l.Limit(BucketAPI))
}

func TestAllow_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(Limits{BucketSearch: 100})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if l.Allow(BucketSearch, "shared").Allowed {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, allowed)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{"forwarded first entry", map[string]string{"X-Forwarded-For": " 10.0.0.1 , 10.0.0.2"}, "192.0.2.1:1234", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.3"}, "192.0.2.1:1234", "10.0.0.3"},
		{"vercel", map[string]string{"X-Vercel-Forwarded-For": "10.0.0.4"}, "192.0.2.1:1234", "10.0.0.4"},
		{"forwarded wins", map[string]string{"X-Forwarded-For": "10.0.0.1", "X-Real-IP": "10.0.0.3"}, "", "10.0.0.1"},
		{"empty forwarded entry falls through", map[string]string{"X-Forwarded-For": " , 10.0.0.2", "X-Real-IP": "10.0.0.3"}, "", "10.0.0.3"},
		{"remote addr", nil, "192.0.2.1:1234", "192.0.2.1"},
		{"remote addr ipv6", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"remote addr without port", nil, "192.0.2.9", "192.0.2.9"},
		{"unknown", nil, "", UnknownClient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(r))
		})
	}
}

func BenchmarkAllow(b *testing.B) {
	l := New(DefaultLimits())
	for i := 0; i < b.N; i++ {
		l.Allow(BucketAPI, fmt.Sprintf("client-%d", i%64))
	}
}
