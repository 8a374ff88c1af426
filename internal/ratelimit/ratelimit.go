// Package ratelimit enforces per-client request budgets.
//
// Each named bucket grants a fixed number of requests per minute to every
// client. A client's budget is a token bucket that refills continuously, so
// a client that pauses regains capacity gradually rather than at a window
// boundary. Idle clients are evicted from the cache once their bucket would
// have refilled completely.
package ratelimit

import (
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/skintelect/skintelect/internal/core/domain"
)

// Bucket names a request budget.
type Bucket string

// Known buckets.
const (
	BucketAPI       Bucket = "api"
	BucketSearch    Bucket = "search"
	BucketAnalysis  Bucket = "analysis"
	BucketAffiliate Bucket = "affiliate"
)

// Window is the period a bucket's limit is expressed over.
const Window = time.Minute

// UnknownClient identifies requests with no usable address.
const UnknownClient = "unknown"

// Limits maps buckets to requests per Window. A missing or non-positive
// entry leaves the bucket unlimited.
type Limits map[Bucket]int

// DefaultLimits returns the stock budgets.
func DefaultLimits() Limits {
	return FromSettings(domain.DefaultAppSettings().RateLimit)
}

// FromSettings converts configured budgets.
func FromSettings(s domain.RateLimitSettings) Limits {
	return Limits{
		BucketAPI:       s.API,
		BucketSearch:    s.Search,
		BucketAnalysis:  s.Analysis,
		BucketAffiliate: s.Affiliate,
	}
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed bool

	// Limit is the bucket's budget per Window; 0 when unlimited.
	Limit int

	// Remaining is how many further requests would be allowed right now.
	Remaining int

	// RetryAfter is how long to wait before the next request can succeed.
	// Zero when Allowed.
	RetryAfter time.Duration

	// Reset is when the client's budget will be full again.
	Reset time.Time
}

// Limiter tracks one token bucket per (bucket, client) pair.
type Limiter struct {
	limits  Limits
	mu      sync.Mutex
	clients *cache.Cache
	now     func() time.Time
}

// New creates a limiter with the given budgets.
func New(limits Limits) *Limiter {
	copied := make(Limits, len(limits))
	for b, n := range limits {
		copied[b] = n
	}
	return &Limiter{
		limits:  copied,
		clients: cache.New(Window, 5*Window),
		now:     time.Now,
	}
}

// Limit returns the configured budget for bucket.
func (l *Limiter) Limit(bucket Bucket) int {
	return l.limits[bucket]
}

// Allow consumes one request from clientID's budget in bucket.
func (l *Limiter) Allow(bucket Bucket, clientID string) Decision {
	limit := l.limits[bucket]
	now := l.now()
	if limit <= 0 {
		return Decision{Allowed: true, Reset: now}
	}
	if clientID == "" {
		clientID = UnknownClient
	}

	lim := l.limiter(bucket, clientID, limit)
	perSecond := float64(limit) / Window.Seconds()

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)

	d := Decision{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: int(math.Max(0, math.Floor(tokens))),
		Reset:     now.Add(secondsToDuration((float64(limit) - tokens) / perSecond)),
	}
	if !allowed {
		d.RetryAfter = secondsToDuration((1 - tokens) / perSecond)
	}
	return d
}

// limiter returns the client's bucket, refreshing its expiry.
func (l *Limiter) limiter(bucket Bucket, clientID string, limit int) *rate.Limiter {
	key := string(bucket) + ":" + clientID

	l.mu.Lock()
	defer l.mu.Unlock()

	var lim *rate.Limiter
	if v, ok := l.clients.Get(key); ok {
		lim = v.(*rate.Limiter)
	} else {
		lim = rate.NewLimiter(rate.Limit(float64(limit)/Window.Seconds()), limit)
	}
	l.clients.Set(key, lim, cache.DefaultExpiration)
	return lim
}

// Clients returns the number of tracked (bucket, client) pairs.
func (l *Limiter) Clients() int {
	return l.clients.ItemCount()
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(math.Ceil(s * float64(time.Second)))
}

// ClientIP identifies the caller of r. Proxy headers are consulted in
// order: the first X-Forwarded-For entry, X-Real-IP, then
// X-Vercel-Forwarded-For. Without any, the host part of r.RemoteAddr is used.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	for _, h := range []string{"X-Real-IP", "X-Vercel-Forwarded-For"} {
		if ip := strings.TrimSpace(r.Header.Get(h)); ip != "" {
			return ip
		}
	}
	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
			return host
		}
		return r.RemoteAddr
	}
	return UnknownClient
}
