package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"k8s.io/klog/v2"

	"github.com/mihai-snyk/pareto/pkg/multiobjective/framework"
	"github.com/mihai-snyk/pareto/pkg/multiobjective/metrics"
)

const (
	DefaultCacheTTL      = 30 * time.Minute
	cacheCleanupInterval = 10 * time.Minute
)

// Cached memoizes the results of another provider, keyed by the full solve
// configuration. Errors are never cached; unhealthy results are.
type Cached struct {
	next  framework.ModelProvider
	cache *gocache.Cache
}

var _ framework.ModelProvider = &Cached{}

// NewCached wraps next. A ttl of 0 uses DefaultCacheTTL.
func NewCached(next framework.ModelProvider, ttl time.Duration) *Cached {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{
		next:  next,
		cache: gocache.New(ttl, cacheCleanupInterval),
	}
}

func (c *Cached) Name() string {
	return c.next.Name()
}

func (c *Cached) Solve(ctx context.Context, cfg framework.SolveConfig) (*framework.SolveResult, error) {
	logger := klog.FromContext(ctx)

	key, err := cacheKey(cfg)
	if err != nil {
		logger.V(4).Info("Solve config is not cacheable", "err", err)
		return c.next.Solve(ctx, cfg)
	}

	if v, ok := c.cache.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return cloneResult(v.(*framework.SolveResult)), nil
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	res, err := c.next.Solve(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, cloneResult(res))
	return res, nil
}

// Len is the number of memoized solves, expired ones included until the
// next cleanup.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

func cacheKey(cfg framework.SolveConfig) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func cloneResult(r *framework.SolveResult) *framework.SolveResult {
	if r == nil {
		return nil
	}
	return &framework.SolveResult{
		Objectives: append(framework.ObjectiveSpacePoint(nil), r.Objectives...),
		Variables:  r.Variables.Clone(),
		Healthy:    r.Healthy,
	}
}
