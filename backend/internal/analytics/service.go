package analytics

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"collabgraph/backend/internal/cache"
	"collabgraph/backend/internal/graph"
	apperrors "collabgraph/backend/pkg/errors"
	"collabgraph/backend/pkg/logger"
)

// Store is the data-access contract the analytics layer consumes: entity
// lookups plus graph traversal over the collaboration graph. Implemented by
// *graph.Repository; tests substitute an in-memory fake.
type Store interface {
	GetResearcher(ctx context.Context, researcherID string) (*graph.Researcher, error)
	GetProject(ctx context.Context, projectID string) (*graph.Project, error)
	FindResearchersByInterest(ctx context.Context, area string) ([]graph.Researcher, error)
	ListApprovedResearchers(ctx context.Context) ([]graph.Researcher, error)
	ListActiveProjects(ctx context.Context, minParticipants int) ([]graph.Project, error)
	ResearchersByID(ctx context.Context, ids []string) (map[string]graph.Researcher, error)
	AggregateCitations(ctx context.Context, researcherID string) (*graph.CitationStats, error)
	PublicationYears(ctx context.Context, researcherID string) ([]int, error)

	ShortestPaths(ctx context.Context, idA, idB string, maxPaths int) ([]graph.Path, error)
	CoAuthorEdges(ctx context.Context, filter graph.EdgeFilter) ([]graph.CoAuthorEdge, error)
	CoAuthors(ctx context.Context, researcherID string) ([]graph.CoAuthorLink, error)
	MutualCoAuthors(ctx context.Context, idA, idB string) ([]string, error)
	CollaborationPairs(ctx context.Context, ids []string) (map[graph.PairKey]bool, error)
}

// Result is the uniform envelope every analytics operation returns. Data is
// nil whenever Success is false.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Config tunes result limits and cache TTLs. Zero values fall back to
// defaults in NewService.
type Config struct {
	BridgeMaxPaths   int
	ExpertDefault    int
	TrustHubCount    int
	OpportunityLimit int
	RiskProjectLimit int
	RecommendDefault int

	// TTLShort covers per-entity queries (bridge, risk, partner
	// recommendations): 1800s keeps them fresh without recomputing on
	// every request. TTLLong covers population-wide scans (experts, trust,
	// opportunities, impact): 3600s, these are the expensive ones and the
	// underlying data moves slowly.
	TTLShort time.Duration
	TTLLong  time.Duration
}

// Service runs the analytical operations over the collaboration graph. All
// operations are read-only; results are memoized in the cache under
// deterministic operation:parameter keys.
type Service struct {
	store  Store
	cache  cache.Cache
	cfg    Config
	logger *zap.Logger
}

// NewService creates an analytics service
func NewService(store Store, resultCache cache.Cache, cfg Config) *Service {
	if cfg.BridgeMaxPaths <= 0 {
		cfg.BridgeMaxPaths = 3
	}
	if cfg.ExpertDefault <= 0 {
		cfg.ExpertDefault = 10
	}
	if cfg.TrustHubCount <= 0 {
		cfg.TrustHubCount = 5
	}
	if cfg.OpportunityLimit <= 0 {
		cfg.OpportunityLimit = 20
	}
	if cfg.RiskProjectLimit <= 0 {
		cfg.RiskProjectLimit = 15
	}
	if cfg.RecommendDefault <= 0 {
		cfg.RecommendDefault = 10
	}
	if cfg.TTLShort <= 0 {
		cfg.TTLShort = 1800 * time.Second
	}
	if cfg.TTLLong <= 0 {
		cfg.TTLLong = 3600 * time.Second
	}

	return &Service{
		store:  store,
		cache:  resultCache,
		cfg:    cfg,
		logger: logger.Get(),
	}
}

func ok(message string, data interface{}) Result {
	return Result{Success: true, Message: message, Data: data}
}

func fail(message string) Result {
	return Result{Success: false, Message: message, Data: nil}
}

// failure maps an error onto the envelope. Missing entities and malformed
// input surface their own message; anything else is a store failure that
// gets logged and replaced with a generic message, so a mid-query failure
// never looks like a partial result.
func (s *Service) failure(operation string, err error) Result {
	if apperrors.IsNotFound(err) || apperrors.IsValidation(err) {
		return fail(err.Error())
	}
	s.logger.Error("Analytics query failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	return fail("query failed: " + operation)
}

// cached returns a previously memoized successful envelope. Cache errors are
// treated as misses; the operation just recomputes.
func (s *Service) cached(key string) (Result, bool) {
	if s.cache == nil {
		return Result{}, false
	}
	raw, found, err := s.cache.Get(key)
	if err != nil || !found {
		return Result{}, false
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		s.logger.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return Result{}, false
	}

	s.logger.Debug("Cache hit", zap.String("key", key))
	return result, true
}

// memoize stores a successful envelope. Failures are never cached.
func (s *Service) memoize(key string, result Result, ttl time.Duration) {
	if s.cache == nil || !result.Success {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(key, raw, ttl); err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
