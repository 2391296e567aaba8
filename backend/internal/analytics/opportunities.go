package analytics

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"collabgraph/backend/internal/graph"
	apperrors "collabgraph/backend/pkg/errors"
)

// LostOpportunity is a pair of researchers with overlapping interests and no
// co-authorship edge
type LostOpportunity struct {
	Researcher1ID   string   `json:"researcher1_id"`
	Researcher1Name string   `json:"researcher1_name"`
	Researcher2ID   string   `json:"researcher2_id"`
	Researcher2Name string   `json:"researcher2_name"`
	Similarity      float64  `json:"similarity"`
	CommonInterests []string `json:"common_interests"`
}

// LostOpportunityData is the payload of FindLostOpportunities
type LostOpportunityData struct {
	MinSimilarity float64           `json:"min_similarity"`
	Pairs         []LostOpportunity `json:"pairs"`
}

// FindLostOpportunities enumerates unordered pairs of approved researchers
// with no CO_AUTHORED_WITH edge and interest similarity at or above the
// threshold.
//
// This is an O(n^2) scan over the approved-researcher population and has
// unbounded latency on large graphs; callers needing cancellation should
// wrap the context. Edge existence comes from one batched CollaborationPairs
// query rather than a per-pair probe.
func (s *Service) FindLostOpportunities(ctx context.Context, minSimilarity float64) Result {
	if minSimilarity < 0 || minSimilarity > 1 {
		return s.failure("lost_opportunities",
			apperrors.NewInvalidThreshold("min_similarity", minSimilarity, "must be between 0 and 1"))
	}

	key := fmt.Sprintf("lost_opportunities:%g", minSimilarity)
	if result, hit := s.cached(key); hit {
		return result
	}

	researchers, err := s.store.ListApprovedResearchers(ctx)
	if err != nil {
		return s.failure("lost_opportunities", err)
	}

	ids := make([]string, len(researchers))
	for i, researcher := range researchers {
		ids[i] = researcher.ID
	}

	existing, err := s.store.CollaborationPairs(ctx, ids)
	if err != nil {
		return s.failure("lost_opportunities", err)
	}

	pairs := []LostOpportunity{}
	for i := 0; i < len(researchers); i++ {
		for j := i + 1; j < len(researchers); j++ {
			r1, r2 := researchers[i], researchers[j]
			if existing[graph.NewPairKey(r1.ID, r2.ID)] {
				continue
			}

			similarity := InterestSimilarity(r1.Interests, r2.Interests)
			if similarity < minSimilarity {
				continue
			}

			pairs = append(pairs, LostOpportunity{
				Researcher1ID:   r1.ID,
				Researcher1Name: r1.Name,
				Researcher2ID:   r2.ID,
				Researcher2Name: r2.Name,
				Similarity:      similarity,
				CommonInterests: CommonInterests(r1.Interests, r2.Interests),
			})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Similarity != pairs[j].Similarity {
			return pairs[i].Similarity > pairs[j].Similarity
		}
		if pairs[i].Researcher1ID != pairs[j].Researcher1ID {
			return pairs[i].Researcher1ID < pairs[j].Researcher1ID
		}
		return pairs[i].Researcher2ID < pairs[j].Researcher2ID
	})
	if len(pairs) > s.cfg.OpportunityLimit {
		pairs = pairs[:s.cfg.OpportunityLimit]
	}

	s.logger.Debug("Lost opportunities scanned",
		zap.Int("population", len(researchers)),
		zap.Int("returned", len(pairs)),
	)

	result := ok(fmt.Sprintf("found %d uncollaborated pair(s) above similarity %.2f", len(pairs), minSimilarity),
		LostOpportunityData{MinSimilarity: minSimilarity, Pairs: pairs})
	s.memoize(key, result, s.cfg.TTLLong)
	return result
}
