package analytics

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// PartnerRecommendation is one candidate collaboration partner
type PartnerRecommendation struct {
	ResearcherID           string   `json:"researcher_id"`
	Name                   string   `json:"name"`
	Department             string   `json:"department"`
	CommonInterests        []string `json:"common_interests"`
	ComplementaryInterests []string `json:"complementary_interests"`
	InterestSimilarity     float64  `json:"interest_similarity"`
	MutualConnections      int      `json:"mutual_connections"`
	Score                  float64  `json:"recommendation_score"`
	Level                  string   `json:"recommendation_level"`
}

// RecommendationData is the payload of RecommendPartners
type RecommendationData struct {
	ResearcherID    string                  `json:"researcher_id"`
	Recommendations []PartnerRecommendation `json:"recommendations"`
}

// RecommendPartners scores every other approved researcher as a potential
// collaboration partner for the given researcher, combining interest
// overlap, complementary expertise, and mutual co-authors (a 2-hop
// intersection per candidate).
func (s *Service) RecommendPartners(ctx context.Context, researcherID string, limit int) Result {
	if limit <= 0 {
		limit = s.cfg.RecommendDefault
	}

	key := fmt.Sprintf("recommend_partners:%s:%d", researcherID, limit)
	if result, hit := s.cached(key); hit {
		return result
	}

	source, err := s.store.GetResearcher(ctx, researcherID)
	if err != nil {
		return s.failure("recommend_partners", err)
	}

	candidates, err := s.store.ListApprovedResearchers(ctx)
	if err != nil {
		return s.failure("recommend_partners", err)
	}

	recommendations := []PartnerRecommendation{}
	for _, candidate := range candidates {
		if candidate.ID == source.ID {
			continue
		}

		mutual, err := s.store.MutualCoAuthors(ctx, source.ID, candidate.ID)
		if err != nil {
			return s.failure("recommend_partners", err)
		}

		common := CommonInterests(source.Interests, candidate.Interests)
		complementary := ComplementaryInterests(source.Interests, candidate.Interests)
		similarity := InterestSimilarity(source.Interests, candidate.Interests)
		score := RecommendationScore(similarity, len(mutual), len(complementary))

		recommendations = append(recommendations, PartnerRecommendation{
			ResearcherID:           candidate.ID,
			Name:                   candidate.Name,
			Department:             candidate.Department,
			CommonInterests:        common,
			ComplementaryInterests: complementary,
			InterestSimilarity:     similarity,
			MutualConnections:      len(mutual),
			Score:                  score,
			Level:                  RecommendationLevel(score),
		})
	}

	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].ResearcherID < recommendations[j].ResearcherID
	})
	if len(recommendations) > limit {
		recommendations = recommendations[:limit]
	}

	s.logger.Debug("Partners recommended",
		zap.String("researcher_id", researcherID),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(recommendations)),
	)

	result := ok(fmt.Sprintf("recommended %d partner(s)", len(recommendations)),
		RecommendationData{ResearcherID: researcherID, Recommendations: recommendations})
	s.memoize(key, result, s.cfg.TTLShort)
	return result
}
