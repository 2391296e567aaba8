package analytics

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// HiddenExpert is one researcher scored by collaboration-weighted citation
// impact
type HiddenExpert struct {
	ResearcherID        string   `json:"researcher_id"`
	Name                string   `json:"name"`
	Department          string   `json:"department"`
	Interests           []string `json:"interests"`
	UniqueCollaborators int      `json:"unique_collaborators"`
	AvgStrength         float64  `json:"avg_collaboration_strength"`
	PublicationCount    int      `json:"publication_count"`
	TotalCitations      int      `json:"total_citations"`
	Score               float64  `json:"hidden_impact_score"`
}

// HiddenExpertData is the payload of FindHiddenExperts
type HiddenExpertData struct {
	Area    string         `json:"area"`
	Experts []HiddenExpert `json:"experts"`
}

// FindHiddenExperts identifies approved researchers in a research area whose
// collaboration-weighted citation impact is high relative to their raw
// publication count. The area matches interest tags as a case-insensitive
// substring. No matching researcher is not an error: the envelope succeeds
// with an empty expert list.
func (s *Service) FindHiddenExperts(ctx context.Context, area string, limit int) Result {
	if limit <= 0 {
		limit = s.cfg.ExpertDefault
	}

	key := fmt.Sprintf("hidden_experts:%s:%d", area, limit)
	if result, hit := s.cached(key); hit {
		return result
	}

	researchers, err := s.store.FindResearchersByInterest(ctx, area)
	if err != nil {
		return s.failure("hidden_experts", err)
	}

	experts := []HiddenExpert{}
	for _, researcher := range researchers {
		links, err := s.store.CoAuthors(ctx, researcher.ID)
		if err != nil {
			return s.failure("hidden_experts", err)
		}

		avgStrength := 0.0
		if len(links) > 0 {
			total := 0
			for _, link := range links {
				total += link.CollaborationCount
			}
			avgStrength = float64(total) / float64(len(links))
		}

		stats, err := s.store.AggregateCitations(ctx, researcher.ID)
		if err != nil {
			return s.failure("hidden_experts", err)
		}

		experts = append(experts, HiddenExpert{
			ResearcherID:        researcher.ID,
			Name:                researcher.Name,
			Department:          researcher.Department,
			Interests:           researcher.Interests,
			UniqueCollaborators: len(links),
			AvgStrength:         avgStrength,
			PublicationCount:    stats.PublicationCount,
			TotalCitations:      stats.TotalCitations,
			Score:               HiddenImpactScore(len(links), avgStrength, stats.TotalCitations),
		})
	}

	sort.Slice(experts, func(i, j int) bool {
		if experts[i].Score != experts[j].Score {
			return experts[i].Score > experts[j].Score
		}
		return experts[i].ResearcherID < experts[j].ResearcherID
	})
	if len(experts) > limit {
		experts = experts[:limit]
	}

	s.logger.Debug("Hidden experts scored",
		zap.String("area", area),
		zap.Int("candidates", len(researchers)),
		zap.Int("returned", len(experts)),
	)

	result := ok(fmt.Sprintf("found %d hidden expert(s) for %q", len(experts), area),
		HiddenExpertData{Area: area, Experts: experts})
	s.memoize(key, result, s.cfg.TTLLong)
	return result
}
