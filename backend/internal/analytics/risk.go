package analytics

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"collabgraph/backend/internal/graph"
)

// HighRiskProject is an active project scored by collaboration risk
type HighRiskProject struct {
	ProjectID           string  `json:"project_id"`
	Title               string  `json:"title"`
	ParticipantCount    int     `json:"participant_count"`
	DepartmentDiversity int     `json:"department_diversity"`
	CollaborationRate   float64 `json:"collaboration_rate"`
	RiskScore           float64 `json:"risk_score"`
	RiskLevel           string  `json:"risk_level"`
}

// HighRiskData is the payload of IdentifyHighRiskProjects
type HighRiskData struct {
	MinRiskScore float64           `json:"min_risk_score"`
	Projects     []HighRiskProject `json:"projects"`
}

// IdentifyHighRiskProjects scans active projects with at least three
// participants and scores each by department diversity against prior
// co-authorship coverage of its participant pairs. Projects at or above the
// threshold are returned highest-risk first.
func (s *Service) IdentifyHighRiskProjects(ctx context.Context, minRiskScore float64) Result {
	key := fmt.Sprintf("high_risk_projects:%g", minRiskScore)
	if result, hit := s.cached(key); hit {
		return result
	}

	projects, err := s.store.ListActiveProjects(ctx, 3)
	if err != nil {
		return s.failure("high_risk_projects", err)
	}

	scored := make([]*HighRiskProject, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	for i := range projects {
		g.Go(func() error {
			project := projects[i]

			participants, err := s.store.ResearchersByID(gctx, project.Participants)
			if err != nil {
				return err
			}
			existing, err := s.store.CollaborationPairs(gctx, project.Participants)
			if err != nil {
				return err
			}

			departments := make(map[string]bool)
			for _, participant := range participants {
				if participant.Department != "" {
					departments[participant.Department] = true
				}
			}

			totalPairs := 0
			pairsWithEdge := 0
			for a := 0; a < len(project.Participants); a++ {
				for b := a + 1; b < len(project.Participants); b++ {
					totalPairs++
					if existing[graph.NewPairKey(project.Participants[a], project.Participants[b])] {
						pairsWithEdge++
					}
				}
			}

			rate := CollaborationRate(pairsWithEdge, totalPairs)
			score := RiskScore(len(departments), rate)

			scored[i] = &HighRiskProject{
				ProjectID:           project.ID,
				Title:               project.Title,
				ParticipantCount:    len(project.Participants),
				DepartmentDiversity: len(departments),
				CollaborationRate:   rate,
				RiskScore:           score,
				RiskLevel:           RiskLevel(score),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return s.failure("high_risk_projects", err)
	}

	risky := []HighRiskProject{}
	for _, project := range scored {
		if project != nil && project.RiskScore >= minRiskScore {
			risky = append(risky, *project)
		}
	}

	sort.Slice(risky, func(i, j int) bool {
		if risky[i].RiskScore != risky[j].RiskScore {
			return risky[i].RiskScore > risky[j].RiskScore
		}
		return risky[i].ProjectID < risky[j].ProjectID
	})
	if len(risky) > s.cfg.RiskProjectLimit {
		risky = risky[:s.cfg.RiskProjectLimit]
	}

	s.logger.Debug("High-risk projects identified",
		zap.Int("scanned", len(projects)),
		zap.Int("returned", len(risky)),
	)

	result := ok(fmt.Sprintf("identified %d high-risk project(s)", len(risky)),
		HighRiskData{MinRiskScore: minRiskScore, Projects: risky})
	s.memoize(key, result, s.cfg.TTLShort)
	return result
}
