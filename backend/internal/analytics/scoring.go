package analytics

import "sort"

// ============================================================================
// Scoring and Classification
// ============================================================================
//
// Pure functions over graph query results. Weights and cutoffs below are the
// platform's scoring model; orchestrators combine them but never redefine
// them.

// CommonInterests returns the interest tags shared by both researchers,
// sorted for deterministic output
func CommonInterests(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, tag := range a {
		seen[tag] = true
	}

	common := []string{}
	added := make(map[string]bool)
	for _, tag := range b {
		if seen[tag] && !added[tag] {
			common = append(common, tag)
			added[tag] = true
		}
	}
	sort.Strings(common)
	return common
}

// ComplementaryInterests returns the candidate's tags the source researcher
// does not have, sorted for deterministic output
func ComplementaryInterests(source, candidate []string) []string {
	have := make(map[string]bool, len(source))
	for _, tag := range source {
		have[tag] = true
	}

	complementary := []string{}
	added := make(map[string]bool)
	for _, tag := range candidate {
		if !have[tag] && !added[tag] {
			complementary = append(complementary, tag)
			added[tag] = true
		}
	}
	sort.Strings(complementary)
	return complementary
}

// InterestSimilarity is |common| / max(|a|, |b|), 0 when either researcher
// has no interests
func InterestSimilarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := len(CommonInterests(a, b))
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return float64(common) / float64(max)
}

// HiddenImpactScore weighs collaboration reach against citation impact:
// unique_collaborators * avg_collaboration_strength * 0.6 + total_citations * 0.4
func HiddenImpactScore(uniqueCollaborators int, avgStrength float64, totalCitations int) float64 {
	return float64(uniqueCollaborators)*avgStrength*0.6 + float64(totalCitations)*0.4
}

// TrustScore weighs repeat collaboration against joint output:
// collaboration_count * 0.6 + joint_publication_count * 0.4
func TrustScore(collaborationCount, jointPublications int) float64 {
	return float64(collaborationCount)*0.6 + float64(jointPublications)*0.4
}

// TrustLevel classifies a trust score
func TrustLevel(score float64) string {
	switch {
	case score >= 10:
		return "Very High"
	case score >= 5:
		return "High"
	case score >= 2:
		return "Medium"
	default:
		return "Low"
	}
}

// CollaborationRate is the fraction of participant pairs with a prior
// co-authorship edge
func CollaborationRate(pairsWithEdge, totalPairs int) float64 {
	if totalPairs == 0 {
		return 0
	}
	return float64(pairsWithEdge) / float64(totalPairs)
}

// RiskScore rises with department diversity and falls with prior
// collaboration: department_diversity * 0.7 - collaboration_rate * 0.3
func RiskScore(departmentDiversity int, collaborationRate float64) float64 {
	return float64(departmentDiversity)*0.7 - collaborationRate*0.3
}

// RiskLevel classifies a project risk score
func RiskLevel(score float64) string {
	switch {
	case score >= 2.5:
		return "Very High"
	case score >= 1.8:
		return "High"
	case score >= 1.0:
		return "Medium"
	default:
		return "Low"
	}
}

// PublicationGrowth is the before/after publication change in percent.
// A researcher with no publications before the project reports 0% growth
// even when they published after, matching the platform's established
// reporting behavior.
func PublicationGrowth(before, after int) float64 {
	if before == 0 {
		return 0
	}
	return float64(after-before) / float64(before) * 100
}

// ImpactLevel classifies publication growth
func ImpactLevel(growth float64) string {
	switch {
	case growth > 50:
		return "High"
	case growth > 10:
		return "Medium"
	default:
		return "Low"
	}
}

// RecommendationScore combines interest overlap, shared co-authors, and
// complementary expertise:
// 0.4*similarity + 0.3*mutual_connections + 0.3*|complementary|
func RecommendationScore(similarity float64, mutualConnections, complementaryCount int) float64 {
	return 0.4*similarity + 0.3*float64(mutualConnections) + 0.3*float64(complementaryCount)
}

// RecommendationLevel classifies a partner recommendation score
func RecommendationLevel(score float64) string {
	switch {
	case score > 0.7:
		return "High"
	case score > 0.4:
		return "Medium"
	default:
		return "Low"
	}
}
