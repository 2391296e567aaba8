package analytics

import (
	"context"
	"math"
	"testing"

	"collabgraph/backend/internal/graph"
)

func opportunityFixture() *mockStore {
	store := newMockStore()
	store.addResearcher("r-ada", "Ada", "CS", graph.StatusApproved, "NLP", "ML")
	store.addResearcher("r-bela", "Bela", "CS", graph.StatusApproved, "NLP", "ML", "Vision")
	store.addResearcher("r-cora", "Cora", "Biology", graph.StatusApproved, "NLP")
	store.addResearcher("r-dina", "Dina", "Physics", graph.StatusApproved, "Optics")
	store.addResearcher("r-errol", "Errol", "CS", graph.StatusPending, "NLP", "ML")
	// ada and bela already collaborate
	store.addCoAuthorship("r-ada", "r-bela", 3, "pub-1")
	return store
}

func TestFindLostOpportunities_ExcludesExistingCollaborators(t *testing.T) {
	service := newTestService(opportunityFixture())

	result := service.FindLostOpportunities(context.Background(), 0.1)
	if !result.Success {
		t.Fatalf("Expected success: %s", result.Message)
	}

	data := result.Data.(LostOpportunityData)
	for _, pair := range data.Pairs {
		if pair.Researcher1ID == "r-ada" && pair.Researcher2ID == "r-bela" {
			t.Error("Pairs with an existing co-authorship edge must be excluded")
		}
		if pair.Similarity < 0.1 {
			t.Errorf("Pair %s/%s below requested similarity", pair.Researcher1ID, pair.Researcher2ID)
		}
	}
}

func TestFindLostOpportunities_SimilarityFormula(t *testing.T) {
	service := newTestService(opportunityFixture())

	result := service.FindLostOpportunities(context.Background(), 0.1)
	data := result.Data.(LostOpportunityData)

	var adaCora *LostOpportunity
	for i := range data.Pairs {
		if data.Pairs[i].Researcher1ID == "r-ada" && data.Pairs[i].Researcher2ID == "r-cora" {
			adaCora = &data.Pairs[i]
		}
	}
	if adaCora == nil {
		t.Fatal("Expected ada/cora pair")
	}
	// |{NLP}| / max(2, 1) = 0.5
	if math.Abs(adaCora.Similarity-0.5) > 1e-9 {
		t.Errorf("Expected similarity 0.5, got %g", adaCora.Similarity)
	}
	if len(adaCora.CommonInterests) != 1 || adaCora.CommonInterests[0] != "NLP" {
		t.Errorf("Expected common interests [NLP], got %v", adaCora.CommonInterests)
	}
}

func TestFindLostOpportunities_ExcludesUnapproved(t *testing.T) {
	service := newTestService(opportunityFixture())

	result := service.FindLostOpportunities(context.Background(), 0.1)
	data := result.Data.(LostOpportunityData)

	for _, pair := range data.Pairs {
		if pair.Researcher1ID == "r-errol" || pair.Researcher2ID == "r-errol" {
			t.Error("Pending researchers must not appear in pairs")
		}
	}
}

func TestFindLostOpportunities_SortedDescending(t *testing.T) {
	service := newTestService(opportunityFixture())

	result := service.FindLostOpportunities(context.Background(), 0)
	data := result.Data.(LostOpportunityData)

	for i := 1; i < len(data.Pairs); i++ {
		if data.Pairs[i].Similarity > data.Pairs[i-1].Similarity {
			t.Error("Pairs must be sorted by similarity descending")
		}
	}
}

func TestFindLostOpportunities_InvalidThreshold(t *testing.T) {
	service := newTestService(opportunityFixture())

	for _, bad := range []float64{-0.5, 1.5} {
		result := service.FindLostOpportunities(context.Background(), bad)
		if result.Success {
			t.Errorf("Expected validation failure for threshold %g", bad)
		}
		if result.Data != nil {
			t.Error("Data must be nil on failure")
		}
	}
}

func TestFindLostOpportunities_NoInterestsMeansZeroSimilarity(t *testing.T) {
	store := newMockStore()
	store.addResearcher("r-x", "X", "CS", graph.StatusApproved)
	store.addResearcher("r-y", "Y", "CS", graph.StatusApproved, "NLP")
	service := newTestService(store)

	result := service.FindLostOpportunities(context.Background(), 0.01)
	data := result.Data.(LostOpportunityData)
	if len(data.Pairs) != 0 {
		t.Errorf("A researcher with no interests has 0 similarity to everyone, got %d pairs", len(data.Pairs))
	}
}
