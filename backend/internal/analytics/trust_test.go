package analytics

import (
	"context"
	"math"
	"testing"

	"collabgraph/backend/internal/graph"
)

func trustFixture() *mockStore {
	store := newMockStore()
	store.addResearcher("r-ann", "Ann", "CS", graph.StatusApproved)
	store.addResearcher("r-ben", "Ben", "CS", graph.StatusApproved)
	store.addResearcher("r-cleo", "Cleo", "Biology", graph.StatusApproved)
	store.addResearcher("r-dan", "Dan", "Physics", graph.StatusApproved)
	store.addCoAuthorship("r-ann", "r-ben", 8, "p1", "p2", "p3")  // same dept
	store.addCoAuthorship("r-ann", "r-cleo", 4, "p4")             // cross dept
	store.addCoAuthorship("r-ben", "r-dan", 1, "p5")              // below threshold 2
	return store
}

func TestAnalyzeTrustNetwork_ThresholdHolds(t *testing.T) {
	service := newTestService(trustFixture())

	result := service.AnalyzeTrustNetwork(context.Background(), "", 2)
	if !result.Success {
		t.Fatalf("Expected success: %s", result.Message)
	}

	data := result.Data.(TrustNetworkData)
	if data.TotalRelationships != 2 {
		t.Fatalf("Expected 2 qualifying edges, got %d", data.TotalRelationships)
	}
	for _, rel := range data.Relationships {
		if rel.CollaborationCount < 2 {
			t.Errorf("Edge %s-%s below min collaborations", rel.SourceID, rel.TargetID)
		}
	}
}

func TestAnalyzeTrustNetwork_LevelsAndAggregates(t *testing.T) {
	service := newTestService(trustFixture())

	result := service.AnalyzeTrustNetwork(context.Background(), "", 2)
	data := result.Data.(TrustNetworkData)

	byPair := make(map[string]TrustRelationship)
	for _, rel := range data.Relationships {
		byPair[rel.SourceID+"|"+rel.TargetID] = rel
	}

	// ann-ben: 8*0.6 + 3*0.4 = 6.0 -> High
	annBen := byPair["r-ann|r-ben"]
	if math.Abs(annBen.TrustScore-6.0) > 1e-9 || annBen.TrustLevel != "High" {
		t.Errorf("ann-ben: expected score 6.0 High, got %g %s", annBen.TrustScore, annBen.TrustLevel)
	}
	// ann-cleo: 4*0.6 + 1*0.4 = 2.8 -> Medium
	annCleo := byPair["r-ann|r-cleo"]
	if math.Abs(annCleo.TrustScore-2.8) > 1e-9 || annCleo.TrustLevel != "Medium" {
		t.Errorf("ann-cleo: expected score 2.8 Medium, got %g %s", annCleo.TrustScore, annCleo.TrustLevel)
	}

	// 1 of 2 edges crosses departments
	if math.Abs(data.CrossDepartmentRate-50) > 1e-9 {
		t.Errorf("Expected cross-department rate 50, got %g", data.CrossDepartmentRate)
	}
	// (8+4)/2
	if math.Abs(data.AvgCollaborations-6) > 1e-9 {
		t.Errorf("Expected avg collaborations 6, got %g", data.AvgCollaborations)
	}
}

func TestAnalyzeTrustNetwork_TrustHubs(t *testing.T) {
	service := newTestService(trustFixture())

	result := service.AnalyzeTrustNetwork(context.Background(), "", 1)
	data := result.Data.(TrustNetworkData)

	if len(data.TrustHubs) == 0 {
		t.Fatal("Expected trust hubs")
	}
	// ann: 8+4=12 summed across her edges
	if data.TrustHubs[0].ResearcherID != "r-ann" || data.TrustHubs[0].CollaborationTotal != 12 {
		t.Errorf("Expected r-ann with total 12 as top hub, got %s/%d",
			data.TrustHubs[0].ResearcherID, data.TrustHubs[0].CollaborationTotal)
	}
	for i := 1; i < len(data.TrustHubs); i++ {
		prev, cur := data.TrustHubs[i-1], data.TrustHubs[i]
		if cur.CollaborationTotal > prev.CollaborationTotal {
			t.Error("Trust hubs must be sorted by collaboration total descending")
		}
		if cur.CollaborationTotal == prev.CollaborationTotal && cur.ResearcherID < prev.ResearcherID {
			t.Error("Equal hub totals must break ties by researcher ID ascending")
		}
	}
}

func TestAnalyzeTrustNetwork_DepartmentFilter(t *testing.T) {
	service := newTestService(trustFixture())

	result := service.AnalyzeTrustNetwork(context.Background(), "Biology", 1)
	data := result.Data.(TrustNetworkData)

	if data.TotalRelationships != 1 {
		t.Fatalf("Expected 1 edge touching Biology, got %d", data.TotalRelationships)
	}
	rel := data.Relationships[0]
	if rel.SourceDepartment != "Biology" && rel.TargetDepartment != "Biology" {
		t.Error("Filter department must touch at least one endpoint")
	}
}

func TestAnalyzeTrustNetwork_NoQualifyingEdges(t *testing.T) {
	service := newTestService(trustFixture())

	result := service.AnalyzeTrustNetwork(context.Background(), "", 100)
	if !result.Success {
		t.Fatalf("No qualifying edges must not be an error: %s", result.Message)
	}
	if result.Data != nil {
		t.Errorf("Expected nil data payload, got %T", result.Data)
	}
}

func TestAnalyzeTrustNetwork_NegativeThreshold(t *testing.T) {
	service := newTestService(trustFixture())

	result := service.AnalyzeTrustNetwork(context.Background(), "", -1)
	if result.Success {
		t.Fatal("Expected validation failure for negative threshold")
	}
	if result.Data != nil {
		t.Error("Data must be nil on failure")
	}
}
