package graph

import "time"

// ============================================================================
// Collaboration Graph Types
// ============================================================================

// Researcher profile status values
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusDeleted  = "deleted"
)

// Project status values
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectPending   = "pending"
	ProjectCancelled = "cancelled"
)

// Researcher represents a researcher node
type Researcher struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Department string   `json:"department"`
	Interests  []string `json:"interests"`
	Status     string   `json:"status"` // pending, approved, rejected, deleted
}

// Project represents a project node
type Project struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"` // active, completed, pending, cancelled
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedBy    string     `json:"created_by"`
	Participants []string   `json:"participants"`
}

// Author is a single entry in a publication's ordered author list
type Author struct {
	ResearcherID string `json:"researcher_id"`
	Order        int    `json:"order"`
}

// Publication represents a publication node
type Publication struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Year          int      `json:"year"`
	CitationCount int      `json:"citation_count"`
	Authors       []Author `json:"authors"`
}

// CitationStats aggregates a researcher's authored publications
type CitationStats struct {
	PublicationCount int `json:"publication_count"`
	TotalCitations   int `json:"total_citations"`
}

// PathNode is a node on a collaboration path
type PathNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"` // target, bridge
}

// Path is an ordered node sequence connecting two researchers.
// Length is the edge count (one less than the node count).
type Path struct {
	Nodes  []PathNode `json:"nodes"`
	Length int        `json:"length"`
}

// CoAuthorEdge is a CO_AUTHORED_WITH relationship with endpoint attributes
type CoAuthorEdge struct {
	SourceID           string   `json:"source_id"`
	SourceName         string   `json:"source_name"`
	SourceDepartment   string   `json:"source_department"`
	TargetID           string   `json:"target_id"`
	TargetName         string   `json:"target_name"`
	TargetDepartment   string   `json:"target_department"`
	CollaborationCount int      `json:"collaboration_count"`
	Publications       []string `json:"publications"`
}

// CoAuthorLink is one co-authorship partner of a researcher
type CoAuthorLink struct {
	PartnerID          string `json:"partner_id"`
	CollaborationCount int    `json:"collaboration_count"`
}

// EdgeFilter narrows CoAuthorEdges queries
type EdgeFilter struct {
	Department        string // Match either endpoint's department; empty matches all
	MinCollaborations int
}

// PairKey identifies an unordered researcher pair. Build with NewPairKey so
// (a,b) and (b,a) map to the same key.
type PairKey struct {
	A string
	B string
}

// NewPairKey returns the canonical key for an unordered pair
func NewPairKey(id1, id2 string) PairKey {
	if id1 > id2 {
		id1, id2 = id2, id1
	}
	return PairKey{A: id1, B: id2}
}
