package graph

import (
	"context"
	"fmt"

	apperrors "collabgraph/backend/pkg/errors"
)

// ============================================================================
// Entity Lookup Operations
// ============================================================================

// GetResearcher fetches a single researcher by ID
func (r *Repository) GetResearcher(ctx context.Context, researcherID string) (*Researcher, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r:Researcher {id: $id})
		RETURN r.id as id, r.name as name, r.department as department,
		       r.interests as interests, r.status as status
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"id": researcherID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch researcher: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, apperrors.NewResearcherNotFound(researcherID)
	}

	researcher := researcherFromRecord(result.Record())
	return &researcher, nil
}

// GetProject fetches a project with its participant IDs
func (r *Repository) GetProject(ctx context.Context, projectID string) (*Project, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (p:Project {id: $id})
		OPTIONAL MATCH (p)<-[:PARTICIPATED_IN]-(r:Researcher)
		RETURN p.id as id, p.title as title, p.status as status,
		       p.start_date as start_date, p.end_date as end_date,
		       p.created_by as created_by,
		       [x IN collect(r.id) WHERE x IS NOT NULL] as participants
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"id": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, apperrors.NewProjectNotFound(projectID)
	}

	record := result.Record()
	project := &Project{
		ID:           getStringFromRecord(record, "id"),
		Title:        getStringFromRecord(record, "title"),
		Status:       getStringFromRecord(record, "status"),
		CreatedBy:    getStringFromRecord(record, "created_by"),
		Participants: getStringSliceFromRecord(record, "participants"),
	}
	if start, ok := getTimeFromRecord(record, "start_date"); ok {
		project.StartDate = start
	}
	if end, ok := getTimeFromRecord(record, "end_date"); ok {
		project.EndDate = &end
	}

	return project, nil
}

// GetPublication fetches a publication with its ordered author list
func (r *Repository) GetPublication(ctx context.Context, publicationID string) (*Publication, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (p:Publication {id: $id})
		OPTIONAL MATCH (p)<-[a:AUTHORED]-(r:Researcher)
		WITH p, r, a ORDER BY a.author_order
		RETURN p.id as id, p.title as title, p.year as year,
		       p.citation_count as citation_count,
		       [x IN collect({id: r.id, ord: a.author_order}) WHERE x.id IS NOT NULL] as authors
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"id": publicationID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch publication: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return nil, apperrors.NewPublicationNotFound(publicationID)
	}

	record := result.Record()
	pub := &Publication{
		ID:            getStringFromRecord(record, "id"),
		Title:         getStringFromRecord(record, "title"),
		Year:          getIntFromRecord(record, "year"),
		CitationCount: getIntFromRecord(record, "citation_count"),
	}

	authorsVal, _ := record.Get("authors")
	if entries, ok := authorsVal.([]interface{}); ok {
		for _, entry := range entries {
			if m, ok := entry.(map[string]interface{}); ok {
				author := Author{}
				if id, ok := m["id"].(string); ok {
					author.ResearcherID = id
				}
				if ord, ok := m["ord"].(int64); ok {
					author.Order = int(ord)
				}
				pub.Authors = append(pub.Authors, author)
			}
		}
	}

	return pub, nil
}

// FindResearchersByInterest finds approved researchers with at least one
// interest tag containing the given substring (case-insensitive)
func (r *Repository) FindResearchersByInterest(ctx context.Context, area string) ([]Researcher, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r:Researcher {status: 'approved'})
		WHERE any(tag IN r.interests WHERE toLower(tag) CONTAINS toLower($area))
		RETURN r.id as id, r.name as name, r.department as department,
		       r.interests as interests, r.status as status
		ORDER BY r.id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"area": area})
	if err != nil {
		return nil, fmt.Errorf("failed to find researchers by interest: %w", err)
	}

	var researchers []Researcher
	for result.Next(ctx) {
		researchers = append(researchers, researcherFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate researchers: %w", err)
	}

	return researchers, nil
}

// ListApprovedResearchers returns all researchers with approved profiles
func (r *Repository) ListApprovedResearchers(ctx context.Context) ([]Researcher, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r:Researcher {status: 'approved'})
		RETURN r.id as id, r.name as name, r.department as department,
		       r.interests as interests, r.status as status
		ORDER BY r.id
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved researchers: %w", err)
	}

	var researchers []Researcher
	for result.Next(ctx) {
		researchers = append(researchers, researcherFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate researchers: %w", err)
	}

	return researchers, nil
}

// ListActiveProjects returns active projects with at least minParticipants
// participants, participant IDs included
func (r *Repository) ListActiveProjects(ctx context.Context, minParticipants int) ([]Project, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (p:Project {status: 'active'})<-[:PARTICIPATED_IN]-(r:Researcher)
		WITH p, collect(r.id) as participants
		WHERE size(participants) >= $min
		RETURN p.id as id, p.title as title, p.status as status,
		       p.start_date as start_date, p.created_by as created_by,
		       participants
		ORDER BY p.id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"min": minParticipants})
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}

	var projects []Project
	for result.Next(ctx) {
		record := result.Record()
		project := Project{
			ID:           getStringFromRecord(record, "id"),
			Title:        getStringFromRecord(record, "title"),
			Status:       getStringFromRecord(record, "status"),
			CreatedBy:    getStringFromRecord(record, "created_by"),
			Participants: getStringSliceFromRecord(record, "participants"),
		}
		if start, ok := getTimeFromRecord(record, "start_date"); ok {
			project.StartDate = start
		}
		projects = append(projects, project)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// ResearchersByID fetches a batch of researchers keyed by ID. Unknown IDs are
// simply absent from the result map.
func (r *Repository) ResearchersByID(ctx context.Context, ids []string) (map[string]Researcher, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r:Researcher)
		WHERE r.id IN $ids
		RETURN r.id as id, r.name as name, r.department as department,
		       r.interests as interests, r.status as status
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch researchers: %w", err)
	}

	researchers := make(map[string]Researcher)
	for result.Next(ctx) {
		researcher := researcherFromRecord(result.Record())
		researchers[researcher.ID] = researcher
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate researchers: %w", err)
	}

	return researchers, nil
}

// AggregateCitations sums citation counts across a researcher's authored
// publications
func (r *Repository) AggregateCitations(ctx context.Context, researcherID string) (*CitationStats, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r:Researcher {id: $id})
		OPTIONAL MATCH (r)-[:AUTHORED]->(p:Publication)
		RETURN count(p) as publication_count,
		       coalesce(sum(p.citation_count), 0) as total_citations
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"id": researcherID})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate citations: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return &CitationStats{}, nil
	}

	record := result.Record()
	return &CitationStats{
		PublicationCount: getIntFromRecord(record, "publication_count"),
		TotalCitations:   getIntFromRecord(record, "total_citations"),
	}, nil
}

// PublicationYears returns the publication year of every publication the
// researcher authored, one entry per publication
func (r *Repository) PublicationYears(ctx context.Context, researcherID string) ([]int, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r:Researcher {id: $id})-[:AUTHORED]->(p:Publication)
		RETURN collect(p.year) as years
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"id": researcherID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch publication years: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return []int{}, nil
	}

	return getIntSliceFromRecord(result.Record(), "years"), nil
}
