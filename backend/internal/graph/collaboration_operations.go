package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	apperrors "collabgraph/backend/pkg/errors"
)

// ============================================================================
// Collaboration Recording Operations
// ============================================================================
//
// Edges are created incrementally as publications, projects and supervision
// events are recorded. Undirected kinds (CO_AUTHORED_WITH, TEAMWORK_WITH)
// keep a single edge per unordered pair: the lexicographically smaller
// researcher ID is always the stored source, and repeat recordings increment
// collaboration_count and append to the attached ID list only when the ID is
// not already present.

// CreateResearcher creates a researcher node. A missing ID is generated.
// New profiles start in pending status until approved.
func (r *Repository) CreateResearcher(ctx context.Context, researcher Researcher) (string, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	if researcher.ID == "" {
		researcher.ID = uuid.New().String()
	}
	if researcher.Status == "" {
		researcher.Status = StatusPending
	}

	query := `
		MERGE (r:Researcher {id: $id})
		SET r.name = $name,
		    r.department = $department,
		    r.interests = $interests,
		    r.status = $status
		RETURN r.id as id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"id":         researcher.ID,
		"name":       researcher.Name,
		"department": researcher.Department,
		"interests":  researcher.Interests,
		"status":     researcher.Status,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create researcher: %w", err)
	}

	if _, err := result.Single(ctx); err != nil {
		return "", fmt.Errorf("failed to verify researcher creation: %w", err)
	}

	r.logger.Info("Researcher created",
		zap.String("researcher_id", researcher.ID),
		zap.String("department", researcher.Department),
	)
	return researcher.ID, nil
}

// SetResearcherStatus transitions a researcher's profile status. Soft
// deletion is a transition to deleted; the node stays while graph edges
// reference it.
func (r *Repository) SetResearcherStatus(ctx context.Context, researcherID, status string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r:Researcher {id: $id})
		SET r.status = $status
		RETURN r.id as id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"id":     researcherID,
		"status": status,
	})
	if err != nil {
		return fmt.Errorf("failed to set researcher status: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return fmt.Errorf("failed to fetch record: %w", err)
		}
		return apperrors.NewResearcherNotFound(researcherID)
	}

	r.logger.Info("Researcher status updated",
		zap.String("researcher_id", researcherID),
		zap.String("status", status),
	)
	return nil
}

// DeleteResearcher physically removes a researcher and all attached edges
// (cascading edge removal)
func (r *Repository) DeleteResearcher(ctx context.Context, researcherID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r:Researcher {id: $id})
		DETACH DELETE r
	`

	_, err := session.Run(ctx, query, map[string]interface{}{"id": researcherID})
	if err != nil {
		return fmt.Errorf("failed to delete researcher: %w", err)
	}

	r.logger.Info("Researcher deleted", zap.String("researcher_id", researcherID))
	return nil
}

// CreateProject creates a project node and PARTICIPATED_IN edges for every
// participant. The creator is always included. Participant pairs get
// TEAMWORK_WITH merges.
func (r *Repository) CreateProject(ctx context.Context, project Project) (string, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = ProjectPending
	}

	participants := project.Participants
	if project.CreatedBy != "" && !containsString(participants, project.CreatedBy) {
		participants = append(participants, project.CreatedBy)
	}
	if len(participants) == 0 {
		return "", fmt.Errorf("project requires at least one participant")
	}

	startDate := project.StartDate.UTC().Format(time.RFC3339)
	params := map[string]interface{}{
		"id":           project.ID,
		"title":        project.Title,
		"status":       project.Status,
		"startDate":    startDate,
		"createdBy":    project.CreatedBy,
		"participants": participants,
		"now":          time.Now().UTC().Format(time.RFC3339),
	}

	query := `
		MERGE (p:Project {id: $id})
		SET p.title = $title,
		    p.status = $status,
		    p.start_date = datetime($startDate),
		    p.created_by = $createdBy
		WITH p
		MATCH (r:Researcher)
		WHERE r.id IN $participants
		MERGE (r)-[pi:PARTICIPATED_IN]->(p)
		ON CREATE SET pi.joined = datetime($now)
		RETURN p.id as id
	`

	if project.EndDate != nil {
		params["endDate"] = project.EndDate.UTC().Format(time.RFC3339)
		query = `
			MERGE (p:Project {id: $id})
			SET p.title = $title,
			    p.status = $status,
			    p.start_date = datetime($startDate),
			    p.end_date = datetime($endDate),
			    p.created_by = $createdBy
			WITH p
			MATCH (r:Researcher)
			WHERE r.id IN $participants
			MERGE (r)-[pi:PARTICIPATED_IN]->(p)
			ON CREATE SET pi.joined = datetime($now)
			RETURN p.id as id
		`
	}

	if _, err := session.Run(ctx, query, params); err != nil {
		return "", fmt.Errorf("failed to create project: %w", err)
	}

	// Teamwork edges between every participant pair
	for i := 0; i < len(participants); i++ {
		for j := i + 1; j < len(participants); j++ {
			if err := r.recordTeamworkInSession(ctx, session, participants[i], participants[j], project.ID); err != nil {
				return "", err
			}
		}
	}

	r.logger.Info("Project created",
		zap.String("project_id", project.ID),
		zap.Int("participants", len(participants)),
	)
	return project.ID, nil
}

// AddParticipant joins a researcher to a project and records teamwork with
// every existing participant
func (r *Repository) AddParticipant(ctx context.Context, projectID, researcherID string) error {
	project, err := r.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if _, err := r.GetResearcher(ctx, researcherID); err != nil {
		return err
	}

	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (p:Project {id: $projectID})
		MATCH (r:Researcher {id: $researcherID})
		MERGE (r)-[pi:PARTICIPATED_IN]->(p)
		ON CREATE SET pi.joined = datetime($now)
	`

	_, err = session.Run(ctx, query, map[string]interface{}{
		"projectID":    projectID,
		"researcherID": researcherID,
		"now":          time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}

	for _, existing := range project.Participants {
		if existing == researcherID {
			continue
		}
		if err := r.recordTeamworkInSession(ctx, session, researcherID, existing, projectID); err != nil {
			return err
		}
	}

	return nil
}

// CreatePublication creates a publication node, AUTHORED edges in author
// order, pairwise CO_AUTHORED_WITH merges between all authors, and a
// PRODUCED edge when a project is given
func (r *Repository) CreatePublication(ctx context.Context, pub Publication, projectID string) (string, error) {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	if pub.ID == "" {
		pub.ID = uuid.New().String()
	}
	if len(pub.Authors) == 0 {
		return "", fmt.Errorf("publication requires at least one author")
	}

	query := `
		MERGE (p:Publication {id: $id})
		SET p.title = $title,
		    p.year = $year,
		    p.citation_count = $citationCount
		RETURN p.id as id
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"id":            pub.ID,
		"title":         pub.Title,
		"year":          pub.Year,
		"citationCount": pub.CitationCount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create publication: %w", err)
	}

	authorQuery := `
		MATCH (r:Researcher {id: $researcherID})
		MATCH (p:Publication {id: $publicationID})
		MERGE (r)-[a:AUTHORED]->(p)
		SET a.author_order = $order
	`

	for _, author := range pub.Authors {
		_, err := session.Run(ctx, authorQuery, map[string]interface{}{
			"researcherID":  author.ResearcherID,
			"publicationID": pub.ID,
			"order":         author.Order,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create authorship edge: %w", err)
		}
	}

	// Co-authorship merges between every author pair
	for i := 0; i < len(pub.Authors); i++ {
		for j := i + 1; j < len(pub.Authors); j++ {
			if err := r.recordCoAuthorshipInSession(ctx, session, pub.Authors[i].ResearcherID, pub.Authors[j].ResearcherID, pub.ID); err != nil {
				return "", err
			}
		}
	}

	if projectID != "" {
		producedQuery := `
			MATCH (proj:Project {id: $projectID})
			MATCH (pub:Publication {id: $publicationID})
			MERGE (proj)-[:PRODUCED]->(pub)
		`
		_, err := session.Run(ctx, producedQuery, map[string]interface{}{
			"projectID":     projectID,
			"publicationID": pub.ID,
		})
		if err != nil {
			return "", fmt.Errorf("failed to create produced edge: %w", err)
		}
	}

	r.logger.Info("Publication recorded",
		zap.String("publication_id", pub.ID),
		zap.Int("authors", len(pub.Authors)),
	)
	return pub.ID, nil
}

// RecordSupervision records a supervision event between a supervisor and a
// supervised researcher on a project
func (r *Repository) RecordSupervision(ctx context.Context, supervisorID, superviseeID, projectID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (s:Researcher {id: $supervisorID})
		MATCH (t:Researcher {id: $superviseeID})
		MERGE (s)-[sv:SUPERVISED]->(t)
		ON CREATE SET
			sv.collaboration_count = 1,
			sv.projects = [$projectID]
		ON MATCH SET
			sv.collaboration_count = CASE
				WHEN $projectID IN sv.projects THEN sv.collaboration_count
				ELSE sv.collaboration_count + 1
			END,
			sv.projects = CASE
				WHEN $projectID IN sv.projects THEN sv.projects
				ELSE sv.projects + $projectID
			END
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"supervisorID": supervisorID,
		"superviseeID": superviseeID,
		"projectID":    projectID,
	})
	if err != nil {
		return fmt.Errorf("failed to record supervision: %w", err)
	}

	return nil
}

// RecordTeamwork records a teamwork collaboration between two researchers on
// a project
func (r *Repository) RecordTeamwork(ctx context.Context, id1, id2, projectID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	return r.recordTeamworkInSession(ctx, session, id1, id2, projectID)
}

// RecordCoAuthorship records a co-authorship between two researchers on a
// publication
func (r *Repository) RecordCoAuthorship(ctx context.Context, id1, id2, publicationID string) error {
	session := r.writeSession(ctx)
	defer session.Close(ctx)

	return r.recordCoAuthorshipInSession(ctx, session, id1, id2, publicationID)
}

func (r *Repository) recordTeamworkInSession(ctx context.Context, session neo4j.SessionWithContext, id1, id2, projectID string) error {
	src, dst := orderPair(id1, id2)

	query := `
		MATCH (a:Researcher {id: $src})
		MATCH (b:Researcher {id: $dst})
		MERGE (a)-[t:TEAMWORK_WITH]->(b)
		ON CREATE SET
			t.collaboration_count = 1,
			t.projects = [$projectID]
		ON MATCH SET
			t.collaboration_count = CASE
				WHEN $projectID IN t.projects THEN t.collaboration_count
				ELSE t.collaboration_count + 1
			END,
			t.projects = CASE
				WHEN $projectID IN t.projects THEN t.projects
				ELSE t.projects + $projectID
			END
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"src":       src,
		"dst":       dst,
		"projectID": projectID,
	})
	if err != nil {
		return fmt.Errorf("failed to record teamwork: %w", err)
	}
	return nil
}

func (r *Repository) recordCoAuthorshipInSession(ctx context.Context, session neo4j.SessionWithContext, id1, id2, publicationID string) error {
	src, dst := orderPair(id1, id2)
	now := time.Now().UTC().Format(time.RFC3339)

	query := `
		MATCH (a:Researcher {id: $src})
		MATCH (b:Researcher {id: $dst})
		MERGE (a)-[c:CO_AUTHORED_WITH]->(b)
		ON CREATE SET
			c.collaboration_count = 1,
			c.first_date = datetime($now),
			c.last_date = datetime($now),
			c.publications = [$publicationID]
		ON MATCH SET
			c.collaboration_count = CASE
				WHEN $publicationID IN c.publications THEN c.collaboration_count
				ELSE c.collaboration_count + 1
			END,
			c.last_date = datetime($now),
			c.publications = CASE
				WHEN $publicationID IN c.publications THEN c.publications
				ELSE c.publications + $publicationID
			END
	`

	_, err := session.Run(ctx, query, map[string]interface{}{
		"src":           src,
		"dst":           dst,
		"publicationID": publicationID,
		"now":           now,
	})
	if err != nil {
		return fmt.Errorf("failed to record co-authorship: %w", err)
	}
	return nil
}

// orderPair returns the pair in canonical storage order (smaller ID first)
func orderPair(id1, id2 string) (string, string) {
	if id1 > id2 {
		return id2, id1
	}
	return id1, id2
}

func containsString(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
