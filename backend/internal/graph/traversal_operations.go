package graph

import (
	"context"
	"fmt"
)

// ============================================================================
// Traversal Operations
// ============================================================================

// ShortestPaths finds up to maxPaths shortest paths between two researchers
// through the undirected collaboration subgraph, using any relationship kind.
// All returned paths share the minimum length. Results are ordered by the
// node-ID sequence of each path, so repeated calls against an unchanged graph
// return the same paths. An empty slice means the researchers are in
// disconnected components.
func (r *Repository) ShortestPaths(ctx context.Context, idA, idB string, maxPaths int) ([]Path, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (a:Researcher {id: $idA}), (b:Researcher {id: $idB})
		MATCH p = allShortestPaths((a)-[*..10]-(b))
		WITH [n IN nodes(p) | n.id] as ids,
		     [n IN nodes(p) | coalesce(n.name, n.title, n.id)] as names,
		     length(p) as len
		RETURN ids, names, len
		ORDER BY ids
		LIMIT $max
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"idA": idA,
		"idB": idB,
		"max": maxPaths,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find shortest paths: %w", err)
	}

	var paths []Path
	for result.Next(ctx) {
		record := result.Record()
		ids := getStringSliceFromRecord(record, "ids")
		names := getStringSliceFromRecord(record, "names")

		path := Path{Length: getIntFromRecord(record, "len")}
		for i, id := range ids {
			node := PathNode{ID: id, Role: "bridge"}
			if i == 0 || i == len(ids)-1 {
				node.Role = "target"
			}
			if i < len(names) {
				node.Name = names[i]
			}
			path.Nodes = append(path.Nodes, node)
		}
		paths = append(paths, path)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate paths: %w", err)
	}

	return paths, nil
}

// CoAuthorEdges returns CO_AUTHORED_WITH edges matching the filter. Each
// undirected edge appears once, with the lexicographically smaller researcher
// ID as the source.
func (r *Repository) CoAuthorEdges(ctx context.Context, filter EdgeFilter) ([]CoAuthorEdge, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r1:Researcher)-[c:CO_AUTHORED_WITH]-(r2:Researcher)
		WHERE r1.id < r2.id
		  AND c.collaboration_count >= $min
		  AND ($dept = '' OR r1.department = $dept OR r2.department = $dept)
		RETURN r1.id as source_id, r1.name as source_name, r1.department as source_department,
		       r2.id as target_id, r2.name as target_name, r2.department as target_department,
		       c.collaboration_count as collaboration_count,
		       coalesce(c.publications, []) as publications
		ORDER BY source_id, target_id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"min":  filter.MinCollaborations,
		"dept": filter.Department,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch co-author edges: %w", err)
	}

	var edges []CoAuthorEdge
	for result.Next(ctx) {
		record := result.Record()
		edges = append(edges, CoAuthorEdge{
			SourceID:           getStringFromRecord(record, "source_id"),
			SourceName:         getStringFromRecord(record, "source_name"),
			SourceDepartment:   getStringFromRecord(record, "source_department"),
			TargetID:           getStringFromRecord(record, "target_id"),
			TargetName:         getStringFromRecord(record, "target_name"),
			TargetDepartment:   getStringFromRecord(record, "target_department"),
			CollaborationCount: getIntFromRecord(record, "collaboration_count"),
			Publications:       getStringSliceFromRecord(record, "publications"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate edges: %w", err)
	}

	return edges, nil
}

// CoAuthors returns a researcher's co-authorship partners with collaboration
// counts
func (r *Repository) CoAuthors(ctx context.Context, researcherID string) ([]CoAuthorLink, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r:Researcher {id: $id})-[c:CO_AUTHORED_WITH]-(partner:Researcher)
		RETURN partner.id as partner_id, c.collaboration_count as collaboration_count
		ORDER BY partner_id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"id": researcherID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch co-authors: %w", err)
	}

	var links []CoAuthorLink
	for result.Next(ctx) {
		record := result.Record()
		links = append(links, CoAuthorLink{
			PartnerID:          getStringFromRecord(record, "partner_id"),
			CollaborationCount: getIntFromRecord(record, "collaboration_count"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate co-authors: %w", err)
	}

	return links, nil
}

// MutualCoAuthors returns the distinct researchers who co-authored with both
// given researchers (2-hop intersection)
func (r *Repository) MutualCoAuthors(ctx context.Context, idA, idB string) ([]string, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (a:Researcher {id: $idA})-[:CO_AUTHORED_WITH]-(m:Researcher)-[:CO_AUTHORED_WITH]-(b:Researcher {id: $idB})
		WHERE m.id <> $idA AND m.id <> $idB
		RETURN collect(DISTINCT m.id) as mutual
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"idA": idA,
		"idB": idB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mutual co-authors: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch record: %w", err)
		}
		return []string{}, nil
	}

	return getStringSliceFromRecord(result.Record(), "mutual"), nil
}

// CollaborationPairs returns, for the given researcher IDs, every unordered
// pair connected by a CO_AUTHORED_WITH edge. One round trip replaces a
// per-pair existence probe in the O(n^2) scans.
func (r *Repository) CollaborationPairs(ctx context.Context, ids []string) (map[PairKey]bool, error) {
	session := r.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (r1:Researcher)-[:CO_AUTHORED_WITH]-(r2:Researcher)
		WHERE r1.id IN $ids AND r2.id IN $ids AND r1.id < r2.id
		RETURN r1.id as a, r2.id as b
	`

	result, err := session.Run(ctx, query, map[string]interface{}{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collaboration pairs: %w", err)
	}

	pairs := make(map[PairKey]bool)
	for result.Next(ctx) {
		record := result.Record()
		pairs[NewPairKey(getStringFromRecord(record, "a"), getStringFromRecord(record, "b"))] = true
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pairs: %w", err)
	}

	return pairs, nil
}
