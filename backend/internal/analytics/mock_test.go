package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	"collabgraph/backend/internal/graph"
	apperrors "collabgraph/backend/pkg/errors"
)

// Mock implementations for testing

type mockEdge struct {
	count        int
	publications []string
}

type mockStore struct {
	researchers map[string]graph.Researcher
	projects    map[string]graph.Project
	coAuthor    map[graph.PairKey]*mockEdge
	pubYears    map[string][]int
	citations   map[string]graph.CitationStats
	failWith    error // every method returns this when set
}

func newMockStore() *mockStore {
	return &mockStore{
		researchers: make(map[string]graph.Researcher),
		projects:    make(map[string]graph.Project),
		coAuthor:    make(map[graph.PairKey]*mockEdge),
		pubYears:    make(map[string][]int),
		citations:   make(map[string]graph.CitationStats),
	}
}

func (m *mockStore) addResearcher(id, name, department, status string, interests ...string) {
	m.researchers[id] = graph.Researcher{
		ID: id, Name: name, Department: department, Status: status, Interests: interests,
	}
}

func (m *mockStore) addCoAuthorship(id1, id2 string, count int, publications ...string) {
	m.coAuthor[graph.NewPairKey(id1, id2)] = &mockEdge{count: count, publications: publications}
}

func (m *mockStore) GetResearcher(ctx context.Context, id string) (*graph.Researcher, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	r, ok := m.researchers[id]
	if !ok {
		return nil, apperrors.NewResearcherNotFound(id)
	}
	return &r, nil
}

func (m *mockStore) GetProject(ctx context.Context, id string) (*graph.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.projects[id]
	if !ok {
		return nil, apperrors.NewProjectNotFound(id)
	}
	return &p, nil
}

func (m *mockStore) FindResearchersByInterest(ctx context.Context, area string) ([]graph.Researcher, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var matched []graph.Researcher
	for _, r := range m.researchers {
		if r.Status != graph.StatusApproved {
			continue
		}
		for _, tag := range r.Interests {
			if strings.Contains(strings.ToLower(tag), strings.ToLower(area)) {
				matched = append(matched, r)
				break
			}
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (m *mockStore) ListApprovedResearchers(ctx context.Context) ([]graph.Researcher, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var approved []graph.Researcher
	for _, r := range m.researchers {
		if r.Status == graph.StatusApproved {
			approved = append(approved, r)
		}
	}
	sort.Slice(approved, func(i, j int) bool { return approved[i].ID < approved[j].ID })
	return approved, nil
}

func (m *mockStore) ListActiveProjects(ctx context.Context, minParticipants int) ([]graph.Project, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var active []graph.Project
	for _, p := range m.projects {
		if p.Status == graph.ProjectActive && len(p.Participants) >= minParticipants {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active, nil
}

func (m *mockStore) ResearchersByID(ctx context.Context, ids []string) (map[string]graph.Researcher, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make(map[string]graph.Researcher)
	for _, id := range ids {
		if r, ok := m.researchers[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

func (m *mockStore) AggregateCitations(ctx context.Context, id string) (*graph.CitationStats, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	stats := m.citations[id]
	return &stats, nil
}

func (m *mockStore) PublicationYears(ctx context.Context, id string) ([]int, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.pubYears[id], nil
}

// ShortestPaths runs a BFS over the co-authorship adjacency, returning every
// shortest path in node-ID order up to maxPaths, mirroring the repository's
// deterministic ordering contract.
func (m *mockStore) ShortestPaths(ctx context.Context, idA, idB string, maxPaths int) ([]graph.Path, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}

	adjacency := make(map[string][]string)
	for pair := range m.coAuthor {
		adjacency[pair.A] = append(adjacency[pair.A], pair.B)
		adjacency[pair.B] = append(adjacency[pair.B], pair.A)
	}
	for id := range adjacency {
		sort.Strings(adjacency[id])
	}

	// Layered BFS recording every predecessor on a shortest path
	dist := map[string]int{idA: 0}
	preds := make(map[string][]string)
	frontier := []string{idA}
	for len(frontier) > 0 && dist[idB] == 0 {
		var next []string
		for _, node := range frontier {
			for _, neighbor := range adjacency[node] {
				if d, seen := dist[neighbor]; !seen {
					dist[neighbor] = dist[node] + 1
					preds[neighbor] = []string{node}
					next = append(next, neighbor)
				} else if d == dist[node]+1 {
					preds[neighbor] = append(preds[neighbor], node)
				}
			}
		}
		frontier = next
	}
	if _, reachable := dist[idB]; !reachable || idA == idB {
		return []graph.Path{}, nil
	}

	var sequences [][]string
	var walk func(node string, suffix []string)
	walk = func(node string, suffix []string) {
		seq := append([]string{node}, suffix...)
		if node == idA {
			sequences = append(sequences, seq)
			return
		}
		for _, pred := range preds[node] {
			walk(pred, seq)
		}
	}
	walk(idB, nil)

	sort.Slice(sequences, func(i, j int) bool {
		return strings.Join(sequences[i], "|") < strings.Join(sequences[j], "|")
	})
	if len(sequences) > maxPaths {
		sequences = sequences[:maxPaths]
	}

	paths := make([]graph.Path, 0, len(sequences))
	for _, seq := range sequences {
		path := graph.Path{Length: len(seq) - 1}
		for i, id := range seq {
			role := "bridge"
			if i == 0 || i == len(seq)-1 {
				role = "target"
			}
			path.Nodes = append(path.Nodes, graph.PathNode{
				ID: id, Name: m.researchers[id].Name, Role: role,
			})
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (m *mockStore) CoAuthorEdges(ctx context.Context, filter graph.EdgeFilter) ([]graph.CoAuthorEdge, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var edges []graph.CoAuthorEdge
	for pair, edge := range m.coAuthor {
		if edge.count < filter.MinCollaborations {
			continue
		}
		src, dst := m.researchers[pair.A], m.researchers[pair.B]
		if filter.Department != "" && src.Department != filter.Department && dst.Department != filter.Department {
			continue
		}
		edges = append(edges, graph.CoAuthorEdge{
			SourceID: src.ID, SourceName: src.Name, SourceDepartment: src.Department,
			TargetID: dst.ID, TargetName: dst.Name, TargetDepartment: dst.Department,
			CollaborationCount: edge.count,
			Publications:       edge.publications,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].SourceID != edges[j].SourceID {
			return edges[i].SourceID < edges[j].SourceID
		}
		return edges[i].TargetID < edges[j].TargetID
	})
	return edges, nil
}

func (m *mockStore) CoAuthors(ctx context.Context, id string) ([]graph.CoAuthorLink, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var links []graph.CoAuthorLink
	for pair, edge := range m.coAuthor {
		switch id {
		case pair.A:
			links = append(links, graph.CoAuthorLink{PartnerID: pair.B, CollaborationCount: edge.count})
		case pair.B:
			links = append(links, graph.CoAuthorLink{PartnerID: pair.A, CollaborationCount: edge.count})
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].PartnerID < links[j].PartnerID })
	return links, nil
}

func (m *mockStore) MutualCoAuthors(ctx context.Context, idA, idB string) ([]string, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	partnersOf := func(id string) map[string]bool {
		partners := make(map[string]bool)
		for pair := range m.coAuthor {
			if pair.A == id {
				partners[pair.B] = true
			}
			if pair.B == id {
				partners[pair.A] = true
			}
		}
		return partners
	}
	a, b := partnersOf(idA), partnersOf(idB)
	var mutual []string
	for id := range a {
		if b[id] && id != idA && id != idB {
			mutual = append(mutual, id)
		}
	}
	sort.Strings(mutual)
	return mutual, nil
}

func (m *mockStore) CollaborationPairs(ctx context.Context, ids []string) (map[graph.PairKey]bool, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	within := make(map[string]bool, len(ids))
	for _, id := range ids {
		within[id] = true
	}
	pairs := make(map[graph.PairKey]bool)
	for pair := range m.coAuthor {
		if within[pair.A] && within[pair.B] {
			pairs[pair] = true
		}
	}
	return pairs, nil
}

// mockCache is an in-memory Cache with real expiry

type mockCacheEntry struct {
	value   []byte
	expires time.Time
}

type mockCache struct {
	entries map[string]mockCacheEntry
	sets    int
	hits    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]mockCacheEntry)}
}

func (c *mockCache) Get(key string) ([]byte, bool, error) {
	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expires) {
		return nil, false, nil
	}
	c.hits++
	return entry.value, true, nil
}

func (c *mockCache) Set(key string, value []byte, ttl time.Duration) error {
	c.sets++
	c.entries[key] = mockCacheEntry{value: value, expires: time.Now().Add(ttl)}
	return nil
}

func (c *mockCache) Close() error { return nil }

func newTestService(store Store) *Service {
	return NewService(store, newMockCache(), Config{})
}
