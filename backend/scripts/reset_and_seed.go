package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"collabgraph/backend/internal/graph"
	"collabgraph/backend/pkg/config"
	"collabgraph/backend/pkg/logger"
)

// Resets the Neo4j database and seeds a demo collaboration graph: three
// departments, cross-department projects, and enough co-authorship history to
// give every analytics operation a non-trivial answer.

func main() {
	skipConfirm := flag.Bool("y", false, "Skip confirmation prompt")
	flag.Parse()

	// Initialize logger
	if err := logger.Init("development"); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database reset and seed...")

	// Warning prompt
	if !*skipConfirm {
		log.Warn("WARNING: This will DELETE ALL DATA from Neo4j!")
		log.Warn("This action cannot be undone.")
		fmt.Print("Are you sure you want to continue? (yes/no): ")
		var response string
		fmt.Scanln(&response)
		if response != "yes" && response != "y" {
			log.Info("Aborted.")
			os.Exit(0)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Neo4j driver
	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	defer driver.Close(context.Background())

	// Verify connection
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	// Step 1: Delete all data
	log.Info("Step 1: Deleting all data from Neo4j...")
	if err := deleteAllData(ctx, driver); err != nil {
		log.Fatal("Failed to delete all data", zap.Error(err))
	}
	log.Info("All data deleted successfully")

	// Step 2: Create constraints
	log.Info("Step 2: Creating constraints...")
	if err := createConstraints(ctx, driver, log); err != nil {
		log.Fatal("Failed to create constraints", zap.Error(err))
	}
	log.Info("Constraints created successfully")

	// Step 3: Create indexes
	log.Info("Step 3: Creating indexes...")
	if err := createIndexes(ctx, driver, log); err != nil {
		log.Warn("Some indexes may not have been created", zap.Error(err))
	}
	log.Info("Indexes created")

	// Step 4: Seed the demo graph
	repo := graph.NewRepository(driver)
	log.Info("Step 4: Seeding demo collaboration graph...")
	if err := seedGraph(ctx, repo); err != nil {
		log.Fatal("Failed to seed graph", zap.Error(err))
	}

	log.Info("Reset and seed completed successfully!")
}

func deleteAllData(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
	if err != nil {
		return fmt.Errorf("failed to delete all data: %w", err)
	}
	return nil
}

func createConstraints(ctx context.Context, driver neo4j.DriverWithContext, log *zap.Logger) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT researcher_id_unique IF NOT EXISTS FOR (r:Researcher) REQUIRE r.id IS UNIQUE",
		"CREATE CONSTRAINT project_id_unique IF NOT EXISTS FOR (p:Project) REQUIRE p.id IS UNIQUE",
		"CREATE CONSTRAINT publication_id_unique IF NOT EXISTS FOR (p:Publication) REQUIRE p.id IS UNIQUE",
	}

	for _, constraint := range constraints {
		_, err := session.Run(ctx, constraint, nil)
		if err != nil {
			log.Warn("Failed to create constraint (may already exist)", zap.String("constraint", constraint), zap.Error(err))
		}
	}

	return nil
}

func createIndexes(ctx context.Context, driver neo4j.DriverWithContext, log *zap.Logger) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	indexes := []string{
		"CREATE INDEX researcher_status IF NOT EXISTS FOR (r:Researcher) ON (r.status)",
		"CREATE INDEX researcher_department IF NOT EXISTS FOR (r:Researcher) ON (r.department)",
		"CREATE INDEX project_status IF NOT EXISTS FOR (p:Project) ON (p.status)",
		"CREATE INDEX publication_year IF NOT EXISTS FOR (p:Publication) ON (p.year)",
	}

	for _, index := range indexes {
		_, err := session.Run(ctx, index, nil)
		if err != nil {
			log.Warn("Failed to create index", zap.String("index", index), zap.Error(err))
		}
	}

	return nil
}

func seedGraph(ctx context.Context, repo *graph.Repository) error {
	researchers := []graph.Researcher{
		{ID: "r-alice", Name: "Alice Hartmann", Department: "Computer Science", Interests: []string{"NLP", "Machine Learning"}},
		{ID: "r-bruno", Name: "Bruno Keller", Department: "Computer Science", Interests: []string{"Machine Learning", "Computer Vision"}},
		{ID: "r-carla", Name: "Carla Mendes", Department: "Biology", Interests: []string{"Genomics", "Machine Learning"}},
		{ID: "r-dmitri", Name: "Dmitri Volkov", Department: "Biology", Interests: []string{"Genomics", "Proteomics"}},
		{ID: "r-elena", Name: "Elena Rossi", Department: "Statistics", Interests: []string{"Bayesian Inference", "Machine Learning"}},
		{ID: "r-farid", Name: "Farid Nazari", Department: "Statistics", Interests: []string{"Causal Inference", "NLP"}},
		{ID: "r-greta", Name: "Greta Lindholm", Department: "Computer Science", Interests: []string{"NLP", "Speech"}},
	}

	for _, r := range researchers {
		if _, err := repo.CreateResearcher(ctx, r); err != nil {
			return fmt.Errorf("failed to create researcher %s: %w", r.ID, err)
		}
		if err := repo.SetResearcherStatus(ctx, r.ID, graph.StatusApproved); err != nil {
			return fmt.Errorf("failed to approve researcher %s: %w", r.ID, err)
		}
	}

	projects := []graph.Project{
		{
			ID:           "proj-corpus",
			Title:        "Multilingual Corpus Mining",
			Status:       graph.ProjectActive,
			StartDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy:    "r-alice",
			Participants: []string{"r-alice", "r-farid", "r-greta"},
		},
		{
			ID:           "proj-genome",
			Title:        "Genome-Scale Expression Atlas",
			Status:       graph.ProjectActive,
			StartDate:    time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC),
			CreatedBy:    "r-carla",
			Participants: []string{"r-carla", "r-dmitri", "r-elena"},
		},
		{
			ID:           "proj-fusion",
			Title:        "Cross-Modal Representation Learning",
			Status:       graph.ProjectActive,
			StartDate:    time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			CreatedBy:    "r-bruno",
			Participants: []string{"r-bruno", "r-carla", "r-elena", "r-greta"},
		},
	}

	for _, p := range projects {
		if _, err := repo.CreateProject(ctx, p); err != nil {
			return fmt.Errorf("failed to create project %s: %w", p.ID, err)
		}
	}

	publications := []struct {
		pub       graph.Publication
		projectID string
	}{
		{
			pub: graph.Publication{
				ID: "pub-embed", Title: "Multilingual Embeddings at Scale", Year: 2024, CitationCount: 34,
				Authors: []graph.Author{{ResearcherID: "r-alice", Order: 1}, {ResearcherID: "r-greta", Order: 2}},
			},
			projectID: "proj-corpus",
		},
		{
			pub: graph.Publication{
				ID: "pub-parse", Title: "Low-Resource Parsing with Causal Priors", Year: 2025, CitationCount: 12,
				Authors: []graph.Author{{ResearcherID: "r-alice", Order: 1}, {ResearcherID: "r-farid", Order: 2}, {ResearcherID: "r-greta", Order: 3}},
			},
			projectID: "proj-corpus",
		},
		{
			pub: graph.Publication{
				ID: "pub-atlas", Title: "An Expression Atlas for Model Organisms", Year: 2024, CitationCount: 58,
				Authors: []graph.Author{{ResearcherID: "r-carla", Order: 1}, {ResearcherID: "r-dmitri", Order: 2}},
			},
			projectID: "proj-genome",
		},
		{
			pub: graph.Publication{
				ID: "pub-bayes", Title: "Bayesian Models of Gene Regulation", Year: 2024, CitationCount: 21,
				Authors: []graph.Author{{ResearcherID: "r-elena", Order: 1}, {ResearcherID: "r-carla", Order: 2}},
			},
			projectID: "proj-genome",
		},
		{
			pub: graph.Publication{
				ID: "pub-early", Title: "Sequence Models for Expression Data", Year: 2022, CitationCount: 44,
				Authors: []graph.Author{{ResearcherID: "r-carla", Order: 1}, {ResearcherID: "r-elena", Order: 2}},
			},
			projectID: "",
		},
	}

	for _, entry := range publications {
		if _, err := repo.CreatePublication(ctx, entry.pub, entry.projectID); err != nil {
			return fmt.Errorf("failed to create publication %s: %w", entry.pub.ID, err)
		}
	}

	if err := repo.RecordSupervision(ctx, "r-carla", "r-dmitri", "proj-genome"); err != nil {
		return fmt.Errorf("failed to record supervision: %w", err)
	}
	if err := repo.RecordSupervision(ctx, "r-alice", "r-greta", "proj-corpus"); err != nil {
		return fmt.Errorf("failed to record supervision: %w", err)
	}

	return nil
}
