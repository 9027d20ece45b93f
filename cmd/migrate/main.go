package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	adapterapi "groupstat/adapters/api"
	"groupstat/adapters/postgres"
	"groupstat/adapters/stats/engine"
	"groupstat/app"
	"groupstat/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [dataset_dir]")
	}

	databaseURL := os.Args[1]

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema migrated to version %s", migrator.Version())

	if len(os.Args) < 3 {
		return
	}
	datasetDir := os.Args[2]

	files, err := findDatasetFiles(datasetDir)
	if err != nil {
		log.Fatalf("Failed to find dataset files: %v", err)
	}
	log.Printf("Found %d dataset files to import from %s", len(files), datasetDir)

	service := app.NewComputeService(engine.NewGroupedStatsEngine(), postgres.NewComputationRepository(db), 1)
	normalizer := adapterapi.NewNormalizer(adapterapi.DefaultNormalizerConfig())

	imported := 0
	skipped := 0
	for _, file := range files {
		body, err := os.ReadFile(file)
		if err != nil {
			log.Printf("Failed to read %s: %v", file, err)
			skipped++
			continue
		}

		rows, err := normalizer.ParseComputeRequest(body)
		if err != nil {
			log.Printf("Skipping %s: %v", filepath.Base(file), err)
			skipped++
			continue
		}

		computation, err := service.Compute(ctx, "import:"+filepath.Base(file), rows)
		if err != nil {
			log.Printf("Failed to compute %s: %v", filepath.Base(file), err)
			skipped++
			continue
		}

		imported++
		log.Printf("Imported computation %s from %s", computation.ID, filepath.Base(file))
	}

	log.Printf("Import complete: %d imported, %d skipped", imported, skipped)
}

// findDatasetFiles lists the .json request bodies under dir
func findDatasetFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
