package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/LoganMichel/logmi-app/internal/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	HOT_LINKS      = 100
	WARM_LINKS     = 10000
	PROFILE_LINKS  = 500
	CLICKS_PER_HOT = 2000

	BATCH_SIZE  = 5000
	NUM_WORKERS = 4
)

var (
	deviceTypes = []string{"mobile", "tablet", "desktop", "unknown"}
	countries   = []string{"France", "Germany", "United States", "Brazil", "Japan", ""}
	cities      = []string{"Lyon", "Berlin", "Austin", "Sao Paulo", "Osaka", ""}
)

type DataGenerator struct {
	pool *pgxpool.Pool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	gen := &DataGenerator{pool: pool}

	if err := gen.applySchema(ctx); err != nil {
		log.Fatalf("Failed to apply schema: %v\n", err)
	}

	if err := gen.clearData(ctx); err != nil {
		log.Fatalf("Failed to clear data: %v\n", err)
	}

	hotIDs, err := gen.insertHotLinks(ctx)
	if err != nil {
		log.Fatalf("Failed to insert hot links: %v\n", err)
	}

	if err := gen.insertWarmLinks(ctx); err != nil {
		log.Fatalf("Failed to insert warm links: %v\n", err)
	}

	if err := gen.insertProfileLinks(ctx); err != nil {
		log.Fatalf("Failed to insert profile links: %v\n", err)
	}

	if err := gen.insertClicksParallel(ctx, hotIDs); err != nil {
		log.Fatalf("Failed to insert clicks: %v\n", err)
	}

	if err := gen.analyze(ctx); err != nil {
		log.Fatalf("Failed to analyze tables: %v\n", err)
	}

	if err := gen.verifyData(ctx); err != nil {
		log.Printf("Warning: Data verification failed: %v\n", err)
	}
}

func (g *DataGenerator) applySchema(ctx context.Context) error {
	migrationPath := filepath.Join("..", "..", "..", "migrations", "0001_create_links_tables.up.sql")
	migrationSQL, err := os.ReadFile(migrationPath)
	if err != nil {
		return err
	}

	_, err = g.pool.Exec(ctx, string(migrationSQL))
	return err
}

func (g *DataGenerator) clearData(ctx context.Context) error {
	_, err := g.pool.Exec(ctx, "TRUNCATE link_clicks, links")
	return err
}

const insertLinkQuery = `
	INSERT INTO links (id, variant, name, short_code, long_url, owner, is_active, display_order, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
`

func (g *DataGenerator) insertHotLinks(ctx context.Context) ([]uuid.UUID, error) {
	batch := &pgx.Batch{}
	ids := make([]uuid.UUID, 0, HOT_LINKS)

	for i := 1; i <= HOT_LINKS; i++ {
		id := uuid.New()
		ids = append(ids, id)
		batch.Queue(insertLinkQuery,
			id, "tinyurl", "", fmt.Sprintf("hot%05d", i),
			fmt.Sprintf("https://youtube.com/watch?v=%06d", i),
			"", true, 0, time.Now().Add(-time.Duration(i)*time.Minute),
		)
	}

	br := g.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return nil, fmt.Errorf("batch exec failed: %w", err)
		}
	}

	return ids, nil
}

func (g *DataGenerator) insertWarmLinks(ctx context.Context) error {
	for start := 1; start <= WARM_LINKS; start += BATCH_SIZE {
		end := start + BATCH_SIZE - 1
		if end > WARM_LINKS {
			end = WARM_LINKS
		}

		batch := &pgx.Batch{}
		for i := start; i <= end; i++ {
			batch.Queue(insertLinkQuery,
				uuid.New(), "tinyurl", "", fmt.Sprintf("warm%06d", i),
				fmt.Sprintf("https://github.com/repo/%06d", i),
				"", i%10 != 0, 0, time.Now().Add(-time.Duration(i)*time.Hour),
			)
		}

		br := g.pool.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("batch exec failed: %w", err)
			}
		}
		br.Close()
	}

	return nil
}

func (g *DataGenerator) insertProfileLinks(ctx context.Context) error {
	batch := &pgx.Batch{}

	for i := 1; i <= PROFILE_LINKS; i++ {
		owner := fmt.Sprintf("creator%03d", i%50)
		batch.Queue(insertLinkQuery,
			uuid.New(), "linktree", fmt.Sprintf("Link %d", i), nil,
			fmt.Sprintf("https://example.com/profile/%04d", i),
			owner, true, i%10, time.Now().Add(-time.Duration(i)*time.Hour),
		)
	}

	br := g.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec failed: %w", err)
		}
	}

	return nil
}

func (g *DataGenerator) insertClicksParallel(ctx context.Context, linkIDs []uuid.UUID) error {
	var wg sync.WaitGroup
	errChan := make(chan error, NUM_WORKERS)

	linksPerWorker := len(linkIDs) / NUM_WORKERS

	for workerID := 0; workerID < NUM_WORKERS; workerID++ {
		wg.Add(1)

		start := workerID * linksPerWorker
		end := start + linksPerWorker
		if workerID == NUM_WORKERS-1 {
			end = len(linkIDs)
		}

		go func(id int, ids []uuid.UUID) {
			defer wg.Done()

			if err := g.insertClicksBatch(ctx, ids); err != nil {
				errChan <- fmt.Errorf("worker %d failed: %w", id, err)
			}
		}(workerID, linkIDs[start:end])
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		return err
	}

	return nil
}

func (g *DataGenerator) insertClicksBatch(ctx context.Context, linkIDs []uuid.UUID) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	query := `
		INSERT INTO link_clicks (id, link_id, created_at, via_qrcode, device_type, city, country, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9)
	`

	for _, linkID := range linkIDs {
		for start := 0; start < CLICKS_PER_HOT; start += BATCH_SIZE {
			end := start + BATCH_SIZE
			if end > CLICKS_PER_HOT {
				end = CLICKS_PER_HOT
			}

			batch := &pgx.Batch{}
			for i := start; i < end; i++ {
				loc := rng.Intn(len(countries))
				batch.Queue(query,
					uuid.New(), linkID,
					time.Now().Add(-time.Duration(rng.Intn(30*24))*time.Hour),
					rng.Intn(5) == 0,
					deviceTypes[rng.Intn(len(deviceTypes))],
					cities[loc], countries[loc],
					fmt.Sprintf("203.0.113.%d", rng.Intn(255)),
					"load-generator",
				)
			}

			br := g.pool.SendBatch(ctx, batch)
			for k := 0; k < batch.Len(); k++ {
				if _, err := br.Exec(); err != nil {
					br.Close()
					return fmt.Errorf("batch exec failed: %w", err)
				}
			}
			br.Close()
		}
	}

	return nil
}

func (g *DataGenerator) analyze(ctx context.Context) error {
	for _, table := range []string{"links", "link_clicks"} {
		if _, err := g.pool.Exec(ctx, "ANALYZE "+table); err != nil {
			return err
		}
	}
	return nil
}

func (g *DataGenerator) verifyData(ctx context.Context) error {
	var linkCount int64
	if err := g.pool.QueryRow(ctx, "SELECT COUNT(*) FROM links").Scan(&linkCount); err != nil {
		return err
	}

	expected := int64(HOT_LINKS + WARM_LINKS + PROFILE_LINKS)
	if linkCount != expected {
		return fmt.Errorf("expected %d links but got %d", expected, linkCount)
	}

	var clickCount int64
	if err := g.pool.QueryRow(ctx, "SELECT COUNT(*) FROM link_clicks").Scan(&clickCount); err != nil {
		return err
	}

	if clickCount != int64(HOT_LINKS*CLICKS_PER_HOT) {
		return fmt.Errorf("expected %d clicks but got %d", HOT_LINKS*CLICKS_PER_HOT, clickCount)
	}

	return nil
}
