// Command seed fills the database with a generated demo network.
package main

import (
	"context"
	"flag"
	"log"

	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/seed"
)

func main() {
	presetName := flag.String("preset", "demo", "Built-in preset name (demo, crowded) or path to a YAML preset")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	preset, err := seed.OpenPreset(*presetName)
	if err != nil {
		log.Fatalf("Failed to load preset: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	summary, err := s.Apply(ctx, preset)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %q: %d accounts, %d posts, %d comments, %d follows, %d reactions",
		preset.Name, summary.Users, summary.Posts, summary.Comments, summary.Follows, summary.Reactions)
	log.Printf("All seeded accounts use the password %q", preset.Password)
}
