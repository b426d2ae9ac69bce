// Command seed loads the initial board content and optional random posts.
package main

import (
	"context"
	"flag"
	"log"

	"readable/internal/config"
	"readable/internal/database"
	"readable/internal/models"
	"readable/internal/seed"
)

func main() {
	fixtures := flag.Bool("fixtures", true, "Load the built-in categories, posts and comments")
	numFake := flag.Int("fake", 0, "Number of random posts to generate")
	maxComments := flag.Int("comments", 5, "Maximum random comments per generated post")
	shouldClean := flag.Bool("clean", false, "Delete all posts and comments before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()

	if *shouldClean {
		if err := seed.Clean(ctx, db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		log.Println("existing posts and comments removed")
	}

	if *fixtures {
		if err := seed.Fixtures(ctx, db); err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	}

	if *numFake > 0 {
		var categories []models.Category
		if err := db.WithContext(ctx).Order("path ASC").Find(&categories).Error; err != nil {
			log.Fatalf("Failed to load categories: %v", err)
		}
		paths := make([]string, 0, len(categories))
		for _, c := range categories {
			paths = append(paths, c.Path)
		}

		factory := seed.NewFactory(db, seed.FactoryOptions{MaxComments: *maxComments})
		posts, err := factory.CreatePosts(ctx, paths, *numFake)
		if err != nil {
			log.Fatalf("Random seeding failed after %d posts: %v", len(posts), err)
		}
		log.Printf("%d random posts created", len(posts))
	}

	log.Println("seeding complete")
}
