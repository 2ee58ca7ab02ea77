// Command main populates the database with demo data.
package main

import (
	"flag"
	"log"

	"blogicum/internal/config"
	"blogicum/internal/database"
	"blogicum/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numPosts := flag.Int("posts", 120, "Number of posts to create")
	comments := flag.Int("comments", 3, "Comments per post")
	maxDays := flag.Int("days", 90, "Spread publication dates over this many days")
	shouldClean := flag.Bool("clean", false, "Delete existing content before seeding")
	catalogOnly := flag.Bool("catalog-only", false, "Only upsert the built-in categories and locations")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible content (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *catalogOnly {
		categories, locations, err := seed.SeedCatalog(db)
		if err != nil {
			log.Fatalf("Catalog seeding failed: %v", err)
		}
		log.Printf("Catalog ready: %d categories, %d locations", len(categories), len(locations))
		return
	}

	s := seed.NewSeeder(db, seed.Options{
		NumUsers:        *numUsers,
		NumPosts:        *numPosts,
		CommentsPerPost: *comments,
		MaxDays:         *maxDays,
		Seed:            *randSeed,
	})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	res, err := s.Run()
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d posts, %d comments", res.Users, res.Posts, res.Comments)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
