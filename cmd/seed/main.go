// Command main runs the demo data seeder for The Sunflower Post.
package main

import (
	"flag"
	"log"

	"sunflowerpost/internal/bootstrap"
	"sunflowerpost/internal/config"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users\n", *numUsers)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{
		SeedDemoData: true,
		SeedUsers:    *numUsers,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
