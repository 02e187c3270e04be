// Command main runs the database seeder for CityShare.
package main

import (
	"flag"
	"log"

	"cityshare/internal/config"
	"cityshare/internal/database"
	"cityshare/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	itemsPerUser := flag.Int("items", 3, "Number of items per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store placeholder passwords instead of hashing")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d items each, clean=%v\n", *numUsers, *itemsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{SkipBcrypt: *skipBcrypt})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(*numUsers, *itemsPerUser); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
