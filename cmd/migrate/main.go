package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/ogc16/FitnessApp/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		log.Fatal("DB_URL environment variable is required")
	}

	migrationsPath, err := database.FindMigrationsDir()
	if err != nil {
		log.Fatal(err)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	if err := database.Migrate(dbUrl, migrationsPath, cmd); err != nil {
		log.Fatal(err)
	}
	log.Printf("Migration %s successful", cmd)
}
