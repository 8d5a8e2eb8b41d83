package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"whisper-chat/config"
	"whisper-chat/pkg/database"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing .sql migration files")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg := config.LoadConfig()
	database.Connect(cfg)
	defer database.Close()

	switch command {
	case "up":
		if err := database.ApplyMigrations(*dir); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migrations applied")
	case "status":
		for _, table := range []string{"users", "messages"} {
			exists, err := database.TableExists(table)
			if err != nil {
				log.Fatalf("Failed to check table %s: %v", table, err)
			}
			if !exists {
				fmt.Printf("%s: missing\n", table)
				continue
			}
			count, err := database.GetTableCount(table)
			if err != nil {
				log.Fatalf("Failed to count rows in %s: %v", table, err)
			}
			fmt.Printf("%s: %d rows\n", table, count)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want up or status)\n", command)
		os.Exit(2)
	}
}
