// Command createadmin creates a staff + superuser account from the command
// line. It shares the server's configuration and validation rules: the
// email must be non-empty and the password at least 5 characters.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/ehsanmz/recipe-box/internal/config"
	"github.com/ehsanmz/recipe-box/internal/database"
	"github.com/ehsanmz/recipe-box/internal/repository"
)

func main() {
	email := flag.String("email", "", "email address of the superuser (required)")
	password := flag.String("password", "", "password of the superuser (required, min 5 chars)")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	normalized := repository.NormalizeEmail(*email)
	if normalized == "" {
		log.Fatal("email is required")
	}
	if len(*password) < 5 {
		log.Fatal("password must be at least 5 characters")
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := database.EnsureSchema(db); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepo(db)
	id, err := users.Create(ctx, normalized, *password, *firstName, *lastName, true, true, cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			log.Fatalf("email %s is already registered", normalized)
		}
		log.Fatal(err)
	}
	log.Printf("superuser created: id=%d email=%s", id, normalized)
}
