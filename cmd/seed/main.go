package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/nandakusuma/blogsocial/config"
	"github.com/nandakusuma/blogsocial/internal/domain/entity"
	"github.com/nandakusuma/blogsocial/internal/domain/repository"
	"github.com/nandakusuma/blogsocial/internal/infrastructure/mongodb"
	"github.com/nandakusuma/blogsocial/pkg/helpers"
)

// Seeds the single admin account. Running twice is harmless: the
// unique indexes reject the second insert.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	username := "admin"
	email := "admin@example.com"
	password := "changeme123"

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := mongodb.NewUserRepository(db)
	id, err := users.Create(ctx, &entity.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     entity.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Println("admin account already exists, nothing to do")
			return
		}
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s username=%s password=%s\n", id, username, password)
}
