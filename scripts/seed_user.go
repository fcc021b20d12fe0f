package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/khoahotran/growth-tracker/pkg/auth"
)

// Creates or resets a user account and gives it a default profile.
func main() {
	fmt.Println("adding user into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD must be set")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	var id uuid.UUID
	err = pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = $3
		RETURNING id
	`, uuid.New(), email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO profiles (id, name, bio, email, is_public)
		VALUES ($1, 'My Growth Path', 'Recording every step of growth', $2, FALSE)
		ON CONFLICT (id) DO NOTHING
	`, id, email)
	if err != nil {
		log.Fatalf("cannot add profile: %v", err)
	}

	fmt.Printf("added or updated user '%s' (%s) successfully!\n", email, id)
}
