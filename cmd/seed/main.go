package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/chapternet/directory-api/config"
	"github.com/chapternet/directory-api/internal/domain/slug"
	"github.com/chapternet/directory-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Base chapters
	chapters := []string{"Jakarta", "Singapore", "Remote"}
	var firstChapterID string
	for i, name := range chapters {
		var id string
		err := db.QueryRow(`
			INSERT INTO chapters (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, updated_at = now()
			RETURNING id
		`, name, slug.Make(name)).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed chapter %q: %v", name, err)
		}
		if i == 0 {
			firstChapterID = id
		}
		fmt.Printf("chapter ensured: id=%s name=%s\n", id, name)
	}

	// Verified admin account
	email := "admin@example.com"
	password := "changeme123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, first_name, last_name, role, chapter_id, is_verified)
		VALUES ($1, $2, 'Site', 'Admin', 'admin', $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET role = 'admin', is_verified = TRUE, updated_at = now()
		RETURNING id
	`, email, hash, firstChapterID).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	fmt.Printf("admin ensured: id=%s email=%s password=%s\n", userID, email, password)

	// Hidden profile so the admin never shows in the public directory
	if _, err := db.Exec(`
		INSERT INTO profiles (user_id, title, status, is_public, slug)
		VALUES ($1, 'Administrator', 'ACTIVE', FALSE, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, slug.Make("Site Admin")); err != nil {
		log.Fatalf("failed to seed admin profile: %v", err)
	}
	fmt.Println("admin profile ensured")
}
