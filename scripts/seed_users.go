package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/user"
	"github.com/gayathrinuthana/portfolio-api/pkg/auth"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	Role     string
}

func main() {
	fmt.Println("seeding users and portfolios into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	users := []seedUser{
		{Username: "admin", Email: "admin@test.com", Password: "Admin@123", Role: user.RoleAdmin},
		{Username: "customer", Email: "cust@test.com", Password: "Cust@123", Role: user.RoleCustomer},
	}

	for _, u := range users {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			log.Fatalf("cannot hash password for %s: %v", u.Email, err)
		}

		query := `
			INSERT INTO users (id, username, email, password_hash, role)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (email) DO UPDATE SET password_hash = $4, role = $5
		`
		_, err = pool.Exec(context.Background(), query, uuid.New(), u.Username, u.Email, hash, u.Role)
		if err != nil {
			log.Fatalf("cannot add user %s: %v", u.Email, err)
		}

		if err := seedPortfolio(pool, u); err != nil {
			log.Fatalf("cannot add portfolio for %s: %v", u.Email, err)
		}

		fmt.Printf("added or updated %s '%s' successfully!\n", u.Role, u.Email)
	}
}

func seedPortfolio(pool *pgxpool.Pool, u seedUser) error {
	doc := portfolio.Document{
		OwnerID: u.Email,
		Type:    u.Role,
		Profile: portfolio.Profile{
			Name: u.Username,
			Bio:  "Portfolio seeded for local development.",
		},
		Skills: []portfolio.Skill{
			{Name: "Go", Level: "Advanced"},
			{Name: "PostgreSQL", Level: "Intermediate"},
			{Name: "Kafka", Level: "Intermediate"},
		},
		UpdatedAt: time.Now().UTC(),
	}

	profileJSON, err := json.Marshal(doc.Profile)
	if err != nil {
		return err
	}
	skillsJSON, err := json.Marshal(doc.Skills)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO portfolios (owner_id, type, profile, skills, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner_id) DO NOTHING
	`
	_, err = pool.Exec(context.Background(), query, doc.OwnerID, doc.Type, profileJSON, skillsJSON, doc.UpdatedAt)
	return err
}
