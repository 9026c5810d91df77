// Command seed-user creates an initial account (and its organisation)
// directly in the database, for bootstrapping environments where the
// public registration endpoint is not yet reachable.
package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/oklog/ulid/v2"

	"github.com/orgpass/orgpass/internal/auth"
)

type output struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	OrgID    string `json:"org_id"`
	OrgName  string `json:"org_name"`
	Password string `json:"password"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		userID      = flag.String("user-id", "admin", "External user identifier")
		email       = flag.String("email", "admin@orgpass.local", "User email")
		firstName   = flag.String("first-name", "Admin", "First name")
		lastName    = flag.String("last-name", "User", "Last name")
		password    = flag.String("password", "", "Password (required)")
		orgName     = flag.String("org-name", "Default", "Organisation name")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *password == "" {
		fmt.Fprintln(os.Stderr, "-password is required")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		fmt.Fprintln(os.Stderr, "begin transaction:", err)
		os.Exit(1)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	orgInternalID := ulid.Make().String()
	orgID := ulid.Make().String()

	// Reuse an existing organisation with the same name, like the
	// registration flow does.
	_, err = tx.Exec(`
		INSERT INTO organisations (id, org_id, name, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO NOTHING
	`, orgInternalID, orgID, *orgName, "Bootstrap organisation", now)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create organisation:", err)
		os.Exit(1)
	}

	if err := tx.QueryRow(
		`SELECT id, org_id FROM organisations WHERE name = $1`, *orgName,
	).Scan(&orgInternalID, &orgID); err != nil {
		fmt.Fprintln(os.Stderr, "resolve organisation:", err)
		os.Exit(1)
	}

	userInternalID := ulid.Make().String()
	_, err = tx.Exec(`
		INSERT INTO users (id, user_id, first_name, last_name, email, phone, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '', $6, $7, $7)
	`, userInternalID, *userID, *firstName, *lastName, *email, hash, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create user:", err)
		os.Exit(1)
	}

	_, err = tx.Exec(`
		INSERT INTO user_organisations (user_id, organisation_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userInternalID, orgInternalID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "add membership:", err)
		os.Exit(1)
	}

	if err := tx.Commit(); err != nil {
		fmt.Fprintln(os.Stderr, "commit:", err)
		os.Exit(1)
	}

	out := output{
		UserID:   *userID,
		Email:    *email,
		OrgID:    orgID,
		OrgName:  *orgName,
		Password: *password,
	}

	if *format == "json" {
		_ = json.NewEncoder(os.Stdout).Encode(out)
		return
	}

	fmt.Printf("user:         %s (%s)\n", out.UserID, out.Email)
	fmt.Printf("organisation: %s (%s)\n", out.OrgName, out.OrgID)
}
