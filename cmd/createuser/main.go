package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"finapi/models"
	"finapi/store"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("usage: go run ./cmd/createuser <email> <document> <password> [name]")
		os.Exit(2)
	}
	email := os.Args[1]
	document := os.Args[2]
	password := os.Args[3]
	name := ""
	if len(os.Args) > 4 {
		name = os.Args[4]
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	s := store.New(db)

	if existing, err := s.UserByEmail(email); err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", email, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{
		Email:          email,
		Document:       document,
		HashedPassword: hpw,
		AccountType:    "individual",
		Name:           name,
		Active:         true,
	}
	if err := s.CreateUser(&user); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%d\n", email, user.ID)
}
