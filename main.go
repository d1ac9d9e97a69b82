package main

import (
	"fmt"
	"os"

	"finapi/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load ./.env if present before reading vars; existing env wins.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}

	// Support a lightweight migrate command: `./finapi migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		migrateDB(openDB())
		fmt.Println("migration and seeding completed")
		return
	}

	db := openDB()
	migrateDB(db)

	api := newAPI(store.New(db), []byte(secret))

	r := gin.Default()
	r.Static("/static", uploadBaseDir())
	setupRoutes(r, api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	r.Run(":" + port)
}
