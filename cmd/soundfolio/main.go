// Command soundfolio runs the content backend HTTP server.
package main

import (
	"log"

	"github.com/joho/godotenv"

	"soundfolio"
)

func main() {
	// .env is optional; deployments usually set env vars directly.
	_ = godotenv.Load()

	app := soundfolio.New(soundfolio.Config{
		Addr:         ":" + soundfolio.EnvOr("PORT", "5000"),
		DatabasePath: soundfolio.EnvOr("DATABASE_PATH", "data/soundfolio.db"),
		UploadsDir:   soundfolio.EnvOr("UPLOADS_DIR", "uploads"),
	})
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
