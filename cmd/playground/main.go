// Playground for exercising the client facade against a real provider.
// Set OPENAI_API_KEY (or pick another backend via AI_CLIENT_BACKEND) and
// run it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"aiupstart.com/ai-client/client"
	"aiupstart.com/ai-client/config"
	"aiupstart.com/ai-client/internal/logging"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Default()
	if path := os.Getenv("AI_CLIENT_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Println("config error:", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	logger := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"))
	ctx := context.Background()

	ai, err := client.New(ctx, cfg, logger)
	if err != nil {
		fmt.Println("client error:", err)
		os.Exit(1)
	}

	content, err := ai.GetFileContentResponse(ctx,
		"You generate complete files. Reply with exactly one fenced code block and nothing else.",
		"Write a minimal .gitignore for a Go project.")
	if err != nil {
		fmt.Println("request error:", err)
		os.Exit(1)
	}
	fmt.Print(content)
}
