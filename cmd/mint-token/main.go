package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/user/sticker-shop/internal/auth"
)

// Mints a creator token for the sticker creation endpoint.
//
//	CREATOR_TOKEN_SECRET=... mint-token <creator-name> [ttl]
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: mint-token <creator-name> [ttl]")
		os.Exit(2)
	}
	creator := os.Args[1]

	ttl := 30 * 24 * time.Hour
	if len(os.Args) > 2 {
		parsed, err := time.ParseDuration(os.Args[2])
		if err != nil {
			log.Fatalf("Invalid ttl %q: %v", os.Args[2], err)
		}
		ttl = parsed
	}

	secret := os.Getenv("CREATOR_TOKEN_SECRET")
	if secret == "" {
		secret = "change-me-in-production"
	}

	tokenService := auth.NewTokenService(secret, ttl)
	token, err := tokenService.GenerateCreatorToken(creator)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
}
