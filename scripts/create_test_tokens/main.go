package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	pkgjwt "github.com/johnquangdev/meeting-summarizer/pkg/jwt"
)

func main() {
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	log.Println("🚀 Minting test tokens...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	jwtManager := pkgjwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.Issuer)

	testUsers := []struct {
		Subject string
		Email   string
		Role    string
	}{
		{Subject: "alice", Email: "alice@test.local", Role: "lead"},
		{Subject: "bob", Email: "bob@test.local", Role: "member"},
		{Subject: "watcher", Email: "", Role: "service"},
	}

	for i, u := range testUsers {
		token, err := jwtManager.GenerateAccessToken(u.Subject, u.Email, u.Role, *expiry)
		if err != nil {
			log.Printf("❌ Failed to generate access token for %s: %v", u.Subject, err)
			continue
		}

		fmt.Printf("═══════════════════════════════════════════════════════════════\n")
		fmt.Printf("🟢 User %d: %s\n", i+1, u.Subject)
		fmt.Printf("═══════════════════════════════════════════════════════════════\n")
		fmt.Printf("Email:        %s\n", u.Email)
		fmt.Printf("Role:         %s\n", u.Role)
		fmt.Printf("\n📋 Access Token (expires in %v):\n", *expiry)
		fmt.Printf("%s\n", token)
		fmt.Printf("───────────────────────────────────────────────────────────────\n\n")
	}

	log.Println("✅ Tokens minted")
	log.Println("💡 Send as header: Authorization: Bearer <access_token>")
}
