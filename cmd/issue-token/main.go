package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ticketpass/internal/auth"
	"ticketpass/internal/config"
	"ticketpass/internal/identity"
)

// Mints a signed bearer token for a principal, for local development and
// gate-device provisioning. Production callers are expected to obtain
// tokens from the deployment's identity provider instead.
func main() {
	var (
		principalFlag = flag.String("principal", "", "Principal to issue the token for")
		ttlFlag       = flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	)
	flag.Parse()

	if *principalFlag == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/issue-token/main.go -principal alice [-ttl 24h]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	token, err := auth.IssueToken([]byte(cfg.Identity.TokenSecret), identity.Principal(*principalFlag), *ttlFlag)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}
