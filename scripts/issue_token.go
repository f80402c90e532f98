//go:build ignore

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shop-catalog/internal/auth"
)

// issueToken prints a bearer token signed with JWT_SECRET for local testing:
//
//	JWT_SECRET=dev go run scripts/issue_token.go -sub alice -staff -superuser
func main() {
	subject := flag.String("sub", "dev", "token subject")
	staff := flag.Bool("staff", false, "grant staff access")
	superuser := flag.Bool("superuser", false, "grant superuser access")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "shop-catalog"
	}

	token, err := auth.NewTokenManager(secret, issuer).Issue(*subject, *staff, *superuser, *ttl)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}
