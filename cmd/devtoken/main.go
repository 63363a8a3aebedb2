// Command devtoken mints an access token for local development, signed
// with the configured secret and issuer.
//
// Usage:
//
//	devtoken -user <uuid> [-role caregiver|guardian]
//
// Omit -role for a user who has not completed their profile yet.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/heartmarshall/carematch-backend/internal/auth"
	"github.com/heartmarshall/carematch-backend/internal/config"
	"github.com/heartmarshall/carematch-backend/internal/domain"
)

func main() {
	userFlag := flag.String("user", "", "user id (random when empty)")
	roleFlag := flag.String("role", "", "caregiver or guardian")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	userID := uuid.New()
	if *userFlag != "" {
		userID, err = uuid.Parse(*userFlag)
		if err != nil {
			log.Fatalf("parse -user: %v", err)
		}
	}

	mgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := mgr.GenerateAccessToken(userID, domain.UserRole(*roleFlag))
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Printf("user: %s\n", userID)
	fmt.Println(token)
}
