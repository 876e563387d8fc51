// genhash produces a bcrypt hash for a password, useful for seeding
// accounts directly in SQL.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/vrash12/laboratory-management/internal/security"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: genhash <password>")
		os.Exit(1)
	}

	password := os.Args[1]

	cfg := security.DefaultSecurityConfig()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Hash: %s\n", string(hash))

	// Sanity check the hash verifies before handing it out.
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		fmt.Printf("Verification failed: %v\n", err)
		os.Exit(1)
	}
}
