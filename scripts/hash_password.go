package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Generates the bcrypt hash expected in ADMIN_PASSWORD_HASH.
//
//	go run scripts/hash_password.go <password>
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <password>", os.Args[0])
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Println(string(hash))
}
