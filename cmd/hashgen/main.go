// Command hashgen prints a bcrypt hash for a password, for pasting into an
// ADMIN_PASSWORD_HASH_n environment slot.  It is an operator tool, not part
// of the running service.
//
// Usage:
//
//	hashgen -password 'secret' [-cost 12]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/schadenscheck/admin-api/internal/config"
	"github.com/schadenscheck/admin-api/internal/utils"
)

func main() {
	password := flag.String("password", "", "password to hash (required)")
	cost := flag.Int("cost", config.DefaultBcryptCost, "bcrypt cost factor")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "hashgen: -password is required")
		flag.Usage()
		os.Exit(2)
	}

	hash, err := utils.HashPassword(*password, *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashgen: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
