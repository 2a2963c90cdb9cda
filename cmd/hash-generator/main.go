// Command hash-generator prints a bcrypt hash for each password given on
// the command line. Useful for seeding user rows by hand during local
// development.
package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator <password> [password ...]")
		os.Exit(2)
	}

	for _, password := range os.Args[1:] {
		hash, err := auth.HashPassword(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash %q: %v\n", password, err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
