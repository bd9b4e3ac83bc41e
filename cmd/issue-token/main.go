// Command issue-token signs an access token for the time bank API. The
// username is recorded as the actor of every ledger movement made with it.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/config"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/jwt"
)

func main() {
	username := flag.String("username", "", "name recorded on ledger movements")
	admin := flag.Bool("admin", false, "grant hard delete and reconcile")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(*username, *admin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error signing token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
