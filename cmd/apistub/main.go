package main

import (
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	jwtsvc "holidaze/internal/pkg/jwt"
	"holidaze/internal/stub"
)

// apistub runs a local stand-in for the remote Holidaze API, so the CLI
// can be developed and demoed offline. Point HOLIDAZE_API_URL at it.
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dsn := flag.String("db", "holidaze-stub.db", "sqlite path, or :memory:")
	secret := flag.String("jwt-secret", "local-stub-secret", "token signing secret")
	seed := flag.Bool("seed", false, "seed demo accounts and venues")
	flag.Parse()

	_ = godotenv.Load()

	db, err := stub.Connect(*dsn)
	if err != nil {
		log.Fatal(err)
	}

	if *seed {
		if err := seedDemoData(db); err != nil {
			log.Fatal("seed failed:", err)
		}
		log.Println("Seeded demo data (owner@stud.noroff.no / guest@stud.noroff.no, password1234)")
	}

	j := jwtsvc.New(*secret, 24*time.Hour)
	r := stub.NewRouter(db, j)

	log.Println("apistub listening on", *addr)
	if err := r.Run(*addr); err != nil {
		log.Fatal(err)
	}
}

func hash(password string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h)
}
