// Command token prints a player token signed with AUTH_SECRET.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"botarena/server/auth"
)

func main() {
	player := flag.String("player", "", "player name placed in the token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	tokens, err := auth.NewTokens(os.Getenv("AUTH_SECRET"))
	if err != nil {
		log.Fatalf("token: %v", err)
	}
	raw, err := tokens.Issue(*player, *ttl)
	if err != nil {
		log.Fatalf("token: %v", err)
	}
	fmt.Println(raw)
}
