package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Seat matches models.SeatResult
type Seat struct {
	PlayerID string `json:"player_id"`
	Profit   int    `json:"profit"`
	Rebuys   int    `json:"rebuys"`
}

// Game matches models.FinalizedGame
type Game struct {
	GameID  string    `json:"game_id"`
	Date    time.Time `json:"date"`
	Results []Seat    `json:"results"`
}

var roster = []string{"dani", "marco", "lena", "oskar", "petra", "tomas", "vera"}

func main() {
	apiURL := flag.String("url", "http://localhost:8080/api/v1/ingest/games", "ingest endpoint")
	weeks := flag.Int("weeks", 26, "number of weekly games to generate")
	seed := flag.Int64("seed", 42, "rand seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	start := time.Now().AddDate(0, 0, -7*(*weeks))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for w := 0; w < *weeks; w++ {
		game := generateGame(rng, start.AddDate(0, 0, 7*w))
		if err := enc.Encode(game); err != nil {
			log.Fatalf("Failed to marshal game: %v", err)
		}
	}

	req, err := http.NewRequest("POST", *apiURL, &buf)
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(body))
}

// generateGame deals a random subset of the roster a zero-sum night: every
// chip won at the table is a chip someone else lost.
func generateGame(rng *rand.Rand, date time.Time) Game {
	n := 4 + rng.Intn(len(roster)-3)
	picked := rng.Perm(len(roster))[:n]

	seats := make([]Seat, n)
	total := 0
	for i, idx := range picked {
		profit := rng.Intn(301) - 150
		seats[i] = Seat{
			PlayerID: roster[idx],
			Profit:   profit,
			Rebuys:   rng.Intn(3),
		}
		total += profit
	}
	// Settle the residual on the last seat so the night sums to zero.
	seats[n-1].Profit -= total

	return Game{
		GameID:  uuid.NewString(),
		Date:    date,
		Results: seats,
	}
}
