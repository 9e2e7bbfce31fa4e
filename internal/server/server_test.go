package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/janpfeifer/GoDobble/internal/config"
	"github.com/janpfeifer/GoDobble/internal/game"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// startServer runs a server on an automatic port until the test ends.
func startServer(t *testing.T, cfg *config.Config) *ServerState {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan *ServerState, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, cfg, started)
	}()
	var s *ServerState
	select {
	case s = <-started:
	case err := <-errCh:
		t.Fatalf("Server failed to start: %v", err)
	}
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			if err != nil {
				t.Errorf("Server shut down with error: %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Errorf("Server took too long to shut down")
		}
	})
	return s
}

func TestServerRun(t *testing.T) {
	s := startServer(t, testConfig(t))

	resp, err := http.Get("http://" + s.Address + "/")
	if err != nil {
		t.Fatalf("Failed to connect to server: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status OK, got %v", resp.Status)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}

	// The go-app framework generates standard HTML, with our app name in it.
	if body := string(bodyBytes); !strings.Contains(body, "GoDobble") {
		t.Errorf("Expected body to contain 'GoDobble', got body: %s", body)
	}
}

func TestHandleRound(t *testing.T) {
	s := startServer(t, testConfig(t))

	resp, err := http.Get("http://" + s.Address + "/api/round?card_size=6&layout=ring")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status OK, got %v", resp.Status)
	}

	var round game.RoundMessage
	if err := json.NewDecoder(resp.Body).Decode(&round); err != nil {
		t.Fatalf("Failed to decode round: %v", err)
	}
	if len(round.Cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(round.Cards))
	}
	for _, card := range round.Cards {
		if len(card.Placements) != 6 {
			t.Errorf("Expected 6 symbols on the %s card, got %d", card.Side, len(card.Placements))
		}
	}
	if shared := sharedSymbols(round); len(shared) != 1 {
		t.Errorf("Expected exactly one shared symbol, got %v", shared)
	}
	if round.Width != 600 || round.Height != 300 {
		t.Errorf("Expected a 600x300 canvas, got %gx%g", round.Width, round.Height)
	}

	for _, query := range []string{"card_size=14", "card_size=4611686018427387905", "card_size=x", "layout=spiral", "alphabet=digits:0"} {
		resp, err := http.Get("http://" + s.Address + "/api/round?" + query)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Query %q: expected status Bad Request, got %v", query, resp.Status)
		}
	}
}

// sharedSymbols returns the IDs present in both cards of the round.
func sharedSymbols(round game.RoundMessage) []string {
	left := make(map[string]bool)
	for _, p := range round.Cards[0].Placements {
		left[p.Symbol.ID] = true
	}
	var shared []string
	for _, p := range round.Cards[1].Placements {
		if left[p.Symbol.ID] {
			shared = append(shared, p.Symbol.ID)
		}
	}
	return shared
}
