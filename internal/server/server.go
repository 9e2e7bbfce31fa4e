package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/janpfeifer/GoDobble/internal/config"
	"github.com/janpfeifer/GoDobble/internal/frontend"
	"github.com/janpfeifer/GoDobble/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// Run starts the server and blocks until the context is canceled.
//
// If started is not nil, the server state is sent to it once the server is
// listening, so callers can find the address it was bound to.
func Run(ctx context.Context, cfg *config.Config, started chan<- *ServerState) error {
	// Initialize global frontend state for server-side prerendering without panic
	frontend.InitState()

	serverState := NewServerState(cfg)

	// Register go-app routes so the server knows how to prerender them
	app.Route("/", func() app.Composer { return &frontend.Home{} })
	app.Route("/play", func() app.Composer { return &frontend.Game{} })

	// The web assets and the compiled webassembly
	// are served natively by the go-app framework
	h := &app.Handler{
		Name:        "GoDobble",
		Description: "Spot the symbol the two cards have in common",
		Version:     game.Version,
		Styles: []string{
			"/web/css/pico.min.css", // Load pico.css
			"/web/css/main.css",     // Custom styles if any
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", serverState.HandleWS)
	mux.HandleFunc("/api/round", serverState.HandleRound)
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir("web/"))))
	mux.Handle("/", h)

	listener, err := net.Listen("tcp", listenAddr(cfg.Addr))
	if err != nil {
		return err
	}
	serverState.Address = listener.Addr().String()

	srv := &http.Server{
		Handler: mux,
		// Websocket sessions end with the server.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		klog.Infof("Server started on %s", serverState.Address)
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			klog.Errorf("Server error: %v", err)
		}
	}()
	if started != nil {
		started <- serverState
	}

	<-ctx.Done()

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	klog.Infof("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}

// listenAddr defaults to an automatically chosen port on localhost.
func listenAddr(addr string) string {
	if addr == "" {
		return "localhost:0"
	}
	return addr
}
