package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/janpfeifer/GoDobble/internal/config"
	"github.com/janpfeifer/GoDobble/internal/server"
	"k8s.io/klog/v2"
)

var (
	flagAddr = flag.String("addr", "", "Address to listen on, overrides $DOBBLE_ADDR (default: auto-port on localhost)")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		klog.Fatalf("Invalid configuration: %v", err)
	}
	if *flagAddr != "" {
		cfg.Addr = *flagAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := make(chan *server.ServerState, 1)
	go func() {
		state := <-started
		fmt.Printf("GoDobble server listening on http://%s\n", state.Address)
	}()

	if err := server.Run(ctx, cfg, started); err != nil {
		klog.Fatal(err)
	}
}
