package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/janpfeifer/GoMemory/internal/config"
	"github.com/janpfeifer/GoMemory/internal/server"
	"k8s.io/klog/v2"
)

var (
	flagAddr          = flag.String("addr", "", "Address to listen on (default: $GOMEMORY_ADDR, or auto-port on localhost)")
	flagSymbols       = flag.Int("symbols", 0, "Number of distinct symbols, the board has twice as many cards (default: $GOMEMORY_SYMBOL_COUNT or 4)")
	flagMismatchDelay = flag.Duration("mismatch_delay", 0, "How long a mismatched pair stays face-up (default: $GOMEMORY_MISMATCH_DELAY or 1s)")
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
	if *flagSymbols != 0 {
		cfg.SymbolCount = *flagSymbols
	}
	if *flagMismatchDelay != 0 {
		cfg.MismatchDelay = *flagMismatchDelay
	}

	started := make(chan *server.ServerState, 1)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		state := <-started
		fmt.Printf("GoMemory server listening on http://%s\n", state.Address)
	}()

	if err := server.Run(ctx, cfg, started); err != nil {
		klog.Fatalf("Server failed: %v", err)
	}
}
