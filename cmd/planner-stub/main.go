package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/Garsondee/battlepath/internal/plannerstub"
)

func main() {
	def := plannerstub.DefaultOptions()
	var addr string
	opts := def

	flag.StringVar(&addr, "addr", "127.0.0.1:5000", "listen address")
	flag.IntVar(&opts.Rows, "rows", def.Rows, "map rows")
	flag.IntVar(&opts.Cols, "cols", def.Cols, "map columns")
	flag.IntVar(&opts.Enemies, "enemies", def.Enemies, "scripted threats on the map")
	flag.Int64Var(&opts.Seed, "seed", def.Seed, "RNG seed for terrain and /randomize")
	flag.IntVar(&opts.RandomSize, "randomize-size", def.RandomSize, "threats returned by /randomize")
	flag.BoolVar(&opts.OpenTerrain, "open", false, "generate an all-OPEN map")
	flag.BoolVar(&opts.AccessLog, "access-log", true, "log every request")
	flag.Parse()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", addr, err)
	}
	srv := plannerstub.New(opts)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Printf("Shutting down planner stub")
		if err := srv.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Starting planner stub on http://%s/api (%dx%d, seed %d)", ln.Addr(), opts.Rows, opts.Cols, opts.Seed)
	if err := srv.Serve(ln); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
