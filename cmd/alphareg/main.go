package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alphareg/internal/config"
	"alphareg/internal/node"
	"alphareg/internal/round"
)

func main() {
	var (
		nodeID         = flag.Uint64("node-id", 0, "numeric process id, unique in the cluster")
		listenAddr     = flag.String("listen", ":9001", "listen address")
		peersStr       = flag.String("peers", "", "full cluster as id=addr pairs, e.g. 1=host:9001,2=host:9002")
		probeInterval  = flag.Duration("probe-interval", 1*time.Second, "failure detector probe interval")
		suspectTimeout = flag.Duration("suspect-timeout", 3*time.Second, "silence before a peer is suspected")
	)
	flag.Parse()

	peers, err := config.ParsePeers(*peersStr)
	if err != nil {
		log.Fatalf("Failed to parse peers: %v", err)
	}

	cfg := &config.Config{
		NodeID:         round.ID(*nodeID),
		ListenAddr:     *listenAddr,
		Peers:          peers,
		ProbeInterval:  *probeInterval,
		SuspectTimeout: *suspectTimeout,
	}

	n, err := node.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create node: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		n.Stop()
	}()

	if err := n.Start(); err != nil {
		log.Fatalf("Node exited: %v", err)
	}
}
