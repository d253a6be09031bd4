package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"alphareg/internal/quorum"
	"alphareg/internal/round"
)

// Peer is one cluster member as configured.
type Peer struct {
	ID   round.ID
	Addr string
}

// Config holds the node configuration. Peers lists the full cluster,
// the local node included.
type Config struct {
	NodeID         round.ID
	ListenAddr     string
	Peers          []Peer
	ProbeInterval  time.Duration
	SuspectTimeout time.Duration
}

// ParsePeers parses a comma-separated list of peers in the format:
// "1=addr1,2=addr2,3=addr3". Process ids must be positive integers.
func ParsePeers(peersStr string) ([]Peer, error) {
	if peersStr == "" {
		return []Peer{}, nil
	}

	parts := strings.Split(peersStr, ",")
	peers := make([]Peer, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid peer format: %s (expected id=addr)", part)
		}

		idStr := strings.TrimSpace(kv[0])
		addr := strings.TrimSpace(kv[1])
		if idStr == "" || addr == "" {
			return nil, fmt.Errorf("peer ID and address cannot be empty: %s", part)
		}

		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid peer ID %q: %w", idStr, err)
		}
		if id == 0 {
			return nil, fmt.Errorf("peer ID must be positive: %s", part)
		}

		peers = append(peers, Peer{ID: round.ID(id), Addr: addr})
	}

	return peers, nil
}

// Validate checks that the configuration can form a safe cluster.
func (c *Config) Validate() error {
	if c.NodeID == 0 {
		return fmt.Errorf("node ID must be positive")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if len(c.Peers) == 0 {
		return fmt.Errorf("peer list cannot be empty")
	}

	seen := make(map[round.ID]bool, len(c.Peers))
	selfListed := false
	for _, p := range c.Peers {
		if seen[p.ID] {
			return fmt.Errorf("duplicate peer ID %d", p.ID)
		}
		seen[p.ID] = true
		if p.ID == c.NodeID {
			selfListed = true
		}
	}
	if !selfListed {
		return fmt.Errorf("node ID %d missing from peer list", c.NodeID)
	}

	if m := c.Majority(); !quorum.Intersects(len(c.Peers), m) {
		return fmt.Errorf("majority %d over %d peers does not guarantee quorum intersection", m, len(c.Peers))
	}

	return nil
}

// Majority returns the quorum threshold for this cluster.
func (c *Config) Majority() int {
	return quorum.Majority(len(c.Peers))
}

// Addrs returns all peer addresses in ascending id order.
func (c *Config) Addrs() []string {
	peers := append([]Peer(nil), c.Peers...)
	sort.Slice(peers, func(i, j int) bool { return peers[i].ID < peers[j].ID })

	addrs := make([]string, 0, len(peers))
	for _, p := range peers {
		addrs = append(addrs, p.Addr)
	}
	return addrs
}

// PeerMap returns the peer set keyed by process id.
func (c *Config) PeerMap() map[round.ID]string {
	m := make(map[round.ID]string, len(c.Peers))
	for _, p := range c.Peers {
		m[p.ID] = p.Addr
	}
	return m
}
