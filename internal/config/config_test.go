package config

import (
	"testing"
	"time"

	"alphareg/internal/round"
)

func TestParsePeers_Valid(t *testing.T) {
	peers, err := ParsePeers("1=localhost:9001,2=localhost:9002,3=localhost:9003")
	if err != nil {
		t.Fatalf("ParsePeers failed: %v", err)
	}
	if len(peers) != 3 {
		t.Fatalf("Expected 3 peers, got %d", len(peers))
	}
	if peers[0].ID != 1 || peers[0].Addr != "localhost:9001" {
		t.Errorf("Unexpected first peer: %+v", peers[0])
	}
}

func TestParsePeers_WhitespaceAndEmptyEntries(t *testing.T) {
	peers, err := ParsePeers(" 1 = localhost:9001 , , 2=localhost:9002 ")
	if err != nil {
		t.Fatalf("ParsePeers failed: %v", err)
	}
	if len(peers) != 2 {
		t.Fatalf("Expected 2 peers, got %d", len(peers))
	}
}

func TestParsePeers_Empty(t *testing.T) {
	peers, err := ParsePeers("")
	if err != nil {
		t.Fatalf("ParsePeers failed: %v", err)
	}
	if len(peers) != 0 {
		t.Errorf("Expected no peers, got %d", len(peers))
	}
}

func TestParsePeers_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing separator", "1localhost:9001"},
		{"empty id", "=localhost:9001"},
		{"empty addr", "1="},
		{"non-numeric id", "n1=localhost:9001"},
		{"zero id", "0=localhost:9001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePeers(tt.input); err == nil {
				t.Errorf("Expected error for %q", tt.input)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		NodeID:     2,
		ListenAddr: ":9002",
		Peers: []Peer{
			{ID: 1, Addr: "localhost:9001"},
			{ID: 2, Addr: "localhost:9002"},
			{ID: 3, Addr: "localhost:9003"},
		},
		ProbeInterval:  time.Second,
		SuspectTimeout: 3 * time.Second,
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("Valid config rejected: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero node id", func(c *Config) { c.NodeID = 0 }},
		{"empty listen addr", func(c *Config) { c.ListenAddr = "" }},
		{"no peers", func(c *Config) { c.Peers = nil }},
		{"self not listed", func(c *Config) { c.NodeID = 9 }},
		{"duplicate ids", func(c *Config) { c.Peers[2].ID = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestMajority(t *testing.T) {
	c := validConfig()
	if got := c.Majority(); got != 2 {
		t.Errorf("Majority over 3 peers = %d, want 2", got)
	}
}

func TestAddrs_SortedByID(t *testing.T) {
	c := &Config{
		NodeID:     1,
		ListenAddr: ":9001",
		Peers: []Peer{
			{ID: 3, Addr: "c"},
			{ID: 1, Addr: "a"},
			{ID: 2, Addr: "b"},
		},
	}

	addrs := c.Addrs()
	want := []string{"a", "b", "c"}
	for i, addr := range addrs {
		if addr != want[i] {
			t.Errorf("Addrs[%d] = %q, want %q", i, addr, want[i])
		}
	}
}

func TestPeerMap(t *testing.T) {
	c := validConfig()
	m := c.PeerMap()
	if len(m) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(m))
	}
	if m[round.ID(2)] != "localhost:9002" {
		t.Errorf("Unexpected addr for id 2: %q", m[round.ID(2)])
	}
}
