package cache

import (
	"testing"
	"time"
)

func TestBadgerCache_RoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	if err := c.Set("trust_network:AI:2", []byte(`{"total":3}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, found, err := c.Get("trust_network:AI:2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("Expected cache hit")
	}
	if string(value) != `{"total":3}` {
		t.Errorf("Unexpected value: %s", value)
	}
}

func TestBadgerCache_Miss(t *testing.T) {
	c, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	_, found, err := c.Get("research_bridge:a:b")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("Expected cache miss for absent key")
	}
}

func TestBadgerCache_TTLExpiry(t *testing.T) {
	c, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	if err := c.Set("project_impact:p1", []byte("{}"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	_, found, err := c.Get("project_impact:p1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("Expected entry to expire after TTL")
	}
}

func TestBadgerCache_Overwrite(t *testing.T) {
	c, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	if err := c.Set("hidden_experts:nlp:5", []byte("first"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Set("hidden_experts:nlp:5", []byte("second"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, found, err := c.Get("hidden_experts:nlp:5")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found || string(value) != "second" {
		t.Errorf("Expected overwritten value, got found=%v value=%s", found, value)
	}
}
