package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/trail/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	s1 := "svr"
	s2 := string([]byte{'s', 'v', 'r'})

	is1 := domain.NewInternedString(s1)
	is2 := domain.NewInternedString(s2)

	// Distinct string allocations with equal content must intern to the same value
	if is1 != is2 {
		t.Errorf("Expected interned values to be equal for identical strings, got %v and %v", is1, is2)
	}

	if is1.String() != s1 {
		t.Errorf("Expected String() to return %q, got %q", s1, is1.String())
	}
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString

	if !zero.IsZero() {
		t.Error("Expected zero value to report IsZero")
	}
	if zero.String() != "" {
		t.Errorf("Expected zero value to render empty, got %q", zero.String())
	}
	if domain.NewInternedString("").IsZero() {
		t.Error("Expected an interned empty string to be non-zero")
	}
}

func TestInternedStringJSON(t *testing.T) {
	type record struct {
		Node domain.InternedString `json:"node"`
	}

	original := record{Node: domain.NewInternedString("fft")}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal struct: %v", err)
	}
	if string(data) != `{"node":"fft"}` {
		t.Errorf("Expected JSON %q, got %q", `{"node":"fft"}`, string(data))
	}

	var unmarshaled record
	if err := json.Unmarshal(data, &unmarshaled); err != nil {
		t.Fatalf("Failed to unmarshal struct: %v", err)
	}
	if unmarshaled.Node != original.Node {
		t.Errorf("Expected unmarshaled node %q, got %q", original.Node, unmarshaled.Node)
	}
}

func TestNewInternedStrings(t *testing.T) {
	t.Run("Preserves order", func(t *testing.T) {
		labels := []string{"dac", "fft", "dac"}

		interned := domain.NewInternedStrings(labels)

		if len(interned) != len(labels) {
			t.Fatalf("Expected %d interned strings, got %d", len(labels), len(interned))
		}
		for i, expected := range labels {
			if interned[i].String() != expected {
				t.Errorf("Expected interned string at index %d to be %q, got %q", i, expected, interned[i].String())
			}
		}
		if interned[0] != interned[2] {
			t.Error("Expected duplicate labels to intern to equal values")
		}
	})

	t.Run("Empty slice returns empty slice", func(t *testing.T) {
		if got := domain.NewInternedStrings([]string{}); len(got) != 0 {
			t.Errorf("Expected empty slice, got %d elements", len(got))
		}
	})
}
