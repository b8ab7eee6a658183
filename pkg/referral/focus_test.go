package referral

import (
	"testing"

	"github.com/referralworks/refnet/pkg/record"
)

func focusFixture() []record.Record {
	// Node 42 has two children and one grandchild.
	return []record.Record{
		recruiter(7, "TOP", ""),
		recruiter(42, "MID", "TOP"),
		lead(43, "MID"),
		recruiter(44, "SUB", "MID"),
		lead(45, "SUB"),
		lead(8, "TOP"),
	}
}

func TestFocus_ByIdentifier(t *testing.T) {
	forest := BuildForest(focusFixture(), Options{Focus: FocusID(42)})

	if forest.Focus == nil || !forest.Focus.Found {
		t.Fatal("expected focus hit")
	}
	if len(forest.Roots) != 1 {
		t.Fatalf("focused forest must have the single root, got %d", len(forest.Roots))
	}
	root := forest.Roots[0]
	if root.ID != 42 {
		t.Fatalf("focus root = %d, want 42", root.ID)
	}
	if root.TotalDescendants != 3 {
		t.Errorf("focus root TotalDescendants = %d, want 3", root.TotalDescendants)
	}
	// Statistics cover just the subtree: node 42 plus its 3 descendants.
	if forest.Stats.TotalNodes != 4 {
		t.Errorf("Stats.TotalNodes = %d, want 4", forest.Stats.TotalNodes)
	}
	if forest.Stats.MaxDepth != 3 {
		t.Errorf("Stats.MaxDepth = %d, want 3", forest.Stats.MaxDepth)
	}
}

func TestFocus_ByCode(t *testing.T) {
	forest := BuildForest(focusFixture(), Options{Focus: FocusCode("mid")})

	if forest.Focus == nil || !forest.Focus.Found {
		t.Fatal("expected focus hit for case-insensitive code")
	}
	if forest.Roots[0].ID != 42 {
		t.Errorf("focus root = %d, want 42", forest.Roots[0].ID)
	}
}

func TestFocus_NotFoundKeepsFullForest(t *testing.T) {
	forest := BuildForest(focusFixture(), Options{Focus: FocusCode("nonexistent")})

	if forest.Focus == nil {
		t.Fatal("focus result missing")
	}
	if forest.Focus.Found {
		t.Error("expected not-found result")
	}
	// The miss is not an error and the full forest still comes back.
	if forest.Stats.TotalNodes != 6 {
		t.Errorf("full forest expected on miss, got TotalNodes = %d", forest.Stats.TotalNodes)
	}
}

func TestFocus_FindsOrphans(t *testing.T) {
	forest := BuildForest([]record.Record{
		recruiter(1, "A", "B"),
		recruiter(2, "B", "A"),
	}, Options{Focus: FocusID(1)})

	if forest.Focus == nil || !forest.Focus.Found {
		t.Fatal("focus must search orphan subtrees too")
	}
	if forest.Roots[0].ID != 1 {
		t.Errorf("focus root = %d, want 1", forest.Roots[0].ID)
	}
	// The data-quality counter survives the narrowing.
	if forest.Stats.CyclesBroken != 1 {
		t.Errorf("CyclesBroken = %d, want 1", forest.Stats.CyclesBroken)
	}
}

func TestFocus_NoKeyNoResult(t *testing.T) {
	forest := BuildForest(focusFixture(), Options{})
	if forest.Focus != nil {
		t.Errorf("unrequested focus should stay nil, got %+v", forest.Focus)
	}
}

func TestParseFocusKey(t *testing.T) {
	tests := []struct {
		in     string
		wantID bool
	}{
		{"42", true},
		{" 42 ", true},
		{"X7", false},
		{"4B", false},
	}
	for _, tt := range tests {
		key := ParseFocusKey(tt.in)
		if key == nil {
			t.Fatalf("ParseFocusKey(%q) = nil", tt.in)
		}
		if key.byID != tt.wantID {
			t.Errorf("ParseFocusKey(%q).byID = %v, want %v", tt.in, key.byID, tt.wantID)
		}
	}
	if ParseFocusKey("  ") != nil {
		t.Error("blank focus should parse to nil")
	}
}
