package treemap

import (
	"testing"
)

func groupFrame() *frame {
	return &frame{
		paths: [][]string{
			{"North", "Hamburg"},
			{"South", "Munich"},
			{"North", "Bremen"},
			{"South", "Munich"},
		},
		weights: []float64{4, 8, 2, 1},
		labels:  []string{"Hamburg", "Munich", "Bremen", "Munich"},
		rows:    []int{0, 1, 2, 3},
	}
}

func TestGroupLevels(t *testing.T) {
	levels := groupLevels(groupFrame())
	if len(levels) != 2 {
		t.Fatalf("got %d levels, want 2", len(levels))
	}

	roots := levels[0]
	if len(roots) != 2 {
		t.Fatalf("got %d root groups, want 2", len(roots))
	}
	// First-appearance order.
	if roots[0].Key() != "North" || roots[1].Key() != "South" {
		t.Errorf("root order = [%s %s], want [North South]", roots[0].Key(), roots[1].Key())
	}
	if roots[0].weight != 6 || roots[1].weight != 9 {
		t.Errorf("root weights = [%v %v], want [6 9]", roots[0].weight, roots[1].weight)
	}

	leaves := levels[1]
	if len(leaves) != 3 {
		t.Fatalf("got %d leaf groups, want 3", len(leaves))
	}
	// Repeated paths aggregate.
	for _, g := range leaves {
		if g.Key() == "South/Munich" && g.weight != 9 {
			t.Errorf("Munich weight = %v, want 9", g.weight)
		}
	}
	// The leaf label comes from the label column, the row from the first
	// matching record.
	if leaves[1].label != "Munich" || leaves[1].row != 1 {
		t.Errorf("leaf = label %q row %d, want Munich/1", leaves[1].label, leaves[1].row)
	}
}

func TestGroupKeys(t *testing.T) {
	g := &group{path: []string{"a", "b", "c"}}
	if g.Key() != "a/b/c" {
		t.Errorf("Key = %q", g.Key())
	}
	if g.parentKey() != "a"+keySep+"b" {
		t.Errorf("parentKey = %q", g.parentKey())
	}

	root := &group{path: []string{"a"}}
	if root.parentKey() != "" {
		t.Errorf("root parentKey = %q, want empty", root.parentKey())
	}
}

func TestGroupSynthetic(t *testing.T) {
	if (&group{path: []string{"a", ""}}).synthetic() != true {
		t.Error("empty level value should be synthetic")
	}
	if (&group{path: []string{"", "b"}}).synthetic() {
		t.Error("only the group's own level value counts")
	}
}

func TestGroupLevelsEmptyFrame(t *testing.T) {
	if got := groupLevels(&frame{}); got != nil {
		t.Errorf("groupLevels(empty) = %v, want nil", got)
	}
}
