package algorithms

import (
	"errors"
	"testing"

	"github.com/kestrelsec/threatviz/pkg/graph"
)

func TestFindAllPaths_DiamondScenario(t *testing.T) {
	m := diamondModel()

	paths, err := FindAllPaths(m, "a", "d", 0, 0)
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("Expected 2 paths from a to d, got %d: %v", len(paths), paths)
	}
	// Sorted successor expansion makes the order deterministic: the branch
	// through b sorts first.
	requirePath(t, paths[0], []string{"a", "b", "c", "d"})
	requirePath(t, paths[1], []string{"a", "c", "d"})
}

func TestFindAllPaths_UnknownSource(t *testing.T) {
	m := diamondModel()

	_, err := FindAllPaths(m, "nope", "d", 0, 0)
	if !errors.Is(err, graph.ErrNodeNotFound) {
		t.Fatalf("Expected ErrNodeNotFound, got %v", err)
	}
}

func TestFindAllPaths_UnreachableTarget(t *testing.T) {
	m := diamondModel()

	paths, err := FindAllPaths(m, "d", "a", 0, 0)
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Expected no paths against edge direction, got %v", paths)
	}
}

func TestFindAllPaths_MaxPathsCap(t *testing.T) {
	m := diamondModel()

	paths, err := FindAllPaths(m, "a", "d", 1, 0)
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(paths) != 1 {
		t.Errorf("Expected enumeration to stop at 1 path, got %d", len(paths))
	}
}

func TestFindAllPaths_MaxDepthBound(t *testing.T) {
	m := diamondModel()

	// a->c->d fits in 3 nodes; a->b->c->d does not.
	paths, err := FindAllPaths(m, "a", "d", 0, 3)
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("Expected exactly the short path within depth 3, got %v", paths)
	}
	requirePath(t, paths[0], []string{"a", "c", "d"})
}

func TestFindAllPaths_SourceEqualsTarget(t *testing.T) {
	m := diamondModel()

	paths, err := FindAllPaths(m, "a", "a", 0, 0)
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(paths) != 1 || !samePath(paths[0], []string{"a"}) {
		t.Errorf("Expected single trivial path [a], got %v", paths)
	}
}

func TestFindAllPaths_SimplePathsOnly(t *testing.T) {
	// Cycle a->b->a plus exit b->c: paths must not revisit nodes.
	m := edgeModel(
		[2]string{"a", "b"},
		[2]string{"b", "a"},
		[2]string{"b", "c"},
	)

	paths, err := FindAllPaths(m, "a", "c", 0, 0)
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("Expected one simple path, got %v", paths)
	}
	requirePath(t, paths[0], []string{"a", "b", "c"})
}

func TestPathIterator_MatchesEagerEnumeration(t *testing.T) {
	m := diamondModel()

	eager, err := FindAllPaths(m, "a", "d", 0, 0)
	if err != nil {
		t.Fatalf("FindAllPaths failed: %v", err)
	}

	it, err := NewPathIterator(m, "a", "d", 0)
	if err != nil {
		t.Fatalf("NewPathIterator failed: %v", err)
	}

	var lazy [][]string
	for {
		path, ok := it.Next()
		if !ok {
			break
		}
		lazy = append(lazy, path)
	}

	if len(lazy) != len(eager) {
		t.Fatalf("Iterator produced %d paths, eager produced %d", len(lazy), len(eager))
	}
	for i := range eager {
		requirePath(t, lazy[i], eager[i])
	}
}

func TestPathIterator_StopsEarlyWithoutFullEnumeration(t *testing.T) {
	m := diamondModel()

	it, err := NewPathIterator(m, "a", "d", 0)
	if err != nil {
		t.Fatalf("NewPathIterator failed: %v", err)
	}

	first, ok := it.Next()
	if !ok {
		t.Fatal("Expected at least one path")
	}
	requirePath(t, first, []string{"a", "b", "c", "d"})

	// A fresh iterator restarts from the beginning.
	restarted, err := NewPathIterator(m, "a", "d", 0)
	if err != nil {
		t.Fatalf("NewPathIterator failed: %v", err)
	}
	again, ok := restarted.Next()
	if !ok {
		t.Fatal("Expected restarted iterator to produce the first path again")
	}
	requirePath(t, again, first)
}

func TestPathIterator_UnknownSource(t *testing.T) {
	m := diamondModel()

	_, err := NewPathIterator(m, "ghost", "d", 0)
	if !errors.Is(err, graph.ErrNodeNotFound) {
		t.Fatalf("Expected ErrNodeNotFound, got %v", err)
	}
}
