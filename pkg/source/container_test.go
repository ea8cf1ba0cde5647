package source

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mattsolo1/grove-browse/pkg/browse"
)

func TestContainerClassification(t *testing.T) {
	c := FromMap("root", map[string]any{
		"A": 10,
		"B": map[string]any{"B1": map[string]any{"x": 1}},
		"C": []any{},
	})

	if got := c.ListGroups(); !reflect.DeepEqual(got, []string{"B"}) {
		t.Errorf("ListGroups() = %v, want [B]", got)
	}
	if got := c.ListNodes(); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Errorf("ListNodes() = %v, want [A C]", got)
	}

	b, err := c.Get("B")
	if err != nil {
		t.Fatal(err)
	}
	sub, ok := b.(*Container)
	if !ok {
		t.Fatalf("Get(B) = %T, want *Container", b)
	}
	if got := sub.ListGroups(); !reflect.DeepEqual(got, []string{"B1"}) {
		t.Errorf("B.ListGroups() = %v, want [B1]", got)
	}
}

func TestContainerSequences(t *testing.T) {
	c := FromMap("root", map[string]any{
		"list": []any{"a", "b", "c"},
	})

	if got := c.ListGroups(); !reflect.DeepEqual(got, []string{"list"}) {
		t.Fatalf("ListGroups() = %v, want [list]", got)
	}
	v, err := c.Get("list")
	if err != nil {
		t.Fatal(err)
	}
	sub := v.(*Container)
	if got := sub.ListNodes(); !reflect.DeepEqual(got, []string{"0", "1", "2"}) {
		t.Errorf("element keys = %v", got)
	}
	el, err := sub.Get("1")
	if err != nil {
		t.Fatal(err)
	}
	if el != "b" {
		t.Errorf("Get(1) = %v, want b", el)
	}
}

func TestContainerGetNotFound(t *testing.T) {
	c := FromMap("root", map[string]any{"A": 1})
	_, err := c.Get("missing")
	if !errors.Is(err, browse.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestContainerSetPreservesOrder(t *testing.T) {
	c := NewContainer("root")
	for _, k := range []string{"z", "a", "m"} {
		if err := c.Set(k, 1); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.ListNodes(); !reflect.DeepEqual(got, []string{"z", "a", "m"}) {
		t.Errorf("insertion order lost: %v", got)
	}

	// Replacing keeps the position and converts nested values.
	if err := c.Set("a", map[string]any{"inner": 1}); err != nil {
		t.Fatal(err)
	}
	if got := c.ListGroups(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("ListGroups() = %v, want [a]", got)
	}
	if got := c.ListNodes(); !reflect.DeepEqual(got, []string{"z", "m"}) {
		t.Errorf("ListNodes() = %v, want [z m]", got)
	}
}

func TestContainerPaths(t *testing.T) {
	c := FromMap("data", map[string]any{
		"outer": map[string]any{"inner": map[string]any{"x": 1}},
	})
	v, err := c.Get("outer")
	if err != nil {
		t.Fatal(err)
	}
	outer := v.(*Container)
	if outer.Path() != "/data/outer" {
		t.Errorf("outer path = %q", outer.Path())
	}
	v, err = outer.Get("inner")
	if err != nil {
		t.Fatal(err)
	}
	if got := v.(*Container).Path(); got != "/data/outer/inner" {
		t.Errorf("inner path = %q", got)
	}
}

func TestContainerSharedMutationVisibility(t *testing.T) {
	c := FromMap("root", map[string]any{"A": 1})
	e1, err := browse.New(c)
	if err != nil {
		t.Fatal(err)
	}
	e2 := e1.Copy()

	// A write through one engine's source is visible to the other.
	if _, err := e1.SelectNode("A"); err != nil {
		t.Fatal(err)
	}
	if err := e1.SetData(99); err != nil {
		t.Fatal(err)
	}
	v, err := e2.Current().Get("A")
	if err != nil {
		t.Fatal(err)
	}
	if v != 99 {
		t.Errorf("shared container value = %v, want 99", v)
	}
}
