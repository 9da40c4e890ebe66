package state_test

import (
	"testing"

	"github.com/studyhub-app/studyhub-go/state"
	"github.com/stretchr/testify/require"
)

type thing struct {
	ID   string
	Name string
}

func (t thing) EntityID() string { return t.ID }

func TestReplaceAllKeepsResponseOrder(t *testing.T) {
	col := state.NewCollection[thing]()
	col.ReplaceAll([]thing{{ID: "c"}, {ID: "a"}, {ID: "b"}})
	col.ReplaceAll([]thing{{ID: "p1", Name: "A"}, {ID: "p2", Name: "B"}})

	items := col.Items()
	require.Len(t, items, 2)
	require.Equal(t, "p1", items[0].ID)
	require.Equal(t, "p2", items[1].ID)
}

func TestAppendAddsAtEnd(t *testing.T) {
	col := state.NewCollection[thing]()
	col.ReplaceAll([]thing{{ID: "a"}})
	col.Append(thing{ID: "b"})

	items := col.Items()
	require.Equal(t, []string{"a", "b"}, []string{items[0].ID, items[1].ID})
}

func TestReplaceByIDInPlace(t *testing.T) {
	col := state.NewCollection[thing]()
	col.ReplaceAll([]thing{{ID: "a", Name: "one"}, {ID: "b", Name: "two"}, {ID: "c", Name: "three"}})

	require.True(t, col.ReplaceByID(thing{ID: "b", Name: "updated"}))

	items := col.Items()
	require.Len(t, items, 3)
	require.Equal(t, "one", items[0].Name)
	require.Equal(t, "updated", items[1].Name)
	require.Equal(t, "three", items[2].Name)
}

func TestReplaceByIDAbsentLeavesItemsUnchanged(t *testing.T) {
	col := state.NewCollection[thing]()
	col.ReplaceAll([]thing{{ID: "a"}})

	require.False(t, col.ReplaceByID(thing{ID: "zz"}))
	require.Len(t, col.Items(), 1)
	require.Equal(t, "a", col.Items()[0].ID)
}

func TestRemoveByIDIdempotent(t *testing.T) {
	col := state.NewCollection[thing]()
	col.ReplaceAll([]thing{{ID: "a"}, {ID: "b"}})

	col.RemoveByID("a")
	require.Len(t, col.Items(), 1)

	col.RemoveByID("a")
	require.Len(t, col.Items(), 1)
	require.Equal(t, "b", col.Items()[0].ID)
}

func TestUpdateCurrentGuardedByIdentifier(t *testing.T) {
	col := state.NewCollection[thing]()
	col.SetCurrent(thing{ID: "a", Name: "viewing"})

	require.False(t, col.UpdateCurrent(thing{ID: "b", Name: "other"}))
	require.Equal(t, "viewing", col.Current().Name)

	require.True(t, col.UpdateCurrent(thing{ID: "a", Name: "refreshed"}))
	require.Equal(t, "refreshed", col.Current().Name)
}

func TestUpdateCurrentWithNoCurrent(t *testing.T) {
	col := state.NewCollection[thing]()
	require.False(t, col.UpdateCurrent(thing{ID: "a"}))
	require.Nil(t, col.Current())
}

func TestTransformAll(t *testing.T) {
	col := state.NewCollection[thing]()
	col.ReplaceAll([]thing{{ID: "a"}, {ID: "b"}})
	col.TransformAll(func(v thing) thing {
		v.Name = "seen"
		return v
	})

	for _, item := range col.Items() {
		require.Equal(t, "seen", item.Name)
	}
}

func TestLifecycle(t *testing.T) {
	col := state.NewCollection[thing]()
	require.Equal(t, state.StatusIdle, col.Status())

	col.Begin()
	require.Equal(t, state.StatusLoading, col.Status())

	col.Fail("Failed to fetch things")
	require.Equal(t, state.StatusFailed, col.Status())
	require.Equal(t, "Failed to fetch things", col.LastError())

	col.Begin()
	col.Succeed()
	require.Equal(t, state.StatusSucceeded, col.Status())
	require.Empty(t, col.LastError())
}

// Two overlapping operations share one status field; whichever settles last
// in wall-clock order wins, independent of dispatch order.
func TestStatusLastWriteWins(t *testing.T) {
	col := state.NewCollection[thing]()

	col.Begin() // op 1 dispatched
	col.Begin() // op 2 dispatched

	col.ReplaceAll([]thing{{ID: "from-op-2"}})
	col.Succeed() // op 2 settles first

	col.ReplaceAll([]thing{{ID: "from-op-1"}})
	col.Fail("Failed to fetch things") // op 1 settles last

	require.Equal(t, state.StatusFailed, col.Status())
	require.Equal(t, "from-op-1", col.Items()[0].ID)
}
