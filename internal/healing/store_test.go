package healing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotStore_PutGetOverwrite(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	require.Equal(t, 0, store.Size())

	_, ok := store.Get("login-button")
	require.False(t, ok)

	store.Put("login-button", Snapshot{ID: "login", TagName: "button"})
	require.Equal(t, 1, store.Size())

	snap, ok := store.Get("login-button")
	require.True(t, ok)
	require.Equal(t, "login", snap.ID)

	store.Put("login-button", Snapshot{ID: "login-v2", TagName: "button"})
	require.Equal(t, 1, store.Size())

	snap, _ = store.Get("login-button")
	require.Equal(t, "login-v2", snap.ID)
}

func TestSnapshotStore_Clear(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStore()
	store.Put("a", Snapshot{})
	store.Put("b", Snapshot{})
	require.Equal(t, 2, store.Size())

	store.Clear()
	require.Equal(t, 0, store.Size())

	_, ok := store.Get("a")
	require.False(t, ok)
}
