package sdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStateSetGetDelete(t *testing.T) {
	st := NewMemState()

	assert.Nil(t, st.Get("missing"))

	st.Set("a", "1")
	require.NotNil(t, st.Get("a"))
	assert.Equal(t, "1", *st.Get("a"))

	st.Set("a", "2")
	assert.Equal(t, "2", *st.Get("a"))

	st.Delete("a")
	assert.Nil(t, st.Get("a"))
	assert.Equal(t, 0, st.Len())
}

func TestMemStateRevertRestoresPriorValues(t *testing.T) {
	st := NewMemState()
	st.Set("keep", "before")

	snap := st.Snapshot()
	st.Set("keep", "after")
	st.Set("fresh", "x")
	st.Delete("keep")

	st.RevertTo(snap)

	require.NotNil(t, st.Get("keep"))
	assert.Equal(t, "before", *st.Get("keep"))
	assert.Nil(t, st.Get("fresh"))
}

func TestMemStateNestedSnapshots(t *testing.T) {
	st := NewMemState()
	st.Set("a", "1")

	outer := st.Snapshot()
	st.Set("a", "2")
	inner := st.Snapshot()
	st.Set("a", "3")
	st.Set("b", "1")

	st.RevertTo(inner)
	assert.Equal(t, "2", *st.Get("a"))
	assert.Nil(t, st.Get("b"))

	st.RevertTo(outer)
	assert.Equal(t, "1", *st.Get("a"))
}

func TestMemStateDeleteOfMissingKeyIsNoop(t *testing.T) {
	st := NewMemState()
	snap := st.Snapshot()
	st.Delete("missing")
	st.RevertTo(snap)
	assert.Equal(t, 0, st.Len())
}
