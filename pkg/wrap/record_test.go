package wrap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-browse/pkg/browse"
)

func TestRecordViewLazyLoad(t *testing.T) {
	ref := &fakeRef{name: "out.yaml", meta: map[string]any{"size": int64(12)}, data: "payload"}
	r := NewRecordView(ref)

	assert.Equal(t, "out.yaml", r.Name())
	assert.Equal(t, int64(12), r.Metadata()["size"])
	assert.False(t, r.Loaded())
	assert.Zero(t, ref.loads, "metadata view fetched the data")

	data, err := r.Data()
	require.NoError(t, err)
	assert.Equal(t, "payload", data)
	assert.True(t, r.Loaded())

	_, err = r.Data()
	require.NoError(t, err)
	assert.Equal(t, 1, ref.loads, "data fetched twice")
}

func TestRecordViewLoadError(t *testing.T) {
	ref := &fakeRef{name: "bad", err: errors.New("io failure")}
	r := NewRecordView(ref)

	_, err := r.Data()
	assert.Error(t, err)
	assert.False(t, r.Loaded())

	// A later retry hits the source again.
	ref.err = nil
	ref.data = 1
	_, err = r.Data()
	assert.NoError(t, err)
}

func TestRecordViewDescentOptIn(t *testing.T) {
	inner := &fakeBrowsable{"inner"}

	var descended browse.Browsable
	r := NewRecordView(&fakeRef{name: "sub", data: inner},
		WithDescent(func(b browse.Browsable) { descended = b }))

	_, err := r.Data()
	require.NoError(t, err)
	assert.Equal(t, browse.Browsable(inner), descended)

	// Cached data does not re-fire the callback.
	descended = nil
	_, err = r.Data()
	require.NoError(t, err)
	assert.Nil(t, descended)
}

func TestRecordViewManualDescent(t *testing.T) {
	inner := &fakeBrowsable{"inner"}
	r := NewRecordView(&fakeRef{name: "sub", data: inner})

	// Before loading there is nothing to descend into.
	_, ok := r.Browsable()
	assert.False(t, ok)

	_, err := r.Data()
	require.NoError(t, err)
	b, ok := r.Browsable()
	assert.True(t, ok)
	assert.Equal(t, browse.Browsable(inner), b)

	// Non-browsable payloads expose no affordance.
	r2 := NewRecordView(&fakeRef{name: "plain", data: 3})
	_, err = r2.Data()
	require.NoError(t, err)
	_, ok = r2.Browsable()
	assert.False(t, ok)
}
