package notify

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrainReturnsAndClears(t *testing.T) {
	b := New(zerolog.Nop())

	b.Success("Added to cart!")
	b.Error("Not enough stock available")

	notices := b.Drain()
	require.Len(t, notices, 2)
	assert.Equal(t, KindSuccess, notices[0].Kind)
	assert.Equal(t, "Added to cart!", notices[0].Message)
	assert.Equal(t, KindError, notices[1].Kind)
	assert.NotEmpty(t, notices[0].ID)
	assert.NotEqual(t, notices[0].ID, notices[1].ID)

	assert.Empty(t, b.Drain())
}

func TestSubscribeReceivesBothKinds(t *testing.T) {
	b := New(zerolog.Nop())

	var seen []Notice
	require.NoError(t, b.Subscribe(func(n Notice) {
		seen = append(seen, n)
	}))

	b.Success("ok")
	b.Error("nope")

	require.Len(t, seen, 2)
	assert.Equal(t, "ok", seen[0].Message)
	assert.Equal(t, "nope", seen[1].Message)
}
