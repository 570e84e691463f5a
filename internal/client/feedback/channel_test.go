package feedback

import (
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/jafa/internal/logging"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(ts []Toast) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Message
	}
	return out
}

func TestChannel_NotifyPresentsSynchronously(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var shown []Toast
	ch := NewChannel(Options{Clock: clock}, func(t Toast) { shown = append(shown, t) }, logging.Discard())

	ch.Notify("Logged in", KindSuccess)

	require.Len(t, shown, 1)
	assert.Equal(t, "Logged in", shown[0].Message)
	assert.Equal(t, KindSuccess, shown[0].Kind)
	assert.NotEmpty(t, shown[0].ID)
	assert.Equal(t, clock.Now(), shown[0].CreatedAt)
}

func TestChannel_IgnoresEmptyMessage(t *testing.T) {
	n := 0
	ch := NewChannel(Options{}, func(Toast) { n++ }, logging.Discard())
	ch.Notify("", KindError)
	assert.Zero(t, n)
	assert.Empty(t, ch.Visible())
}

func TestChannel_ExpiresAfterTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ch := NewChannel(Options{Clock: clock, TTL: 5 * time.Second}, nil, logging.Discard())

	ch.Success("first")
	clock.Advance(3 * time.Second)
	ch.Error("second")

	assert.Equal(t, []string{"first", "second"}, messages(ch.Visible()))

	clock.Advance(2 * time.Second)
	assert.Equal(t, []string{"second"}, messages(ch.Visible()))

	clock.Advance(3 * time.Second)
	assert.Empty(t, ch.Visible())
}

func TestChannel_CapacityDropsOldest(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ch := NewChannel(Options{Clock: clock, Capacity: 3}, nil, logging.Discard())

	for i := 1; i <= 5; i++ {
		ch.Success(fmt.Sprintf("t%d", i))
	}

	assert.Equal(t, []string{"t3", "t4", "t5"}, messages(ch.Visible()))
}

func TestChannel_Defaults(t *testing.T) {
	ch := NewChannel(Options{}, nil, logging.Discard())
	assert.Equal(t, DefaultCapacity, ch.capacity)
	assert.Equal(t, DefaultTTL, ch.ttl)
	assert.NotNil(t, ch.clock)
}
