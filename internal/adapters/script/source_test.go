package script

import (
	"context"
	"testing"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Replay(t *testing.T) {
	src, err := Parse([]string{"2:confirm", "2:down", "4:quit"}, []string{"1:connect:0", "3:disconnect:0"})
	require.NoError(t, err)
	ctx := context.Background()

	s1, err := src.Poll(ctx)
	require.NoError(t, err)
	assert.Empty(t, s1.Pressed)
	assert.Equal(t, []domain.DeviceChange{{Index: 0, Connected: true}}, s1.Devices)

	s2, _ := src.Poll(ctx)
	assert.Equal(t, []domain.Control{domain.ControlConfirm, domain.ControlDown}, s2.Pressed)
	assert.Empty(t, s2.Devices)

	s3, _ := src.Poll(ctx)
	assert.Empty(t, s3.Pressed)
	assert.Equal(t, []domain.DeviceChange{{Index: 0, Connected: false}}, s3.Devices)

	s4, _ := src.Poll(ctx)
	assert.Equal(t, []domain.Control{domain.ControlQuit}, s4.Pressed)
	assert.Equal(t, uint64(4), src.Polls())
}

func TestSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil, nil).Poll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParsePress(t *testing.T) {
	p, err := ParsePress(" 12:pause ")
	require.NoError(t, err)
	assert.Equal(t, Press{Tick: 12, Control: domain.ControlPause}, p)

	for _, bad := range []string{"confirm", "0:confirm", "x:confirm", "3:jump", "3:none"} {
		_, err := ParsePress(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDevice(t *testing.T) {
	d, err := ParseDevice("7:connect:2")
	require.NoError(t, err)
	assert.Equal(t, Device{Tick: 7, Change: domain.DeviceChange{Index: 2, Connected: true}}, d)

	for _, bad := range []string{"7:connect", "7:plug:1", "7:connect:-1", "0:connect:1"} {
		_, err := ParseDevice(bad)
		assert.Error(t, err, bad)
	}
}
