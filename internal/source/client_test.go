package source

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	"elrs-hud/hud"
)

func serve(t *testing.T, srv TelemetryServer) *bufconn.Listener {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterTelemetryServer(s, srv)
	go s.Serve(lis)
	t.Cleanup(s.Stop)
	return lis
}

func dialBufconn(t *testing.T, lis *bufconn.Listener) *Client {
	t.Helper()
	c := NewClient("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	c.retryDelay = 10 * time.Millisecond
	require.NoError(t, c.Connect())
	t.Cleanup(c.Disconnect)
	return c
}

func TestClientStreamsFrames(t *testing.T) {
	var sent atomic.Int64
	src := FrameSourceFunc(func() Frame {
		sent.Add(1)
		return Frame{Heading: 123.4, Roll: -30, GroundSpeed: 20, FlightMode: "ACRO", Battery: 64}
	})
	lis := serve(t, NewServer(src, 5*time.Millisecond))
	c := dialBufconn(t, lis)

	require.NoError(t, c.StartTelemetryStream())
	require.NoError(t, c.StartTelemetryStream(), "second start is a no-op")

	require.Eventually(t, func() bool { return c.GetState().Frames >= 3 }, 5*time.Second, 5*time.Millisecond)
	assert.True(t, c.IsConnected())
	assert.GreaterOrEqual(t, sent.Load(), int64(3))

	tel := c.GetTelemetry()
	assert.Equal(t, uint16(123), tel.Heading)
	assert.Equal(t, int16(-30), tel.Attitude.Roll)
	assert.Equal(t, uint16(39), tel.SpeedVector.Rho)
	assert.Equal(t, "ACRO", tel.FlightMode)
	assert.Equal(t, uint8(64), tel.Battery)
	assert.Empty(t, tel.Notes.Center)

	c.StopTelemetryStream()
	frames := c.GetState().Frames
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, frames, c.GetState().Frames, "no frames after stop")
	assert.False(t, c.IsConnected())
}

// oneShot sends a single frame per subscription and hangs up.
type oneShot struct {
	subscriptions atomic.Int64
}

func (o *oneShot) Stream(_ *emptypb.Empty, stream grpc.ServerStream) error {
	n := o.subscriptions.Add(1)
	f := Frame{Heading: float64(n)}
	return stream.SendMsg(f.Struct())
}

func TestClientResubscribes(t *testing.T) {
	srv := &oneShot{}
	c := dialBufconn(t, serve(t, srv))
	require.NoError(t, c.StartTelemetryStream())

	require.Eventually(t, func() bool { return srv.subscriptions.Load() >= 3 }, 5*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool { return c.GetState().Frames >= 3 }, 5*time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, c.GetTelemetry().Heading, uint16(3))
}

func TestClientSimulatorServer(t *testing.T) {
	lis := serve(t, NewServer(NewSimulator(), 5*time.Millisecond))
	c := dialBufconn(t, lis)
	require.NoError(t, c.StartTelemetryStream())
	require.Eventually(t, func() bool { return c.GetState().HasFrame }, 5*time.Second, 5*time.Millisecond)

	tel := c.GetTelemetry()
	assert.Equal(t, "CRUZ", tel.FlightMode)
	assert.Equal(t, "HOME", tel.Steerpoint.Name)

	h, err := hud.New(hud.DefaultOptions(), nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { h.RenderFrom(c, h.NewGrid()) })
}

func TestClientStartNeedsConnect(t *testing.T) {
	c := NewClient("passthrough:///nowhere")
	assert.Error(t, c.StartTelemetryStream())
	c.Disconnect()
}

func TestClientTelemetryBeforeFirstFrame(t *testing.T) {
	c := NewClient("passthrough:///nowhere")
	tel := c.GetTelemetry()
	want := hud.DefaultTelemetry()
	want.Notes.Center = linkLostNote
	assert.Equal(t, want, tel)
}

func TestClientTelemetryGoesStale(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewClient("passthrough:///nowhere")
	c.now = func() time.Time { return now }

	c.processFrame(Frame{Heading: 45, Notes: hud.Notes{Center: "RTH"}})
	assert.Equal(t, "RTH", c.GetTelemetry().Notes.Center)

	now = now.Add(StaleAfter)
	assert.Equal(t, "RTH", c.GetTelemetry().Notes.Center, "exactly at the limit is still fresh")

	now = now.Add(time.Millisecond)
	tel := c.GetTelemetry()
	assert.Equal(t, linkLostNote, tel.Notes.Center)
	assert.Equal(t, uint16(45), tel.Heading, "last known values stay on screen")
}
