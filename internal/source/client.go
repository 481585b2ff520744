package source

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"

	"elrs-hud/hud"
)

// StaleAfter is how long the last frame stays on screen without a newer one
// before the HUD flags the link as lost.
const StaleAfter = 2 * time.Second

// linkLostNote replaces the center note while telemetry is stale.
const linkLostNote = "NO TELEMETRY"

// State holds the latest telemetry frame and the connection status.
type State struct {
	sync.RWMutex

	Frame      Frame
	HasFrame   bool
	Frames     uint64
	Connected  bool
	LastUpdate time.Time
}

// Client subscribes to a ground station's telemetry stream and keeps the
// latest frame. It implements hud.TelemetrySource.
type Client struct {
	addr     string
	dialOpts []grpc.DialOption
	conn     *grpc.ClientConn

	state      *State
	ctx        context.Context
	cancel     context.CancelFunc
	streaming  bool
	retryDelay time.Duration
	now        func() time.Time
	done       chan struct{}
	mu         sync.Mutex
}

// NewClient creates a client for addr. Extra dial options are appended to
// the insecure transport credentials.
func NewClient(addr string, opts ...grpc.DialOption) *Client {
	return &Client{
		addr:       addr,
		dialOpts:   opts,
		state:      &State{},
		retryDelay: time.Second,
		now:        time.Now,
	}
}

// Connect prepares the connection. The transport dials lazily, so an
// unreachable ground station shows up as stream errors, not here.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, c.dialOpts...)
	conn, err := grpc.NewClient(c.addr, opts...)
	if err != nil {
		return err
	}

	c.conn = conn
	log.Printf("Telemetry client ready for %s", c.addr)
	return nil
}

// Disconnect stops the stream and closes the connection.
func (c *Client) Disconnect() {
	c.StopTelemetryStream()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.state.Lock()
	c.state.Connected = false
	c.state.Unlock()
}

// StartTelemetryStream subscribes in the background and resubscribes after
// every error until StopTelemetryStream.
func (c *Client) StartTelemetryStream() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errors.New("telemetry client is not connected")
	}
	if c.streaming {
		return nil
	}
	c.streaming = true
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.done = make(chan struct{})

	go c.streamTelemetry(c.ctx, c.conn, c.done)
	return nil
}

// StopTelemetryStream cancels the subscription and waits for it to end.
func (c *Client) StopTelemetryStream() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	done := c.done
	c.streaming = false
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (c *Client) streamTelemetry(ctx context.Context, conn *grpc.ClientConn, done chan struct{}) {
	defer close(done)
	for ctx.Err() == nil {
		err := c.subscribe(ctx, conn)
		c.setConnected(false)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Printf("Telemetry stream error: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.retryDelay):
		}
	}
}

// subscribe runs one stream until it ends.
func (c *Client) subscribe(ctx context.Context, conn *grpc.ClientConn) error {
	stream, err := conn.NewStream(ctx, &telemetryStreamDesc, StreamMethod)
	if err != nil {
		return err
	}
	if err := stream.SendMsg(&emptypb.Empty{}); err != nil {
		return err
	}
	if err := stream.CloseSend(); err != nil {
		return err
	}

	for {
		frame, err := recvFrame(stream)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		c.processFrame(frame)
	}
}

func (c *Client) processFrame(f Frame) {
	c.state.Lock()
	defer c.state.Unlock()

	c.state.Frame = f
	c.state.HasFrame = true
	c.state.Frames++
	c.state.Connected = true
	c.state.LastUpdate = c.now()
}

func (c *Client) setConnected(connected bool) {
	c.state.Lock()
	c.state.Connected = connected
	c.state.Unlock()
}

// GetState returns a copy of the current state.
func (c *Client) GetState() State {
	c.state.RLock()
	defer c.state.RUnlock()
	return State{
		Frame:      c.state.Frame,
		HasFrame:   c.state.HasFrame,
		Frames:     c.state.Frames,
		Connected:  c.state.Connected,
		LastUpdate: c.state.LastUpdate,
	}
}

// IsConnected reports whether a stream is currently delivering frames.
func (c *Client) IsConnected() bool {
	c.state.RLock()
	defer c.state.RUnlock()
	return c.state.Connected
}

// GetTelemetry returns the latest frame normalized for the HUD. Before the
// first frame, and once frames stop arriving, the center note says so.
func (c *Client) GetTelemetry() hud.Telemetry {
	s := c.GetState()
	if !s.HasFrame {
		t := hud.DefaultTelemetry()
		t.Notes.Center = linkLostNote
		return t
	}
	t := s.Frame.Telemetry()
	if c.now().Sub(s.LastUpdate) > StaleAfter {
		t.Notes.Center = linkLostNote
	}
	return t
}
