package source

import (
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName and StreamMethod identify the telemetry stream on the wire.
// Each message is a google.protobuf.Struct holding one Frame.
const (
	ServiceName  = "elrshud.Telemetry"
	StreamMethod = "/" + ServiceName + "/Stream"
)

// TelemetryServer is implemented by anything serving the telemetry stream.
type TelemetryServer interface {
	Stream(*emptypb.Empty, grpc.ServerStream) error
}

var telemetryStreamDesc = grpc.StreamDesc{
	StreamName:    "Stream",
	Handler:       streamHandler,
	ServerStreams: true,
}

var telemetryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TelemetryServer)(nil),
	Streams:     []grpc.StreamDesc{telemetryStreamDesc},
	Metadata:    "elrshud/telemetry.proto",
}

func streamHandler(srv any, stream grpc.ServerStream) error {
	req := new(emptypb.Empty)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(TelemetryServer).Stream(req, stream)
}

// RegisterTelemetryServer exposes srv on s.
func RegisterTelemetryServer(s grpc.ServiceRegistrar, srv TelemetryServer) {
	s.RegisterService(&telemetryServiceDesc, srv)
}

// FrameSource produces the next frame to send.
type FrameSource interface {
	Frame() Frame
}

// FrameSourceFunc adapts a function to FrameSource.
type FrameSourceFunc func() Frame

func (f FrameSourceFunc) Frame() Frame { return f() }

// Server streams frames from a FrameSource at a fixed rate to every
// subscriber.
type Server struct {
	source   FrameSource
	interval time.Duration
}

// NewServer sends one frame from src every interval.
func NewServer(src FrameSource, interval time.Duration) *Server {
	return &Server{source: src, interval: interval}
}

func (s *Server) Stream(_ *emptypb.Empty, stream grpc.ServerStream) error {
	ctx := stream.Context()
	log.Printf("Telemetry subscriber connected")
	defer log.Printf("Telemetry subscriber gone")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		frame := s.source.Frame()
		if err := stream.SendMsg(frame.Struct()); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// recvFrame reads one frame from a client stream.
func recvFrame(stream grpc.ClientStream) (Frame, error) {
	msg := new(structpb.Struct)
	if err := stream.RecvMsg(msg); err != nil {
		return Frame{}, err
	}
	return FrameFromStruct(msg), nil
}
