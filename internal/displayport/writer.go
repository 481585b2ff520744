package displayport

import (
	"fmt"
	"io"
	"log"
	"sync"

	"go.bug.st/serial"

	"elrs-hud/hud"
)

// Port is the part of a serial port the writer needs. Tests substitute an
// in-memory buffer.
type Port interface {
	io.Writer
	io.Closer
}

// Writer sends grids and heartbeats to a DisplayPort device. It is safe for
// concurrent use; every call goes out as one write so frames never
// interleave on the wire.
type Writer struct {
	mu      sync.Mutex
	port    Port
	encoder Encoder
	buf     []byte
	frames  uint64
}

// Open opens a serial DisplayPort link at 8N1.
func Open(path string, baudRate int, encoder Encoder) (*Writer, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open displayport %s: %w", path, err)
	}
	log.Printf("DisplayPort on %s @ %d baud", path, baudRate)
	return NewWriter(port, encoder), nil
}

// NewWriter wraps an already open port.
func NewWriter(port Port, encoder Encoder) *Writer {
	return &Writer{port: port, encoder: encoder}
}

// WriteGrid sends one full frame for g.
func (w *Writer) WriteGrid(g hud.Grid) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = w.encoder.Encode(w.buf[:0], g)
	if err := w.flush(); err != nil {
		return err
	}
	w.frames++
	return nil
}

// Heartbeat keeps the device in DisplayPort mode; devices fall back to their
// own OSD after a few seconds without one.
func (w *Writer) Heartbeat() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = w.encoder.Heartbeat(w.buf[:0])
	return w.flush()
}

// Frames returns the number of grids written so far.
func (w *Writer) Frames() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Close releases the screen and closes the port.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = w.encoder.Release(w.buf[:0])
	releaseErr := w.flush()
	if err := w.port.Close(); err != nil {
		return fmt.Errorf("close displayport: %w", err)
	}
	return releaseErr
}

func (w *Writer) flush() error {
	if _, err := w.port.Write(w.buf); err != nil {
		return fmt.Errorf("write displayport: %w", err)
	}
	return nil
}
