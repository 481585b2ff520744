// Package displayport sends rendered grids to an MSP DisplayPort device
// such as a digital VTX or an OSD co-processor.
package displayport

import (
	"elrs-hud/hud"
)

// MSPDisplayPort is the MSP v1 command carrying all DisplayPort traffic.
const MSPDisplayPort = 182

// DisplayPort subcommands, the first payload byte.
const (
	SubcmdHeartbeat   = 0
	SubcmdRelease     = 1
	SubcmdClearScreen = 2
	SubcmdWriteString = 3
	SubcmdDrawScreen  = 4
)

// MaxStringLength is the longest run a single WRITE_STRING may carry.
const MaxStringLength = 30

// AppendFrame appends an MSP v1 frame flowing towards the display:
// "$M>", payload size, command, payload, XOR checksum of everything after
// the direction byte.
func AppendFrame(dst []byte, cmd byte, payload []byte) []byte {
	size := byte(len(payload))
	dst = append(dst, '$', 'M', '>', size, cmd)
	dst = append(dst, payload...)
	checksum := size ^ cmd
	for _, b := range payload {
		checksum ^= b
	}
	return append(dst, checksum)
}

// Encoder turns grids into DisplayPort frames.
//
// By default every grid is a full screen: clear, the visible cells, draw.
// With Incremental set the clear is left out and the display keeps what it
// had; cells the HUD blanked this frame are sent as spaces, which is enough
// to erase them because a grid never drops a cell straight to transparent.
type Encoder struct {
	Incremental bool
	// Attribute is sent with every string, e.g. a font page on HD systems.
	Attribute byte
}

func (e *Encoder) Heartbeat(dst []byte) []byte {
	return AppendFrame(dst, MSPDisplayPort, []byte{SubcmdHeartbeat})
}

// Release hands the screen back to the device's own OSD.
func (e *Encoder) Release(dst []byte) []byte {
	return AppendFrame(dst, MSPDisplayPort, []byte{SubcmdRelease})
}

func (e *Encoder) Clear(dst []byte) []byte {
	return AppendFrame(dst, MSPDisplayPort, []byte{SubcmdClearScreen})
}

func (e *Encoder) Draw(dst []byte) []byte {
	return AppendFrame(dst, MSPDisplayPort, []byte{SubcmdDrawScreen})
}

// WriteString appends one WRITE_STRING; text longer than MaxStringLength
// is cut.
func (e *Encoder) WriteString(dst []byte, row, col int, text []byte) []byte {
	if len(text) > MaxStringLength {
		text = text[:MaxStringLength]
	}
	payload := make([]byte, 0, 4+len(text))
	payload = append(payload, SubcmdWriteString, byte(row), byte(col), e.Attribute)
	payload = append(payload, text...)
	return AppendFrame(dst, MSPDisplayPort, payload)
}

// Encode appends the frames for g. Transparent cells are never sent.
func (e *Encoder) Encode(dst []byte, g hud.Grid) []byte {
	if !e.Incremental {
		dst = e.Clear(dst)
	}
	for r, row := range g {
		for c := 0; c < len(row); {
			if row[c] == 0 {
				c++
				continue
			}
			end := c
			for end < len(row) && row[end] != 0 && end-c < MaxStringLength {
				end++
			}
			dst = e.WriteString(dst, r, c, row[c:end])
			c = end
		}
	}
	return e.Draw(dst)
}
