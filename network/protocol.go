package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"

	"github.com/lixenwraith/julia-view/raster"
	"github.com/lixenwraith/julia-view/viewport"
)

// MessageType identifies a binary server message
type MessageType uint8

const (
	// MsgFrame carries one RGBA pixel buffer
	MsgFrame MessageType = 0x01
)

// FrameHeader precedes every frame on the wire
// Fixed 17 bytes: [Type:1][Width:4][Height:4][OriginX:4][OriginY:4]
const FrameHeaderSize = 17

// Client message types, sent as JSON text messages
const (
	ClientResize = "resize"
	ClientWheel  = "wheel"
)

var (
	ErrFrameLength  = errors.New("payload length does not match frame size")
	ErrUnknownInput = errors.New("unknown client message type")
)

// ClientMessage is the JSON envelope the browser sends.
// Resize uses Width and Height; wheel uses DeltaY and the offsets.
type ClientMessage struct {
	Type    string  `json:"type"`
	Width   int     `json:"width,omitempty"`
	Height  int     `json:"height,omitempty"`
	DeltaY  float64 `json:"deltaY,omitempty"`
	OffsetX float64 `json:"offsetX,omitempty"`
	OffsetY float64 `json:"offsetY,omitempty"`
}

// WheelEvent converts a wheel message to the viewport event
func (m ClientMessage) WheelEvent() viewport.WheelEvent {
	return viewport.WheelEvent{
		DeltaY:  m.DeltaY,
		OffsetX: m.OffsetX,
		OffsetY: m.OffsetY,
	}
}

// Size returns the resize dimensions clamped to [0, maxDim]
func (m ClientMessage) Size(maxDim int) raster.Size {
	return raster.Size{
		Width:  clampDim(m.Width, maxDim),
		Height: clampDim(m.Height, maxDim),
	}
}

func clampDim(v, maxDim int) int {
	if v < 0 {
		return 0
	}
	if v > maxDim {
		return maxDim
	}
	return v
}

// EncodeFrame builds a frame message from an RGBA buffer
func EncodeFrame(buf []byte, size raster.Size, origin image.Point) ([]byte, error) {
	if len(buf) != size.BufferLen() {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrFrameLength, len(buf), size.Width, size.Height)
	}

	msg := make([]byte, FrameHeaderSize+len(buf))
	msg[0] = byte(MsgFrame)
	binary.BigEndian.PutUint32(msg[1:5], uint32(size.Width))
	binary.BigEndian.PutUint32(msg[5:9], uint32(size.Height))
	binary.BigEndian.PutUint32(msg[9:13], uint32(int32(origin.X)))
	binary.BigEndian.PutUint32(msg[13:17], uint32(int32(origin.Y)))
	copy(msg[FrameHeaderSize:], buf)

	return msg, nil
}
