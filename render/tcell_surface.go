package render

import (
	"image"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/julia-view/raster"
	"github.com/lixenwraith/julia-view/viewport"
)

// halfBlock draws the upper pixel as foreground and the lower pixel as background
const halfBlock = '▀'

// TcellSurface presents pixel buffers on a tcell screen at two pixels per cell
// (one column wide, two rows tall) and turns mouse wheel input into wheel events.
type TcellSurface struct {
	screen    tcell.Screen
	wheelStep float64

	wheel    chan viewport.WheelEvent
	quit     chan struct{}
	quitOnce sync.Once
}

// NewTcellSurface wraps an initialized screen and enables mouse reporting.
// wheelStep is the DeltaY magnitude reported per wheel notch.
func NewTcellSurface(screen tcell.Screen, wheelStep float64) *TcellSurface {
	screen.EnableMouse()
	screen.HideCursor()

	return &TcellSurface{
		screen:    screen,
		wheelStep: wheelStep,
		wheel:     make(chan viewport.WheelEvent, 64),
		quit:      make(chan struct{}),
	}
}

// Size returns the pixel resolution: cell columns by twice the cell rows
func (s *TcellSurface) Size() raster.Size {
	w, h := s.screen.Size()
	return raster.Size{Width: w, Height: h * 2}
}

// Publish writes buf into the screen with its top-left pixel at origin.
// Cells outside the buffer are painted black; the buffer is clipped to the screen.
func (s *TcellSurface) Publish(buf []byte, size raster.Size, origin image.Point) error {
	cols, rows := s.screen.Size()

	for cy := 0; cy < rows; cy++ {
		top := cy*2 - origin.Y
		for cx := 0; cx < cols; cx++ {
			x := cx - origin.X
			style := tcell.StyleDefault.
				Foreground(pixelColor(buf, size, x, top)).
				Background(pixelColor(buf, size, x, top+1))
			s.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	s.screen.Show()
	return nil
}

// Wheel returns the wheel event stream fed by PollEvents
func (s *TcellSurface) Wheel() <-chan viewport.WheelEvent {
	return s.wheel
}

// Quit is closed when the user asks to exit
func (s *TcellSurface) Quit() <-chan struct{} {
	return s.quit
}

// PollEvents dispatches screen events until the screen is finalized.
// Run it on its own goroutine.
func (s *TcellSurface) PollEvents() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		s.handleEvent(ev)
	}
}

func (s *TcellSurface) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		var deltaY float64
		switch buttons := ev.Buttons(); {
		case buttons&tcell.WheelUp != 0:
			deltaY = -s.wheelStep
		case buttons&tcell.WheelDown != 0:
			deltaY = s.wheelStep
		default:
			return
		}

		mx, my := ev.Position()
		we := viewport.WheelEvent{
			DeltaY:  deltaY,
			OffsetX: float64(mx),
			OffsetY: float64(my * 2),
		}
		select {
		case s.wheel <- we:
		case <-s.quit:
		}

	case *tcell.EventResize:
		s.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			s.requestQuit()
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' || r == 'Q' || (r == 'c' && ev.Modifiers()&tcell.ModCtrl != 0) {
				s.requestQuit()
			}
		}
	}
}

// Close releases a PollEvents goroutine blocked on a full wheel backlog.
// Call it once the consumer of Wheel has stopped. Safe to call multiple times.
func (s *TcellSurface) Close() {
	s.requestQuit()
}

func (s *TcellSurface) requestQuit() {
	s.quitOnce.Do(func() {
		close(s.quit)
	})
}

// pixelColor returns the gray level at (x, y) of buf, black outside its bounds
func pixelColor(buf []byte, size raster.Size, x, y int) tcell.Color {
	if x < 0 || y < 0 || x >= size.Width || y >= size.Height {
		return tcell.NewRGBColor(0, 0, 0)
	}
	i := (y*size.Width + x) * raster.BytesPerPixel
	if i+2 >= len(buf) {
		return tcell.NewRGBColor(0, 0, 0)
	}
	return tcell.NewRGBColor(int32(buf[i]), int32(buf[i+1]), int32(buf[i+2]))
}
