package scroll

import (
	"time"

	"github.com/vango-dev/sitekit/pkg/dom"
)

// DefaultDuration is the length of an animated scroll.
const DefaultDuration = 800 * time.Millisecond

// Scroller moves the window, animating over animation frames when smooth.
type Scroller struct {
	win      *dom.Window
	duration time.Duration
	smooth   bool
	frame    int
	running  bool
}

// NewScroller creates a smooth Scroller with the default duration.
func NewScroller(w *dom.Window) *Scroller {
	return &Scroller{win: w, duration: DefaultDuration, smooth: true}
}

// SetDuration sets the animation length. Zero or less jumps directly.
func (s *Scroller) SetDuration(d time.Duration) { s.duration = d }

// SetSmooth enables or disables animation.
func (s *Scroller) SetSmooth(smooth bool) { s.smooth = smooth }

// Animating reports whether an animation is in progress.
func (s *Scroller) Animating() bool { return s.running }

// To scrolls to y. A running animation is replaced.
func (s *Scroller) To(y float64) {
	s.Stop()
	if y < 0 {
		y = 0
	}
	if !s.smooth || s.duration <= 0 {
		s.win.ScrollTo(y)
		return
	}

	start := s.win.ScrollY()
	distance := y - start
	began := s.win.Now()
	s.running = true

	var step func(ts time.Duration)
	step = func(ts time.Duration) {
		elapsed := ts - began
		p := float64(elapsed) / float64(s.duration)
		s.win.ScrollTo(start + distance*EaseInOutQuad(p))
		if elapsed < s.duration {
			s.frame = s.win.RequestAnimationFrame(step)
			return
		}
		s.running = false
	}
	s.frame = s.win.RequestAnimationFrame(step)
}

// IntoView scrolls so el is vertically centered in the viewport.
func (s *Scroller) IntoView(el *dom.Element) {
	s.To(el.OffsetTop() - (s.win.InnerHeight()-el.Height())/2)
}

// Stop cancels a running animation, leaving the window where it is.
func (s *Scroller) Stop() {
	if s.running {
		s.win.ClearTimeout(s.frame)
		s.running = false
	}
}
