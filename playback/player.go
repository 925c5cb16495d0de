package playback

import (
	"context"
	"sync"
	"time"

	"github.com/mogaika/keyframe_browser/animation"
	"github.com/mogaika/keyframe_browser/config"
)

// Player owns the current frame of the timeline
type Player struct {
	lock    sync.Mutex
	cfg     config.Timeline
	frame   animation.Frame
	playing bool

	onFrame []func(animation.Frame)
}

func NewPlayer(cfg config.Timeline) *Player {
	return &Player{cfg: cfg, frame: cfg.Start}
}

func (p *Player) Timeline() config.Timeline {
	return p.cfg
}

func (p *Player) Frame() animation.Frame {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.frame
}

func (p *Player) Playing() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.playing
}

func (p *Player) Play() {
	p.lock.Lock()
	p.playing = true
	p.lock.Unlock()
}

func (p *Player) Pause() {
	p.lock.Lock()
	p.playing = false
	p.lock.Unlock()
}

// OnFrame registers callback called after every frame change.
// Callbacks run without player lock held.
func (p *Player) OnFrame(fn func(animation.Frame)) {
	p.lock.Lock()
	p.onFrame = append(p.onFrame, fn)
	p.lock.Unlock()
}

// Seek moves to frame clamped to timeline range, returns resulting frame
func (p *Player) Seek(f animation.Frame) animation.Frame {
	if f < p.cfg.Start {
		f = p.cfg.Start
	} else if f > p.cfg.End {
		f = p.cfg.End
	}

	p.lock.Lock()
	p.frame = f
	callbacks := p.onFrame
	p.lock.Unlock()

	p.notify(callbacks, f)
	return f
}

// Step advances one frame. At the end of timeline it wraps to start
// when looped, otherwise playback stops on the last frame.
func (p *Player) Step() animation.Frame {
	p.lock.Lock()
	if p.frame >= p.cfg.End {
		if p.cfg.Loop {
			p.frame = p.cfg.Start
		} else {
			p.frame = p.cfg.End
			p.playing = false
		}
	} else {
		p.frame++
	}
	f := p.frame
	callbacks := p.onFrame
	p.lock.Unlock()

	p.notify(callbacks, f)
	return f
}

func (p *Player) notify(callbacks []func(animation.Frame), f animation.Frame) {
	for _, fn := range callbacks {
		fn(f)
	}
}

func (p *Player) Interval() time.Duration {
	return time.Duration(float64(time.Second) / p.cfg.FPS)
}

// Run steps playing timeline with fps rate until ctx is done
func (p *Player) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.Playing() {
				p.Step()
			}
		}
	}
}
