package typewriter

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Driver runs a Machine on a timer and hands every frame to render.
type Driver struct {
	m      *Machine
	clock  clockwork.Clock
	render func(string)

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Start acquires the animation. render is called from the driver's own
// goroutine; it is never called again once Destroy has returned.
func Start(ctx context.Context, opts Options, clock clockwork.Clock, render func(string)) (*Driver, error) {
	m, err := NewMachine(opts)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	d := &Driver{
		m:      m,
		clock:  clock,
		render: render,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go d.run(ctx, opts.StartDelay)
	return d, nil
}

func (d *Driver) run(ctx context.Context, delay time.Duration) {
	defer close(d.done)
	for {
		if delay > 0 {
			t := d.clock.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-d.stop:
				t.Stop()
				return
			case <-t.Chan():
			}
		} else {
			select {
			case <-ctx.Done():
				return
			case <-d.stop:
				return
			default:
			}
		}

		next, ok := d.m.Step()
		d.render(d.m.Text())
		if !ok {
			return
		}
		delay = next
	}
}

// Destroy stops the timer and waits for the animation goroutine to exit.
func (d *Driver) Destroy() {
	d.stopOnce.Do(func() { close(d.stop) })
	<-d.done
}

// Done is closed when the animation has stopped for any reason.
func (d *Driver) Done() <-chan struct{} { return d.done }
