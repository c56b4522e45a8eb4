package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/status"
)

// ClockScheduler drives Game.Step on a fixed tick from its own goroutine
// Deadlines advance by the interval for drift correction and resync when too far behind
type ClockScheduler struct {
	game         *Game
	clock        TimeProvider
	tickInterval time.Duration

	nextTickDeadline time.Time
	tickCount        atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Non-blocking signal to the frame loop that a new snapshot is ready
	updateDone chan struct{}

	statTicks *atomic.Int64
	statLate  *atomic.Int64
}

// NewClockScheduler creates a scheduler and returns it with the update signal channel
func NewClockScheduler(game *Game, clock TimeProvider, tickInterval time.Duration, reg *status.Registry) (*ClockScheduler, <-chan struct{}) {
	if reg == nil {
		reg = status.NewRegistry()
	}
	updateDone := make(chan struct{}, 1)
	cs := &ClockScheduler{
		game:         game,
		clock:        clock,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		updateDone:   updateDone,
		statTicks:    reg.Ints.Get("scheduler.ticks"),
		statLate:     reg.Ints.Get("scheduler.resyncs"),
	}
	return cs, updateDone
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the scheduler loop and waits for the current tick to finish
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// TickCount returns completed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.nextTickDeadline = cs.clock.Now()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		now := cs.clock.Now()
		if !now.Before(cs.nextTickDeadline) {
			cs.game.Step(now)

			cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)
			if now.Sub(cs.nextTickDeadline) > cs.tickInterval*2 {
				cs.nextTickDeadline = now.Add(cs.tickInterval)
				cs.statLate.Add(1)
			}

			n := cs.tickCount.Add(1)
			cs.statTicks.Store(int64(n))

			select {
			case cs.updateDone <- struct{}{}:
			default:
			}
		}

		sleepDuration := cs.nextTickDeadline.Sub(cs.clock.Now())
		if sleepDuration <= 0 {
			continue
		}
		timer.Reset(sleepDuration)
		select {
		case <-timer.C:
		case <-cs.stopChan:
			return
		}
	}
}
