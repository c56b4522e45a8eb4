package threat

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/night-door/door"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/vmath"
)

const tick = 20 * time.Millisecond

func testAnchor(id string) Anchor {
	return Anchor{
		RoomID: id,
		Light:  id + "-lamp",
		Far:    vmath.NewPose(mgl64.Vec3{0, 0, 10}, 180),
		Near:   vmath.NewPose(mgl64.Vec3{0, 0, 5}, 180),
		Door:   vmath.NewPose(mgl64.Vec3{0, 0, 1}, 180),
	}
}

// newTestEngine returns an engine that is always active in its first room
func newTestEngine(t *testing.T, mutate func(*Config)) (*Engine, *event.Recorder) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.InactiveChance = 0
	if mutate != nil {
		mutate(&cfg)
	}
	rec := &event.Recorder{}
	e := NewEngine(cfg, rand.New(rand.NewPCG(7, 11)), rec, nil, nil)
	e.AssignRoom(testAnchor("hall"))
	return e, rec
}

// run advances the engine for d in fixed ticks
func run(e *Engine, d time.Duration, ds door.Status, lightOn bool) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		e.Update(tick, ds, lightOn)
	}
}

func TestStageFor(t *testing.T) {
	tests := []struct {
		mistakes, perStage int
		want               Stage
	}{
		{0, 2, Far},
		{1, 2, Far},
		{2, 2, Near},
		{3, 2, Near},
		{4, 2, Door},
		{40, 2, Door},
		{5, 0, Far},
		{5, -1, Far},
		{3, 1, Door},
	}
	for _, tt := range tests {
		if got := StageFor(tt.mistakes, tt.perStage); got != tt.want {
			t.Errorf("StageFor(%d, %d) = %v, want %v", tt.mistakes, tt.perStage, got, tt.want)
		}
	}
}

// TestStageMonotonic tests that stage never decreases as mistakes increase
func TestStageMonotonic(t *testing.T) {
	for per := 1; per <= 4; per++ {
		prev := StageFor(0, per)
		for m := 1; m < 20; m++ {
			s := StageFor(m, per)
			if s < prev {
				t.Fatalf("StageFor(%d, %d) = %v < %v", m, per, s, prev)
			}
			prev = s
		}
	}
}

func TestParseStage(t *testing.T) {
	for _, s := range []Stage{None, Far, Near, Door, Jumpscare} {
		got, err := ParseStage(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStage(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStage("behind"); err == nil {
		t.Error("Expected error for unknown stage")
	}
}

func TestSummonAfterGrace(t *testing.T) {
	e, rec := newTestEngine(t, nil)

	// Short flashes under grace are safe
	run(e, e.cfg.HoldGrace-2*tick, door.Open, true)
	run(e, 5*tick, door.Open, false)
	if e.Stage() != None {
		t.Fatalf("Expected None after sub-grace light, got %v", e.Stage())
	}

	run(e, e.cfg.HoldGrace+tick, door.Open, true)
	if e.Stage() != Far {
		t.Fatalf("Expected Far after grace, got %v", e.Stage())
	}
	if e.Mistakes() != 1 {
		t.Errorf("Expected the first accrual right after grace, got %d", e.Mistakes())
	}
	if !e.Visual().Active {
		t.Error("Expected visual active after summon")
	}

	ev, ok := rec.Last(event.EventStageChanged)
	if !ok {
		t.Fatal("Expected stage-changed event")
	}
	p := ev.Payload.(*event.StagePayload)
	if Stage(p.From) != None || Stage(p.To) != Far {
		t.Errorf("Expected None->Far, got %d->%d", p.From, p.To)
	}
}

// TestScenarioLightHeld tests Far/1 plus two accrual cycles reaching Near/3
func TestScenarioLightHeld(t *testing.T) {
	e, _ := newTestEngine(t, func(c *Config) {
		c.MistakesPerStage = 2
		c.DoorOpenNearIsDanger = false
	})

	e.RegisterMistake(event.MistakeExternal)
	if e.Stage() != Far || e.Mistakes() != 1 {
		t.Fatalf("setup: expected Far/1, got %v/%d", e.Stage(), e.Mistakes())
	}

	// Grace, first accrual, then one full period for the second
	run(e, e.cfg.HoldGrace+e.cfg.HoldMistakeEvery+tick, door.Open, true)

	if e.Mistakes() != 3 {
		t.Errorf("Expected 3 mistakes, got %d", e.Mistakes())
	}
	if e.Stage() != Near {
		t.Errorf("Expected Near, got %v", e.Stage())
	}
}

func TestLightOffResetsHold(t *testing.T) {
	e, _ := newTestEngine(t, func(c *Config) { c.DoorOpenNearIsDanger = false })

	run(e, e.cfg.HoldGrace+tick, door.Open, true)
	if e.Mistakes() != 1 {
		t.Fatalf("setup: expected 1, got %d", e.Mistakes())
	}

	// Off then on again: grace applies again before the next accrual
	run(e, tick, door.Open, false)
	run(e, e.cfg.HoldGrace-2*tick, door.Open, true)
	if e.Mistakes() != 1 {
		t.Errorf("Expected grace after light off, got %d", e.Mistakes())
	}
	run(e, 3*tick, door.Open, true)
	if e.Mistakes() != 2 {
		t.Errorf("Expected accrual right after grace, got %d", e.Mistakes())
	}
}

func TestDoorClosedBlocksAccrual(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	run(e, 10*time.Second, door.Closed, true)
	if e.Stage() != None || e.Mistakes() != 0 {
		t.Errorf("Expected no accrual behind a closed door, got %v/%d", e.Stage(), e.Mistakes())
	}
}

// TestScenarioKill tests that a mistake at the kill stage enters Jumpscare without touching mistakes
func TestScenarioKill(t *testing.T) {
	e, rec := newTestEngine(t, func(c *Config) {
		c.MistakesPerStage = 2
		c.KillThreshold = Door
	})

	for i := 0; i < 4; i++ {
		e.RegisterMistake(event.MistakeExternal)
	}
	if e.Stage() != Door || e.Mistakes() != 4 {
		t.Fatalf("setup: expected Door/4, got %v/%d", e.Stage(), e.Mistakes())
	}

	e.RegisterMistake(event.MistakeExternal)
	if e.Stage() != Jumpscare {
		t.Fatalf("Expected Jumpscare, got %v", e.Stage())
	}
	if e.Mistakes() != 4 {
		t.Errorf("Expected mistakes untouched, got %d", e.Mistakes())
	}

	// Frozen: further mistakes, relief and accrual do nothing
	e.RegisterMistake(event.MistakeExternal)
	e.OnDoorClosed()
	e.OnLightFlashed()
	run(e, 5*time.Second, door.Open, true)

	if e.Stage() != Jumpscare || e.Mistakes() != 4 {
		t.Errorf("Expected frozen Jumpscare/4, got %v/%d", e.Stage(), e.Mistakes())
	}
	if n := rec.Count(event.EventJumpscareTriggered); n != 1 {
		t.Errorf("Expected exactly one jumpscare-triggered, got %d", n)
	}
	if !e.Visual().Position.ApproxEqual(e.anchor.Door.Position) {
		t.Error("Expected the scare at the door anchor")
	}
}

// TestScenarioDoorRelief tests relief 2 from 5 mistakes
func TestScenarioDoorRelief(t *testing.T) {
	e, rec := newTestEngine(t, func(c *Config) {
		c.DoorCloseRelief = 2
		c.KillThreshold = Jumpscare
	})
	for i := 0; i < 5; i++ {
		e.RegisterMistake(event.MistakeExternal)
	}
	if e.Stage() != Door {
		t.Fatalf("setup: expected Door, got %v", e.Stage())
	}

	rec.Reset()
	e.HandleEvent(event.GameEvent{Type: event.EventDoorClosed, Payload: &event.DoorPayload{}})

	if e.Mistakes() != 3 {
		t.Errorf("Expected 3 mistakes, got %d", e.Mistakes())
	}
	if e.Stage() != Near {
		t.Errorf("Expected Near after recompute, got %v", e.Stage())
	}
	if rec.Count(event.EventStageChanged) != 1 {
		t.Errorf("Expected one stage change, got %v", rec.Types())
	}
}

func TestReliefNeverNegative(t *testing.T) {
	e, _ := newTestEngine(t, func(c *Config) { c.DoorCloseRelief = 10 })
	e.RegisterMistake(event.MistakeExternal)

	e.OnDoorClosed()
	e.OnDoorClosed()
	if e.Mistakes() != 0 {
		t.Errorf("Expected 0, got %d", e.Mistakes())
	}
	if e.Stage() != Far {
		t.Errorf("Expected summoned monster to stay Far, got %v", e.Stage())
	}
}

func TestReliefIgnoredBeforeSummon(t *testing.T) {
	e, rec := newTestEngine(t, nil)
	e.OnDoorClosed()
	e.OnLightFlashed()
	if e.Stage() != None || len(rec.Events) != 0 {
		t.Errorf("Expected no effect before summon, got %v %v", e.Stage(), rec.Types())
	}
	if e.flashesUsed != 0 {
		t.Error("Expected flash not consumed before summon")
	}
}

func TestFlashReliefCap(t *testing.T) {
	e, _ := newTestEngine(t, func(c *Config) {
		c.FlashRelief = 1
		c.FlashTimesTotal = 2
		c.KillThreshold = Jumpscare
	})
	for i := 0; i < 5; i++ {
		e.RegisterMistake(event.MistakeExternal)
	}

	for i := 0; i < 4; i++ {
		e.HandleEvent(event.GameEvent{Type: event.EventLightFlashed})
	}
	if e.Mistakes() != 3 {
		t.Errorf("Expected two flashes of relief (5->3), got %d", e.Mistakes())
	}
	if e.Snapshot().FlashesUsed != 2 {
		t.Errorf("Expected flashesUsed 2, got %d", e.Snapshot().FlashesUsed)
	}

	// New room restores the allowance
	e.AssignRoom(testAnchor("cellar"))
	if e.Snapshot().FlashesUsed != 0 {
		t.Error("Expected flashesUsed reset on room assignment")
	}
}

func TestNearDoorAccrual(t *testing.T) {
	tests := []struct {
		name    string
		peek    bool
		ds      door.Status
		accrues bool
	}{
		{"open", false, door.Open, true},
		{"peeking not dangerous", false, door.Peeking, false},
		{"peeking dangerous", true, door.Peeking, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, func(c *Config) {
				c.PeekIsDanger = tt.peek
				c.KillThreshold = Jumpscare
			})
			e.RegisterMistake(event.MistakeExternal)
			e.RegisterMistake(event.MistakeExternal)
			if e.Stage() != Near {
				t.Fatalf("setup: expected Near, got %v", e.Stage())
			}

			run(e, e.cfg.NearDoorOpenMistakeEvery+tick, tt.ds, false)

			accrued := e.Mistakes() > 2
			if accrued != tt.accrues {
				t.Errorf("accrued = %v (mistakes %d), want %v", accrued, e.Mistakes(), tt.accrues)
			}
		})
	}
}

func TestNearDoorNotDangerousAtFar(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.RegisterMistake(event.MistakeExternal)

	run(e, 5*time.Second, door.Open, false)
	if e.Mistakes() != 1 {
		t.Errorf("Expected no near-door accrual at Far, got %d", e.Mistakes())
	}
}

func TestInactiveRoomIgnoresSignals(t *testing.T) {
	e, rec := newTestEngine(t, func(c *Config) { c.InactiveChance = 1 })

	run(e, 10*time.Second, door.Open, true)
	e.RegisterMistake(event.MistakeExternal)

	if e.ActiveInRoom() || e.Stage() != None || len(rec.Events) != 0 {
		t.Errorf("Expected inert engine, got active=%v stage=%v events=%v", e.ActiveInRoom(), e.Stage(), rec.Types())
	}
}

func TestSafeRoomForcedInactive(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	a := testAnchor("nursery")
	a.Safe = true
	e.AssignRoom(a)
	if e.ActiveInRoom() {
		t.Error("Expected monster absent from safe room")
	}
}

// TestScenarioRevisit tests that a room left with the monster showing restores its placement
func TestScenarioRevisit(t *testing.T) {
	e, _ := newTestEngine(t, func(c *Config) { c.KillThreshold = Jumpscare })

	for i := 0; i < 2; i++ {
		e.RegisterMistake(event.MistakeExternal)
	}
	p := e.Visual()
	if !p.Active || !p.Position.ApproxEqual(e.anchor.Near.Position) {
		t.Fatalf("setup: expected visible at Near, got %+v", p)
	}

	e.AssignRoom(testAnchor("cellar"))
	e.AssignRoom(testAnchor("attic")) // monster never showed in cellar
	e.AssignRoom(testAnchor("hall"))

	v := e.Visual()
	if v.Position != p.Position || v.Orientation != p.Orientation {
		t.Errorf("Expected exact restore %v, got %v", p.Position, v.Position)
	}
	if e.Memory().Len() != 1 {
		t.Errorf("Expected one remembered room, got %d", e.Memory().Len())
	}

	// Restored placement survives the summon, a stage change snaps to anchors
	e.RegisterMistake(event.MistakeExternal)
	if !e.Visual().Position.ApproxEqual(p.Position) {
		t.Error("Expected restored placement kept at summon")
	}
	e.RegisterMistake(event.MistakeExternal)
	if e.Stage() != Near || !e.Visual().Position.ApproxEqual(e.anchor.Near.Position) {
		t.Errorf("Expected Near anchor after stage change, got %v at %v", e.Stage(), e.Visual().Position)
	}
}

func TestSnapshotProximity(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	if snap := e.Snapshot(); snap.HasDistance {
		t.Fatalf("Expected no distance before summon, got %+v", snap)
	}

	e.RegisterMistake(event.MistakeExternal)
	snap := e.Snapshot()
	if !snap.HasDistance || math.Abs(snap.DoorDistance-9) > 1e-9 {
		t.Errorf("Far distance = %v (has %v), want 9", snap.DoorDistance, snap.HasDistance)
	}
	if math.Abs(math.Abs(snap.Heading)-180) > 1e-9 {
		t.Errorf("Heading = %v, want 180", snap.Heading)
	}

	e.RegisterMistake(event.MistakeExternal)
	e.RegisterMistake(event.MistakeExternal)
	if d := e.Snapshot().DoorDistance; math.Abs(d-4) > 1e-9 {
		t.Errorf("Near distance = %v, want 4", d)
	}

	// Rooms without a door anchor report no distance
	a := testAnchor("closet")
	a.Door = vmath.Pose{}
	e.AssignRoom(a)
	e.RegisterMistake(event.MistakeExternal)
	if e.Snapshot().HasDistance {
		t.Error("Expected no distance without a door anchor")
	}
}

func TestRestoreLocationDisabled(t *testing.T) {
	e, _ := newTestEngine(t, func(c *Config) { c.RestoreLocation = false })
	e.RegisterMistake(event.MistakeExternal)

	e.AssignRoom(testAnchor("cellar"))
	e.AssignRoom(testAnchor("hall"))
	if e.Memory().Len() != 0 {
		t.Error("Expected nothing remembered")
	}
	if !e.Visual().Position.ApproxEqual(e.anchor.Far.Position) {
		t.Error("Expected far anchor placement")
	}
}

func TestResetSessionForgets(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.RegisterMistake(event.MistakeExternal)
	e.AssignRoom(testAnchor("cellar"))
	if e.Memory().Len() != 1 {
		t.Fatal("setup: expected one remembered room")
	}

	e.ResetSession()
	e.AssignRoom(testAnchor("hall"))
	if e.Memory().Len() != 0 {
		t.Error("Expected memory cleared")
	}
}

func TestJumpscareSequence(t *testing.T) {
	e, rec := newTestEngine(t, func(c *Config) {
		c.KillThreshold = Far
		c.Jumpscare = JumpscareConfig{
			FlashCount:          3,
			OnTime:              120 * time.Millisecond,
			OffTime:             80 * time.Millisecond,
			DelayBeforeGameOver: 250 * time.Millisecond,
		}
	})

	e.RegisterMistake(event.MistakeExternal) // summon to Far, then kill
	if e.Stage() != Jumpscare || e.Phase() != PhaseFlashOn {
		t.Fatalf("Expected jumpscare in FlashOn, got %v/%v", e.Stage(), e.Phase())
	}
	if !e.Visual().Scare {
		t.Error("Expected scare frame during FlashOn")
	}

	run(e, 2*time.Second, door.Open, true)
	if !e.GameOver() {
		t.Fatalf("Expected Done, got %v", e.Phase())
	}

	var cues []event.JumpscareCue
	for _, ev := range rec.Events {
		if ev.Type == event.EventJumpscareCue {
			cues = append(cues, ev.Payload.(*event.JumpscareCuePayload).Cue)
		}
	}
	want := []event.JumpscareCue{
		event.CueFlashOn, event.CueFlashOff, event.CueScream,
		event.CueFlashOn, event.CueFlashOff,
		event.CueFlashOn, event.CueFlashOff,
		event.CueFade, event.CueGameOver,
	}
	if len(cues) != len(want) {
		t.Fatalf("cues = %v, want %v", cues, want)
	}
	for i := range want {
		if cues[i] != want[i] {
			t.Errorf("cue %d = %v, want %v", i, cues[i], want[i])
		}
	}
}

// TestJumpscareSequenceLargeStep tests that one long tick crosses several phases
func TestJumpscareSequenceLargeStep(t *testing.T) {
	e, _ := newTestEngine(t, func(c *Config) { c.KillThreshold = Far })
	e.RegisterMistake(event.MistakeExternal)

	e.Update(time.Hour, door.Open, false)
	if !e.GameOver() {
		t.Errorf("Expected Done after a long step, got %v", e.Phase())
	}
}

func TestMistakeEventPayload(t *testing.T) {
	e, rec := newTestEngine(t, func(c *Config) { c.DoorOpenNearIsDanger = false })
	run(e, e.cfg.HoldGrace+tick, door.Open, true)

	ev, ok := rec.Last(event.EventMistakeRegistered)
	if !ok {
		t.Fatal("Expected mistake event")
	}
	p := ev.Payload.(*event.MistakePayload)
	if p.Source != event.MistakeLightHeld || p.Mistakes != 1 || p.RoomID != "hall" {
		t.Errorf("unexpected payload %+v", p)
	}
}
