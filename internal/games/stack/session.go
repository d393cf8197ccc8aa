package stack

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/core"
)

// Params holds everything a session needs, resolved from config and the
// viewport size. Distances are in cells, speeds in cells per second.
type Params struct {
	ViewportW   float64
	ViewportH   float64
	BlockHeight float64
	StartWidth  float64
	SpawnGap    float64

	BaseSpeed          float64
	WidthScaling       bool
	MaxWidthMultiplier float64
	Camera             bool

	SlowDescent time.Duration
	FastDescent time.Duration
	FastEase    string

	FragmentFall     float64
	FragmentDrift    float64
	FragmentLifetime time.Duration

	Difficulty config.DifficultyConfig
}

// ParamsFromConfig resolves a stacking config against a viewport.
// The starting width is BaseWidthRatio of the viewport, capped at
// BaseWidth.
func ParamsFromConfig(cfg config.StackConfig, viewportW, viewportH int) Params {
	w := float64(viewportW)
	start := w * cfg.Board.BaseWidthRatio
	if cfg.Board.BaseWidth > 0 {
		start = math.Min(start, cfg.Board.BaseWidth)
	}
	if start < 1 {
		start = 1
	}

	return Params{
		ViewportW:          w,
		ViewportH:          float64(viewportH),
		BlockHeight:        cfg.Board.BlockHeight,
		StartWidth:         start,
		SpawnGap:           cfg.Board.SpawnGap,
		BaseSpeed:          cfg.Motion.BaseSpeed,
		WidthScaling:       cfg.Motion.WidthScaling,
		MaxWidthMultiplier: cfg.Motion.MaxWidthMultiplier,
		Camera:             cfg.Board.Camera,
		SlowDescent:        seconds(cfg.Descent.SlowSeconds),
		FastDescent:        seconds(cfg.Descent.FastSeconds),
		FastEase:           cfg.Descent.FastEase,
		FragmentFall:       cfg.Fragments.FallSpeed,
		FragmentDrift:      cfg.Fragments.DriftSpeed,
		FragmentLifetime:   seconds(cfg.Fragments.LifetimeSeconds),
		Difficulty:         cfg.Difficulty,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// activeBlock is the single block currently oscillating and falling.
type activeBlock struct {
	osc        Oscillator
	descent    *Descent
	width      float64
	colorIndex int
}

func (a *activeBlock) span() core.Span {
	return core.NewSpan(a.osc.CenterX, a.width)
}

// TickResult reports what happened during one Tick.
type TickResult struct {
	Landing *Landing // Set on the tick a block reached the tower
	Ended   bool     // Match is over
	Err     error    // Tower rejected a commit; the match was ended
}

// Session is one playthrough: the tower, the active block, fragments
// and score. It is single-threaded; callers serialise access.
type Session struct {
	params     Params
	seed       int64
	rng        *rand.Rand
	difficulty *config.DifficultyManager

	tower     *Tower
	active    *activeBlock
	fragments *fragmentField

	score        int
	currentWidth float64
	movingRight  bool
	colorIndex   int
	started      bool
	ended        bool
	dropQueued   bool
	elapsed      time.Duration
}

// NewSession creates an idle session holding only the base block.
// Nothing moves until StartMatch is called.
func NewSession(p Params, seed int64) *Session {
	s := &Session{
		params:     p,
		seed:       seed,
		difficulty: config.NewDifficultyManager(p.Difficulty),
	}
	s.rng = rand.New(rand.NewSource(seed))
	s.fragments = newFragmentField(s.rng, p.FragmentFall, p.FragmentDrift, p.FragmentLifetime)
	s.tower = NewTower(s.baseBlock(), p.BlockHeight, p.ViewportH-p.BlockHeight)
	s.reset()
	return s
}

func (s *Session) baseBlock() Block {
	return Block{CenterX: s.params.ViewportW / 2, Width: s.params.StartWidth, ColorIndex: -1}
}

func (s *Session) reset() {
	s.rng.Seed(s.seed)
	s.tower.Reset()
	s.fragments.Reset(s.rng)
	s.active = nil
	s.score = 0
	s.currentWidth = s.params.StartWidth
	s.movingRight = true
	s.colorIndex = 0
	s.started = false
	s.ended = false
	s.dropQueued = false
	s.elapsed = 0
}

// StartMatch spawns the first block. Calling it again has no effect.
func (s *Session) StartMatch() {
	if s.started || s.ended {
		return
	}
	s.started = true
	s.spawn()
}

// ResetMatch discards the playthrough and returns to the idle state
// with only the base block, score 0 and the starting width.
func (s *Session) ResetMatch() {
	s.reset()
}

// TriggerDrop requests a fast drop of the active block. The request is
// held in a single slot and applied on the next Tick. Without an active
// block, or once the block is already dropping, it does nothing.
func (s *Session) TriggerDrop() {
	if s.active == nil || s.ended {
		return
	}
	s.dropQueued = true
}

// Tick advances the session by dt. Within a tick the drop request is
// applied first, then horizontal motion, then descent. A landing is
// evaluated against the current tower top and the next block spawned
// before fragments move.
func (s *Session) Tick(dt time.Duration) TickResult {
	if !s.started {
		return TickResult{}
	}
	if s.ended {
		s.fragments.Update(dt, s.visibleBottom(), s.params.BlockHeight)
		return TickResult{Ended: true}
	}

	s.elapsed += dt
	var res TickResult

	if s.dropQueued {
		s.dropQueued = false
		if s.active != nil {
			s.active.descent.Trigger()
		}
	}

	if a := s.active; a != nil {
		if a.descent.Phase() == PhaseDescending {
			step := s.Speed() * dt.Seconds()
			_, s.movingRight = a.osc.Advance(a.width, s.params.ViewportW, step)
		}

		if _, arrived := a.descent.Update(dt); arrived {
			l, err := s.land()
			res.Landing = &l
			res.Err = err
		}
	}

	s.fragments.Update(dt, s.visibleBottom(), s.params.BlockHeight)
	res.Ended = s.ended
	return res
}

// land evaluates the active block against the tower top and applies the
// result.
func (s *Session) land() (Landing, error) {
	a := s.active
	s.active = nil

	top, err := s.tower.Top()
	if err != nil {
		s.ended = true
		return Landing{Outcome: OutcomeMissed}, err
	}

	l := Evaluate(a.span(), top, a.colorIndex)
	if l.Outcome == OutcomeMissed {
		s.ended = true
		return l, nil
	}

	landingY := a.descent.Target()
	if err := s.tower.Commit(l.Block); err != nil {
		s.ended = true
		l.Outcome = OutcomeMissed
		l.Fragment = nil
		return l, err
	}

	s.currentWidth = l.Block.Width
	if l.Fragment != nil {
		l.Fragment.Y = landingY
		s.fragments.Launch(*l.Fragment)
	}
	s.score++
	s.spawn()
	return l, nil
}

// spawn creates the next active block a fixed gap above the tower top,
// centred horizontally, and starts its glide. Without the camera the
// block never starts above the top row while its target is still on
// screen.
func (s *Session) spawn() {
	target := s.tower.TopY() - s.params.BlockHeight/2
	start := target - s.params.SpawnGap
	if !s.params.Camera {
		start = math.Max(start, math.Min(target, s.params.BlockHeight/2))
	}
	d := NewDescent(start, target, s.params.SlowDescent, s.params.FastDescent, EaseByName(s.params.FastEase))
	s.active = &activeBlock{
		osc:        Oscillator{CenterX: s.params.ViewportW / 2, MovingRight: s.movingRight},
		descent:    d,
		width:      s.currentWidth,
		colorIndex: s.colorIndex,
	}
	s.colorIndex++
	d.Begin()
}

// Speed returns the current horizontal speed in cells per second.
// It depends only on score and current width.
func (s *Session) Speed() float64 {
	speed := s.difficulty.StepSpeed(s.params.BaseSpeed, s.score)
	if s.params.WidthScaling {
		speed *= WidthMultiplier(s.params.StartWidth, s.currentWidth, s.params.MaxWidthMultiplier)
	}
	return speed
}

// CameraOffsetY returns the viewport scroll. Always zero without the
// following camera.
func (s *Session) CameraOffsetY() float64 {
	if !s.params.Camera {
		return 0
	}
	return CameraOffset(s.tower.TopY(), s.params.ViewportH)
}

func (s *Session) visibleBottom() float64 {
	return s.params.ViewportH - s.CameraOffsetY()
}

// Score returns the number of successful landings.
func (s *Session) Score() int { return s.score }

// Ended reports whether the match is over.
func (s *Session) Ended() bool { return s.ended }

// Started reports whether StartMatch has been called since the last reset.
func (s *Session) Started() bool { return s.started }

// CurrentWidth returns the width the next block spawns with.
func (s *Session) CurrentWidth() float64 { return s.currentWidth }

// Elapsed returns the simulated time since the match started.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Tower exposes the tower for inspection.
func (s *Session) Tower() *Tower { return s.tower }

// Params returns the resolved session parameters.
func (s *Session) Params() Params { return s.params }

// ActivePhase returns the active block's descent phase and whether a
// block is active at all.
func (s *Session) ActivePhase() (Phase, bool) {
	if s.active == nil {
		return PhaseSpawned, false
	}
	return s.active.descent.Phase(), true
}
