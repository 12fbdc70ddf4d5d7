// Package scheduler spreads mesh loading and frame rendering across many
// small ticks so that no single tick exceeds a fixed amount of work.
//
// A scheduler walks through
//
//	Loading(1..N) → Recenter → Normalize → InitialRotation → Init
//
// once and then repeats Compute, Draw×D, Flush×F forever.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taigrr/monowire/pkg/math3d"
	"github.com/taigrr/monowire/pkg/models"
	"github.com/taigrr/monowire/pkg/scene"
	"github.com/taigrr/monowire/pkg/screen"
)

// ErrConfiguration reports a setup the scheduler refuses to run with.
var ErrConfiguration = errors.New("invalid configuration")

// Config holds the scheduler parameters. Zero tick counts are derived from
// WorkBudget; explicit counts win.
type Config struct {
	// WorkBudget bounds the units of work per tick: lines parsed while
	// loading, vertices projected while drawing and characters emitted while
	// flushing. Zero means unlimited.
	WorkBudget int

	LoadTicks  int
	DrawTicks  int
	FlushTicks int

	MaxLines int     // Reject longer model text; zero means no limit
	MaxSize  float64 // Normalize target; zero skips normalization

	Name            string
	Offset          math3d.Vec3 // Model position relative to the camera
	InitialRotation scene.Rotation
	Invert          bool
}

// Stats describes scheduler progress.
type Stats struct {
	Ticks    uint64
	Frames   uint64 // Completed flush cycles
	LastWork int
	MaxWork  int // Largest steady-state tick

	LoadTicks  int
	DrawTicks  int
	FlushTicks int
}

// Scheduler is a cooperative state machine driving one ModelView. It is not
// safe for concurrent use.
type Scheduler struct {
	cfg     Config
	lines   []string
	builder *models.Builder
	view    *scene.ModelView
	flusher *screen.Flusher
	log     *zap.Logger
	onInit  func(*models.Mesh) error
	control chan func()

	phase Phase
	step  int
	err   error
	stats Stats

	// drawBounds[k] is the first face drawn on draw tick k; the last entry
	// is the face count.
	drawBounds []int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBuilder supplies geometry that is already loaded, for formats not
// parsed tick by tick. The loading phase is skipped.
func WithBuilder(b *models.Builder) Option {
	return func(s *Scheduler) {
		s.builder = b
	}
}

// WithInitHook registers fn to run in the Init phase with the finished mesh.
// An error from fn is fatal.
func WithInitHook(fn func(*models.Mesh) error) Option {
	return func(s *Scheduler) {
		s.onInit = fn
	}
}

// New validates the configuration and returns a scheduler positioned at the
// first phase. lines is the model text; it may be empty when WithBuilder is
// used.
func New(cfg Config, lines []string, view *scene.ModelView, flusher *screen.Flusher, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		cfg:     cfg,
		lines:   lines,
		view:    view,
		flusher: flusher,
		log:     zap.NewNop(),
		control: make(chan func(), 16),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	if s.builder == nil {
		s.builder = models.NewBuilder(cfg.Name)
	} else {
		s.lines = nil
	}
	s.deriveTicks()

	if s.stats.LoadTicks == 0 {
		s.phase = PhaseRecenter
	}
	return s, nil
}

func (s *Scheduler) validate() error {
	cfg := s.cfg
	switch {
	case s.view == nil || s.view.Canvas == nil || s.view.Projector == nil:
		return fmt.Errorf("%w: missing view", ErrConfiguration)
	case s.view.Canvas.Width <= 0 || s.view.Canvas.Height <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrConfiguration, s.view.Canvas.Width, s.view.Canvas.Height)
	case s.flusher == nil || s.flusher.Surface == nil:
		return fmt.Errorf("%w: no display surface", ErrConfiguration)
	case s.flusher.Region(s.view.Canvas).Empty():
		return fmt.Errorf("%w: clip %v outside canvas", ErrConfiguration, s.flusher.Clip)
	case cfg.WorkBudget < 0 || cfg.LoadTicks < 0 || cfg.DrawTicks < 0 || cfg.FlushTicks < 0:
		return fmt.Errorf("%w: negative budget or tick count", ErrConfiguration)
	case cfg.MaxSize < 0:
		return fmt.Errorf("%w: negative max size", ErrConfiguration)
	case s.builder == nil && len(s.lines) == 0:
		return fmt.Errorf("%w: no model", ErrConfiguration)
	case s.builder != nil && s.builder.Built():
		return fmt.Errorf("%w: model already finalized", ErrConfiguration)
	case cfg.MaxLines > 0 && len(s.lines) > cfg.MaxLines:
		return fmt.Errorf("%w: model has %d lines, limit is %d", ErrConfiguration, len(s.lines), cfg.MaxLines)
	case cfg.FlushTicks > s.flusher.Region(s.view.Canvas).Dy():
		return fmt.Errorf("%w: %d flush ticks for %d rows", ErrConfiguration, cfg.FlushTicks, s.flusher.Region(s.view.Canvas).Dy())
	}
	return nil
}

// deriveTicks fills in the load and flush tick counts. The draw count
// depends on the mesh and is derived in the Init phase.
func (s *Scheduler) deriveTicks() {
	budget := s.cfg.WorkBudget

	switch n := len(s.lines); {
	case n == 0:
		s.stats.LoadTicks = 0
	case s.cfg.LoadTicks > 0:
		s.stats.LoadTicks = s.cfg.LoadTicks
	default:
		s.stats.LoadTicks = ticksFor(n, budget)
	}

	region := s.flusher.Region(s.view.Canvas)
	if s.cfg.FlushTicks > 0 {
		s.stats.FlushTicks = s.cfg.FlushTicks
	} else {
		chars := (region.Dx() + 1) * region.Dy()
		s.stats.FlushTicks = min(ticksFor(chars, budget), region.Dy())
	}
}

// ticksFor returns how many ticks n units of work take under budget.
func ticksFor(n, budget int) int {
	if budget <= 0 || n <= 0 {
		return 1
	}
	return (n + budget - 1) / budget
}

// packFaces splits the faces into consecutive ticks of at most budget vertex
// projections. A face larger than the budget gets a tick of its own.
func packFaces(faces []models.Face, budget int) []int {
	bounds := []int{0}
	load := 0
	for i, f := range faces {
		if load > 0 && load+f.Arity() > budget {
			bounds = append(bounds, i)
			load = 0
		}
		load += f.Arity()
	}
	return append(bounds, len(faces))
}

// splitFaces splits the faces into ticks of about equal vertex projections.
func splitFaces(faces []models.Face, ticks int) []int {
	total := 0
	for _, f := range faces {
		total += f.Arity()
	}

	bounds := make([]int, 1, ticks+1)
	i, done := 0, 0
	for k := 1; k < ticks; k++ {
		target := k * total / ticks
		for i < len(faces) && done+faces[i].Arity() <= target {
			done += faces[i].Arity()
			i++
		}
		bounds = append(bounds, i)
	}
	return append(bounds, len(faces))
}

// span returns the half-open range [lo, hi) of part k when n items are
// split into parts.
func span(n, parts, k int) (lo, hi int) {
	return k * n / parts, (k + 1) * n / parts
}

// Tick performs one phase step. A loader or init error is fatal: it is
// returned from this and every later call. A display error is returned but
// the cycle continues.
func (s *Scheduler) Tick() error {
	if s.err != nil {
		return s.err
	}
	s.stats.Ticks++

	phase, step := s.phase, s.step
	work, err := s.run()
	s.stats.LastWork = work
	if phase.Steady() && work > s.stats.MaxWork {
		s.stats.MaxWork = work
	}

	if ce := s.log.Check(zap.DebugLevel, "tick"); ce != nil {
		ce.Write(
			zap.Stringer("phase", phase),
			zap.Int("step", step),
			zap.Int("work", work),
		)
	}
	if s.cfg.WorkBudget > 0 && work > s.cfg.WorkBudget && phase.Steady() {
		s.log.Debug("tick over budget",
			zap.Stringer("phase", phase),
			zap.Int("work", work),
			zap.Int("budget", s.cfg.WorkBudget),
		)
	}
	return err
}

func (s *Scheduler) run() (int, error) {
	switch s.phase {
	case PhaseLoading:
		lo, hi := span(len(s.lines), s.stats.LoadTicks, s.step)
		if err := models.ParseRange(s.lines, s.builder, lo, hi-1); err != nil {
			return hi - lo, s.fail(fmt.Errorf("load model: %w", err))
		}
		s.step++
		if s.step == s.stats.LoadTicks {
			s.log.Info("model loaded",
				zap.String("name", s.cfg.Name),
				zap.Int("vertices", s.builder.VertexCount()),
				zap.Int("faces", s.builder.FaceCount()),
			)
			s.advance(PhaseRecenter)
		}
		return hi - lo, nil

	case PhaseRecenter:
		s.builder.Recenter()
		s.advance(PhaseNormalize)
		return s.builder.VertexCount(), nil

	case PhaseNormalize:
		if s.cfg.MaxSize > 0 {
			s.builder.Normalize(s.cfg.MaxSize)
		}
		s.advance(PhaseInitialRotation)
		return s.builder.VertexCount(), nil

	case PhaseInitialRotation:
		mesh := s.builder.Build()
		mesh.Position = s.cfg.Offset
		r := s.cfg.InitialRotation
		mesh.Rotate(r.Yaw, r.Pitch, r.Roll)
		s.view.Mesh = mesh
		s.advance(PhaseInit)
		return mesh.VertexCount(), nil

	case PhaseInit:
		mesh := s.view.Mesh
		switch {
		case s.cfg.DrawTicks > 0:
			s.drawBounds = splitFaces(mesh.Faces, s.cfg.DrawTicks)
		case s.cfg.WorkBudget > 0:
			s.drawBounds = packFaces(mesh.Faces, s.cfg.WorkBudget)
		default:
			s.drawBounds = splitFaces(mesh.Faces, 1)
		}
		s.stats.DrawTicks = len(s.drawBounds) - 1
		if s.onInit != nil {
			if err := s.onInit(mesh); err != nil {
				return 0, s.fail(fmt.Errorf("init: %w", err))
			}
		}
		s.log.Info("entering render loop",
			zap.Int("vertices", mesh.VertexCount()),
			zap.Int("faces", mesh.FaceCount()),
			zap.Int("draw_ticks", s.stats.DrawTicks),
			zap.Int("flush_ticks", s.stats.FlushTicks),
		)
		s.advance(PhaseCompute)
		return 0, nil

	case PhaseCompute:
		s.view.Compute()
		s.advance(PhaseDraw)
		return s.view.Mesh.VertexCount(), nil

	case PhaseDraw:
		work := s.view.DrawRange(s.drawBounds[s.step], s.drawBounds[s.step+1])
		s.step++
		if s.step == s.stats.DrawTicks {
			s.advance(PhaseFlush)
		}
		return work, nil

	case PhaseFlush:
		region := s.flusher.Region(s.view.Canvas)
		lo, hi := span(region.Dy(), s.stats.FlushTicks, s.step)
		work := (hi - lo) * (region.Dx() + 1)

		err := s.flusher.Flush(s.view.Canvas, s.cfg.Invert, s.step, s.stats.FlushTicks)
		s.step++
		if s.step == s.stats.FlushTicks {
			s.stats.Frames++
			s.advance(PhaseCompute)
		}
		if err != nil {
			return work, fmt.Errorf("flush: %w", err)
		}
		return work, nil
	}
	return 0, s.fail(fmt.Errorf("unknown phase %v", s.phase))
}

func (s *Scheduler) advance(p Phase) {
	s.phase = p
	s.step = 0
}

func (s *Scheduler) fail(err error) error {
	s.err = err
	return err
}

// Phase returns the phase the next Tick will perform.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// Step returns the index within the current phase of the next Tick, for
// example k-1 for Loading(k).
func (s *Scheduler) Step() int {
	return s.step
}

// Err returns the fatal error, if any.
func (s *Scheduler) Err() error {
	return s.err
}

// Stats returns a snapshot of scheduler progress.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// Mesh returns the finished mesh, or nil while loading.
func (s *Scheduler) Mesh() *models.Mesh {
	return s.view.Mesh
}

// Post queues fn to run on the Run goroutine between ticks, so input
// handlers can touch the view without racing the render loop. It reports
// false when the queue is full.
func (s *Scheduler) Post(fn func()) bool {
	select {
	case s.control <- fn:
		return true
	default:
		return false
	}
}

// Run calls Tick every interval until ctx is done or a fatal error occurs.
// Display errors are logged and the loop continues.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: tick interval %v", ErrConfiguration, interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-s.control:
			fn()
			continue
		case <-ticker.C:
		}

		if err := s.Tick(); err != nil {
			if s.err != nil {
				return err
			}
			s.log.Warn("tick failed", zap.Stringer("phase", s.phase), zap.Error(err))
		}
	}
}
