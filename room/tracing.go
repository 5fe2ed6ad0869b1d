package room

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Candidate hits must land at least this long (in seconds) after the segment starts. Guards
// against a ray re-hitting the surface it just left through rounding. A ray that lands
// exactly on an edge or corner rejects the adjacent face at zero distance and can escape.
const SELF_INTERSECTION_EPSILON = 1e-12

const DEFAULT_SEED = 1

// TraceParams contains parameters to guide tracing
type TraceParams struct {
	// Stop after this many rounds, even if sounds are still alive. Zero means no limit.
	//
	// A box of perfect mirrors (reflectance 1) never loses energy, so without a limit such a
	// scene runs forever.
	MaxRounds int
	// Goroutines used to step sounds within a round. Zero or one steps sequentially.
	Workers int
	// Random source for emission directions. If nil, a source seeded with Seed is used.
	Source Source
	Seed   int64
	// Called after every round if set
	Progress func(RoundStats)
}

// Capture records a sound arriving at a receiver
type Capture struct {
	Hit       Hit
	Intensity float64
	// Index of the receiver among the scene's receivers
	Receiver int
	// Number of reflections before arriving
	Bounces int
}

// Report is the outcome of a simulation run.
//
// Decayed counts sounds dropped below AUDIBILITY_THRESHOLD and Escaped counts sounds that
// had nothing left to hit. For a completed run Emitted == Captured + Decayed + Escaped.
type Report struct {
	Captures []Capture
	Emitted  int
	Captured int
	Decayed  int
	Escaped  int
	Rounds   int
}

// RoundStats summarises the population after one round
type RoundStats struct {
	Round    int
	Alive    int
	Captured int
	Decayed  int
	Escaped  int
}

var ErrRoundLimit = errors.New("round limit reached with sounds still alive")

type outcome int

const (
	alive outcome = iota
	captured
	decayed
	escaped
)

type stepResult struct {
	outcome outcome
	next    Sound
	capture Capture
}

// Simulate emits every emitter's sounds and traces them until all are captured or gone.
//
// There is no round limit; see TraceParams.MaxRounds and Run for a bounded variant.
func (s *Scene) Simulate() []Capture {
	report, err := s.Run(context.Background(), TraceParams{
		Workers: runtime.NumCPU(),
		Seed:    DEFAULT_SEED,
	})
	if err != nil {
		// Unreachable: no limit and a context that is never cancelled
		panic(fmt.Sprintf("unbounded simulation failed: %v", err))
	}
	return report.Captures
}

// Run traces the scene in synchronous rounds. Every live sound advances by exactly one
// interaction per round, and all sounds of a round finish before the next begins.
//
// ctx is checked between rounds. When ctx is cancelled or MaxRounds is reached, Run returns
// the partial report together with the error.
func (s *Scene) Run(ctx context.Context, params TraceParams) (Report, error) {
	src := params.Source
	if src == nil {
		src = rand.New(rand.NewSource(params.Seed))
	}

	var population []Sound
	for _, e := range s.emitters {
		population = append(population, e.Emit(src)...)
	}
	report := Report{Emitted: len(population)}

	var results []stepResult
	for len(population) > 0 {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if params.MaxRounds > 0 && report.Rounds >= params.MaxRounds {
			return report, fmt.Errorf("%d sounds alive after %d rounds: %w", len(population), report.Rounds, ErrRoundLimit)
		}

		var err error
		results, err = s.stepAll(ctx, population, results, params.Workers)
		if err != nil {
			return report, err
		}

		// results hold copies, so the population slice can be rebuilt in place
		next := population[:0]
		for _, r := range results {
			switch r.outcome {
			case alive:
				next = append(next, r.next)
			case captured:
				report.Captured++
				report.Captures = append(report.Captures, r.capture)
			case decayed:
				report.Decayed++
			case escaped:
				report.Escaped++
			}
		}
		population = next
		report.Rounds++

		if params.Progress != nil {
			params.Progress(RoundStats{
				Round:    report.Rounds,
				Alive:    len(population),
				Captured: report.Captured,
				Decayed:  report.Decayed,
				Escaped:  report.Escaped,
			})
		}
	}
	return report, nil
}

func (s *Scene) stepAll(ctx context.Context, population []Sound, results []stepResult, workers int) ([]stepResult, error) {
	results = slices.Grow(results[:0], len(population))[:len(population)]

	if workers <= 1 || len(population) < 2*workers {
		var buf []Interaction
		for i, sound := range population {
			results[i], buf = s.step(sound, buf)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (len(population) + workers - 1) / workers
	for start := 0; start < len(population); start += chunk {
		start := start
		end := min(start+chunk, len(population))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var buf []Interaction
			for i := start; i < end; i++ {
				results[i], buf = s.step(population[i], buf)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// candidates collects every interaction ahead of the sound's current segment. buf is reused
// to avoid allocating per step.
func (s *Scene) candidates(sound Sound, buf []Interaction) []Interaction {
	buf = buf[:0]
	ray := sound.Ray
	ahead := func(h Hit) bool {
		return h.Time > ray.TimeOffset+SELF_INTERSECTION_EPSILON
	}

	receiver := 0
	for _, o := range s.objects {
		switch o := o.(type) {
		case Reflector:
			for _, tri := range o.Geometry {
				if hit, ok := IntersectTriangle(ray, tri); ok && ahead(hit) {
					buf = append(buf, ObjectHit{Hit: hit, Reflectance: o.Reflectance})
				}
			}
		case Receiver:
			for _, hit := range IntersectSphere(ray, o.Geometry) {
				if ahead(hit) {
					buf = append(buf, ReceiverHit{Hit: hit, Intensity: sound.Intensity, Receiver: receiver})
				}
			}
			receiver++
		default:
			panic(fmt.Sprintf("unknown object type %T", o))
		}
	}
	return buf
}

// step advances one sound by a single interaction
func (s *Scene) step(sound Sound, buf []Interaction) (stepResult, []Interaction) {
	buf = s.candidates(sound, buf)
	next, ok := earliest(buf)
	if !ok {
		return stepResult{outcome: escaped}, buf
	}

	switch in := next.(type) {
	case ObjectHit:
		intensity := sound.Intensity * in.Reflectance
		if intensity < AUDIBILITY_THRESHOLD {
			return stepResult{outcome: decayed}, buf
		}
		return stepResult{
			outcome: alive,
			next: Sound{
				Ray:       sound.Ray.Reflect(in.Hit),
				Intensity: intensity,
				Bounces:   sound.Bounces + 1,
			},
		}, buf
	case ReceiverHit:
		return stepResult{
			outcome: captured,
			capture: Capture{
				Hit:       in.Hit,
				Intensity: in.Intensity,
				Receiver:  in.Receiver,
				Bounces:   sound.Bounces,
			},
		}, buf
	default:
		panic(fmt.Sprintf("unknown interaction type %T", in))
	}
}

// CapturesByReceiver groups captures by receiver index, preserving order within each group
func CapturesByReceiver(captures []Capture) map[int][]Capture {
	grouped := make(map[int][]Capture)
	for _, c := range captures {
		grouped[c.Receiver] = append(grouped[c.Receiver], c)
	}
	return grouped
}
