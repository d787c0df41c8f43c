package drc

import (
	"context"
	"fmt"
	"sync"

	"stripedrc/internal/logging"
	"stripedrc/internal/raster"
)

// Options controls a Scan.
type Options struct {
	// Workers is the number of goroutines scanning stripes. Values below 2
	// scan sequentially.
	Workers int

	// FlushOpen emits a feature still open at the end of a stripe as
	// [Start, len). When false such a run is dropped and only counted in
	// Stats.Open, so artwork that touches the far edge needs a trailing
	// background cell.
	FlushOpen bool
}

// Stats counts automaton decisions.
type Stats struct {
	Heals        int
	Suppressions int
	Open         int // feature runs still open at a stripe end
}

func (s *Stats) add(o Stats) {
	s.Heals += o.Heals
	s.Suppressions += o.Suppressions
	s.Open += o.Open
}

// ScanStripe runs the automaton over line. It returns the accepted segments
// in scan order and the rendered foreground decision for every cell.
func ScanStripe(stripe int, line []bool, rules Rules, opts Options) ([]Segment, []bool, Stats) {
	var st Stats
	if len(line) == 0 {
		return nil, nil, st
	}

	var segs []Segment
	rendered := make([]bool, len(line))
	s := NewState(stripe, line[0], rules)
	for j, v := range line {
		act, seg := s.Step(j, v)
		switch act {
		case Close:
			segs = append(segs, seg)
		case Heal:
			st.Heals++
		case Suppress:
			st.Suppressions++
		}
		rendered[j] = s.Rendering()
	}

	if s.Polarity == Feature {
		st.Open++
		if opts.FlushOpen {
			segs = append(segs, Segment{Stripe: stripe, Start: s.Start, End: len(line)})
		}
	}
	return segs, rendered, st
}

// Result is the outcome of scanning a whole raster.
type Result struct {
	// Segments holds accepted segments ordered by stripe, then scan position.
	Segments []Segment
	// Decisions[stripe][j] is the rendered decision for scan cell j.
	Decisions [][]bool
	Stats     Stats
}

type stripeResult struct {
	segs     []Segment
	rendered []bool
	stats    Stats
}

// Scan checks every stripe of r. Stripes share no state, so with
// opts.Workers > 1 they are scanned concurrently; the result is identical
// either way.
func Scan(ctx context.Context, r *raster.Oversampled, rules Rules, opts Options) (*Result, error) {
	if err := rules.Validate(r.Subdivision()); err != nil {
		return nil, err
	}

	n := r.Stripes()
	results := make([]stripeResult, n)
	scanOne := func(i int) {
		segs, rendered, st := ScanStripe(i, r.Scanline(i), rules, opts)
		results[i] = stripeResult{segs: segs, rendered: rendered, stats: st}
	}

	if opts.Workers < 2 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("scan stopped at stripe %d: %w", i, err)
			}
			scanOne(i)
		}
	} else if err := scanParallel(ctx, n, opts.Workers, scanOne); err != nil {
		return nil, err
	}

	res := &Result{Decisions: make([][]bool, n)}
	for i, sr := range results {
		res.Segments = append(res.Segments, sr.segs...)
		res.Decisions[i] = sr.rendered
		res.Stats.add(sr.stats)
		logging.Logger().Debug("stripe scanned",
			"stripe", i,
			"segments", len(sr.segs),
			"heals", sr.stats.Heals,
			"suppressions", sr.stats.Suppressions)
	}

	log := logging.Logger()
	log.Info("scan complete",
		"stripes", n,
		"segments", len(res.Segments),
		"heals", res.Stats.Heals,
		"suppressions", res.Stats.Suppressions)
	if res.Stats.Open > 0 && !opts.FlushOpen {
		log.Warn("feature runs left open at stripe end were dropped", "count", res.Stats.Open)
	}
	return res, nil
}

// scanParallel calls fn for every stripe index on a pool of workers.
func scanParallel(ctx context.Context, n, workers int, fn func(int)) error {
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}

	var err error
dispatch:
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			err = fmt.Errorf("scan stopped at stripe %d: %w", i, ctx.Err())
			break
		}
		select {
		case <-ctx.Done():
			err = fmt.Errorf("scan stopped at stripe %d: %w", i, ctx.Err())
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return err
}
