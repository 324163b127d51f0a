package matrix

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/aria-lang/afdist/internal/sequence"
)

// PairFunc computes the distance of one ordered pair.
type PairFunc func(seq1, seq2 *sequence.Sequence) (float64, error)

// Builder fills a distance matrix with a fixed pool of workers.
type Builder struct {
	Workers  int // worker goroutines; < 1 means runtime.NumCPU()
	Distance PairFunc
	// OnPair, if set, is called once per completed pair from the collector
	// goroutine.
	OnPair func()
	Logger logrus.FieldLogger
}

type task struct {
	i, j int
}

type result struct {
	i, j int
	d    float64
	err  error
}

// Build computes d(i, j) for every ordered pair i ≠ j. The first pair error
// cancels the outstanding work and is returned without a matrix; so is
// cancellation of ctx.
func (b *Builder) Build(ctx context.Context, seqs []*sequence.Sequence) (*Matrix, error) {
	if len(seqs) < 2 {
		return nil, &InsufficientInputError{Count: len(seqs)}
	}

	workers := b.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	names := make([]string, len(seqs))
	for i, s := range seqs {
		names[i] = s.Name()
	}
	m := newMatrix(names)
	start := time.Now()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan task, workers*2)
	results := make(chan result, workers*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-runCtx.Done():
					return
				case t, ok := <-tasks:
					if !ok {
						return
					}
					d, err := b.Distance(seqs[t.i], seqs[t.j])
					select {
					case results <- result{i: t.i, j: t.j, d: d, err: err}:
					case <-runCtx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector
	var (
		firstErr error
		done     = make(chan struct{})
	)
	go func() {
		defer close(done)
		for r := range results {
			if firstErr != nil {
				continue
			}
			if r.err != nil {
				firstErr = r.err
				cancel()
				continue
			}
			m.values[r.i][r.j] = r.d
			if b.OnPair != nil {
				b.OnPair()
			}
		}
	}()

	// Feed work
feed:
	for i := range seqs {
		for j := range seqs {
			if i == j {
				continue
			}
			select {
			case <-runCtx.Done():
				break feed
			case tasks <- task{i: i, j: j}:
			}
		}
	}

	close(tasks)
	wg.Wait()
	close(results)
	<-done

	if firstErr != nil {
		b.log().WithError(firstErr).Error("distance matrix aborted")
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pairs := len(seqs) * (len(seqs) - 1)
	elapsed := time.Since(start)
	b.log().WithFields(logrus.Fields{
		"sequences": len(seqs),
		"pairs":     pairs,
		"workers":   workers,
		"elapsed":   elapsed.Round(time.Millisecond).String(),
		"per_pair":  (elapsed / time.Duration(pairs)).String(),
		"asymmetry": m.Asymmetry(),
		"mean":      stat.Mean(m.OffDiagonal(), nil),
	}).Info("distance matrix built")

	return m, nil
}

func (b *Builder) log() logrus.FieldLogger {
	if b.Logger != nil {
		return b.Logger
	}
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}
