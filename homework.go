package snailfish

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Homework runs the two puzzle modes: summing a list of numbers, and finding
// the largest magnitude of any sum of two of them.
type Homework struct {
	config  Config
	reducer *Reducer
	logger  *slog.Logger
	metrics *Metrics
}

func NewHomework(config Config, logger *slog.Logger, metrics *Metrics) *Homework {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Homework{
		config:  config,
		reducer: NewReducer(config, logger, metrics),
		logger:  logger,
		metrics: metrics,
	}
}

func (h *Homework) Reducer() *Reducer {
	return h.reducer
}

// Sum adds the numbers left to right.  Every input is consumed.
func (h *Homework) Sum(numbers []*Number) (*Number, error) {
	if len(numbers) == 0 {
		return nil, fmt.Errorf("snailfish.homework: %w", EmptyHomeworkError)
	}

	sum := numbers[0]
	for i, n := range numbers[1:] {
		next, err := h.reducer.Add(sum, n)
		if err != nil {
			return nil, fmt.Errorf("snailfish.homework: adding number %d: %w", i+2, err)
		}
		sum = next
	}

	if len(numbers) == 1 {
		// a lone number is still expected in reduced form
		if _, err := h.reducer.Reduce(sum); err != nil {
			return nil, fmt.Errorf("snailfish.homework: %w", err)
		}
	}

	h.logger.Info("summed homework", "numbers", len(numbers), "nodes", sum.Arena().Len())
	return sum, nil
}

func (h *Homework) SumLines(lines []string) (uint64, error) {
	numbers, err := ParseAll(lines)
	if err != nil {
		return 0, err
	}

	sum, err := h.Sum(numbers)
	if err != nil {
		return 0, err
	}
	return sum.Magnitude(), nil
}

type operand struct {
	number *Number
	count  int
}

// Group equal numbers, keeping first-seen order
func dedupe(numbers []*Number) []operand {
	seen := map[[32]byte]int{}
	ops := []operand{}
	for _, n := range numbers {
		fp := n.Fingerprint()
		if i, ok := seen[fp]; ok {
			ops[i].count += 1
			continue
		}
		seen[fp] = len(ops)
		ops = append(ops, operand{number: n, count: 1})
	}
	return ops
}

// MaxPair returns the largest magnitude of a + b over ordered pairs of
// distinct positions.  With IncludeSelfPairs every number is also added to
// itself.  Inputs are copied, not consumed.
func (h *Homework) MaxPair(ctx context.Context, numbers []*Number) (uint64, error) {
	ops := dedupe(numbers)

	type candidate struct{ a, b *Number }
	candidates := []candidate{}
	for i, a := range ops {
		for j, b := range ops {
			// equal numbers at two positions still make a distinct pair
			if i == j && a.count < 2 && !h.config.IncludeSelfPairs {
				continue
			}
			candidates = append(candidates, candidate{a.number, b.number})
		}
	}

	if len(candidates) == 0 {
		return 0, fmt.Errorf("snailfish.homework: %w: no pair among %d numbers", EmptyHomeworkError, len(numbers))
	}

	h.logger.Debug("max-pair search",
		"numbers", len(numbers), "distinct", len(ops), "candidates", len(candidates))

	var mu sync.Mutex
	var best uint64

	g, gCtx := errgroup.WithContext(ctx)
	workers := h.config.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for _, c := range candidates {
		if gCtx.Err() != nil {
			break
		}

		c := c
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			// the sources are only read here; each candidate mutates its own arena
			arena := NewArena()
			sum, err := h.reducer.Add(c.a.CloneInto(arena), c.b.CloneInto(arena))
			if err != nil {
				return fmt.Errorf("snailfish.homework: %s + %s: %w", c.a, c.b, err)
			}
			h.metrics.pairEvaluated()

			m := sum.Magnitude()
			mu.Lock()
			if m > best {
				best = m
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	h.logger.Info("max-pair search done", "candidates", len(candidates), "magnitude", best)
	return best, nil
}

func (h *Homework) MaxPairLines(ctx context.Context, lines []string) (uint64, error) {
	numbers, err := ParseAll(lines)
	if err != nil {
		return 0, err
	}
	return h.MaxPair(ctx, numbers)
}
