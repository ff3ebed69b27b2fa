package snailfish

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

const (
	// A pair nested inside this many pairs explodes
	explodeDepth = 4

	// A leaf at least this large splits
	splitThreshold = 10

	DefaultMaxReduceSteps = 100000
)

type Rule uint8

const (
	RuleNone Rule = iota
	RuleExplode
	RuleSplit
)

func (r Rule) String() string {
	switch r {
	case RuleNone:
		return "none"
	case RuleExplode:
		return "explode"
	case RuleSplit:
		return "split"
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

type Stats struct {
	Explodes int
	Splits   int
}

func (s Stats) Steps() int {
	return s.Explodes + s.Splits
}

///
/// Find
///

// findExplode returns the leftmost pair of two leaves nested inside at least
// explodeDepth pairs.  depth counts the pairs enclosing i.
func (a *Arena) findExplode(i nodeIndex, depth int) (nodeIndex, bool) {
	n := a.nodes[i]
	if n.kind == LeafNode {
		return 0, false
	}

	if depth >= explodeDepth && a.isLeaf(n.left) && a.isLeaf(n.right) {
		return i, true
	}

	if at, ok := a.findExplode(n.left, depth+1); ok {
		return at, true
	}
	return a.findExplode(n.right, depth+1)
}

// findSplit returns the leftmost leaf holding at least splitThreshold
func (a *Arena) findSplit(i nodeIndex) (nodeIndex, bool) {
	n := a.nodes[i]
	if n.kind == LeafNode {
		return i, n.value >= splitThreshold
	}

	if at, ok := a.findSplit(n.left); ok {
		return at, true
	}
	return a.findSplit(n.right)
}

// Explode outranks split
func (a *Arena) nextRewrite(root nodeIndex) (Rule, nodeIndex) {
	if at, ok := a.findExplode(root, 0); ok {
		return RuleExplode, at
	}
	if at, ok := a.findSplit(root); ok {
		return RuleSplit, at
	}
	return RuleNone, 0
}

///
/// Apply
///

func addLeaf(v, d uint64) (uint64, error) {
	if v > math.MaxUint64-d {
		return 0, fmt.Errorf("snailfish.reduce: %w: %d + %d", ValueOverflowError, v, d)
	}
	return v + d, nil
}

// explodeAt folds the pair at i into its in-order neighbours and replaces it
// with a zero leaf.  On overflow the tree is left untouched.
func (a *Arena) explodeAt(root, i nodeIndex) error {
	p := a.nodes[i]
	if p.kind != PairNode || !a.isLeaf(p.left) || !a.isLeaf(p.right) {
		return fmt.Errorf("snailfish.reduce: %w: node %d cannot explode", InvalidNodeError, i)
	}
	l, r := a.nodes[p.left].value, a.nodes[p.right].value

	prev, next, hasPrev, hasNext := a.neighbours(root, i)

	var pv, nv uint64
	var err error
	if hasPrev {
		if pv, err = addLeaf(a.nodes[prev].value, l); err != nil {
			return err
		}
	}
	if hasNext {
		if nv, err = addLeaf(a.nodes[next].value, r); err != nil {
			return err
		}
	}

	if hasPrev {
		a.nodes[prev].value = pv
	}
	if hasNext {
		a.nodes[next].value = nv
	}
	a.nodes[i] = node{kind: LeafNode, value: 0}
	return nil
}

// splitAt replaces the leaf at i with a pair of its halves, rounding the
// left half down and the right half up
func (a *Arena) splitAt(i nodeIndex) error {
	n := a.nodes[i]
	if n.kind != LeafNode {
		return fmt.Errorf("snailfish.reduce: %w: node %d cannot split", InvalidNodeError, i)
	}

	half := n.value / 2
	l := a.newLeaf(half)
	r := a.newLeaf(n.value - half)
	a.nodes[i] = node{kind: PairNode, left: l, right: r}
	return nil
}

///
/// Reducer
///

// A Reducer rewrites numbers to their reduced form.  It holds no per-number
// state and may be shared between goroutines working on separate arenas.
type Reducer struct {
	MaxSteps int
	Logger   *slog.Logger
	Metrics  *Metrics
}

var defaultReducer = &Reducer{MaxSteps: DefaultMaxReduceSteps}

func NewReducer(cfg Config, logger *slog.Logger, metrics *Metrics) *Reducer {
	return &Reducer{
		MaxSteps: cfg.MaxReduceSteps,
		Logger:   logger,
		Metrics:  metrics,
	}
}

func (r *Reducer) maxSteps() int {
	if r.MaxSteps <= 0 {
		return DefaultMaxReduceSteps
	}
	return r.MaxSteps
}

func (r *Reducer) debugEnabled() bool {
	return r.Logger != nil && r.Logger.Enabled(context.Background(), slog.LevelDebug)
}

func (r *Reducer) apply(n *Number, rule Rule, at nodeIndex) error {
	var err error
	switch rule {
	case RuleExplode:
		err = n.arena.explodeAt(n.root, at)
	case RuleSplit:
		err = n.arena.splitAt(at)
	default:
		return nil
	}
	if err != nil {
		return err
	}

	r.Metrics.rewrite(rule)
	if r.debugEnabled() {
		r.Logger.Debug("rewrite", "rule", rule.String(), "node", at, "number", n.String())
	}
	return nil
}

// Step applies the single highest-priority rewrite, if any
func (r *Reducer) Step(n *Number) (Rule, error) {
	n.live()
	rule, at := n.arena.nextRewrite(n.root)
	if err := r.apply(n, rule, at); err != nil {
		return RuleNone, err
	}
	return rule, nil
}

// Reduce rewrites n in place until no rule applies.  More than MaxSteps
// rewrites fails with ReductionDidNotConvergeError.
func (r *Reducer) Reduce(n *Number) (Stats, error) {
	n.live()

	var stats Stats
	for {
		rule, at := n.arena.nextRewrite(n.root)
		if rule == RuleNone {
			break
		}

		if stats.Steps() >= r.maxSteps() {
			return stats, fmt.Errorf("snailfish.reduce: %w after %d steps", ReductionDidNotConvergeError, stats.Steps())
		}

		if err := r.apply(n, rule, at); err != nil {
			return stats, err
		}

		if rule == RuleExplode {
			stats.Explodes += 1
		} else {
			stats.Splits += 1
		}
	}

	r.Metrics.reduced(stats)
	return stats, nil
}

func Reduce(n *Number) (Stats, error) {
	return defaultReducer.Reduce(n)
}

// Reduced reports whether no rewrite applies to n
func (n *Number) Reduced() bool {
	n.live()
	rule, _ := n.arena.nextRewrite(n.root)
	return rule == RuleNone
}
