package chain

import "fmt"

// Topology is an immutable description of a worker graph: a single element, a fan-in
// of independent sub-topologies that all forward to the same successors, or an
// ordered chain that feeds each stage's output into the next. Topology values carry
// no behavior of their own; Create and CountOut are the only things that interpret
// them.
type Topology interface {
	topology()
}

type elementTopology struct {
	fn   WorkerFunc
	opts Options
}

func (elementTopology) topology() {}

type fanInTopology struct {
	children []Topology
}

func (fanInTopology) topology() {}

type chainTopology struct {
	children []Topology
}

func (chainTopology) topology() {}

// Element builds a single-worker topology running fn with the given options.
func Element(fn WorkerFunc, opts Options) Topology {
	return elementTopology{fn: fn, opts: opts}
}

// FanIn builds a topology whose children are started independently and in parallel,
// all forwarding into whatever successors the FanIn itself forwards into.
func FanIn(children ...Topology) Topology {
	return fanInTopology{children: children}
}

// Chain builds a topology that runs each child in turn, wiring child i's output as
// child i+1's only input.
func Chain(children ...Topology) Topology {
	return chainTopology{children: children}
}

// CountOut returns the number of terminal branches t exposes: the number of distinct
// worker handles that ultimately link directly into whatever successor list is
// supplied when t is built. An empty Chain or FanIn is a construction error.
func CountOut(t Topology) (int, error) {
	switch v := t.(type) {
	case elementTopology:
		return 1, nil
	case chainTopology:
		if len(v.children) == 0 {
			return 0, ErrEmptyChain
		}
		return CountOut(v.children[len(v.children)-1])
	case fanInTopology:
		if len(v.children) == 0 {
			return 0, ErrEmptyFanIn
		}
		total := 0
		for _, c := range v.children {
			n, err := CountOut(c)
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	default:
		return 0, fmt.Errorf("chain: unrecognized topology type %T", t)
	}
}
