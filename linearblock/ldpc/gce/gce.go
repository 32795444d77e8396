package gce

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/ldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

// Based on the paper Constructing LDPC Codes with Any Desired Girth
//    by Chaohui Gao, Sen Liu, Dong Jiang, and Lijun Chen

//Search attempts to find a GCE parity matrix for the given checkNodes, variableNodes and girth in the given number of iterations.
// Threads if zero will use all current CPUs in parallel. Without force a search that can't place every
// variable node is discarded, with force the leftover variable nodes are hung off the lightest check nodes.
// When it takes more than one iteration, checkpoint is called with every improved code.
func Search(ctx context.Context, checkNodes, variableNodes, girth, iterations, threads int, force bool, checkpoint func(currentBest *linearblock.LinearBlock)) (*linearblock.LinearBlock, error) {
	if girth%2 == 1 || girth < 4 {
		return nil, fmt.Errorf("girth must be an even number and >=4")
	}
	x := girth / 2
	if x > checkNodes {
		return nil, fmt.Errorf("girth not possible with number of checkNodes")
	}
	if x > variableNodes {
		return nil, fmt.Errorf("girth not possible with number of variableNodes")
	}
	if variableNodes <= checkNodes {
		return nil, fmt.Errorf("can only create GCE's with more variable nodes than check nodes")
	}

	var best *linearblock.LinearBlock
	bestRemaining := -1

iterLoop:
	for iter := 0; iter < iterations; iter++ {
		logrus.Debugf("Iterations: %v", iter)
		state := newState(checkNodes, variableNodes)
		err := state.run(ctx, girth)
		if err != nil {
			//hard to build codes end up here, the state is still compared against the best
			logrus.Debugf("Iterations: %v failed with error: %v", iter, err)
		}

		select {
		case <-ctx.Done():
			break iterLoop
		default:
		}

		remaining := state.remaining()
		if best != nil && bestRemaining <= remaining {
			logrus.Debugf("Previous model was better.")
			continue
		}

		finished := state.finished()
		if !finished {
			if !state.cn.exhausted() {
				logrus.Debugf("unable to exhaust checknodes, checknodes must be exhausted for a successful search")
				continue
			}
			if !force {
				logrus.Infof("failed to create a gce during %v iteration (consider using force set to true)", iter)
				continue
			}
			state.force(ctx, girth)
		}

		lb, err := linearblock.NewRedundant(ctx, state.H, threads)
		if err != nil {
			logrus.Debugf("Iterations: %v no generator: %v", iter, err)
			continue
		}

		best = lb
		bestRemaining = remaining
		if checkpoint != nil {
			checkpoint(best)
		}
		if finished {
			break iterLoop
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("early termination: %w", err)
	}
	if best == nil {
		return nil, fmt.Errorf("no LDPC found")
	}
	return best, nil
}

//nodes tracks which check or variable nodes are already part of the graph.
type nodes struct {
	used   []int
	unused []int
}

func newNodes(count int) *nodes {
	n := &nodes{
		used:   make([]int, 0, count),
		unused: make([]int, count),
	}
	for i := range n.unused {
		n.unused[i] = i
	}
	return n
}

//take moves the next unused node into the graph and returns it.
func (n *nodes) take() int {
	next := n.unused[0]
	n.used = append(n.used, next)
	n.unused = n.unused[1:]
	return next
}

func (n *nodes) exhausted() bool {
	return len(n.unused) == 0
}

func (n *nodes) len() int {
	return len(n.unused)
}

type state struct {
	H      mat.SparseMat
	cn, vn *nodes

	checkToVars [][]int
	varToChecks [][]int
}

func newState(checkNodes, variableNodes int) *state {
	return &state{
		H:           mat.CSRMat(checkNodes, variableNodes),
		cn:          newNodes(checkNodes),
		vn:          newNodes(variableNodes),
		checkToVars: make([][]int, checkNodes),
		varToChecks: make([][]int, variableNodes),
	}
}

func (s *state) finished() bool {
	return s.cn.exhausted() && s.vn.exhausted()
}

func (s *state) remaining() int {
	return s.cn.len() + s.vn.len()
}

func (s *state) connect(check, variable int) {
	if s.H.At(check, variable) == 1 {
		return
	}
	s.H.Set(check, variable, 1)
	s.checkToVars[check] = append(s.checkToVars[check], variable)
	s.varToChecks[variable] = append(s.varToChecks[variable], check)
}

func (s *state) run(ctx context.Context, girth int) error {
	x := girth / 2

	//step 1: a single cycle of exactly the girth
	logrus.Debugf("Step 1 of 4")
	for i := 0; i < x; i++ {
		s.cn.take()
		s.vn.take()
	}
	for i := 0; i < x; i++ {
		s.connect(i, i)
		s.connect((i+1)%x, i)
	}

	//step 2: bridge far apart check nodes with paths of new nodes until every check node is used
	logrus.Debugf("Step 2 of 4")
	hconst := x/2 - 1
	if x%2 == 1 {
		hconst = (x - 1) / 2
	}
	for !s.cn.exhausted() {
		var dist, h int
		if s.cn.len() >= hconst {
			h = hconst
			dist = x - (x % 2)
		} else {
			h = s.cn.len()
			dist = 2 * (x - s.cn.len() - 1)
		}
		if s.vn.len() < h+1 {
			return fmt.Errorf("variable nodes exhausted with %v check nodes left", s.cn.len())
		}
		c1, c2, success := s.findTwoNodes(dist)
		if !success {
			return fmt.Errorf("failed to find two check nodes to exhaust check nodes (%v), this can happen randomly but frequently happens when the matrix is too small for the requested girth", s.cn.len())
		}
		s.bridge(c1, c2, h)
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	//step 3: each remaining variable node joins two check nodes
	logrus.Debugf("Step 3 of 4")
	bar := s.progress(s.vn.len(), "Variable nodes ")
	defer bar.Finish()
	for !s.vn.exhausted() {
		c1, c2, success := s.findTwoNodes(2*x - 2)
		if !success {
			return fmt.Errorf("failed to find two check nodes to exhaust variable nodes (%v), this can happen randomly but frequently happens when the matrix is too small for the requested girth", s.vn.len())
		}
		s.bridge(c1, c2, 0)
		bar.Increment()
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	//step 4: add every edge that can't close a cycle shorter than the girth
	logrus.Debugf("Step 4 of 4")
	return s.densify(ctx, x)
}

func (s *state) progress(total int, prefix string) *pb.ProgressBar {
	bar := pb.New(total)
	bar.Set("prefix", prefix)
	bar.SetWriter(os.Stdout)
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		bar.Start()
	}
	return bar
}

func (s *state) densify(ctx context.Context, x int) error {
	c, v, success := s.findTwoNodes(2*x - 1)
	for success {
		s.connect(c, v)
		if err := ctx.Err(); err != nil {
			return err
		}
		c, v, success = s.findTwoNodes(2*x - 1)
	}
	return nil
}

//bridge joins c1 to c2 through h new check nodes and h+1 new variable nodes.
func (s *state) bridge(c1, c2, h int) {
	v := s.vn.take()
	s.connect(c1, v)
	for i := 0; i < h; i++ {
		c := s.cn.take()
		s.connect(c, v)

		v = s.vn.take()
		s.connect(c, v)
	}
	s.connect(c2, v)
}

//force finishes a state whose variable nodes couldn't all be placed.
func (s *state) force(ctx context.Context, girth int) {
	x := girth / 2

	logrus.Debugf("Force step 1 of 2")
	if err := s.densify(ctx, x); err != nil {
		return
	}

	logrus.Debugf("Force step 2 of 2")
	checks := s.lightestChecks()
	for i := 0; !s.vn.exhausted(); i++ {
		//a single edge never closes a cycle so spread the leftovers across the check nodes
		s.connect(checks[i%len(checks)], s.vn.take())
	}
}

func (s *state) lightestChecks() []int {
	checks := make([]int, len(s.cn.used))
	copy(checks, s.cn.used)
	sort.SliceStable(checks, func(i, j int) bool {
		return len(s.checkToVars[checks[i]]) < len(s.checkToVars[checks[j]])
	})
	return checks
}

//findTwoNodes returns a check node and a node at distance dist from it, trying the
// lightest check nodes first. The other node is a check for even dist and a variable for odd.
func (s *state) findTwoNodes(dist int) (checkNode, otherNode int, success bool) {
	for _, c := range s.lightestChecks() {
		if n, ok := s.nodeAtDist(c, dist); ok {
			return c, n, true
		}
	}
	return -1, -1, false
}

//nodeAtDist walks the tanner graph breadth first from checkIndex and returns the lightest
// node whose shortest distance from it is exactly dist.
func (s *state) nodeAtDist(checkIndex, dist int) (int, bool) {
	seenChecks := map[int]bool{checkIndex: true}
	seenVars := map[int]bool{}
	level := []int{checkIndex}

	for d := 0; d < dist; d++ {
		next := make([]int, 0)
		if d%2 == 0 {
			for _, c := range level {
				for _, v := range s.checkToVars[c] {
					if !seenVars[v] {
						seenVars[v] = true
						next = append(next, v)
					}
				}
			}
		} else {
			for _, v := range level {
				for _, c := range s.varToChecks[v] {
					if !seenChecks[c] {
						seenChecks[c] = true
						next = append(next, c)
					}
				}
			}
		}
		if len(next) == 0 {
			return -1, false
		}
		level = next
	}

	weight := func(n int) int {
		if dist%2 == 1 {
			return len(s.varToChecks[n])
		}
		return len(s.checkToVars[n])
	}
	best := level[0]
	for _, n := range level[1:] {
		if weight(n) < weight(best) {
			best = n
		}
	}
	return best, true
}
