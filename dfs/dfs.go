package dfs

import (
	"context"

	"github.com/katalvlaran/graphkke/core"
)

// frame is one explicit-stack entry: node u and the position of the next
// neighbor to examine.
type frame struct{ u, next int }

// walker encapsulates state during DFS.
type walker struct {
	g     *core.Graph
	ctx   context.Context
	state []int
	res   *Result
}

func newWalker(ctx context.Context, g *core.Graph) *walker {
	n := g.Order()
	w := &walker{
		g:     g,
		ctx:   ctx,
		state: make([]int, n),
		res: &Result{
			PreOrder:  make([]int, 0, n),
			PostOrder: make([]int, 0, n),
			Parent:    make([]int, n),
		},
	}
	for i := range w.res.Parent {
		w.res.Parent[i] = -1
	}

	return w
}

// DFS traverses g from node index start. For undirected graphs the arc back
// to the parent is not followed.
func DFS(ctx context.Context, g *core.Graph, start int) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if start < 0 || start >= g.Order() {
		return nil, ErrStartNotFound
	}
	w := newWalker(ctx, g)
	if err := w.visit(start); err != nil {
		return nil, err
	}

	return w.res, nil
}

// Forest traverses every component of g, starting new roots in ascending
// index order.
func Forest(ctx context.Context, g *core.Graph) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	w := newWalker(ctx, g)
	for s := 0; s < g.Order(); s++ {
		if w.state[s] != White {
			continue
		}
		if err := w.visit(s); err != nil {
			return nil, err
		}
	}

	return w.res, nil
}

// PostOrder returns the nodes reachable from start, descendants first.
// On a tree rooted at start it is the tree's post-order.
func PostOrder(ctx context.Context, g *core.Graph, start int) ([]int, error) {
	res, err := DFS(ctx, g, start)
	if err != nil {
		return nil, err
	}

	return res.PostOrder, nil
}

// visit runs the iterative DFS from s. The context is checked once per
// discovered node.
func (w *walker) visit(s int) error {
	stack := []frame{{u: s}}
	w.discover(s)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		nbrs := w.g.Neighbors(top.u)
		if top.next >= len(nbrs) {
			w.state[top.u] = Black
			w.res.PostOrder = append(w.res.PostOrder, top.u)
			stack = stack[:len(stack)-1]
			continue
		}
		v := nbrs[top.next]
		top.next++
		if w.state[v] != White {
			continue
		}
		if err := core.CheckContext(w.ctx); err != nil {
			return err
		}
		w.res.Parent[v] = top.u
		w.discover(v)
		stack = append(stack, frame{u: v})
	}

	return nil
}

func (w *walker) discover(u int) {
	w.state[u] = Gray
	w.res.PreOrder = append(w.res.PreOrder, u)
}
