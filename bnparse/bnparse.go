package bnparse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/boolscc/symbolic"
	"github.com/katalvlaran/boolscc/symbolic/naive"
)

// ErrSyntax indicates a malformed line in a Boolean-network file.
var ErrSyntax = errors.New("bnparse: syntax error")

// ErrUnknownVariable indicates an update expression references a name not
// declared on a `vars:` or `params:` line.
var ErrUnknownVariable = errors.New("bnparse: unknown variable or parameter")

// ErrDuplicateUpdate indicates the same variable received two update
// expressions.
var ErrDuplicateUpdate = errors.New("bnparse: duplicate update expression")

// ErrMissingUpdate indicates a declared variable never received an update
// expression.
var ErrMissingUpdate = errors.New("bnparse: variable has no update expression")

// Network is a parsed, not-yet-compiled Boolean network: ordered variable
// and parameter names plus one update expression per variable. VariableId
// i corresponds to Vars[i]; parameter bit j corresponds to Params[j].
type Network struct {
	Vars    []string
	Params  []string
	updates map[string]*expr
}

// Parse reads the minimal Boolean-network textual format:
//
//	# a comment line
//	vars: x0 x1 x2
//	params: p0        (optional; uninterpreted 0-ary functions)
//	x0: x1 | x2
//	x1: !x0
//	x2: x0 ^ p0
//
// Each variable line is `name: expr` where expr uses `!` (not), `&`
// (and), `|` (or), `^` (xor), parentheses, the constants `0`/`1`, and
// any declared variable or parameter name.
func Parse(r io.Reader) (*Network, error) {
	net := &Network{updates: make(map[string]*expr)}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "vars:"); ok {
			net.Vars = fields(rest)
			continue
		}
		if rest, ok := strings.CutPrefix(line, "params:"); ok {
			net.Params = fields(rest)
			continue
		}
		name, body, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: expected \"name: expr\"", ErrSyntax, lineNo)
		}
		name = strings.TrimSpace(name)
		if _, dup := net.updates[name]; dup {
			return nil, fmt.Errorf("%w: line %d: %s", ErrDuplicateUpdate, lineNo, name)
		}
		e, err := parseExprString(body)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		net.updates[name] = e
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(net.Vars)+len(net.Params))
	for _, v := range net.Vars {
		known[v] = struct{}{}
	}
	for _, p := range net.Params {
		known[p] = struct{}{}
	}
	for _, v := range net.Vars {
		e, ok := net.updates[v]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingUpdate, v)
		}
		refs := make(map[string]struct{})
		e.names(refs)
		for ref := range refs {
			if _, ok := known[ref]; !ok {
				return nil, fmt.Errorf("%w: %s referenced by %s", ErrUnknownVariable, ref, v)
			}
		}
	}
	return net, nil
}

func fields(s string) []string {
	return strings.Fields(s)
}

// Compile turns a parsed Network into a naive.Graph plus the active
// VariableIds a caller should configure reachability/SCC/attractor
// computations with. When propagateConstants is true, variables whose
// update expression evaluates to the same value regardless of every
// other variable's and parameter's assignment are excluded from the
// active set and the returned graph's explorable universe is restricted
// to their pinned assignment, so any other expression referencing such a
// variable by name only ever observes its constant value (the
// `--no-constant-propagation` CLI flag controls this).
func (n *Network) Compile(propagateConstants bool) (*naive.Graph, []symbolic.VariableId, error) {
	if len(n.Vars) == 0 {
		return nil, nil, fmt.Errorf("%w: no variables declared", ErrSyntax)
	}
	if len(n.Vars)+len(n.Params) > naive.MaxVariables {
		return nil, nil, fmt.Errorf("bnparse: %d variables and parameters exceed the naive backend's limit", len(n.Vars)+len(n.Params))
	}

	pinned := make(map[string]bool)
	if propagateConstants {
		pinned = n.findConstants()
	}

	index := make(map[string]int, len(n.Vars))
	for i, v := range n.Vars {
		index[v] = i
	}
	paramIndex := make(map[string]int, len(n.Params))
	for i, p := range n.Params {
		paramIndex[p] = i
	}

	lookup := func(state, color uint64) func(name string) bool {
		return func(name string) bool {
			if i, ok := index[name]; ok {
				return naive.StateBit(state, i)
			}
			if j, ok := paramIndex[name]; ok {
				return naive.StateBit(color, j)
			}
			return false
		}
	}

	updates := make([]naive.UpdateFunc, len(n.Vars))
	var active []symbolic.VariableId
	for i, v := range n.Vars {
		e := n.updates[v]
		updates[i] = func(state, color uint64) bool {
			return e.eval(lookup(state, color))
		}
		if !pinned[v] {
			active = append(active, symbolic.VariableId(i))
		}
	}

	g := naive.NewGraph(updates, len(n.Params))
	if len(pinned) == 0 {
		return g, active, nil
	}

	restricted, ok := g.Restrict(pinnedUniverse(len(n.Vars), len(n.Params), pinned, index)).(*naive.Graph)
	if !ok {
		return nil, nil, errors.New("bnparse: internal error restricting constant-pinned universe")
	}
	return restricted, active, nil
}

// pinnedUniverse returns the SCV of every (state, colour) pair consistent
// with pinned's constant assignments, the universe a graph with pinned
// variables must be restricted to so those variables' frozen bit never
// varies across the explored state space.
func pinnedUniverse(varCount, paramCount int, pinned map[string]bool, index map[string]int) symbolic.SCV {
	fixed := make(map[int]bool, len(pinned))
	for name, v := range pinned {
		fixed[index[name]] = v
	}

	var consistent []uint64
	for state := uint64(0); state < uint64(1)<<uint(varCount); state++ {
		ok := true
		for i, v := range fixed {
			if naive.StateBit(state, i) != v {
				ok = false
				break
			}
		}
		if ok {
			consistent = append(consistent, state)
		}
	}

	var universe symbolic.SCV = naive.Empty()
	for color := uint64(0); color < uint64(1)<<uint(paramCount); color++ {
		universe = universe.Union(naive.OfStates(color, consistent...))
	}
	return universe
}

// findConstants returns the set of variable names whose update expression
// is constant across every assignment of every other variable and
// parameter, by brute-force enumeration. This is only tractable for
// reference-sized networks; it is a pre-analysis convenience, not a
// general-purpose Boolean-function simplifier.
func (n *Network) findConstants() map[string]bool {
	total := len(n.Vars) + len(n.Params)
	if total == 0 || total > 20 {
		return nil
	}
	limit := uint64(1) << uint(total)
	pinned := make(map[string]bool)

	for _, v := range n.Vars {
		e := n.updates[v]
		var first bool
		isConst := true
		for assignment := uint64(0); assignment < limit; assignment++ {
			val := e.eval(func(name string) bool {
				if i, ok := indexOf(n.Vars, name); ok {
					return (assignment>>uint(i))&1 == 1
				}
				if j, ok := indexOf(n.Params, name); ok {
					return (assignment>>uint(len(n.Vars)+j))&1 == 1
				}
				return false
			})
			if assignment == 0 {
				first = val
			} else if val != first {
				isConst = false
				break
			}
		}
		if isConst {
			pinned[v] = first
		}
	}
	return pinned
}

func indexOf(names []string, target string) (int, bool) {
	for i, n := range names {
		if n == target {
			return i, true
		}
	}
	return 0, false
}
