package scc

import (
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/katalvlaran/boolscc/symbolic"
)

// push discards nil/empty candidates (the worklist only ever holds
// genuine, non-empty universes) and otherwise pushes onto the LIFO.
func push(s *arraystack.Stack, v symbolic.SCV) {
	if v == nil || v.IsEmpty() {
		return
	}
	s.Push(v)
}

func pop(s *arraystack.Stack) (symbolic.SCV, bool) {
	v, ok := s.Pop()
	if !ok {
		return nil, false
	}
	return v.(symbolic.SCV), true
}

// dumpSCVStack drains s into a top-to-bottom slice and restores it,
// giving a Snapshot-friendly value without depending on the stack
// library's own iteration order.
func dumpSCVStack(s *arraystack.Stack) []symbolic.SCV {
	var topToBottom []symbolic.SCV
	for {
		v, ok := s.Pop()
		if !ok {
			break
		}
		topToBottom = append(topToBottom, v.(symbolic.SCV))
	}
	for i := len(topToBottom) - 1; i >= 0; i-- {
		s.Push(topToBottom[i])
	}
	return topToBottom
}

// loadSCVStack is dumpSCVStack's inverse.
func loadSCVStack(topToBottom []symbolic.SCV) *arraystack.Stack {
	s := arraystack.New()
	for i := len(topToBottom) - 1; i >= 0; i-- {
		s.Push(topToBottom[i])
	}
	return s
}

func pushWork(s *arraystack.Stack, u, hint symbolic.SCV) {
	if u == nil || u.IsEmpty() {
		return
	}
	s.Push(workItem{Universe: u, Hint: hint})
}

func popWork(s *arraystack.Stack) (workItem, bool) {
	v, ok := s.Pop()
	if !ok {
		return workItem{}, false
	}
	return v.(workItem), true
}

func dumpWorkStack(s *arraystack.Stack) []workItem {
	var topToBottom []workItem
	for {
		v, ok := s.Pop()
		if !ok {
			break
		}
		topToBottom = append(topToBottom, v.(workItem))
	}
	for i := len(topToBottom) - 1; i >= 0; i-- {
		s.Push(topToBottom[i])
	}
	return topToBottom
}

func loadWorkStack(topToBottom []workItem) *arraystack.Stack {
	s := arraystack.New()
	for i := len(topToBottom) - 1; i >= 0; i-- {
		s.Push(topToBottom[i])
	}
	return s
}
