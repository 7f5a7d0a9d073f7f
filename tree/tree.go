// Package tree provides the children index over a sentence's head pointers
// and cycle-safe walks on it. Upstream parser errors can make the head
// graph cyclic, so every traversal carries a visited set or a hop limit.
package tree

import (
	sent "github.com/cours-de-latin/constructio/sentence"
)

// Index is the children adjacency of one sentence, built once in O(n).
type Index struct {
	children [][]int
	n        int
}

// New builds the children index. Tokens with a root or out-of-range head
// contribute no edge.
func New(tokens []sent.Token) *Index {
	n := len(tokens)
	idx := &Index{children: make([][]int, n), n: n}
	for i, tok := range tokens {
		h := tok.HeadIndex(n)
		if h < 0 {
			continue
		}
		idx.children[h] = append(idx.children[h], i)
	}
	return idx
}

// Children returns the child indices of token i, in sentence order.
func (x *Index) Children(i int) []int {
	if i < 0 || i >= x.n {
		return nil
	}
	return x.children[i]
}

// InSubtree reports whether query lies in the subtree rooted at root,
// including root itself. Iterative DFS with a visited set, so it
// terminates even on cyclic head graphs.
func (x *Index) InSubtree(root, query int) bool {
	if root < 0 || root >= x.n || query < 0 || query >= x.n {
		return false
	}
	stack := []int{root}
	seen := make(map[int]bool)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == query {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		stack = append(stack, x.children[cur]...)
	}
	return false
}

// Ancestors returns up to maxHops ancestor indices of i, nearest first.
// The walk stops at the root, at an out-of-range head and on revisiting
// an index.
func Ancestors(tokens []sent.Token, i, maxHops int) []int {
	n := len(tokens)
	if i < 0 || i >= n {
		return nil
	}
	var out []int
	seen := map[int]bool{i: true}
	cur := i
	for hop := 0; hop < maxHops; hop++ {
		h := tokens[cur].HeadIndex(n)
		if h < 0 || seen[h] {
			break
		}
		seen[h] = true
		out = append(out, h)
		cur = h
	}
	return out
}
