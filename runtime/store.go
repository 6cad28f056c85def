package tbruntime

import (
	"github.com/google/btree"

	"github.com/gosuda/tinybasic/ast"
)

// Store maps line numbers to compiled statements and iterates them in
// ascending numeric order, independent of insertion order.
type Store struct {
	tree *btree.BTreeG[ast.Line]
}

func lineLess(a, b ast.Line) bool {
	return a.Number < b.Number
}

func NewStore() *Store {
	return &Store{tree: btree.NewG(8, lineLess)}
}

// Set inserts the statement for line n, replacing any previous one.
func (s *Store) Set(n int, stmt ast.Statement) {
	s.tree.ReplaceOrInsert(ast.Line{Number: n, Stmt: stmt})
}

func (s *Store) Delete(n int) bool {
	_, ok := s.tree.Delete(ast.Line{Number: n})
	return ok
}

func (s *Store) Get(n int) (ast.Statement, bool) {
	l, ok := s.tree.Get(ast.Line{Number: n})
	if !ok {
		return nil, false
	}
	return l.Stmt, true
}

func (s *Store) First() (int, bool) {
	l, ok := s.tree.Min()
	if !ok {
		return 0, false
	}
	return l.Number, true
}

// Next returns the least line number strictly greater than n.
func (s *Store) Next(n int) (int, bool) {
	next, found := 0, false
	s.tree.AscendGreaterOrEqual(ast.Line{Number: n + 1}, func(l ast.Line) bool {
		next, found = l.Number, true
		return false
	})
	return next, found
}

func (s *Store) Len() int {
	return s.tree.Len()
}

func (s *Store) Clear() {
	s.tree.Clear(false)
}

// Lines returns every stored line in ascending order.
func (s *Store) Lines() []ast.Line {
	out := make([]ast.Line, 0, s.tree.Len())
	s.tree.Ascend(func(l ast.Line) bool {
		out = append(out, l)
		return true
	})
	return out
}

// Range returns the lines numbered from..to inclusive.
func (s *Store) Range(from, to int) []ast.Line {
	out := []ast.Line{}
	s.tree.AscendGreaterOrEqual(ast.Line{Number: from}, func(l ast.Line) bool {
		if l.Number > to {
			return false
		}
		out = append(out, l)
		return true
	})
	return out
}
