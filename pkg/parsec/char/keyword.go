package char

import (
	"github.com/consensys/go-parsec/pkg/parsec"
	"github.com/consensys/go-parsec/pkg/util"
)

// trieNode is one node of a rune trie: a set of keywords sharing a common
// prefix, keyed one rune at a time.
type trieNode struct {
	children map[rune]*trieNode
	terminal bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

func (n *trieNode) insert(word string) {
	cur := n
	for _, r := range word {
		next, ok := cur.children[r]
		if !ok {
			next = newTrieNode()
			cur.children[r] = next
		}

		cur = next
	}

	cur.terminal = true
}

// Keyword builds a single parser that recognises any of the given words,
// backed by a shared trie rather than a Choice over one Character-sequence
// parser per word: with N keywords sharing common prefixes (the usual case
// for a language's reserved-word set) this does one rune-by-rune descent
// instead of re-scanning the prefix once per candidate.
//
// A successful match consumes exactly the matched word and reports it; on
// failure the trie backtracks internally (no partial consumption escapes to
// the caller), matching the non-backtracking default everywhere else in
// this library.
func Keyword(words ...string) parsec.Parser[rune, string] {
	root := newTrieNode()
	for _, w := range words {
		root.insert(w)
	}

	label := "one of the reserved words"

	return parsec.Attempt(parsec.NewParser[rune, string]("keyword", func(
		state *parsec.ParserState[rune], m *parsec.Memo[rune],
		cok parsec.Cont[rune, string], _ parsec.ErrCont[rune], _ parsec.Cont[rune, string], eerr parsec.ErrCont[rune],
	) parsec.Thunk {
		cur := root
		s := state
		var matched []rune
		best := util.None[util.Pair[[]rune, *parsec.ParserState[rune]]]()

		for !s.IsEmpty() {
			next, ok := cur.children[s.First()]
			if !ok {
				break
			}

			matched = append(matched, s.First())
			s = s.Next()
			cur = next

			if cur.terminal {
				best = util.Some(util.NewPair(append([]rune{}, matched...), s))
			}
		}

		if best.IsEmpty() {
			return func() parsec.Thunk { return eerr(parsec.NewExpectError(state.Position(), label), state, m) }
		}

		longest := best.Unwrap()

		return func() parsec.Thunk { return cok(string(longest.Left), longest.Right, m) }
	}))
}
