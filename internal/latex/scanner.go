package latex

import "github.com/dshills/mathtext/internal/grapheme"

// scanner is a byte-position scanner over source text. Structural tokens
// are all ASCII; content characters pass through as whole grapheme
// clusters.
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte { return s.src[s.pos] }

func (s *scanner) next() byte {
	b := s.src[s.pos]
	s.pos++
	return b
}

// nextCluster consumes and returns one grapheme cluster.
func (s *scanner) nextCluster() string {
	c := grapheme.First(s.src[s.pos:])
	s.pos += len(c)
	return c
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

// controlSeq consumes a control sequence at a backslash: the backslash
// plus either a run of letters or one non-letter grapheme cluster, so a
// multi-byte escape is never split mid-character.
func (s *scanner) controlSeq() string {
	start := s.pos
	s.next() // the backslash
	if s.eof() {
		return s.src[start:]
	}
	if isLetter(s.peek()) {
		for !s.eof() && isLetter(s.peek()) {
			s.pos++
		}
	} else {
		s.nextCluster()
	}
	return s.src[start:s.pos]
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
