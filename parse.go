package snailfish

import (
	"fmt"
	"strconv"
	"strings"
)

// number  := integer | pair
// pair    := '[' number ',' number ']'
// integer := digit+

// Parse reads one line of bracket notation into a number in a fresh arena
func Parse(line string) (*Number, error) {
	return ParseInto(NewArena(), line)
}

func ParseInto(a *Arena, line string) (*Number, error) {
	root, err := a.parse(strings.TrimSpace(line))
	if err != nil {
		return nil, err
	}
	return &Number{arena: a, root: root}, nil
}

// ParseAll parses every line into one shared arena.  The error names the
// first bad line, counting from 1.
func ParseAll(lines []string) ([]*Number, error) {
	a := NewArena()
	numbers := make([]*Number, len(lines))
	for i, line := range lines {
		n, err := ParseInto(a, line)
		if err != nil {
			return nil, fmt.Errorf("snailfish.parse: line %d: %w", i+1, err)
		}
		numbers[i] = n
	}
	return numbers, nil
}

func malformed(s, format string, args ...interface{}) error {
	return fmt.Errorf("snailfish.parse: %w: %s in %q", MalformedNotationError, fmt.Sprintf(format, args...), s)
}

// Index of the comma at bracket depth one, or -1.  Brackets must balance and
// the outer bracket must close at the last byte.
func topLevelComma(s string) (int, error) {
	depth := 0
	comma := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth += 1
		case ']':
			depth -= 1
			if depth < 0 {
				return -1, malformed(s, "unbalanced ']' at %d", i)
			}
			if depth == 0 && i != len(s)-1 {
				return -1, malformed(s, "trailing text at %d", i+1)
			}
		case ',':
			if depth == 1 && comma < 0 {
				comma = i
			}
		}
	}

	if depth != 0 {
		return -1, malformed(s, "unbalanced '['")
	}
	return comma, nil
}

func (a *Arena) parse(s string) (nodeIndex, error) {
	if !strings.HasPrefix(s, "[") {
		return a.parseLeaf(s)
	}

	comma, err := topLevelComma(s)
	if err != nil {
		return 0, err
	}
	if comma < 0 {
		return 0, malformed(s, "no top-level comma")
	}

	left, right := s[1:comma], s[comma+1:len(s)-1]
	l, err := a.parse(left)
	if err != nil {
		return 0, err
	}
	r, err := a.parse(right)
	if err != nil {
		return 0, err
	}
	return a.newPair(l, r), nil
}

func (a *Arena) parseLeaf(s string) (nodeIndex, error) {
	if len(s) == 0 {
		return 0, malformed(s, "empty value")
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, malformed(s, "unexpected %q", s[i])
		}
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, malformed(s, "value out of range")
	}
	return a.newLeaf(v), nil
}

///
/// Rendering
///

func (a *Arena) render(b *strings.Builder, i nodeIndex) {
	n := a.nodes[i]
	if n.kind == LeafNode {
		b.WriteString(strconv.FormatUint(n.value, 10))
		return
	}

	b.WriteByte('[')
	a.render(b, n.left)
	b.WriteByte(',')
	a.render(b, n.right)
	b.WriteByte(']')
}

// String renders the number in bracket notation
func (n *Number) String() string {
	if n.consumed {
		return "<consumed>"
	}

	var b strings.Builder
	n.arena.render(&b, n.root)
	return b.String()
}
