package platform

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// kvNode is a Valve KeyValues object. Keys are stored lower-cased; values
// are either strings or nested objects.
type kvNode struct {
	values   map[string]string
	children map[string]*kvNode
	order    []string
}

func newKVNode() *kvNode {
	return &kvNode{values: map[string]string{}, children: map[string]*kvNode{}}
}

// String returns the string value for key, or "".
func (n *kvNode) String(key string) string {
	if n == nil {
		return ""
	}
	return n.values[strings.ToLower(key)]
}

// Child returns the nested object for key, or nil.
func (n *kvNode) Child(key string) *kvNode {
	if n == nil {
		return nil
	}
	return n.children[strings.ToLower(key)]
}

// Keys returns the child object keys in file order.
func (n *kvNode) Keys() []string {
	if n == nil {
		return nil
	}
	return n.order
}

// parseKV reads the text KeyValues format used by libraryfolders.vdf and
// appmanifest_*.acf.
func parseKV(r io.Reader) (*kvNode, error) {
	toks, err := tokenizeKV(r)
	if err != nil {
		return nil, err
	}
	root := newKVNode()
	stack := []*kvNode{root}
	for i := 0; i < len(toks); i++ {
		cur := stack[len(stack)-1]
		switch t := toks[i]; {
		case t.kind == kvClose:
			if len(stack) == 1 {
				return nil, fmt.Errorf("unexpected '}' at token %d", i)
			}
			stack = stack[:len(stack)-1]
		case t.kind == kvString:
			key := strings.ToLower(t.text)
			if i+1 >= len(toks) {
				return nil, fmt.Errorf("key %q has no value", t.text)
			}
			next := toks[i+1]
			i++
			switch next.kind {
			case kvString:
				cur.values[key] = next.text
			case kvOpen:
				child := newKVNode()
				if _, dup := cur.children[key]; !dup {
					cur.order = append(cur.order, key)
				}
				cur.children[key] = child
				stack = append(stack, child)
			default:
				return nil, fmt.Errorf("key %q followed by '}'", t.text)
			}
		default:
			return nil, fmt.Errorf("unexpected '{' at token %d", i)
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("unterminated object")
	}
	return root, nil
}

type kvKind int

const (
	kvString kvKind = iota
	kvOpen
	kvClose
)

type kvToken struct {
	kind kvKind
	text string
}

func tokenizeKV(r io.Reader) ([]kvToken, error) {
	br := bufio.NewReader(r)
	var toks []kvToken
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return nil, err
		}
		switch {
		case c == '{':
			toks = append(toks, kvToken{kind: kvOpen})
		case c == '}':
			toks = append(toks, kvToken{kind: kvClose})
		case c == '"':
			s, err := readQuoted(br)
			if err != nil {
				return nil, err
			}
			toks = append(toks, kvToken{kind: kvString, text: s})
		case c == '/':
			if next, _, err := br.ReadRune(); err == nil && next == '/' {
				if _, err := br.ReadString('\n'); err != nil && err != io.EOF {
					return nil, err
				}
			} else {
				return nil, fmt.Errorf("stray '/'")
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		default:
			// Unquoted token, as written by some tools.
			var b strings.Builder
			b.WriteRune(c)
			for {
				c, _, err := br.ReadRune()
				if err != nil {
					break
				}
				if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '{' || c == '}' || c == '"' {
					_ = br.UnreadRune()
					break
				}
				b.WriteRune(c)
			}
			toks = append(toks, kvToken{kind: kvString, text: b.String()})
		}
	}
}

func readQuoted(br *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			return "", fmt.Errorf("unterminated string: %w", err)
		}
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			n, _, err := br.ReadRune()
			if err != nil {
				return "", fmt.Errorf("unterminated escape: %w", err)
			}
			switch n {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(n)
			}
		default:
			b.WriteRune(c)
		}
	}
}
