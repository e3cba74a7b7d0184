// Package sexp reads the parenthesized vocabulary format into a tree of
// lists and atoms. Tokenizing is done by the EDN decoder; this package only
// maps its values onto Node and tracks which line each form starts on.
package sexp

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/jsphweid/voicedex/model"
	"olympos.io/encoding/edn"
)

type Kind int

const (
	List Kind = iota
	Symbol
	String
	Number
)

func (k Kind) String() string {
	switch k {
	case List:
		return "list"
	case Symbol:
		return "symbol"
	case String:
		return "string"
	case Number:
		return "number"
	}
	return "unknown"
}

// Node is a list or an atom. Line is the line its top-level form starts on.
type Node struct {
	Kind     Kind
	Text     string
	Children []Node
	Line     int
}

func (n Node) IsList() bool { return n.Kind == List }

func (n Node) IsAtom() bool { return n.Kind != List }

// Head returns the symbol a list starts with.
func (n Node) Head() (string, bool) {
	if n.Kind != List || len(n.Children) == 0 || n.Children[0].Kind != Symbol {
		return "", false
	}
	return n.Children[0].Text, true
}

// Tail is everything after the head of a list.
func (n Node) Tail() []Node {
	if n.Kind != List || len(n.Children) == 0 {
		return nil
	}
	return n.Children[1:]
}

func (n Node) String() string {
	switch n.Kind {
	case List:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	case String:
		return strconv.Quote(n.Text)
	default:
		return n.Text
	}
}

// Parse reads every top-level form from r.
func Parse(r io.Reader, filename string) ([]Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if filename == "" {
		filename = "<input>"
	}

	// the decoder reuses a *bufio.Reader it is handed, so the bytes it has
	// consumed are whatever neither rd nor buf still hold
	rd := bytes.NewReader(src)
	buf := bufio.NewReader(rd)
	dec := edn.NewDecoder(buf)
	consumed := func() int { return len(src) - rd.Len() - buf.Buffered() }

	var forms []Node
	for {
		start := skipBlank(src, consumed())
		var v interface{}
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return forms, nil
		}
		if err != nil {
			return nil, syntaxError(filename, src, start, err)
		}
		line := lineAt(src, start)
		n, err := fromValue(v, line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", model.ErrSyntax, filename, line, err)
		}
		if n.Kind != List {
			return nil, fmt.Errorf("%w: %s:%d: top-level %s %s is not a list", model.ErrSyntax, filename, line, n.Kind, n)
		}
		forms = append(forms, n)
	}
}

// ParseString is Parse over an in-memory document.
func ParseString(src string) ([]Node, error) {
	return Parse(strings.NewReader(src), "")
}

func fromValue(v interface{}, line int) (Node, error) {
	switch v := v.(type) {
	case []interface{}:
		list := Node{Kind: List, Line: line, Children: make([]Node, 0, len(v))}
		for _, item := range v {
			child, err := fromValue(item, line)
			if err != nil {
				return Node{}, err
			}
			list.Children = append(list.Children, child)
		}
		return list, nil
	case edn.Symbol:
		return Node{Kind: Symbol, Text: string(v), Line: line}, nil
	case edn.Keyword:
		return Node{Kind: Symbol, Text: v.String(), Line: line}, nil
	case string:
		return Node{Kind: String, Text: v, Line: line}, nil
	case int64:
		return Node{Kind: Number, Text: strconv.FormatInt(v, 10), Line: line}, nil
	case float64:
		return Node{Kind: Number, Text: strconv.FormatFloat(v, 'g', -1, 64), Line: line}, nil
	case big.Int:
		return Node{Kind: Number, Text: v.String(), Line: line}, nil
	case bool:
		return Node{Kind: Symbol, Text: strconv.FormatBool(v), Line: line}, nil
	case nil:
		return Node{Kind: Symbol, Text: "nil", Line: line}, nil
	}
	return Node{}, fmt.Errorf("unsupported value %v", v)
}

func syntaxError(filename string, src []byte, start int, err error) error {
	line := lineAt(src, start)
	var se *edn.SyntaxError
	if errors.As(err, &se) {
		line = lineAt(src, int(se.Offset))
	}
	return fmt.Errorf("%w: %s:%d: %v", model.ErrSyntax, filename, line, err)
}

// skipBlank returns the offset of the first byte at or after i that is not
// whitespace, a comma or part of a ; comment.
func skipBlank(src []byte, i int) int {
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			i++
		case ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		default:
			return i
		}
	}
	return i
}

func lineAt(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	return bytes.Count(src[:offset], []byte("\n")) + 1
}
