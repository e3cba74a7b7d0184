package record

import (
	"fmt"
	"strings"

	"github.com/jsphweid/voicedex/model"
	"github.com/jsphweid/voicedex/sexp"
)

// Record is one tagged entry of the vocabulary with its fields still in
// raw form. Fields maps a field name to everything that followed it.
type Record struct {
	Tag    string
	Line   int
	Fields map[string][]sexp.Node
	Order  []string
}

// FromList turns (field value...) children into a Record. Children that
// are not lists headed by a symbol are ignored. A repeated field fails
// with ErrDuplicateField.
func FromList(tag string, line int, children []sexp.Node) (Record, error) {
	r := Record{Tag: tag, Line: line, Fields: make(map[string][]sexp.Node)}
	for _, child := range children {
		field, ok := child.Head()
		if !ok {
			continue
		}
		if _, dup := r.Fields[field]; dup {
			return Record{}, fmt.Errorf("%w: %q in the entry on line %d", model.ErrDuplicateField, field, child.Line)
		}
		r.Fields[field] = child.Tail()
		r.Order = append(r.Order, field)
	}
	return r, nil
}

// Extract returns every top-level form tagged tag, in document order.
func Extract(doc []sexp.Node, tag string) ([]Record, error) {
	var res []Record
	for _, form := range doc {
		head, ok := form.Head()
		if !ok || head != tag {
			continue
		}
		r, err := FromList(tag, form.Line, form.Tail())
		if err != nil {
			return nil, &model.RecordError{Tag: tag, Name: nameOf(form.Tail()), Err: err}
		}
		res = append(res, r)
	}
	return res, nil
}

// Tags lists the tag of every top-level form in document order.
func Tags(doc []sexp.Node) []string {
	var res []string
	for _, form := range doc {
		if head, ok := form.Head(); ok {
			res = append(res, head)
		}
	}
	return res
}

func nameOf(children []sexp.Node) string {
	for _, c := range children {
		if field, ok := c.Head(); ok && field == "name" {
			return Flatten(c.Tail())
		}
	}
	return ""
}

func (r Record) Has(field string) bool {
	_, ok := r.Fields[field]
	return ok
}

// Require returns the raw value of field or ErrMissingField.
func (r Record) Require(field string) ([]sexp.Node, error) {
	v, ok := r.Fields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrMissingField, field)
	}
	return v, nil
}

// Text is the flattened value of a required field.
func (r Record) Text(field string) (string, error) {
	v, err := r.Require(field)
	if err != nil {
		return "", err
	}
	return Flatten(v), nil
}

// Atoms returns the literal text of each atom of a required field.
func (r Record) Atoms(field string) ([]string, error) {
	v, err := r.Require(field)
	if err != nil {
		return nil, err
	}
	return Atoms(v)
}

// Name is the flattened "name" field, empty when absent.
func (r Record) Name() string {
	return Flatten(r.Fields["name"])
}

// Flatten joins atoms with single spaces. Numbers keep their source
// text, nested lists are flattened in place.
func Flatten(nodes []sexp.Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.IsList() {
			if s := Flatten(n.Children); s != "" {
				parts = append(parts, s)
			}
			continue
		}
		parts = append(parts, n.Text)
	}
	return strings.Join(parts, " ")
}

// Atoms returns the text of each node, failing on nested lists.
func Atoms(nodes []sexp.Node) ([]string, error) {
	res := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.IsList() {
			return nil, fmt.Errorf("expected an atom in the entry on line %d, got %s", n.Line, n)
		}
		res = append(res, n.Text)
	}
	return res, nil
}
