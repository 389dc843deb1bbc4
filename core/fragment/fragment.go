// Package fragment implements the text-plus-parameter algebra underlying all
// statement construction. A Fragment is an ordered sequence of segments, each
// either literal SQL text or a parameter binding. Fragments concatenate
// associatively without renumbering; positional placeholder markers are only
// assigned when a fragment is flattened against a dialect.
package fragment

import (
	"fmt"
	"strings"
)

// Segment is one element of a Fragment: literal SQL text when Binding is nil,
// otherwise a parameter placeholder for the carried binding.
type Segment struct {
	Text    string
	Binding *Binding
}

// Fragment is an ordered sequence of literal SQL text and parameter
// placeholders, composable via concatenation. The zero value is the empty
// fragment, which flattens to empty text and no bindings.
type Fragment struct {
	segments []Segment
}

// Dialect abstracts the database-specific pieces of SQL emission: positional
// placeholder syntax, identifier quoting, and the token used to request
// server-side generation of a column value.
type Dialect interface {
	// Name identifies the dialect, e.g. "postgres" or "sqlite".
	Name() string
	// Placeholder renders the positional parameter marker for the given
	// 1-based position, e.g. "$3" or "?3".
	Placeholder(position int) string
	// QuoteIdentifier quotes a table or column name.
	QuoteIdentifier(name string) string
	// GenerateMarker is the SQL token emitted in place of an absent
	// primary-key value to request generation, e.g. "DEFAULT".
	GenerateMarker() string
}

// Empty returns the empty fragment.
func Empty() Fragment {
	return Fragment{}
}

// Text returns a fragment holding the given literal SQL text.
func Text(sql string) Fragment {
	if sql == "" {
		return Fragment{}
	}
	return Fragment{segments: []Segment{{Text: sql}}}
}

// Textf returns a literal fragment built with fmt.Sprintf. The formatted
// result is emitted verbatim; it never introduces parameter placeholders.
func Textf(format string, args ...any) Fragment {
	return Text(fmt.Sprintf(format, args...))
}

// Bind returns a fragment holding a single parameter placeholder.
func Bind(b Binding) Fragment {
	return Fragment{segments: []Segment{{Binding: &b}}}
}

// Value is shorthand for Bind(BindValue(v)).
func Value(v any) Fragment {
	return Bind(BindValue(v))
}

// Concat joins fragments in order. The segment lists are appended as-is;
// placeholders are not renumbered until flattening, so building a large
// statement by repeated concatenation stays linear in the total segment count.
func Concat(parts ...Fragment) Fragment {
	total := 0
	for _, p := range parts {
		total += len(p.segments)
	}
	if total == 0 {
		return Fragment{}
	}
	segments := make([]Segment, 0, total)
	for _, p := range parts {
		segments = append(segments, p.segments...)
	}
	return Fragment{segments: segments}
}

// Append returns the concatenation of the receiver with the given parts. The
// receiver is not modified.
func (f Fragment) Append(parts ...Fragment) Fragment {
	all := make([]Fragment, 0, len(parts)+1)
	all = append(all, f)
	all = append(all, parts...)
	return Concat(all...)
}

// Join interleaves the given separator text between non-empty fragments.
func Join(parts []Fragment, separator string) Fragment {
	joined := make([]Fragment, 0, len(parts)*2)
	for _, p := range parts {
		if p.IsEmpty() {
			continue
		}
		if len(joined) > 0 {
			joined = append(joined, Text(separator))
		}
		joined = append(joined, p)
	}
	return Concat(joined...)
}

// Group wraps a fragment in parentheses. An empty fragment stays empty.
func Group(f Fragment) Fragment {
	if f.IsEmpty() {
		return f
	}
	return Concat(Text("("), f, Text(")"))
}

// IsEmpty reports whether the fragment has no segments.
func (f Fragment) IsEmpty() bool {
	return len(f.segments) == 0
}

// Segments returns a copy of the fragment's segment list.
func (f Fragment) Segments() []Segment {
	out := make([]Segment, len(f.segments))
	copy(out, f.segments)
	return out
}

// Bindings returns the fragment's bindings in placeholder order.
func (f Fragment) Bindings() []Binding {
	var out []Binding
	for _, seg := range f.segments {
		if seg.Binding != nil {
			out = append(out, *seg.Binding)
		}
	}
	return out
}

// Flatten walks the fragment once, replacing each placeholder with the
// dialect's positional marker in left-to-right occurrence order and collecting
// the bindings into a list of the same length and order. An invalid binding
// aborts flattening with the carried encoding failure. The empty fragment
// flattens to empty text and no bindings; callers handing statements to an
// execution layer must treat that as a distinguished no-op.
func (f Fragment) Flatten(d Dialect) (string, []Binding, error) {
	if len(f.segments) == 0 {
		return "", nil, nil
	}

	var sb strings.Builder
	var bindings []Binding
	for _, seg := range f.segments {
		if seg.Binding == nil {
			sb.WriteString(seg.Text)
			continue
		}
		if seg.Binding.IsInvalid() {
			return "", nil, fmt.Errorf("flatten failed at parameter %d: %w", len(bindings)+1, seg.Binding.Err)
		}
		bindings = append(bindings, *seg.Binding)
		sb.WriteString(d.Placeholder(len(bindings)))
	}
	return sb.String(), bindings, nil
}
