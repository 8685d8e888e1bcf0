package chain

// NextTag is the options tag the builder reserves for a worker's successor list. A
// worker's own opts never need to set it; Create inserts it ahead of whatever opts
// the topology declared.
const NextTag = "next"

// Option is one entry of a worker's options bag: a tag, optionally carrying a value.
// A bare tag (no associated value) has a nil Value.
type Option struct {
	Tag   string
	Value any
}

// Opt builds a bare tag entry.
func Opt(tag string) Option {
	return Option{Tag: tag}
}

// OptVal builds a tag bound to value.
func OptVal(tag string, value any) Option {
	return Option{Tag: tag, Value: value}
}

// Options is an ordered bag of Option entries, handed to a worker alongside its
// function. Tags may repeat; Lookup returns every value bound to a tag in declaration
// order.
type Options []Option

// Lookup returns the values bound to tag, in the order they appear in o. It returns
// nil if tag is absent.
func (o Options) Lookup(tag string) []any {
	var vals []any
	for _, e := range o {
		if e.Tag == tag {
			vals = append(vals, e.Value)
		}
	}
	return vals
}

// withNext prepends a NextTag entry carrying successors to o.
func withNext(successors []*Handle, o Options) Options {
	out := make(Options, 0, len(o)+1)
	out = append(out, OptVal(NextTag, successors))
	out = append(out, o...)
	return out
}

// asHandles flattens a Lookup result entry into the *Handle values it denotes. A
// NextTag value is always a []*Handle; user-supplied tags may instead carry a bare
// *Handle.
func asHandles(v any) []*Handle {
	switch t := v.(type) {
	case *Handle:
		return []*Handle{t}
	case []*Handle:
		return t
	default:
		return nil
	}
}
