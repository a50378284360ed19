package intf

// Options is the argument of every attribute mutator. Default takes
// precedence over Value: when set, the attribute is returned to the
// device default. Otherwise a non-empty (or true) Value is configured and
// an empty (or false) Value negates the attribute.
type Options[T any] struct {
	Value   T
	Default bool
}

// Value returns options that configure v.
func Value[T any](v T) Options[T] {
	return Options[T]{Value: v}
}

// UseDefault returns options that reset an attribute to its default.
func UseDefault[T any]() Options[T] {
	return Options[T]{Default: true}
}

// stringCommand renders "default <kw>", "<kw> <value>" or "no <kw>".
func stringCommand(keyword string, o Options[string]) string {
	switch {
	case o.Default:
		return "default " + keyword
	case o.Value != "":
		return keyword + " " + o.Value
	default:
		return "no " + keyword
	}
}

// boolCommand renders "default <kw>", "<kw>" or "no <kw>".
func boolCommand(keyword string, o Options[bool]) string {
	switch {
	case o.Default:
		return "default " + keyword
	case o.Value:
		return keyword
	default:
		return "no " + keyword
	}
}
