package ldgraph

// RefKind tells how a relation value was written.
type RefKind int

const (
	RefAbsent RefKind = iota
	// RefReference is a bare identifier or an {"@id": ...} object.
	RefReference
	// RefInline is an embedded node carrying properties of its own.
	RefInline
)

// Ref is a tagged union over the shapes a relation value can take.
type Ref struct {
	kind RefKind
	id   string
	node Node
}

// RefOf classifies a raw JSON value. Lists resolve to their first usable item.
func RefOf(v any) Ref {
	switch t := v.(type) {
	case string:
		if t == "" {
			return Ref{}
		}
		return Ref{kind: RefReference, id: t}
	case map[string]any:
		return refOfObject(Node(t))
	case Node:
		return refOfObject(t)
	case []any:
		for _, item := range t {
			if r := RefOf(item); !r.IsAbsent() {
				return r
			}
		}
	}
	return Ref{}
}

func refOfObject(n Node) Ref {
	if _, isValue := n["@value"]; isValue {
		return Ref{}
	}

	id := n.ID()
	for k := range n {
		if k != "@id" {
			return Ref{kind: RefInline, id: id, node: n}
		}
	}
	if id == "" {
		return Ref{}
	}
	return Ref{kind: RefReference, id: id}
}

func (r Ref) Kind() RefKind { return r.kind }
func (r Ref) ID() string { return r.id }
func (r Ref) IsAbsent() bool { return r.kind == RefAbsent }
func (r Ref) Inline() Node { return r.node }
