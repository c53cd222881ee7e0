package transpiler

// merge implements the lattice join described in spec §4.3-§4.4, plus the
// conflict-propagation policy resolved in SPEC_FULL.md §4.4.1: a single
// incompatible leaf anywhere under a record/array/map/tuple collapses the
// *entire* merged tree to Atom(Json), not just the conflicting subtree. The
// original project's own test suite is explicit about this ("a conflict at
// a node invalidates the entire tree"), so merge returns a conflicted flag
// alongside the merged Schema; every composite case propagates it upward.
func merge(a, b Schema) (Schema, bool) {
	nullable := a.IsNullable() || b.IsNullable()

	switch x := a.(type) {
	case *Atom:
		y, ok := b.(*Atom)
		if !ok {
			return jsonAtom(nullable), true
		}
		return mergeAtoms(x, y, nullable)

	case *Object:
		y, ok := b.(*Object)
		if !ok {
			return jsonAtom(nullable), true
		}
		return mergeObjects(x, y, nullable)

	case *Array:
		y, ok := b.(*Array)
		if !ok {
			return jsonAtom(nullable), true
		}
		items, conflicted := merge(x.Items, y.Items)
		if conflicted {
			return jsonAtom(nullable), true
		}
		return &Array{base: base{Nullable: nullable}, Items: items}, false

	case *Map:
		y, ok := b.(*Map)
		if !ok {
			return jsonAtom(nullable), true
		}
		value, conflicted := merge(x.Value, y.Value)
		if conflicted {
			return jsonAtom(nullable), true
		}
		return &Map{base: base{Nullable: nullable}, Value: value}, false

	case *Tuple:
		return mergeTuples(x, b, nullable)

	default:
		return jsonAtom(nullable), true
	}
}

func jsonAtom(nullable bool) *Atom {
	return &Atom{base: base{Nullable: nullable}, Kind: KindJSON}
}

func mergeAtoms(a, b *Atom, nullable bool) (Schema, bool) {
	if a.Kind == KindJSON || b.Kind == KindJSON {
		return jsonAtom(nullable), a.Kind != b.Kind
	}
	if a.Kind == b.Kind {
		return &Atom{base: base{Nullable: nullable}, Kind: a.Kind}, false
	}
	// Numeric widening: merge(Int, Float) = Float (spec §4.4).
	if isNumeric(a.Kind) && isNumeric(b.Kind) {
		return &Atom{base: base{Nullable: nullable}, Kind: KindFloat}, false
	}
	return jsonAtom(nullable), true
}

func isNumeric(k AtomKind) bool {
	return k == KindInt || k == KindFloat
}

// mergeObjects implements §4.3: field union, recursive per-field merge,
// required-set intersection restricted to common keys.
func mergeObjects(a, b *Object, nullable bool) (Schema, bool) {
	out := &Object{base: base{Nullable: nullable}, Fields: make(map[string]Schema), Required: make(map[string]struct{})}

	seen := make(map[string]bool)
	appendOrdered := func(name string) {
		if !seen[name] {
			seen[name] = true
			out.Order = append(out.Order, name)
		}
	}

	anyConflict := false

	for _, name := range a.Order {
		appendOrdered(name)
	}
	for _, name := range b.Order {
		appendOrdered(name)
	}

	for _, name := range out.Order {
		fa, inA := a.Fields[name]
		fb, inB := b.Fields[name]

		switch {
		case inA && inB:
			merged, conflicted := merge(fa, fb)
			if conflicted {
				anyConflict = true
			}
			out.Fields[name] = merged
		case inA:
			out.Fields[name] = withNullable(fa, true)
		case inB:
			out.Fields[name] = withNullable(fb, true)
		}

		if a.IsRequired(name) && b.IsRequired(name) {
			out.MarkRequired(name)
		}
	}

	if anyConflict {
		return jsonAtom(nullable), true
	}
	return out, false
}

// withNullable returns a copy of s with its nullable bit forced to the
// given value, used when an object-merge alternative omits a field
// entirely (spec §4.3: "unconditionally marked nullable").
func withNullable(s Schema, nullable bool) Schema {
	switch v := s.(type) {
	case *Atom:
		cp := *v
		cp.Nullable = nullable
		return &cp
	case *Object:
		cp := *v
		cp.Nullable = nullable
		return &cp
	case *Map:
		cp := *v
		cp.Nullable = nullable
		return &cp
	case *Array:
		cp := *v
		cp.Nullable = nullable
		return &cp
	case *Tuple:
		cp := *v
		cp.Nullable = nullable
		return &cp
	default:
		return s
	}
}

// mergeTuples merges a Tuple against any schema by position-wise merging
// when both sides are tuples of equal length, otherwise degrading through
// the generic Atom(Json) fallback. normalize.go demotes homogeneous tuples
// to Array before union reduction (spec §4.2 rule 3) merges alternatives,
// but heterogeneous tuples stay Tuple and are still merged there, so this
// case must behave correctly on its own.
func mergeTuples(a *Tuple, b Schema, nullable bool) (Schema, bool) {
	bt, ok := b.(*Tuple)
	if !ok || len(a.Items) != len(bt.Items) {
		return jsonAtom(nullable), true
	}
	items := make([]Schema, len(a.Items))
	anyConflict := false
	for i := range a.Items {
		merged, conflicted := merge(a.Items[i], bt.Items[i])
		if conflicted {
			anyConflict = true
		}
		items[i] = merged
	}
	if anyConflict {
		return jsonAtom(nullable), true
	}
	return &Tuple{base: base{Nullable: nullable}, Items: items}, false
}

// Merge is the exported lattice join (spec §4.4), returning a plain Schema:
// the conflicted flag is purely an implementation detail of propagation and
// is always reflected in the result itself (an Atom(Json) on conflict), so
// callers never need to observe it separately.
func Merge(a, b Schema) Schema {
	result, _ := merge(a, b)
	return result
}
