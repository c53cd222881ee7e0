package transpiler

// Normalize performs the bottom-up rewrite described in spec §4.2: it folds
// Union/Intersection combinator nodes away entirely, absorbs nullability
// from "null" alternatives, resolves required-ness, and demotes
// homogeneous tuples to arrays. The result contains only Atom, Object,
// Map, Array, Tuple nodes (spec §3.1 invariant).
func Normalize(s Schema) Schema {
	switch v := s.(type) {
	case *Atom:
		return v

	case *Object:
		out := &Object{base: v.base, Fields: make(map[string]Schema), Required: make(map[string]struct{}), Order: append([]string(nil), v.Order...)}
		for name, field := range v.Fields {
			out.Fields[name] = Normalize(field)
		}
		for name := range v.Required {
			if _, ok := out.Fields[name]; ok {
				out.MarkRequired(name)
			}
		}
		return out

	case *Map:
		return &Map{base: v.base, Value: Normalize(v.Value)}

	case *Array:
		return &Array{base: v.base, Items: Normalize(v.Items)}

	case *Tuple:
		return normalizeTuple(v)

	case *Union:
		return normalizeUnion(v)

	case *Intersection:
		return normalizeIntersection(v)

	default:
		return jsonAtom(s.IsNullable())
	}
}

// normalizeUnion implements spec §4.2 rules 1-3: absorb null alternatives
// into nullability, collapse a singleton to its lone member, and otherwise
// fold the remaining alternatives through an iterative left merge.
func normalizeUnion(u *Union) Schema {
	nullable := u.Nullable
	var rest []Schema

	for _, alt := range u.Alts {
		normAlt := Normalize(alt)
		if atom, ok := normAlt.(*Atom); ok && atom.Kind == KindNull {
			nullable = true
			continue
		}
		if normAlt.IsNullable() {
			nullable = true
		}
		rest = append(rest, normAlt)
	}

	if len(rest) == 0 {
		// Every alternative was null: the empty nullable (spec §4.2 rule 1).
		return &Atom{base: base{Nullable: true}, Kind: KindNull}
	}

	if len(rest) == 1 {
		return withNullable(rest[0], nullable)
	}

	merged := rest[0]
	for _, next := range rest[1:] {
		merged = Merge(merged, next)
	}
	return withNullable(merged, nullable)
}

// normalizeIntersection implements spec §4.2 rule 4: allOf. A bare
// {"required": [...]} element (parsed as a fieldless Object carrying only a
// required overlay) contributes required-name overlays to the object it
// intersects with, without changing field presence; any other element is
// folded through the same merge used for unions.
func normalizeIntersection(in *Intersection) Schema {
	nullable := in.Nullable
	var overlayRequired []string
	var structural []Schema

	for _, alt := range in.Alts {
		normAlt := Normalize(alt)
		if obj, ok := normAlt.(*Object); ok && len(obj.Fields) == 0 && len(obj.Required) > 0 {
			for name := range obj.Required {
				overlayRequired = append(overlayRequired, name)
			}
			continue
		}
		if normAlt.IsNullable() {
			nullable = true
		}
		structural = append(structural, normAlt)
	}

	var merged Schema
	switch len(structural) {
	case 0:
		merged = jsonAtom(nullable)
	case 1:
		merged = structural[0]
	default:
		merged = structural[0]
		for _, next := range structural[1:] {
			merged = Merge(merged, next)
		}
	}

	if obj, ok := merged.(*Object); ok {
		for _, name := range overlayRequired {
			if _, present := obj.Fields[name]; present {
				obj.MarkRequired(name)
			}
		}
	}

	return withNullable(merged, nullable)
}

// normalizeTuple implements spec §4.2 rule 6: a Tuple whose item schemas
// are all structurally equal is demoted to an Array of that item type;
// otherwise it is retained, to be merged into one element type at
// synthesis time.
func normalizeTuple(t *Tuple) Schema {
	items := make([]Schema, len(t.Items))
	for i, item := range t.Items {
		items[i] = Normalize(item)
	}

	if len(items) == 0 {
		return &Array{base: t.base, Items: jsonAtom(false)}
	}

	homogeneous := true
	for _, item := range items[1:] {
		if !structurallyEqual(items[0], item) {
			homogeneous = false
			break
		}
	}

	if homogeneous {
		return &Array{base: t.base, Items: items[0]}
	}
	return &Tuple{base: t.base, Items: items}
}

// structurallyEqual compares two normalized schemas for the purpose of
// tuple homogeneity detection (spec §4.2 rule 6). It is a structural, not
// pointer, comparison.
func structurallyEqual(a, b Schema) bool {
	if a.IsNullable() != b.IsNullable() {
		return false
	}
	switch x := a.(type) {
	case *Atom:
		y, ok := b.(*Atom)
		return ok && x.Kind == y.Kind
	case *Array:
		y, ok := b.(*Array)
		return ok && structurallyEqual(x.Items, y.Items)
	case *Map:
		y, ok := b.(*Map)
		return ok && structurallyEqual(x.Value, y.Value)
	case *Tuple:
		y, ok := b.(*Tuple)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !structurallyEqual(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Object:
		y, ok := b.(*Object)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for name, xf := range x.Fields {
			yf, present := y.Fields[name]
			if !present || !structurallyEqual(xf, yf) {
				return false
			}
		}
		for name := range x.Required {
			if !y.IsRequired(name) {
				return false
			}
		}
		for name := range y.Required {
			if !x.IsRequired(name) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
