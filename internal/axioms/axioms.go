// internal/axioms/axioms.go

// Package axioms provides static first-order axiom sets for standard
// algebraic and categorical theories. The formulas are consumed as opaque
// statements and go through the same validator as user input.
package axioms

import (
	"fmt"
	"strings"
)

// CategoryAxioms returns the axioms defining a category: identities,
// composition, associativity, and the identity laws.
func CategoryAxioms() []string {
	return []string{
		"all x (object(x) -> exists i (morphism(i) & source(i,x) & target(i,x) & identity(i,x)))",
		"all x all i1 all i2 ((identity(i1,x) & identity(i2,x)) -> i1 = i2)",
		"all f all g ((morphism(f) & morphism(g) & target(f) = source(g)) -> exists h (morphism(h) & compose(g,f,h)))",
		"all f all g all h all fg all gh all fgh all gfh ((compose(g,f,fg) & compose(h,g,gh) & compose(h,fg,fgh) & compose(gh,f,gfh)) -> fgh = gfh)",
		"all f all a all id ((morphism(f) & source(f,a) & identity(id,a) & compose(f,id,comp)) -> comp = f)",
		"all f all b all id ((morphism(f) & target(f,b) & identity(id,b) & compose(id,f,comp)) -> comp = f)",
	}
}

// FunctorAxioms returns the axioms stating that name preserves identities and
// composition. The functor symbol is lowercased per the naming convention.
func FunctorAxioms(name string) []string {
	f := lower(name)
	return []string{
		fmt.Sprintf("all x all id (identity(id,x) -> identity(%s(id), %s(x)))", f, f),
		fmt.Sprintf("all g all h all gh ((compose(g,h,gh)) -> compose(%s(g), %s(h), %s(gh)))", f, f, f),
	}
}

// NaturalityCondition returns the naturality square for a transformation
// component between two functors: G(f) after the component at the source
// equals the component at the target after F(f).
func NaturalityCondition(functorF, functorG, component string) []string {
	f := lower(functorF)
	g := lower(functorG)
	return []string{
		fmt.Sprintf("all morph all a all b ((morphism(morph) & source(morph,a) & target(morph,b)) -> exists comp1 exists comp2 (compose(%s(morph), %s(a), comp1) & compose(%s(b), %s(morph), comp2) & comp1 = comp2))",
			g, component, component, f),
	}
}

// MonoidAxioms returns the axioms for a monoid, phrased relationally.
func MonoidAxioms() []string {
	return []string{
		"all x all y exists z (mult(x,y,z))",
		"all x all y all z all xy all yz all xyz ((mult(x,y,xy) & mult(y,z,yz) & mult(xy,z,xyz) & mult(x,yz,xyz2)) -> xyz = xyz2)",
		"exists e (all x (mult(e,x,x) & mult(x,e,x)))",
	}
}

// GroupAxioms extends MonoidAxioms with inverses.
func GroupAxioms() []string {
	return append(MonoidAxioms(),
		"all x exists y (mult(x,y,e) & mult(y,x,e))",
	)
}

// CommutativityArgument builds the premises and conclusion for proving that
// two morphism paths between the same objects commute: composing along each
// path yields equal morphisms.
func CommutativityArgument(pathA, pathB []string, start, end string) (premises []string, conclusion string, err error) {
	if len(pathA) == 0 || len(pathB) == 0 {
		return nil, "", fmt.Errorf("commutativity: both paths must contain at least one morphism")
	}

	premises = append(premises, pathPremises(pathA, start, end)...)
	premises = append(premises, pathPremises(pathB, start, end)...)

	compA, premA := composePath(pathA, "comp_a")
	compB, premB := composePath(pathB, "comp_b")
	premises = append(premises, premA...)
	premises = append(premises, premB...)

	return premises, fmt.Sprintf("%s = %s", compA, compB), nil
}

func pathPremises(path []string, start, end string) []string {
	var out []string
	for i, morph := range path {
		out = append(out, fmt.Sprintf("morphism(%s)", morph))
		if i == 0 {
			out = append(out, fmt.Sprintf("source(%s, %s)", morph, start))
		}
		if i == len(path)-1 {
			out = append(out, fmt.Sprintf("target(%s, %s)", morph, end))
		}
	}
	return out
}

// composePath folds a path into successive compositions, returning the name
// of the final composed morphism and the compose premises introducing it.
func composePath(path []string, resultName string) (result string, premises []string) {
	if len(path) == 1 {
		return path[0], nil
	}

	current := path[0]
	for i := 1; i < len(path); i++ {
		name := resultName
		if i < len(path)-1 {
			name = fmt.Sprintf("%s_temp_%d", resultName, i)
		}
		premises = append(premises, fmt.Sprintf("compose(%s, %s, %s)", path[i], current, name))
		current = name
	}
	return current, premises
}

func lower(s string) string { return strings.ToLower(s) }
