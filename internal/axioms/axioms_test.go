package axioms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angrysky56/mcp-logic/internal/formula"
)

func assertAllValid(t *testing.T, statements []string) {
	t.Helper()
	for _, r := range formula.ValidateAll(statements) {
		if !r.Valid {
			t.Errorf("axiom %q failed validation: %v", r.Formula, r.Errors())
		}
	}
}

func TestBuiltinTheoriesValidate(t *testing.T) {
	assertAllValid(t, CategoryAxioms())
	assertAllValid(t, FunctorAxioms("F"))
	assertAllValid(t, NaturalityCondition("F", "G", "eta"))
	assertAllValid(t, MonoidAxioms())
	assertAllValid(t, GroupAxioms())
}

func TestFunctorAxiomsLowercaseName(t *testing.T) {
	lines := FunctorAxioms("Forget")
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Contains(t, l, "forget(")
		assert.NotContains(t, l, "Forget")
	}
}

func TestGroupExtendsMonoid(t *testing.T) {
	group := GroupAxioms()
	monoid := MonoidAxioms()
	require.Greater(t, len(group), len(monoid))
	assert.Equal(t, monoid, group[:len(monoid)])
}

func TestCommutativityArgument(t *testing.T) {
	t.Run("single-edge paths", func(t *testing.T) {
		premises, conclusion, err := CommutativityArgument([]string{"f"}, []string{"g"}, "a", "b")
		require.NoError(t, err)
		assert.Equal(t, "f = g", conclusion)
		assert.Contains(t, premises, "morphism(f)")
		assert.Contains(t, premises, "source(f, a)")
		assert.Contains(t, premises, "target(g, b)")
		assertAllValid(t, premises)
		assertAllValid(t, []string{conclusion})
	})

	t.Run("longer path composes left to right", func(t *testing.T) {
		premises, conclusion, err := CommutativityArgument([]string{"f", "g", "h"}, []string{"k"}, "a", "d")
		require.NoError(t, err)
		assert.Equal(t, "comp_a = k", conclusion)

		var composes []string
		for _, p := range premises {
			if strings.HasPrefix(p, "compose(") {
				composes = append(composes, p)
			}
		}
		require.Equal(t, []string{
			"compose(g, f, comp_a_temp_1)",
			"compose(h, comp_a_temp_1, comp_a)",
		}, composes)
		assertAllValid(t, premises)
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		_, _, err := CommutativityArgument(nil, []string{"g"}, "a", "b")
		require.Error(t, err)
		_, _, err = CommutativityArgument([]string{"f"}, nil, "a", "b")
		require.Error(t, err)
	})
}
