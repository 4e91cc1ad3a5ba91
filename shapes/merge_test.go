package shapes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontoschema/shapes"
)

const (
	taskClass = "https://vocab.example.org/actions/Task"
	xsdString = "http://www.w3.org/2001/XMLSchema#string"
	xsdInt    = "http://www.w3.org/2001/XMLSchema#integer"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func shape(target, property string, f shapes.Facets) shapes.Shape {
	return shapes.Shape{
		Target:   target,
		Path:     "https://vocab.example.org/actions/" + property,
		Property: property,
		Facets:   f,
	}
}

func TestMergeForExactTargetOnly(t *testing.T) {
	all := []shapes.Shape{
		shape(taskClass, "title", shapes.Facets{MinCount: intPtr(1)}),
		shape("https://vocab.example.org/actions/Other", "title", shapes.Facets{MaxLength: intPtr(10)}),
	}

	merged, err := shapes.MergeFor(taskClass, all)
	require.NoError(t, err)
	require.Len(t, merged, 1)

	// The Other-targeted shape contributes nothing, even though it
	// constrains a property of the same name.
	assert.Nil(t, merged["title"].MaxLength)
	assert.True(t, merged["title"].Required())
}

func TestMergeTightestBounds(t *testing.T) {
	all := []shapes.Shape{
		shape(taskClass, "priority", shapes.Facets{
			MinCount:     intPtr(0),
			MaxCount:     intPtr(5),
			MinInclusive: floatPtr(1),
			MaxInclusive: floatPtr(10),
			MinLength:    intPtr(1),
			MaxLength:    intPtr(100),
		}),
		shape(taskClass, "priority", shapes.Facets{
			MinCount:     intPtr(1),
			MaxCount:     intPtr(3),
			MinInclusive: floatPtr(2),
			MaxInclusive: floatPtr(4),
			MinLength:    intPtr(2),
			MaxLength:    intPtr(50),
		}),
	}

	merged, err := shapes.MergeFor(taskClass, all)
	require.NoError(t, err)
	f := merged["priority"]

	assert.Equal(t, 1, *f.MinCount)
	assert.Equal(t, 3, *f.MaxCount)
	assert.Equal(t, 2.0, *f.MinInclusive)
	assert.Equal(t, 4.0, *f.MaxInclusive)
	assert.Equal(t, 2, *f.MinLength)
	assert.Equal(t, 50, *f.MaxLength)
}

func TestMergePatternsConjoin(t *testing.T) {
	all := []shapes.Shape{
		shape(taskClass, "code", shapes.Facets{Patterns: []string{"^[A-Z]"}}),
		shape(taskClass, "code", shapes.Facets{Patterns: []string{"[0-9]$"}}),
		shape(taskClass, "code", shapes.Facets{Patterns: []string{"^[A-Z]"}}),
	}

	merged, err := shapes.MergeFor(taskClass, all)
	require.NoError(t, err)
	// Duplicates collapse; all distinct patterns are kept as a conjunction.
	assert.Equal(t, []string{"[0-9]$", "^[A-Z]"}, merged["code"].Patterns)
}

func TestMergeEnumerationIntersects(t *testing.T) {
	all := []shapes.Shape{
		shape(taskClass, "state", shapes.Facets{In: []string{"active", "done", "blocked"}}),
		shape(taskClass, "state", shapes.Facets{In: []string{"done", "active", "archived"}}),
	}

	merged, err := shapes.MergeFor(taskClass, all)
	require.NoError(t, err)
	assert.Equal(t, []string{"active", "done"}, merged["state"].In)
}

func TestMergeEnumerationCanEmpty(t *testing.T) {
	all := []shapes.Shape{
		shape(taskClass, "state", shapes.Facets{In: []string{"a"}}),
		shape(taskClass, "state", shapes.Facets{In: []string{"b"}}),
	}

	merged, err := shapes.MergeFor(taskClass, all)
	require.NoError(t, err)
	// A disjoint intersection stays non-nil: the enumeration is present
	// but jointly unsatisfiable, which downstream validators surface.
	require.NotNil(t, merged["state"].In)
	assert.Empty(t, merged["state"].In)
}

func TestMergeDatatypeConflict(t *testing.T) {
	all := []shapes.Shape{
		shape(taskClass, "due", shapes.Facets{Datatype: xsdString}),
		shape(taskClass, "due", shapes.Facets{Datatype: xsdInt}),
	}

	_, err := shapes.MergeFor(taskClass, all)
	require.Error(t, err)

	var conflict *shapes.ConstraintConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, taskClass, conflict.Class)
	assert.Equal(t, "due", conflict.Property)
	assert.Equal(t, [2]string{xsdInt, xsdString}, conflict.Datatypes)
}

func TestMergeOrderIndependent(t *testing.T) {
	a := shape(taskClass, "title", shapes.Facets{
		MinCount: intPtr(1),
		Patterns: []string{"^T"},
		In:       []string{"x", "y"},
		Datatype: xsdString,
	})
	b := shape(taskClass, "title", shapes.Facets{
		MaxLength: intPtr(80),
		Patterns:  []string{"t$"},
		In:        []string{"y", "z"},
	})
	c := shape(taskClass, "title", shapes.Facets{MinCount: intPtr(2)})

	orders := [][]shapes.Shape{
		{a, b, c},
		{c, b, a},
		{b, c, a},
	}

	var first map[string]shapes.Facets
	for i, order := range orders {
		merged, err := shapes.MergeFor(taskClass, order)
		require.NoError(t, err)
		if i == 0 {
			first = merged
			continue
		}
		assert.Equal(t, first, merged, "order %d", i)
	}

	f := first["title"]
	assert.Equal(t, 2, *f.MinCount)
	assert.Equal(t, 80, *f.MaxLength)
	assert.Equal(t, []string{"^T", "t$"}, f.Patterns)
	assert.Equal(t, []string{"y"}, f.In)
	assert.Equal(t, xsdString, f.Datatype)
}

func TestMergeDoesNotAliasInput(t *testing.T) {
	min := intPtr(1)
	all := []shapes.Shape{shape(taskClass, "title", shapes.Facets{MinCount: min})}

	merged, err := shapes.MergeFor(taskClass, all)
	require.NoError(t, err)

	*min = 99
	assert.Equal(t, 1, *merged["title"].MinCount)
}
