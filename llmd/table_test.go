package llmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTable(t *testing.T) {
	t.Parallel()

	t.Run("two columns with unique identifiers is property", func(t *testing.T) {
		t.Parallel()

		tbl := Table{Rows: [][]string{
			{"Class", "Effect"},
			{"flm-text--secondary", "Color: --bodySubtext"},
			{"flm-text--error", "Color: --errorText"},
		}}

		assert.Equal(t, tableProperty, classifyTable(tbl))
	})

	t.Run("three or more columns with unique identifiers is keyed_multi", func(t *testing.T) {
		t.Parallel()

		tbl := Table{Rows: [][]string{
			{"Name", "Type", "Default"},
			{"timeout", "int", "30"},
			{"retries", "int", "3"},
		}}

		assert.Equal(t, tableKeyedMulti, classifyTable(tbl))
	})

	t.Run("duplicate first column demotes to raw", func(t *testing.T) {
		t.Parallel()

		tbl := Table{Rows: [][]string{
			{"Name", "Value"},
			{"dup", "a"},
			{"dup", "b"},
		}}

		assert.Equal(t, tableRaw, classifyTable(tbl))
	})

	t.Run("prose-like first column demotes to raw", func(t *testing.T) {
		t.Parallel()

		tbl := Table{Rows: [][]string{
			{"Description", "Value"},
			{"this is a long sentence", "a"},
		}}

		assert.Equal(t, tableRaw, classifyTable(tbl))
	})

	t.Run("single column is raw", func(t *testing.T) {
		t.Parallel()

		tbl := Table{Rows: [][]string{{"Name"}, {"a"}, {"b"}}}

		assert.Equal(t, tableRaw, classifyTable(tbl))
	})
}

func TestIsIdentifierLike(t *testing.T) {
	t.Parallel()

	assert.True(t, isIdentifierLike("flm-text--secondary"))
	assert.True(t, isIdentifierLike(".hidden"))
	assert.True(t, isIdentifierLike("one two"))
	assert.False(t, isIdentifierLike("one two three four five"))
	assert.False(t, isIdentifierLike("9lives"))
	assert.False(t, isIdentifierLike(""))
}

func TestAllBoolCompressible(t *testing.T) {
	t.Parallel()

	assert.True(t, allBoolCompressible([]string{"Yes", "no", "TRUE"}))
	assert.False(t, allBoolCompressible([]string{"yes", "maybe"}))
	assert.False(t, allBoolCompressible(nil))
}

func TestEmitterRenderTable(t *testing.T) {
	t.Parallel()

	t.Run("property table pushes kv pairs and col header", func(t *testing.T) {
		t.Parallel()

		e := &emitter{cfg: NewConfig()}
		e.renderTable(Table{Rows: [][]string{
			{"Class", "Enabled"},
			{"feature-a", "yes"},
			{"feature-b", "no"},
		}})

		assert.Equal(t, []string{"@root", ":_col=enabled"}, e.out)
		assert.Equal(t, []kvPair{
			{key: "feature-a", value: "Y"},
			{key: "feature-b", value: "N"},
		}, e.kv)
	})

	t.Run("generic second header suppresses _col", func(t *testing.T) {
		t.Parallel()

		e := &emitter{cfg: NewConfig()}
		e.renderTable(Table{Rows: [][]string{
			{"Class", "Description"},
			{"feature-a", "does a thing"},
		}})

		assert.Equal(t, []string{"@root"}, e.out)
	})

	t.Run("raw table emits prefixless rows", func(t *testing.T) {
		t.Parallel()

		e := &emitter{cfg: NewConfig()}
		e.renderTable(Table{Rows: [][]string{
			{"A", "B", "A"},
			{"1", "2", "3"},
		}})

		assert.Equal(t, []string{"@root", ":_cols=a¦b¦a", "1¦2¦3"}, e.out)
	})
}
