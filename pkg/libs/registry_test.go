package libs_test

import (
	"sort"
	"testing"

	"github.com/libshub/libs-client/pkg/libs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()
	t.Run("canonical names resolve to themselves", func(t *testing.T) {
		t.Parallel()

		for _, name := range libs.CanonicalNames() {
			resolved, err := libs.Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, name, resolved)
		}
	})

	t.Run("aliases resolve across languages", func(t *testing.T) {
		t.Parallel()

		cases := map[string]string{
			"department":        "departments",
			"מחלקות":            "departments",
			"отделы":            "departments",
			"city":              "cities",
			"ערים":              "cities",
			"города":            "cities",
			"tool type":         "tool-types",
			"типы инструментов": "tool-types",
			"currency":          "currencies",
			"מטבעות":            "currencies",
			"priority":          "priorities",
			"приоритеты":        "priorities",
		}

		for input, expected := range cases {
			resolved, err := libs.Resolve(input)
			require.NoError(t, err, "alias %q", input)
			assert.Equal(t, expected, resolved, "alias %q", input)
		}
	})

	t.Run("lookup is case-insensitive and trims whitespace", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"Departments", "DEPARTMENT", "  departments  ", "\tdepartment\n"} {
			resolved, err := libs.Resolve(input)
			require.NoError(t, err, "input %q", input)
			assert.Equal(t, "departments", resolved)
		}
	})

	t.Run("empty input fails closed", func(t *testing.T) {
		t.Parallel()

		_, err := libs.Resolve("   ")
		require.Error(t, err)

		apiErr := &libs.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.ErrorIs(t, err, libs.ErrEmptyResourceName)
	})

	t.Run("unknown input lists valid resources", func(t *testing.T) {
		t.Parallel()

		_, err := libs.Resolve("widgets")
		require.Error(t, err)

		apiErr := &libs.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Contains(t, apiErr.Message, `"widgets"`)
		assert.Contains(t, apiErr.Message, "departments")
		assert.NotNil(t, apiErr.Context["validResources"])
	})
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	t.Run("term-managed resources support find-terms", func(t *testing.T) {
		t.Parallel()

		desc, err := libs.Describe("departments")
		require.NoError(t, err)

		assert.Equal(t, "/departments", desc.Path)
		assert.True(t, desc.TermManaged)
		assert.True(t, desc.Supports(libs.OpFindTerms))
		assert.True(t, desc.Supports(libs.OpUpdate))
	})

	t.Run("plain resources do not support find-terms", func(t *testing.T) {
		t.Parallel()

		desc, err := libs.Describe("currencies")
		require.NoError(t, err)

		assert.False(t, desc.TermManaged)
		assert.False(t, desc.Supports(libs.OpFindTerms))
		assert.True(t, desc.Supports(libs.OpList))
		assert.True(t, desc.Supports(libs.OpDelete))
	})

	t.Run("alias resolution carries through", func(t *testing.T) {
		t.Parallel()

		desc, err := libs.Describe("город")
		require.NoError(t, err)
		assert.Equal(t, "cities", desc.CanonicalName)
	})
}

func TestCanonicalNames(t *testing.T) {
	t.Parallel()

	names := libs.CanonicalNames()
	assert.Len(t, names, 19)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "departments")
	assert.Contains(t, names, "sub-industries")
}
