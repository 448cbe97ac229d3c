package libs_test

import (
	"testing"

	"github.com/libshub/libs-client/pkg/libs"
	"github.com/stretchr/testify/assert"
)

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()
	t.Run("defaults apply when unset", func(t *testing.T) {
		t.Parallel()

		values := libs.NewListParams().ToValues()
		assert.Equal(t, "1", values.Get("page"))
		assert.Equal(t, "10", values.Get("limit"))
		assert.False(t, values.Has("search"))
	})

	t.Run("explicit values are forwarded", func(t *testing.T) {
		t.Parallel()

		values := libs.NewListParams().WithPage(3).WithLimit(50).WithSearch("eng").ToValues()
		assert.Equal(t, "3", values.Get("page"))
		assert.Equal(t, "50", values.Get("limit"))
		assert.Equal(t, "eng", values.Get("search"))
	})

	t.Run("non-positive pagination falls back to defaults", func(t *testing.T) {
		t.Parallel()

		values := libs.NewListParams().WithPage(-1).WithLimit(0).ToValues()
		assert.Equal(t, "1", values.Get("page"))
		assert.Equal(t, "10", values.Get("limit"))
	})
}
