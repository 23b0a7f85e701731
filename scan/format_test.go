package scan_test

import (
	"testing"

	"github.com/fwojciec/seoaudit/scan"
	"github.com/stretchr/testify/assert"
)

func TestTruncatePath(t *testing.T) {
	t.Parallel()

	t.Run("returns path unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "site/a.html", scan.TruncatePath("site/a.html", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		result := scan.TruncatePath("site/docs/guide/getting-started.html", 20)
		assert.Equal(t, "...ting-started.html", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, scan.TruncatePath("site/a.html", 0))
		assert.Empty(t, scan.TruncatePath("site/a.html", -1))
	})

	t.Run("returns prefix when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "sit", scan.TruncatePath("site/a.html", 3))
		assert.Equal(t, "a", scan.TruncatePath("a", 2))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", scan.FormatBytes(512))
	assert.Equal(t, "1.5 KB", scan.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", scan.FormatBytes(2*1024*1024))
}
