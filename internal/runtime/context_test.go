package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	t.Parallel()

	ctx := NewContext(" v1.2.0 ", "2024-01-02")
	assert.Equal(t, "v1.2.0", ctx.Version)
	assert.Equal(t, "v1.2.0 (built 2024-01-02)", ctx.String())

	empty := NewContext("", "")
	assert.Equal(t, "unknown", empty.Version)
	assert.Equal(t, "unknown", empty.BuildDate)

	var nilCtx *Context
	assert.Equal(t, "unknown", nilCtx.String())
}
