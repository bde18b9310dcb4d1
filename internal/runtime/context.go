// Package runtime contains runtime metadata separate from user configuration
package runtime

import "strings"

// Context contains build metadata injected at startup. It is not part of the
// configuration system.
type Context struct {
	// Version holds the Git version tag from build
	Version string

	// BuildDate is the time when the binary was built
	BuildDate string
}

// NewContext creates a Context, substituting "unknown" for empty values
func NewContext(version, buildDate string) *Context {
	ctx := &Context{
		Version:   strings.TrimSpace(version),
		BuildDate: strings.TrimSpace(buildDate),
	}
	if ctx.Version == "" {
		ctx.Version = "unknown"
	}
	if ctx.BuildDate == "" {
		ctx.BuildDate = "unknown"
	}
	return ctx
}

// String renders the version line shown by --version
func (c *Context) String() string {
	if c == nil {
		return "unknown"
	}
	return c.Version + " (built " + c.BuildDate + ")"
}
