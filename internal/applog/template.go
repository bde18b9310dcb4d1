package applog

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/wallyouneed/wallyouneed/internal/logger"
)

// reservedKeys are written by the log pipeline itself; placeholders with these
// names are stored under arg_<name> so every JSON line has unique keys.
var reservedKeys = map[string]struct{}{
	slog.TimeKey:    {},
	slog.LevelKey:   {},
	slog.MessageKey: {},
	slog.SourceKey:  {},
	"module":        {},
	"error":         {},
	"error_type":    {},
	"stack":         {},
	"event_type":    {},
}

// renderTemplate substitutes {Name} placeholders in tmpl with args in order of
// appearance and returns the rendered message with one field per bound
// placeholder. Args without a placeholder become fields arg<N>. Placeholders
// without an arg are left verbatim. {{ and }} render as literal braces.
//
// A leading @ or $ on the name and any :format or ,alignment suffix are accepted
// but only the bare name is used as the field key.
func renderTemplate(tmpl string, args []any) (string, []logger.Field) {
	if len(args) == 0 && !strings.ContainsAny(tmpl, "{}") {
		return tmpl, nil
	}

	var (
		b      strings.Builder
		fields []logger.Field
		next   int
	)
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				b.WriteString(tmpl[i:])
				i = len(tmpl)
				continue
			}
			token := tmpl[i+1 : i+1+end]
			name, ok := placeholderName(token)
			if !ok {
				b.WriteByte(c)
				continue
			}
			if next >= len(args) {
				b.WriteString(tmpl[i : i+end+2])
			} else {
				fmt.Fprintf(&b, "%v", args[next])
				fields = append(fields, argField(fieldKey(name), args[next]))
				next++
			}
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}

	for ; next < len(args); next++ {
		fields = append(fields, argField("arg"+strconv.Itoa(next), args[next]))
	}

	return b.String(), fields
}

// placeholderName extracts the field key from the text between braces
func placeholderName(token string) (string, bool) {
	name := strings.TrimLeft(token, "@$")
	if i := strings.IndexAny(name, ":,"); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "", false
	}
	for _, r := range name {
		if r != '_' && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9') {
			return "", false
		}
	}
	return name, true
}

func fieldKey(name string) string {
	if _, ok := reservedKeys[name]; ok {
		return "arg_" + name
	}
	return name
}

func argField(key string, value any) logger.Field {
	switch v := value.(type) {
	case error:
		return logger.String(key, v.Error())
	case fmt.Stringer:
		return logger.String(key, v.String())
	default:
		return logger.Any(key, v)
	}
}
