// Package template подставляет значения в шаблоны вида "Скидка {{value}}%".
package template

import "strings"

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Interpolate заменяет плейсхолдеры {{name}} значениями из vars за один проход.
// Подставленный текст повторно не просматривается, поэтому значение,
// содержащее "{{...}}", выводится как есть. Неизвестные плейсхолдеры сохраняются.
func Interpolate(tmpl string, vars map[string]string) string {
	if !strings.Contains(tmpl, openDelim) {
		return tmpl
	}

	var b strings.Builder
	b.Grow(len(tmpl))

	rest := tmpl
	for {
		start := strings.Index(rest, openDelim)
		if start < 0 {
			b.WriteString(rest)
			break
		}

		end := strings.Index(rest[start+len(openDelim):], closeDelim)
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start + len(openDelim)

		b.WriteString(rest[:start])

		name := strings.TrimSpace(rest[start+len(openDelim) : end])
		if value, ok := vars[name]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(rest[start : end+len(closeDelim)])
		}

		rest = rest[end+len(closeDelim):]
	}

	return b.String()
}
