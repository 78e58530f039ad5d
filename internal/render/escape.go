package render

import "strings"

// latexReplacer escapes the characters LaTeX assigns special meaning to.
// A single-pass Replacer keeps the replacement text itself from being
// re-escaped.
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeVariables walks a variables tree and escapes every string leaf for
// LaTeX consumption. Map keys, numbers, booleans and nulls pass through
// untouched.
func EscapeVariables(v any) any {
	switch t := v.(type) {
	case string:
		return latexReplacer.Replace(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = EscapeVariables(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = EscapeVariables(vv)
		}
		return out
	default:
		return v
	}
}
