package render

import (
	"github.com/flosch/pongo2/v6"
	"github.com/pkg/errors"
)

// Expand applies variables to a template string and returns the result.
// When escape is true, string leaves of the variables are LaTeX-escaped
// before substitution. Expansion is a pure function of its inputs.
func Expand(template string, variables any, escape bool) (string, error) {
	ctx, err := templateContext(variables, escape)
	if err != nil {
		return "", err
	}
	tpl, err := pongo2.FromString(template)
	if err != nil {
		return "", errors.Wrap(err, "parse template")
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", errors.Wrap(err, "expand template")
	}
	return out, nil
}

func templateContext(variables any, escape bool) (pongo2.Context, error) {
	if escape {
		variables = EscapeVariables(variables)
	}
	switch t := variables.(type) {
	case nil:
		return pongo2.Context{}, nil
	case map[string]any:
		return pongo2.Context(t), nil
	default:
		return nil, errors.New("variables must be a JSON object")
	}
}
