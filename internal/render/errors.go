package render

// TypesetError is returned when the typesetter exits non-zero. Stdout holds
// the process output verbatim; xelatex reports its errors there rather than
// on stderr.
type TypesetError struct {
	Stdout string
}

func (e *TypesetError) Error() string {
	return "typesetting failed:\n" + e.Stdout
}
