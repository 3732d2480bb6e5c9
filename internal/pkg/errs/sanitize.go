package errs

import (
	"fmt"
	"strings"
)

// sanitize renders a value for an error message on a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}
