//go:build debug

package param

import "fmt"

// failFast panics on invalid ids when built with the 'debug' tag so that
// addressing bugs surface at the call site during development.
func failFast(op string, id, count int) {
	panic(fmt.Sprintf("param: %s: id %d out of range [0,%d)", op, id, count))
}
