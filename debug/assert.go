package debug

import "fmt"

// Assert does nothing unless the debug build tag is set, in which case it
// panics if the condition is false. It guards internal invariants, for
// example mixing elements of different fields.
func Assert(condition bool, format string, args ...interface{}) {
	if Debug && !condition {
		panic(fmt.Sprintf(format, args...))
	}
}
