// Package fatal provides a single helper for aborting on precondition
// violations that indicate a programmer error rather than bad external
// input. It is used sparingly, only where the distilled specification
// this module implements requires a hard assertion (see ReadMapper.MapRead).
package fatal

import "fmt"

// Invariant panics with the formatted message if cond is false.
func Invariant(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
