//go:build !unix

package merge

// Windows reports cross-volume renames with a different error code; a
// failed rename there simply falls through to the caller.
func isCrossDevice(err error) bool {
	return false
}
