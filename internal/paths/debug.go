//go:build debug

package paths

// Debug builds (`go build -tags debug`) keep all config and data under a
// repo-local directory instead of the platform XDG dirs.
func init() {
	debugAssertions = true
}
