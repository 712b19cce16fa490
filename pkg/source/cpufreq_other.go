//go:build !linux

package source

// readFrequency has no per-core source outside Linux; callers fall back
// to the frequency reported by gopsutil.
func readFrequency(core int) (current, peak float64, ok bool) {
	return 0, 0, false
}
