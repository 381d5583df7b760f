//go:build !darwin

package eventcatcher

// No sleep notifications outside darwin, the keepalive timeout catches a
// stalled connection instead.
func sleeper(listen chan bool) {}
