// Package systems holds the per-step engines of the player: the frame
// playback buffer, the particle field and the play/pause controller.
package systems

// Wrap teleports a coordinate that left [-half, half) to the opposite edge.
// The checks run in order, so a value below -half lands on +half and is then
// folded to -half by the second check; the result is always in [-half, half).
func Wrap(v, half float32) float32 {
	if v < -half {
		v = half
	}
	if v >= half {
		v = -half
	}
	return v
}
