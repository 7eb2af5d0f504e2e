package voice

// Rand is the random source used for per-voice drift. *math/rand.Rand
// satisfies it; tests pass a seeded one.
type Rand interface {
	Intn(n int) int
}

// polyDrift rolls a detune offset in volts for a single poly voice.
// Spread is ±500 steps over 1200000, i.e. up to half the drift setting.
func polyDrift(r Rand, cents int) float32 {
	if cents == 0 {
		return 0
	}
	return float32((r.Intn(1000)-500)*cents) / 1200000
}

// unisonDrift rolls a detune offset in volts for a unison voice.
// Spread is ±100 steps over 120000, i.e. up to the full drift setting.
// Keep the two scales separate.
func unisonDrift(r Rand, cents int) float32 {
	if cents == 0 {
		return 0
	}
	return float32(r.Intn(200)-100) * float32(cents) / 120000
}

// fixedRand always returns the same value, used when no source is given
type fixedRand int

func (f fixedRand) Intn(n int) int {
	return int(f) % n
}
