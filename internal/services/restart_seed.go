package services

// RestartSeed returns the rng seed of restart number stream. Restart 0 uses
// seed itself so a single-restart plan matches a plain seeded run; later
// restarts get SplitMix64-mixed seeds that are uncorrelated with each other.
func RestartSeed(seed int64, stream int) int64 {
	if stream == 0 {
		return seed
	}
	x := uint64(seed) ^ (uint64(stream) + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
