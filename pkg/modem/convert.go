package modem

// Convert []float64 to []int32, scaled by amplitude and clipped to [-1, 1]
func Float64ToInt32(input []float64, amplitude float64) []int32 {
	output := make([]int32, len(input))
	for i, v := range input {
		output[i] = int32(clip(v*amplitude) * 0x7fffffff)
	}
	return output
}

// Convert []float64 to 16-bit PCM held in ints
func Float64ToPCM16(input []float64) []int {
	output := make([]int, len(input))
	for i, v := range input {
		output[i] = int(clip(v) * 0x7fff)
	}
	return output
}

func clip(v float64) float64 {
	return max(-1, min(1, v))
}
