package capture

import (
	"encoding/binary"
	"math"
)

// Amplitude returns the RMS level of little-endian signed 16-bit PCM,
// scaled to [0,1]. A trailing odd byte is ignored.
func Amplitude(pcm []byte) float64 {
	n := len(pcm) / 2
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		v := float64(int16(binary.LittleEndian.Uint16(pcm[2*i:]))) / 32768
		sum += v * v
	}
	return math.Min(1, math.Sqrt(sum/float64(n)))
}
