package format

import "fmt"

var byteUnits = [...]string{"B", "KiB", "MiB", "GiB", "TiB"}

// FormatBytes renders a byte count with binary prefixes and one decimal place.
// The value is divided by 1024 until it drops below 1024 or the TiB unit is
// reached, so very large values stay in TiB ("1943.8 TiB").
//
// Parameters:
//   - n: The number of bytes.
//
// Returns:
//   - string: The formatted quantity, e.g. "20.4 MiB".
func FormatBytes(n uint64) string {
	v := float64(n)
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}

// FormatRate renders a throughput in bytes per second.
func FormatRate(bytesPerSecond uint64) string {
	return FormatBytes(bytesPerSecond) + "/s"
}
