package utils

import "fmt"

// sizeUnits lists the binary units used by FormatFileSize, smallest first.
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// sizeUnitDivisor is the factor between adjacent binary units.
const sizeUnitDivisor = 1024.0

// FormatFileSize converts a byte length into a human-readable string using
// binary units and two decimal places, e.g. 2048 becomes "2.00 KB".
func FormatFileSize(sizeBytes int64) string {
	value := float64(sizeBytes)
	for _, unitName := range sizeUnits[:len(sizeUnits)-1] {
		if value < sizeUnitDivisor {
			return fmt.Sprintf("%.2f %s", value, unitName)
		}
		value /= sizeUnitDivisor
	}
	return fmt.Sprintf("%.2f %s", value, sizeUnits[len(sizeUnits)-1])
}
