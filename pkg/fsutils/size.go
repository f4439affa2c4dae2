package fsutils

import "strconv"

var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// GetSizeShortText rounds size to the nearest whole unit, topping out at TB.
func GetSizeShortText(size int64) string {
	exp := 0
	div := int64(1)
	for exp < len(sizeUnits)-1 && size >= div*1024 {
		div *= 1024
		exp++
	}
	val := (size + div/2) / div
	if exp > 0 && exp < len(sizeUnits)-1 && val >= 1024 {
		val /= 1024
		exp++
	}
	if exp == 0 {
		val = size
	}
	return strconv.FormatInt(val, 10) + sizeUnits[exp]
}
