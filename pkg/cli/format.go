package cli

import (
	"fmt"
	"strconv"
	"time"
)

// FormatDuration renders an audio duration: milliseconds below one second,
// seconds with two decimals below one minute, minutes and seconds above.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d / time.Minute)
	secs := (d - time.Duration(mins)*time.Minute).Seconds()
	return fmt.Sprintf("%dm%05.2fs", mins, secs)
}

var byteUnits = [...]string{"B", "KiB", "MiB", "GiB", "TiB"}

// FormatBytes renders a size in binary units, e.g. "1.5 KiB".
func FormatBytes(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}
	v := float64(n)
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}

// FormatHz renders a sample rate, e.g. "16 kHz" or "44.1 kHz".
func FormatHz(rate int) string {
	if rate < 1000 {
		return strconv.Itoa(rate) + " Hz"
	}
	return strconv.FormatFloat(float64(rate)/1000, 'f', -1, 64) + " kHz"
}
