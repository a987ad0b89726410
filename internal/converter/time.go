package converter

import "time"

// toMillis - время в миллисекундах, нулевое время дает 0
func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
