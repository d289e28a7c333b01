package clinic

import "time"

// CivilDate normaliza t a la fecha civil (medianoche UTC) de su propio huso.
// Las fechas de nacimiento y los filtros por fecha se comparan así.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
