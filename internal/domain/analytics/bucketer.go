package analytics

import (
	"fmt"
	"time"
)

// Bucket es un rango de fechas civiles [Start, End], ambos inclusive.
type Bucket struct {
	Start time.Time
	End   time.Time
	Label string
}

// Until es el instante exclusivo que cierra el bucket (medianoche del día siguiente a End).
func (b Bucket) Until() time.Time {
	return b.End.AddDate(0, 0, 1)
}

// days cuenta los días civiles del bucket.
func (b Bucket) days() int {
	n := 0
	for d := b.Start; !d.After(b.End); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

// BucketWidth aplica la política de ancho según el largo de la ventana.
func BucketWidth(days int) int {
	switch {
	case days <= 30:
		return 1
	case days <= 90:
		return 7
	case days <= 180:
		return 14
	default:
		return 30
	}
}

// DefaultMaxDays es la ventana más larga que acepta Split si no se configura otra.
const DefaultMaxDays = 3650

// Bucketer parte una ventana de días hacia atrás desde hoy.
type Bucketer struct {
	loc     *time.Location
	locale  Locale
	maxDays int
}

func NewBucketer(loc *time.Location, locale Locale) Bucketer {
	if loc == nil {
		loc = time.UTC
	}
	return Bucketer{loc: loc, locale: locale, maxDays: DefaultMaxDays}
}

// WithMaxDays devuelve una copia con otro tope de ventana. n <= 0 deja el actual.
func (b Bucketer) WithMaxDays(n int) Bucketer {
	if n > 0 {
		b.maxDays = n
	}
	return b
}

// Today trunca now a la medianoche local.
func (b Bucketer) Today(now time.Time) time.Time {
	y, m, d := now.In(b.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, b.loc)
}

// Split devuelve los buckets de los últimos `days` días (hoy incluido), del más
// antiguo al más reciente. El bucket más antiguo absorbe el resto cuando days
// no es múltiplo del ancho y siempre lleva como etiqueta el rango "inicio - fin".
func (b Bucketer) Split(now time.Time, days int) ([]Bucket, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be a positive integer", ErrInvalidParams)
	}
	if days > b.maxDays {
		return nil, fmt.Errorf("%w: days must not exceed %d", ErrInvalidParams, b.maxDays)
	}

	width := BucketWidth(days)
	today := b.Today(now)
	oldest := today.AddDate(0, 0, -(days - 1))

	var out []Bucket
	for offset := 0; ; offset += width {
		end := today.AddDate(0, 0, -offset)
		if days-offset <= width {
			label := b.label(width, oldest) + " - " + b.label(width, end)
			out = append(out, Bucket{Start: oldest, End: end, Label: label})
			break
		}
		start := end.AddDate(0, 0, -(width - 1))
		out = append(out, Bucket{Start: start, End: end, Label: b.label(width, end)})
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (b Bucketer) label(width int, t time.Time) string {
	switch width {
	case 1, 7:
		return b.locale.DayMonth(t)
	case 14:
		return b.locale.Month(t.Month())
	default:
		return b.locale.MonthShortYear(t)
	}
}
