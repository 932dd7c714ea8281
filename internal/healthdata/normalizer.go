package healthdata

import (
	"math"
	"regexp"
	"time"
)

var bareDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// DailyTotals сворачивает образцы в суммы по календарным дням.
// Ключ — локальный день начала образца; отрицательные и нечисловые
// значения считаются нулём.
func DailyTotals(samples []Sample, kind Kind) map[string]float64 {
	totals := make(map[string]float64)
	for _, s := range samples {
		day, _, ok := sampleDay(s.Start)
		if !ok {
			continue
		}
		totals[day] += clampValue(sampleValue(s, kind))
	}
	return totals
}

// HourlyBins раскладывает образцы одного дня по 24 часовым корзинам.
// Образцы вне запрошенного дня игнорируются.
func HourlyBins(samples []Sample, kind Kind, day string) [24]float64 {
	var bins [24]float64
	for _, s := range samples {
		sampleDayKey, hour, ok := sampleDay(s.Start)
		if !ok || sampleDayKey != day {
			continue
		}
		bins[hour] += clampValue(sampleValue(s, kind))
	}
	return bins
}

// BinsFromAggregate принимает уже агрегированный почасовой ряд.
// Всё, что не ровно 24 значения, заменяется нулевым рядом: кривое
// выравнивание хуже пустого графика.
func BinsFromAggregate(values []float64) [24]float64 {
	var bins [24]float64
	if len(values) != len(bins) {
		return bins
	}
	for i, v := range values {
		bins[i] = clampValue(v)
	}
	return bins
}

// SpanHours возвращает длительность интервала в часах.
func SpanHours(start, end string) float64 {
	from, okFrom := parseTimestamp(start)
	to, okTo := parseTimestamp(end)
	if !okFrom || !okTo || to.Before(from) {
		return 0
	}
	return to.Sub(from).Hours()
}

// sampleDay возвращает ключ дня и локальный час начала образца.
// Голая дата YYYY-MM-DD используется как есть: парсить её как полночь
// UTC значит уехать на сутки в западных поясах.
func sampleDay(start string) (day string, hour int, ok bool) {
	if bareDatePattern.MatchString(start) {
		return start, 0, true
	}
	t, parsed := parseTimestamp(start)
	if !parsed {
		return "", 0, false
	}
	local := t.Local()
	return local.Format("2006-01-02"), local.Hour(), true
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func sampleValue(s Sample, kind Kind) float64 {
	if kind == KindSleep && s.Value == 0 && s.End != "" {
		return SpanHours(s.Start, s.End)
	}
	return s.Value
}

func clampValue(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
