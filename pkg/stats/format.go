package stats

import (
	"io"
	"strconv"
	"strings"
)

// Separator joins a key and its value in formatted output.
type Separator string

const (
	SeparatorTab   Separator = "\t"
	SeparatorColon Separator = ": "
)

// Precision is the number of fractional digits used for floating fields.
const Precision = 5

// Field names in output order.
const (
	KeyCount  = "count"
	KeySum    = "sum"
	KeyMean   = "mean"
	KeyUpper  = "upper"
	KeyLower  = "lower"
	KeyMedian = "median"
	KeyStdDev = "stddev"
)

// Field is one rendered key/value pair.
type Field struct {
	Key   string
	Value string
}

// Fields renders s as key/value pairs in fixed order. Keys of percentile
// statistics carry a "_<p>" suffix.
func Fields(s Statistics) []Field {
	suffix := ""
	if !s.IsGlobal() {
		suffix = "_" + strconv.Itoa(s.Percentile)
	}
	return []Field{
		{KeyCount + suffix, strconv.Itoa(s.Count)},
		{KeySum + suffix, FormatValue(s.Sum)},
		{KeyMean + suffix, FormatValue(s.Mean)},
		{KeyUpper + suffix, FormatValue(s.Upper)},
		{KeyLower + suffix, FormatValue(s.Lower)},
		{KeyMedian + suffix, FormatValue(s.Median)},
		{KeyStdDev + suffix, FormatValue(s.StdDev)},
	}
}

// FormatValue renders v with Precision fractional digits.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', Precision, 64)
}

// Formatter renders bundles as newline terminated key/value lines.
type Formatter struct {
	sep Separator
}

// NewFormatter returns a Formatter joining keys and values with sep.
func NewFormatter(sep Separator) Formatter {
	return Formatter{sep: sep}
}

// Separator returns the configured separator.
func (f Formatter) Separator() Separator {
	return f.sep
}

// Line renders a single field.
func (f Formatter) Line(field Field) string {
	return field.Key + string(f.sep) + field.Value + "\n"
}

// FormatStatistics renders the seven lines of s.
func (f Formatter) FormatStatistics(s Statistics) string {
	var sb strings.Builder
	for _, field := range Fields(s) {
		sb.WriteString(f.Line(field))
	}
	return sb.String()
}

// Format renders the global statistics of b followed by each percentile.
func (f Formatter) Format(b *Bundle) string {
	var sb strings.Builder
	for _, s := range b.All() {
		sb.WriteString(f.FormatStatistics(s))
	}
	return sb.String()
}

// Write writes Format(b) to w.
func (f Formatter) Write(w io.Writer, b *Bundle) error {
	_, err := io.WriteString(w, f.Format(b))
	return err
}
