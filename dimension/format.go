package dimension

import "strconv"

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
