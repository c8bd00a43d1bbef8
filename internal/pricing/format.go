package pricing

import (
	"fmt"
	"strconv"
)

// FormatEUR renders cents as a French-style amount: thousands separated by
// spaces, comma decimals, whole-euro amounts without decimals.
// 26348300 -> "263 483 €", 377350 -> "3 773,50 €".
func FormatEUR(c Cents) string {
	neg := c < 0
	if neg {
		c = -c
	}
	euros := int64(c) / 100
	cents := int64(c) % 100

	s := strconv.FormatInt(euros, 10)
	var grouped []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, ' ')
		}
		grouped = append(grouped, d)
	}

	out := string(grouped)
	if cents != 0 {
		out = fmt.Sprintf("%s,%02d", out, cents)
	}
	if neg {
		out = "-" + out
	}
	return out + " €"
}
