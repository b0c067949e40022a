package letter

import "strings"

// The barcode is a three-of-nine style symbology: every supported character
// maps to nine elements of which exactly three are wide. Patterns are derived
// from the character's charset index through the combinatorial number system,
// which makes the mapping injective by construction. The background renderer
// draws the bars; decoding is not a concern of this library.

const barcodeCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. "

const (
	barcodeElements = 9
	barcodeWide     = 3
)

// Barcode encodes a reference string into a stable wide/narrow element
// sequence ('w'/'n'), with characters separated by a narrow gap and the whole
// payload wrapped in start/stop guards. Distinct references over the
// supported charset always produce distinct encodings. Characters outside the
// charset are skipped.
func Barcode(reference string) string {
	if reference == "" {
		return ""
	}

	guard := barcodePattern(len(barcodeCharset))

	parts := make([]string, 0, len(reference)+2)
	parts = append(parts, guard)
	for _, c := range strings.ToUpper(reference) {
		idx := strings.IndexRune(barcodeCharset, c)
		if idx < 0 {
			continue
		}
		parts = append(parts, barcodePattern(idx))
	}
	parts = append(parts, guard)

	return strings.Join(parts, "n")
}

// barcodePattern expands index n into the n-th 9-element combination with
// exactly three wide elements, ordered colexicographically.
func barcodePattern(n int) string {
	var out [barcodeElements]byte
	for i := range out {
		out[i] = 'n'
	}

	remaining := n
	for k := barcodeWide; k >= 1; k-- {
		// Largest position p with C(p, k) <= remaining.
		p := k - 1
		for binomial(p+1, k) <= remaining {
			p++
		}
		remaining -= binomial(p, k)
		out[p] = 'w'
	}
	return string(out[:])
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}
