package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// referenceSuffixLen is the number of random characters appended to the date
// prefix. Five base-32 characters give ~33 million distinct suffixes per day.
const referenceSuffixLen = 5

const referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUV"

// NewReference generates the opaque reference identifying one request. The
// format is `<YYYYMMDD>-<random>`; the charset is restricted to digits,
// uppercase letters and the hyphen so the reference survives the barcode
// encoding unchanged.
func NewReference(now time.Time) string {
	id := uuid.New()

	var suffix strings.Builder
	suffix.Grow(referenceSuffixLen)
	for i := 0; i < referenceSuffixLen; i++ {
		suffix.WriteByte(referenceAlphabet[int(id[i])%len(referenceAlphabet)])
	}

	return now.Format("20060102") + "-" + suffix.String()
}
