package store

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for content-addressed run identity.
// Version suffix enables future algorithm migration.
const domainRun = "qflip/run/v1"

// RunID computes the content-addressed ID of a record: SHA-256 over the
// domain prefix and every field in a fixed order, null-separated so
// field boundaries are unambiguous. String fields are NFC-normalized
// first; profile names arrive from CUE files and endpoints whose
// unicode encoding is not under our control.
func RunID(r Run) string {
	h := sha256.New()
	io.WriteString(h, domainRun)
	h.Write([]byte{0x00})

	for _, field := range []string{
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
		norm.NFC.String(r.Target),
		norm.NFC.String(r.Device),
		norm.NFC.String(r.Mode),
		strconv.Itoa(r.Shots),
		intsField(r.Qubits),
		norm.NFC.String(strings.Join(r.QubitNames, ",")),
		r.Desired,
		norm.NFC.String(r.JobID),
		norm.NFC.String(r.CalibrationSet),
		countsField(r.Counts),
		strconv.FormatFloat(r.Probability, 'g', -1, 64),
		norm.NFC.String(r.Failure),
	} {
		io.WriteString(h, field)
		h.Write([]byte{0x00})
	}

	return hex.EncodeToString(h.Sum(nil))
}

func intsField(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

// countsField serializes a histogram with sorted keys so equal
// histograms always hash identically.
func countsField(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.Itoa(counts[k])
	}
	return strings.Join(parts, ",")
}
