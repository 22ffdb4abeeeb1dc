package dbg

import "github.com/biogo/biogo/alphabet"

// ReverseComplement returns the reverse complement of a nucleotide
// sequence using biogo's DNA alphabet complement table, replacing the
// teacher's hand-rolled 2-bit BntRev lookup (GetReverseCompletBytes in
// constructdbg.go) with the ecosystem equivalent.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, b := range seq {
		c, ok := alphabet.DNA.Complement(alphabet.Letter(b))
		if !ok {
			c = alphabet.Letter(b)
		}
		out[len(seq)-1-i] = byte(c)
	}
	return out
}

// BytesEqual is a thin byte-slice equality helper, adapted from
// utils.go's BytesEqual2 (the unsafe-pointer variant is dropped: sequence
// comparisons here are not hot-loop enough to justify the aliasing risk).
func BytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Hamming returns the Hamming distance over the shared prefix of a and b,
// matching MismatchTipCondition::Hamming in
// original_source/assembler/src/include/simplification/tip_clipper.hpp.
func Hamming(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	d := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// OverlapMerge concatenates seq(a) and seq(b), which are assumed to share
// a k-length overlap (a's last k bases equal b's first k bases), into the
// sequence of the compressed edge: seq(a) followed by seq(b)'s bases past
// the shared k-mer. This is the Go shape of the compression algorithm in
// spec section 4.1.
func OverlapMerge(a, b []byte, k int) []byte {
	out := make([]byte, 0, len(a)+len(b)-k)
	out = append(out, a...)
	out = append(out, b[k:]...)
	return out
}

// MaxBaseFraction returns the fraction of bases in seq[start:end] equal to the
// most frequent of A/T/C/G, used by the ATContent condition (spec section
// 4.3), matching ATCondition::Check in tip_clipper.hpp.
func MaxBaseFraction(seq []byte, start, end int) float64 {
	if end <= start {
		return 0
	}
	var counts [256]int
	for i := start; i < end; i++ {
		counts[seq[i]]++
	}
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	return float64(max) / float64(end-start)
}
