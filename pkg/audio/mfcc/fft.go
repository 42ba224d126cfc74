package mfcc

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNotPowerOfTwo is returned by FFT when the input length is not a
	// power of two.
	ErrNotPowerOfTwo = errors.New("mfcc: fft length is not a power of two")

	// ErrLengthMismatch is returned by FFT when the real and imaginary parts
	// differ in length.
	ErrLengthMismatch = errors.New("mfcc: real and imaginary lengths differ")
)

// NextPowerOfTwo returns the smallest power of two >= n. It returns 1 for
// n <= 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// FFT performs an in-place radix-2 Cooley-Tukey FFT.
// real and imag must have the same power-of-2 length; callers with other
// frame sizes zero-pad to NextPowerOfTwo first.
func FFT(real, imag []float64) error {
	n := len(real)
	if len(imag) != n {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, n, len(imag))
	}
	if n <= 1 {
		return nil
	}
	if !isPowerOfTwo(n) {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}
	fft(real, imag)
	return nil
}

// fft is the unchecked transform used on the extraction hot path.
func fft(real, imag []float64) {
	n := len(real)

	// Bit-reversal permutation
	j := 0
	for i := 0; i < n-1; i++ {
		if i < j {
			real[i], real[j] = real[j], real[i]
			imag[i], imag[j] = imag[j], imag[i]
		}
		k := n >> 1
		for k <= j {
			j -= k
			k >>= 1
		}
		j += k
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		angle := -2.0 * math.Pi / float64(size)
		wR := math.Cos(angle)
		wI := math.Sin(angle)

		for start := 0; start < n; start += size {
			tR, tI := 1.0, 0.0
			for k := 0; k < half; k++ {
				u := start + k
				v := u + half

				tmpR := tR*real[v] - tI*imag[v]
				tmpI := tR*imag[v] + tI*real[v]

				real[v] = real[u] - tmpR
				imag[v] = imag[u] - tmpI
				real[u] += tmpR
				imag[u] += tmpI

				tR, tI = tR*wR-tI*wI, tR*wI+tI*wR
			}
		}
	}
}

// DCT computes the first numCoeffs coefficients of the unnormalized type-II
// discrete cosine transform of x:
//
//	X[k] = sum_i x[i] * cos(pi * k * (2i+1) / (2n))
func DCT(x []float64, numCoeffs int) []float64 {
	out := make([]float64, max(numCoeffs, 0))
	dctInto(x, out, nil)
	return out
}

// dctMatrix precomputes the cosine basis for an n-point DCT-II truncated to
// numCoeffs rows.
func dctMatrix(n, numCoeffs int) [][]float64 {
	m := make([][]float64, numCoeffs)
	for k := range m {
		row := make([]float64, n)
		for i := range row {
			row[i] = math.Cos(math.Pi * float64(k) * float64(2*i+1) / float64(2*n))
		}
		m[k] = row
	}
	return m
}

// dctInto writes the DCT-II of x into out. basis may be nil, in which case
// the cosines are evaluated on the fly.
func dctInto(x, out []float64, basis [][]float64) {
	n := len(x)
	for k := range out {
		sum := 0.0
		if basis != nil {
			row := basis[k]
			for i, v := range x {
				sum += v * row[i]
			}
		} else {
			for i, v := range x {
				sum += v * math.Cos(math.Pi*float64(k)*float64(2*i+1)/float64(2*n))
			}
		}
		out[k] = sum
	}
}
