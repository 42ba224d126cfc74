package mfcc

import "math"

// HammingWindow generates a Hamming window of the given length.
func HammingWindow(n int) []float64 {
	if n <= 0 {
		return nil
	}
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// HzToMel converts frequency in Hz to the HTK mel scale.
func HzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

// MelToHz converts a mel scale frequency back to Hz.
func MelToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// FilterBank is a set of triangular mel filters, [numFilters][fftSize/2+1].
type FilterBank [][]float64

// NumFilters returns the number of filters in the bank.
func (fb FilterBank) NumFilters() int { return len(fb) }

// NumBins returns the number of spectrum bins each filter covers.
func (fb FilterBank) NumBins() int {
	if len(fb) == 0 {
		return 0
	}
	return len(fb[0])
}

// Apply computes the weighted sum of power for every filter and writes it to
// dst, which must have NumFilters entries. Sums below floor are clamped to it.
func (fb FilterBank) Apply(power, dst []float64, floor float64) {
	for m, filter := range fb {
		sum := 0.0
		n := min(len(filter), len(power))
		for k := 0; k < n; k++ {
			if w := filter[k]; w != 0 {
				sum += w * power[k]
			}
		}
		if sum < floor {
			sum = floor
		}
		dst[m] = sum
	}
}

// BuildFilterBank creates the mel filterbank matrix.
//
// numFilters+2 points are spaced uniformly in mel space between lowFreq and
// highFreq and mapped to FFT bins with floor((fftSize+1)*hz/sampleRate).
// Filter i rises from bin[i] to bin[i+1] and falls to bin[i+2]. When two
// neighbouring bins collide the corresponding slope has zero width and
// contributes no weight. A highFreq <= 0 means sampleRate/2.
func BuildFilterBank(numFilters, fftSize, sampleRate int, lowFreq, highFreq float64) FilterBank {
	if numFilters <= 0 || fftSize <= 0 || sampleRate <= 0 {
		return nil
	}
	if highFreq <= 0 {
		highFreq = float64(sampleRate) / 2
	}
	halfFFT := fftSize/2 + 1
	lowMel := HzToMel(lowFreq)
	highMel := HzToMel(highFreq)

	bins := make([]int, numFilters+2)
	step := (highMel - lowMel) / float64(numFilters+1)
	for i := range bins {
		hz := MelToHz(lowMel + float64(i)*step)
		bins[i] = int(math.Floor(float64(fftSize+1) * hz / float64(sampleRate)))
	}

	bank := make(FilterBank, numFilters)
	for m := 0; m < numFilters; m++ {
		filter := make([]float64, halfFFT)
		left, center, right := bins[m], bins[m+1], bins[m+2]

		if center > left {
			width := float64(center - left)
			for k := max(left, 0); k < center && k < halfFFT; k++ {
				filter[k] = float64(k-left) / width
			}
		}
		if right > center {
			width := float64(right - center)
			for k := max(center, 0); k < right && k < halfFFT; k++ {
				filter[k] = float64(right-k) / width
			}
		}
		bank[m] = filter
	}
	return bank
}
