package mfcc

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// VoiceFeatures summarises an extraction for rough speaker comparison.
type VoiceFeatures struct {
	NumFrames int       `json:"num_frames" yaml:"num_frames" msgpack:"num_frames"`
	MFCCMean  []float64 `json:"mfcc_mean" yaml:"mfcc_mean" msgpack:"mfcc_mean"`
	MFCCStd   []float64 `json:"mfcc_std" yaml:"mfcc_std" msgpack:"mfcc_std"`
	AvgEnergy float64   `json:"avg_energy" yaml:"avg_energy" msgpack:"avg_energy"`
	AvgZCR    float64   `json:"avg_zcr" yaml:"avg_zcr" msgpack:"avg_zcr"`

	// AvgPitch is |mean(c1)|*50 + 100. It is a display placeholder derived
	// from the first cepstral coefficient, not a pitch detector.
	AvgPitch float64 `json:"avg_pitch" yaml:"avg_pitch" msgpack:"avg_pitch"`
}

// Summarize computes per-coefficient mean and population standard deviation
// across frames together with mean energy and zero-crossing rate. An empty
// result yields a zero VoiceFeatures with empty vectors.
func Summarize(r *Result) VoiceFeatures {
	n := r.NumFrames()
	if n == 0 {
		return VoiceFeatures{MFCCMean: []float64{}, MFCCStd: []float64{}}
	}

	numCoeffs := len(r.Frames[0].MFCC)
	vf := VoiceFeatures{
		NumFrames: n,
		MFCCMean:  make([]float64, numCoeffs),
		MFCCStd:   make([]float64, numCoeffs),
	}

	column := make([]float64, n)
	for c := 0; c < numCoeffs; c++ {
		for f := range r.Frames {
			column[f] = r.Frames[f].MFCC[c]
		}
		vf.MFCCMean[c], vf.MFCCStd[c] = stat.PopMeanStdDev(column, nil)
	}

	energy := make([]float64, n)
	zcr := make([]float64, n)
	for f, fr := range r.Frames {
		energy[f] = fr.Energy
		zcr[f] = fr.ZeroCrossingRate
	}
	vf.AvgEnergy = stat.Mean(energy, nil)
	vf.AvgZCR = stat.Mean(zcr, nil)

	c1 := 0.0
	if numCoeffs > 1 {
		c1 = vf.MFCCMean[1]
	}
	vf.AvgPitch = math.Abs(c1)*50 + 100
	return vf
}

// Similarity returns the cosine similarity of the two MFCC mean vectors,
// in [-1, 1]. It returns 0 when either vector has zero norm or the lengths
// differ.
func Similarity(a, b VoiceFeatures) float64 {
	if len(a.MFCCMean) == 0 || len(a.MFCCMean) != len(b.MFCCMean) {
		return 0
	}
	na := floats.Norm(a.MFCCMean, 2)
	nb := floats.Norm(b.MFCCMean, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	cos := floats.Dot(a.MFCCMean, b.MFCCMean) / (na * nb)
	return math.Max(-1, math.Min(1, cos))
}
