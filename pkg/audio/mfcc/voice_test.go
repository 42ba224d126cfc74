package mfcc

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	res := &Result{Frames: []Frame{
		{MFCC: []float64{1, 2}, Energy: 1, ZeroCrossingRate: 0.1},
		{MFCC: []float64{3, 4}, Energy: 3, ZeroCrossingRate: 0.3},
	}}
	vf := Summarize(res)

	if vf.NumFrames != 2 {
		t.Errorf("NumFrames = %d, want 2", vf.NumFrames)
	}
	wantMean := []float64{2, 3}
	wantStd := []float64{1, 1}
	for i := range wantMean {
		if math.Abs(vf.MFCCMean[i]-wantMean[i]) > 1e-12 {
			t.Errorf("mean[%d] = %f, want %f", i, vf.MFCCMean[i], wantMean[i])
		}
		// Population std: sqrt(((1-2)^2 + (3-2)^2) / 2) = 1
		if math.Abs(vf.MFCCStd[i]-wantStd[i]) > 1e-12 {
			t.Errorf("std[%d] = %f, want %f", i, vf.MFCCStd[i], wantStd[i])
		}
	}
	if math.Abs(vf.AvgEnergy-2) > 1e-12 {
		t.Errorf("AvgEnergy = %f, want 2", vf.AvgEnergy)
	}
	if math.Abs(vf.AvgZCR-0.2) > 1e-12 {
		t.Errorf("AvgZCR = %f, want 0.2", vf.AvgZCR)
	}
	if math.Abs(vf.AvgPitch-250) > 1e-9 {
		t.Errorf("AvgPitch = %f, want 250", vf.AvgPitch)
	}
}

func TestSummarizeNegativeC1(t *testing.T) {
	res := &Result{Frames: []Frame{{MFCC: []float64{0, -2}}}}
	if got := Summarize(res).AvgPitch; math.Abs(got-200) > 1e-9 {
		t.Errorf("AvgPitch = %f, want 200", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	for _, res := range []*Result{nil, {}} {
		vf := Summarize(res)
		if vf.NumFrames != 0 || len(vf.MFCCMean) != 0 || len(vf.MFCCStd) != 0 {
			t.Errorf("Summarize(empty) = %+v, want zero summary", vf)
		}
		if vf.MFCCMean == nil {
			t.Error("MFCCMean should be an empty slice, not nil")
		}
	}
}

func TestSimilarity(t *testing.T) {
	vf := func(v ...float64) VoiceFeatures { return VoiceFeatures{MFCCMean: v} }

	tests := []struct {
		name string
		a, b VoiceFeatures
		want float64
	}{
		{"identical", vf(1, 2, 3), vf(1, 2, 3), 1},
		{"scaled", vf(1, 2, 3), vf(2, 4, 6), 1},
		{"orthogonal", vf(1, 0), vf(0, 1), 0},
		{"opposite", vf(1, -2), vf(-1, 2), -1},
		{"zero norm", vf(0, 0, 0), vf(1, 2, 3), 0},
		{"length mismatch", vf(1, 2), vf(1, 2, 3), 0},
		{"empty", vf(), vf(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Similarity = %f, want %f", got, tt.want)
			}
			if got < -1 || got > 1 {
				t.Errorf("Similarity = %f outside [-1, 1]", got)
			}
		})
	}
}

func TestSelfSimilarityFromAudio(t *testing.T) {
	res, err := ExtractMFCC(sine(16000, 16000, 220, 0.4), 16000, Options{})
	if err != nil {
		t.Fatalf("ExtractMFCC: %v", err)
	}
	f := Summarize(res)
	if got := Similarity(f, f); math.Abs(got-1) > 1e-9 {
		t.Errorf("self similarity = %f, want 1", got)
	}

	other, err := ExtractMFCC(sine(16000, 16000, 3000, 0.4), 16000, Options{})
	if err != nil {
		t.Fatalf("ExtractMFCC: %v", err)
	}
	g := Summarize(other)
	if got := Similarity(f, g); got >= 1 {
		t.Errorf("different tones similarity = %f, want < 1", got)
	}
	t.Logf("220Hz vs 3kHz similarity = %.4f", Similarity(f, g))
}
