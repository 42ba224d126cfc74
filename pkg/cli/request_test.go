package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

type pairs struct {
	Pairs []struct {
		Reference  string `json:"reference" yaml:"reference"`
		Hypothesis string `json:"hypothesis" yaml:"hypothesis"`
	} `json:"pairs" yaml:"pairs"`
}

func TestLoadRequest(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"batch.yaml": "pairs:\n  - reference: 오늘 날씨\n    hypothesis: 오늘 날씨\n",
		"batch.json": `{"pairs":[{"reference":"a b","hypothesis":"a c"}]}`,
		"batch.txt":  "pairs:\n  - reference: x\n    hypothesis: y\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		var v pairs
		if err := LoadRequest(path, &v); err != nil {
			t.Errorf("LoadRequest(%s) error: %v", name, err)
			continue
		}
		if len(v.Pairs) != 1 || v.Pairs[0].Reference == "" {
			t.Errorf("LoadRequest(%s) = %+v", name, v)
		}
	}
}

func TestLoadRequest_Errors(t *testing.T) {
	var v pairs
	if err := LoadRequest(filepath.Join(t.TempDir(), "missing.yaml"), &v); err == nil {
		t.Error("LoadRequest should fail for a missing file")
	}
	if err := ParseRequest([]byte("{not json"), "x.json", &v); err == nil {
		t.Error("ParseRequest should fail for malformed JSON")
	}
	if err := ParseRequest([]byte("pairs: [a"), "x.yaml", &v); err == nil {
		t.Error("ParseRequest should fail for malformed YAML")
	}
	if err := ParseRequest([]byte("pairs: [a"), "x.txt", &v); err == nil {
		t.Error("ParseRequest should fail when neither YAML nor JSON parses")
	}
}

func TestLoadRequest_Msgpack(t *testing.T) {
	type summary struct {
		NumFrames int       `msgpack:"num_frames"`
		MFCCMean  []float64 `msgpack:"mfcc_mean"`
	}
	data, err := msgpack.Marshal(map[string]any{
		"file":       "a.wav",
		"num_frames": 3,
		"mfcc_mean":  []float64{1, 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "voice.msgpack")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	var v summary
	if err := LoadRequest(path, &v); err != nil {
		t.Fatalf("LoadRequest: %v", err)
	}
	if v.NumFrames != 3 || len(v.MFCCMean) != 2 || v.MFCCMean[1] != 2 {
		t.Errorf("decoded = %+v", v)
	}
}

func TestLoadRequest_Stdin(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = old }()

	w.WriteString(`{"pairs":[{"reference":"a","hypothesis":"b"}]}`)
	w.Close()

	var v pairs
	if err := LoadRequest("-", &v); err != nil {
		t.Fatalf("LoadRequest(-): %v", err)
	}
	if len(v.Pairs) != 1 || v.Pairs[0].Hypothesis != "b" {
		t.Errorf("decoded = %+v", v)
	}
}
