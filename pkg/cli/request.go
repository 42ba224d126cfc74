package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type decodeFunc func([]byte, any) error

// requestDecoders maps file extensions to their decoder. Other extensions
// are tried as YAML, then JSON.
var requestDecoders = map[string]decodeFunc{
	".yaml":    yaml.Unmarshal,
	".yml":     yaml.Unmarshal,
	".json":    json.Unmarshal,
	".msgpack": msgpack.Unmarshal,
	".mp":      msgpack.Unmarshal,
}

// LoadRequest decodes the file at path into v: batch inputs, rule tables or
// saved summaries. A path of "-" reads stdin.
func LoadRequest(path string, v any) error {
	if path == "-" {
		return LoadRequestFromStdin(v)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return ParseRequest(data, path, v)
}

// ParseRequest decodes data with the decoder for filename's extension.
func ParseRequest(data []byte, filename string, v any) error {
	ext := strings.ToLower(filepath.Ext(filename))
	dec, ok := requestDecoders[ext]
	if !ok {
		return decodeText(data, v, yaml.Unmarshal, json.Unmarshal)
	}
	if err := dec(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", strings.TrimPrefix(ext, "."), err)
	}
	return nil
}

// LoadRequestFromStdin decodes stdin as JSON or YAML.
func LoadRequestFromStdin(v any) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return decodeText(data, v, json.Unmarshal, yaml.Unmarshal)
}

// decodeText tries each decoder in turn and reports the first failure when
// none succeeds.
func decodeText(data []byte, v any, decoders ...decodeFunc) error {
	var first error
	for _, dec := range decoders {
		err := dec(data, v)
		if err == nil {
			return nil
		}
		if first == nil {
			first = err
		}
	}
	return fmt.Errorf("failed to parse input (tried YAML and JSON): %w", first)
}
