package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agenticgokit/tales/internal/utils"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
	FormatMermaid  Format = "mermaid"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown, FormatMermaid}

// ParseFormat accepts a format name or a common alias (yml, md).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", utils.NewChoiceError("format", s, names...)
}

// Extension returns the usual file extension for f.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatMarkdown:
		return ".md"
	case FormatMermaid:
		return ".mmd"
	default:
		return ".json"
	}
}

// Write renders doc to w in format f.
func Write(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		return RenderMarkdown(w, doc)
	case FormatMermaid:
		_, err := io.WriteString(w, GenerateMermaid(doc, MermaidOptions{}))
		return err
	}
	return utils.NewChoiceError("format", string(f))
}
