package trajectory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/agenticgokit/tales/internal/trajectory"

// nanPattern matches a bare NaN used as an object value. The substitution is
// textual, so a quoted string containing ": NaN" is rewritten too.
var nanPattern = regexp.MustCompile(`:\s*NaN`)

// ErrNotArray is returned when the document root is not a JSON array.
var ErrNotArray = errors.New("root element is not an array")

// IngestError reports a file that could not be turned into records.
type IngestError struct {
	Source string
	Err    error
}

func (e *IngestError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("error loading file: %v", e.Err)
	}
	return fmt.Sprintf("error loading file %s: %v", e.Source, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

// Dataset is the full record array of one loaded file together with the
// distinct values of every filter dimension.
type Dataset struct {
	Source  string
	Records []Record
	Options Options
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	if ds == nil {
		return 0
	}
	return len(ds.Records)
}

// CleanNaN rewrites non-standard NaN object values to null.
func CleanNaN(text string) string {
	return nanPattern.ReplaceAllString(text, ": null")
}

// Parse decodes a JSON array of step objects.
func Parse(data []byte) (*Dataset, error) {
	cleaned := bytes.TrimSpace([]byte(CleanNaN(string(data))))
	if len(cleaned) == 0 {
		return nil, &IngestError{Err: errors.New("unexpected end of JSON input")}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(cleaned, &elems); err != nil {
		return nil, &IngestError{Err: err}
	}
	if cleaned[0] != '[' {
		return nil, &IngestError{Err: ErrNotArray}
	}

	records := make([]Record, 0, len(elems))
	for i, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, &IngestError{Err: fmt.Errorf("element %d is not an object", i)}
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil {
			return nil, &IngestError{Err: fmt.Errorf("element %d: %w", i, err)}
		}
		records = append(records, newRecord(i, fields))
	}

	return &Dataset{
		Records: records,
		Options: fullOptions(records),
	}, nil
}

// Load reads and parses a trajectory file.
func Load(ctx context.Context, path string) (*Dataset, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "trajectory.load")
	defer span.End()
	span.SetAttributes(attribute.String("tales.file", filepath.Base(path)))

	data, err := os.ReadFile(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return nil, &IngestError{Source: path, Err: err}
	}

	ds, err := Parse(data)
	if err != nil {
		var ie *IngestError
		if errors.As(err, &ie) {
			ie.Source = path
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failed")
		return nil, err
	}
	ds.Source = path

	span.SetAttributes(
		attribute.Int("tales.records", len(ds.Records)),
		attribute.Int("tales.run_ids", len(ds.Options.RunIDs)),
	)
	return ds, nil
}
