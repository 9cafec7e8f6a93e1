package trajectory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanNaN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "compact", in: `{"step":NaN}`, want: `{"step": null}`},
		{name: "spaced", in: `{"step":   NaN}`, want: `{"step": null}`},
		{name: "newline", in: "{\"step\":\n\tNaN}", want: `{"step": null}`},
		{name: "several", in: `[{"a": NaN, "b":NaN}]`, want: `[{"a": null, "b": null}]`},
		{name: "untouched", in: `{"action": "NaN"}`, want: `{"action": "NaN"}`},
		{name: "inside string", in: `{"action": "x: NaN"}`, want: `{"action": "x: null"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanNaN(tt.in); got != tt.want {
				t.Errorf("CleanNaN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseNaNReadsAsNull(t *testing.T) {
	data := `[{"model": "A", "env": "X", "level": 1, "run_id": "r1", "step": NaN, "action": "go", "observation_after": NaN}]`

	ds, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, ds.Records, 1)

	r := ds.Records[0]
	assert.True(t, r.HasStep)
	assert.Equal(t, "", r.StepLabel)
	assert.Equal(t, 0.0, r.Step)
	assert.Equal(t, "", r.ObservationAfter)
	assert.Equal(t, "go", r.Action)
}

func TestParseCanonicalKeys(t *testing.T) {
	data := `[
		{"model": "gpt", "env": "maze", "level": 1, "run_id": 42, "step": "3"},
		{"model": "gpt", "env": "maze", "level": 2.5, "run_id": "42", "step": 1.0},
		{"model": null, "env": "", "level": 0, "run_id": false}
	]`

	ds, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, ds.Records, 3)

	want := []Key{
		{Model: "gpt", Env: "maze", Level: "1", RunID: "42"},
		{Model: "gpt", Env: "maze", Level: "2.5", RunID: "42"},
		{Model: "", Env: "", Level: "0", RunID: "false"},
	}
	got := []Key{ds.Records[0].Key, ds.Records[1].Key, ds.Records[2].Key}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 3.0, ds.Records[0].Step)
	assert.Equal(t, "3", ds.Records[0].StepLabel)
	assert.Equal(t, 1.0, ds.Records[1].Step)
	assert.False(t, ds.Records[2].HasStep)

	for _, d := range Dimensions {
		assert.False(t, ds.Records[2].Truthy(d), "dimension %s should be falsy", d)
	}
	assert.Equal(t, Key{}, ds.Records[2].GroupKey())
}

func TestParseOptions(t *testing.T) {
	data := `[
		{"model": "b", "env": "y", "level": "hard", "run_id": "r2"},
		{"model": "a", "env": "x", "level": "easy", "run_id": "r10"},
		{"model": "b", "env": "x", "level": "", "run_id": 1},
		{"model": "", "env": null, "level": "easy", "run_id": "r1"}
	]`

	ds, err := Parse([]byte(data))
	require.NoError(t, err)

	want := Options{
		Models: []string{"b", "a"},
		Envs:   []string{"y", "x"},
		Levels: []string{"hard", "easy"},
		RunIDs: []string{"1", "r1", "r10", "r2"},
	}
	if diff := cmp.Diff(want, ds.Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExtraFields(t *testing.T) {
	ds, err := Parse([]byte(`[{"model": "a", "reward": 1.5, "done": true}]`))
	require.NoError(t, err)

	extra := ds.Records[0].Extra
	require.Len(t, extra, 2)
	assert.JSONEq(t, `1.5`, string(extra["reward"]))
	assert.JSONEq(t, `true`, string(extra["done"]))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "empty", data: ""},
		{name: "invalid json", data: `[{"model": }]`},
		{name: "object root", data: `{"model": "a"}`},
		{name: "null root", data: `null`, wantErr: ErrNotArray},
		{name: "scalar element", data: `[1, 2]`},
		{name: "null element", data: `[{"model": "a"}, null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, ds)

			var ie *IngestError
			assert.True(t, errors.As(err, &ie), "want *IngestError, got %T", err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseEmptyArray(t *testing.T) {
	ds, err := Parse([]byte(" [ ] "))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Options.RunIDs)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"model": "a", "run_id": "r1", "step": 1}]`), 0o600))

	ds, err := Load(context.Background(), good)
	require.NoError(t, err)
	assert.Equal(t, good, ds.Source)
	assert.Equal(t, 1, ds.Len())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{`), 0o600))

	_, err = Load(context.Background(), bad)
	var ie *IngestError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, bad, ie.Source)
	assert.Contains(t, err.Error(), "bad.json")

	_, err = Load(context.Background(), filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
