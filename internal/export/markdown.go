package export

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const markdownTemplate = `# Trajectories{{ with .Source }} from {{ base . | quote }}{{ end }}

| Filter | Value |
|---|---|
| Model | {{ .Selection.Model }} |
| Environment | {{ .Selection.Env }} |
| Level | {{ .Selection.Level }} |
| Run ID | {{ .Selection.RunID }} |

Current Trajectory: {{ .Summary.Steps }} steps in {{ .Summary.Trajectories }} {{ if eq .Summary.Trajectories 1 }}trajectory{{ else }}trajectories{{ end }} ({{ .Summary.Records }} records in file)
{{- if not .Trajectories }}

_No data available for the selected filters._
{{- end }}
{{- range $i, $t := .Trajectories }}

## {{ add1 $i }}. {{ $t.Key.Model | default "N/A" }} / {{ $t.Key.Env | default "N/A" }} / {{ $t.Key.Level | default "N/A" }} / {{ $t.Key.RunID | default "N/A" }}
{{- range $t.Steps }}

### Step {{ .Step | default "N/A" }} ({{ .Position }})

**Observation before**

~~~text
{{ .ObservationBefore | default "No observation data" | trim }}
~~~

**Action**

~~~text
{{ .Action | default "No action" | trim }}
~~~

**Observation after**

~~~text
{{ .ObservationAfter | default "No observation data" | trim }}
~~~
{{- end }}
{{- end }}
`

var markdown = template.Must(template.New("markdown").Funcs(sprig.TxtFuncMap()).Parse(markdownTemplate))

// RenderMarkdown writes doc as a Markdown report.
func RenderMarkdown(w io.Writer, doc *Document) error {
	if err := markdown.Execute(w, doc); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	return nil
}
