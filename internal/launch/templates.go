package launch

import (
	"fmt"
	"strings"
	"text/template"
)

const instructionTemplate = `You are {{.Name}} working on the FXD project.

YOUR TASK FILE: tasks/{{.TaskFile}}{{if .Section}} (SECTION {{.Section}}){{end}}
{{if .Blocking}}
CRITICAL INSTRUCTIONS:
1. Read tasks/{{.TaskFile}} completely
2. Complete all tasks in order
3. Annotate ALL code you write
4. Update progress in task file after each task
5. When complete, create: tasks/{{.SignalFile}}

THIS IS THE CRITICAL PATH - ALL OTHER AGENTS ARE BLOCKED UNTIL YOU FINISH.
{{else}}
WAIT: Check tasks/{{.SignalFile}} exists before starting.
{{end}}
YOUR MISSION: {{.Mission}}
{{if .OwnedFiles}}
FILES YOU OWN:
{{- range .OwnedFiles}}
- {{.}}
{{- end}}
{{end}}{{if .Coordinate}}
COORDINATE with {{.Coordinate}}
{{end}}
ANNOTATE ALL CODE:
{{.Marker}} @agent: {{.Name}}
{{.Marker}} @timestamp: [current-timestamp]
{{.Marker}} @task: {{.TaskFile}}#[task-number]

START WITH: {{.StartTask}}

GO!
`

var instructionTmpl = template.Must(template.New("instructions").Parse(instructionTemplate))

type instructionData struct {
	Agent
	Blocking   bool
	SignalFile string
}

// Instructions renders the prompt text handed to the agent's session.
func Instructions(agent Agent, blocking bool) (string, error) {
	data := instructionData{
		Agent:      agent,
		Blocking:   blocking,
		SignalFile: SignalFileName,
	}
	if data.Marker == "" {
		data.Marker = "//"
	}

	var sb strings.Builder
	if err := instructionTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render instructions for %s: %w", agent.Name, err)
	}

	return sb.String(), nil
}
