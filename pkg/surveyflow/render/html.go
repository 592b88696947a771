package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// ShellView describes the normalized block layout around the survey area:
// logo, intro content, optional background image and footer. Absent regions
// are simply left out of the markup.
type ShellView struct {
	LogoURL         string
	BackgroundImage string
	Intro           template.HTML
	Footer          template.HTML
	TriggerHref     string
	TriggerLabel    string
}

const shellTemplateDef = `<div class="survey-block" data-initialized="true">
{{- if .LogoURL}}
  <div class="logo"><img src="{{.LogoURL}}" alt="logo"></div>
{{- end}}
  <div class="survey-area"{{if .BackgroundImage}} style="background-image: url({{.BackgroundImage}})"{{end}}>
    <div class="content">
{{- if .Intro}}
      {{.Intro}}
{{- end}}
{{- if .TriggerHref}}
      <a class="btn-next" href="{{.TriggerHref}}">{{.TriggerLabel}}</a>
{{- end}}
    </div>
  </div>
{{- if .Footer}}
  <div class="footer-content">{{.Footer}}</div>
{{- end}}
</div>
`

const stepTemplateDef = `<form class="survey-form">
  <div class="progress"><div class="progress-fill" style="width: {{printf "%.0f" .Progress.Percent}}%"></div></div>
  <div class="progress-counter">{{.Progress.Completed}}/{{.Progress.Total}}</div>
  <div class="content">
{{- if .SectionTitle}}
    <h2 class="section-title">{{.SectionTitle}}</h2>
{{- end}}
{{- if .Icon}}
    <img class="question-icon" src="{{.Icon}}" alt="">
{{- end}}
{{- if .Title}}
    <h3>{{.Title}}</h3>
{{- end}}
{{- if .Question}}
    <p>{{.Question}}</p>
{{- end}}
{{- if .Radio}}
    <div class="options">
{{- $name := .Radio.GroupName}}
{{- $selected := .Radio.Selected}}
{{- range .Radio.Options}}
      <div class="option"><label><input type="radio" name="{{$name}}" value="{{.}}"{{if eq . $selected}} checked{{end}}> {{.}}</label></div>
{{- end}}
    </div>
{{- end}}
{{- range .Sliders}}
    <div class="slider-container">
{{- if .Caption}}
      <p>{{.Caption}}</p>
{{- end}}
      <input class="slider" type="range" name="{{.ContentID}}" min="0" max="{{lastIndex .Options}}" value="{{.SelectedIndex}}">
      <div class="slider-labels">{{range .Options}}<span>{{.}}</span>{{end}}</div>
      <div class="slider-value">{{.Readout}}</div>
    </div>
{{- end}}
  </div>
  <div class="nav">
    <button type="button" class="btn-back">Back</button>
    <button type="button" class="btn-next">Next</button>
  </div>
</form>
`

var (
	shellTemplate = template.Must(template.New("survey-shell").Parse(shellTemplateDef))
	stepTemplate  = template.Must(template.New("survey-step").Funcs(template.FuncMap{
		"lastIndex": func(options []string) int {
			if len(options) < 1 {
				return 0
			}
			return len(options) - 1
		},
	}).Parse(stepTemplateDef))
)

// RenderShell produces the block layout markup with the semantic class hooks
// the accompanying styling relies on.
func RenderShell(view ShellView) (string, error) {
	var buf bytes.Buffer
	if err := shellTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("error rendering survey shell: %v", err)
	}
	return buf.String(), nil
}

// RenderStep produces the markup of one survey step.
func RenderStep(view StepView) (string, error) {
	var buf bytes.Buffer
	if err := stepTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("error rendering survey step: %v", err)
	}
	return buf.String(), nil
}
