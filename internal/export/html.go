package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

var pageTemplate = template.Must(template.New("proposal").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: "DejaVu Sans", Arial, sans-serif; font-size: 12pt; line-height: 1.5; color: #222; margin: 2cm; }
h1 { font-size: 22pt; color: #1f3864; border-bottom: 2px solid #1f3864; padding-bottom: 4pt; }
h2 { font-size: 16pt; color: #2f5496; margin-top: 18pt; }
h3 { font-size: 13pt; margin-top: 14pt; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #999; padding: 4pt 6pt; text-align: left; }
hr { border: 0; border-top: 1px solid #ccc; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// renderHTML переводит markdown в HTML и вставляет его в шаблон страницы.
// Сырой HTML из текста не пропускается.
func renderHTML(title, content string) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(content), &body); err != nil {
		return "", fmt.Errorf("html: markdown: %w", err)
	}

	var page bytes.Buffer
	err := pageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("html: шаблон: %w", err)
	}

	return page.String(), nil
}
