package export

import (
	"bytes"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>body{font-family:"Times New Roman",serif;max-width:46rem;margin:2rem auto;line-height:1.5}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p><em>{{.Date}}</em></p>
{{.Body}}
</body>
</html>
`))

// HTML renders the summary markdown into a small standalone page.
func HTML(doc Document) (string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(doc.Summary), &body); err != nil {
		return "", err
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Title string
		Date  string
		Body  template.HTML
	}{
		Title: doc.Title,
		Date:  doc.CreatedAt.Format("2006-01-02 15:04"),
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

func WriteHTML(doc Document, path string) error {
	html, err := HTML(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(html), 0644)
}
