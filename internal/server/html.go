package server

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	terminal "github.com/buildkite/terminal-to-html/v3"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog/log"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #000; color: #aaa; margin: 0; padding: 1em; }
pre.term { font-family: Menlo, Consolas, "DejaVu Sans Mono", monospace; font-size: 14px; line-height: 1.2; }
{{.CSS}}
</style>
</head>
<body>
<pre class="term">{{.Body}}</pre>
</body>
</html>
`))

// convert turns an ANSI stream into HTML spans.
var convert = func(text string) string {
	return terminal.Render([]byte(text))
}

// ToHTML converts terminal text to HTML, falling back to the escaped plain
// text when the converter produces nothing.
func ToHTML(text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("ansi conversion panicked")
			out = html.EscapeString(ansi.Strip(text))
		}
	}()
	out = convert(text)
	if strings.TrimSpace(out) == "" && strings.TrimSpace(text) != "" {
		return html.EscapeString(ansi.Strip(text))
	}
	return out
}

// Page wraps the converted text in a dark HTML document.
func Page(title, text string) string {
	var b bytes.Buffer
	err := pageTemplate.Execute(&b, struct {
		Title string
		CSS   template.CSS
		Body  template.HTML
	}{title, template.CSS(termCSS), template.HTML(ToHTML(text))})
	if err != nil {
		return "<pre>" + html.EscapeString(ansi.Strip(text)) + "</pre>"
	}
	return b.String()
}

var basicColors = []string{"#000000", "#cd3131", "#0dbc79", "#e5e510", "#2472c8", "#bc3fbc", "#11a8cd", "#e5e5e5"}

var termCSS = buildTermCSS()

// buildTermCSS emits the classes the converter uses: term-fgNN for the basic
// colors and term-fgxN/term-bgxN for the 256-color palette.
func buildTermCSS() string {
	var b strings.Builder
	b.WriteString(".term-fg1 { font-weight: bold; }\n")
	b.WriteString(".term-fg2 { opacity: 0.6; }\n")
	for i, c := range basicColors {
		b.WriteString(fmt.Sprintf(".term-fg%d { color: %s; }\n", 30+i, c))
		b.WriteString(fmt.Sprintf(".term-bg%d { background: %s; }\n", 40+i, c))
	}
	for i := 0; i < 256; i++ {
		c := xterm256(i)
		b.WriteString(fmt.Sprintf(".term-fgx%d { color: %s; }\n", i, c))
		b.WriteString(fmt.Sprintf(".term-bgx%d { background: %s; }\n", i, c))
	}
	return b.String()
}

func xterm256(i int) string {
	switch {
	case i < 8:
		return basicColors[i]
	case i < 16:
		return basicColors[i-8]
	case i < 232:
		i -= 16
		level := func(v int) int {
			if v == 0 {
				return 0
			}
			return 55 + v*40
		}
		return fmt.Sprintf("#%02x%02x%02x", level(i/36), level(i/6%6), level(i%6))
	default:
		g := 8 + (i-232)*10
		return fmt.Sprintf("#%02x%02x%02x", g, g, g)
	}
}
