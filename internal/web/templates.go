package web

import (
	"bytes"
	"fmt"
	"html/template"
)

type templates struct {
	page *template.Template
	game *template.Template
}

func loadTemplates() *templates {
	page := template.Must(template.New("page").Parse(pageTemplate))
	template.Must(page.New("game").Parse(gameTemplate))
	// Standalone game template used for fragment rendering
	game := template.Must(template.New("game_only").Parse(gameTemplate))
	return &templates{page: page, game: game}
}

func renderTemplate(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", t.Name(), err)
	}
	return buf.Bytes(), nil
}

const pageTemplate = `<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>
.board-row{display:flex}
.square,.squareHighlight{width:34px;height:34px;margin:-1px -1px 0 0;border:1px solid #999;background:#fff;font-weight:bold;font-size:24px;padding:0}
.squareHighlight{background:#ff0}
.game{display:flex}
.game-info{margin-left:20px}
</style>
</head><body>{{template "game" .}}</body></html>`

const gameTemplate = `
<div id="game" class="game">
  <div class="game-board">
    {{range .Rows}}
    <div class="board-row">
      {{range .}}
      <button class="{{if .Highlight}}squareHighlight{{else}}square{{end}}" hx-post="/game/{{$.ID}}/cells/{{.Index}}" hx-target="#game" hx-swap="outerHTML">{{.Mark}}</button>
      {{end}}
    </div>
    {{end}}
  </div>
  <div class="game-info">
    <div><button class="sort" hx-post="/game/{{.ID}}/sort" hx-target="#game" hx-swap="outerHTML">{{.SortLabel}}</button></div>
    <div class="status">{{.Status}}</div>
    {{if .Draw}}<div class="result">Draw</div>{{end}}
    <ol>
      {{range .Moves}}
      {{if .Current}}
      <li><span>{{if .Coord}}{{.Coord}} {{end}}You are at move #{{.Step}}</span></li>
      {{else}}
      <li><button hx-post="/game/{{$.ID}}/jump/{{.Step}}" hx-target="#game" hx-swap="outerHTML">{{if .Coord}}{{.Coord}} {{end}}{{.Description}}</button></li>
      {{end}}
      {{end}}
    </ol>
  </div>
</div>
`
