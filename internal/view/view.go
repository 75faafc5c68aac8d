// Package view renders the pages and fragments of the application. Every
// exported function is pure: it only turns data into a templ.Component.
package view

import (
	"context"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"billed/internal/route"
)

const (
	activeBills   = "bills"
	activeNewBill = "new"
)

type layoutData struct {
	Title  string
	Active string
	Data   any
}

var funcs = template.FuncMap{
	"amount": func(a float64) string { return strconv.FormatFloat(a, 'f', -1, 64) },
	"attachmentURL": func(fileURL string) string {
		return route.Attachment + "?url=" + url.QueryEscape(fileURL)
	},
	"route": func(name string) string {
		switch name {
		case "bills":
			return route.Bills
		case "newbill":
			return route.NewBill
		case "billfile":
			return route.BillFile
		case "logout":
			return route.Logout
		}
		return route.Login
	},
}

var base = template.Must(template.New("layout").Funcs(funcs).Parse(layoutHTML))

func page(content string) *template.Template {
	return template.Must(template.Must(base.Clone()).Parse(content))
}

func fragment(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

func component(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}

const layoutHTML = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Billed · {{.Title}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@4.6.2/dist/css/bootstrap.min.css">
<script src="https://code.jquery.com/jquery-3.7.1.min.js"></script>
<script src="https://cdn.jsdelivr.net/npm/bootstrap@4.6.2/dist/js/bootstrap.bundle.min.js"></script>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
</head>
<body>
<div id="root">
{{if .Active}}
<div class="layout">
  <div class="vertical-navbar">
    <div class="layout-title">Billed</div>
    <a href="{{route "bills"}}" id="layout-icon1" data-testid="icon-window" class="{{if eq .Active "bills"}}active-icon{{end}}">Notes de frais</a>
    <a href="{{route "newbill"}}" id="layout-icon2" data-testid="icon-mail" class="{{if eq .Active "new"}}active-icon{{end}}">Nouvelle note</a>
    <a href="{{route "logout"}}" id="layout-disconnect" data-testid="layout-disconnect">Se déconnecter</a>
  </div>
  <div class="content">
{{template "content" .Data}}
  </div>
</div>
{{else}}
{{template "content" .Data}}
{{end}}
</div>
<script>
document.body.addEventListener("showAlert", function (e) { window.alert(e.detail.value); });
document.body.addEventListener("clearFileInput", function () {
  var input = document.querySelector('input[data-testid="file"]');
  if (input) { input.value = ""; }
});
document.body.addEventListener("showModal", function () { $("#modaleFile").modal("show"); });
</script>
</body>
</html>
`
