package view

import (
	"slices"
	"strings"

	"github.com/a-h/templ"
)

// BillRow is a bill ready for display: Date and Status are already
// formatted, RawDate keeps the stored value for ordering.
type BillRow struct {
	ID       string
	Type     string
	Name     string
	Date     string
	RawDate  string
	Amount   float64
	Status   string
	FileURL  string
}

type billsData struct {
	Rows  []BillRow
	Error string
}

var (
	billsTmpl      = page(billsHTML)
	attachmentTmpl = fragment("attachment", attachmentHTML)
)

// Bills renders the list page, most recent bill first.
func Bills(rows []BillRow) templ.Component {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b BillRow) int {
		return strings.Compare(b.RawDate, a.RawDate)
	})
	return component(billsTmpl, "layout", layoutData{
		Title:  "Mes notes de frais",
		Active: activeBills,
		Data:   billsData{Rows: sorted},
	})
}

// BillsError renders the list page with msg in place of the table.
func BillsError(msg string) templ.Component {
	return component(billsTmpl, "layout", layoutData{
		Title:  "Erreur",
		Active: activeBills,
		Data:   billsData{Error: msg},
	})
}

// Attachment is the modal body previewing the justificatory file.
func Attachment(fileURL string) templ.Component {
	return component(attachmentTmpl, "attachment", fileURL)
}

const billsHTML = `{{define "content"}}
{{if .Error}}
<div class="error-page" data-testid="error-message">
  <div class="error-title">Erreur</div>
  <div class="error-message">{{.Error}}</div>
</div>
{{else}}
<div class="content-header">
  <div class="content-title">Mes notes de frais</div>
  <a href="{{route "newbill"}}" data-testid="btn-new-bill" class="btn btn-primary">Nouvelle note de frais</a>
</div>
<div id="data-table">
<table id="example" class="table table-striped" style="width:100%">
  <thead>
    <tr>
      <th>Type</th>
      <th>Nom</th>
      <th>Date</th>
      <th>Montant</th>
      <th>Statut</th>
      <th>Actions</th>
    </tr>
  </thead>
  <tbody data-testid="tbody">
  {{range .Rows}}
    <tr>
      <td>{{.Type}}</td>
      <td>{{.Name}}</td>
      <td>{{.Date}}</td>
      <td>{{amount .Amount}} €</td>
      <td>{{.Status}}</td>
      <td>
        <div class="icon-actions">
          <div id="eye" data-testid="icon-eye" data-bill-url="{{.FileURL}}" hx-get="{{attachmentURL .FileURL}}" hx-target="#modaleFile .modal-body">voir</div>
        </div>
      </td>
    </tr>
  {{end}}
  </tbody>
</table>
</div>
<div class="modal fade" id="modaleFile" tabindex="-1" role="dialog" aria-hidden="true">
  <div class="modal-dialog modal-dialog-centered modal-lg" role="document">
    <div class="modal-content">
      <div class="modal-header">
        <h5 class="modal-title">Justificatif</h5>
        <button type="button" class="close" data-dismiss="modal" aria-label="Close"><span aria-hidden="true">&times;</span></button>
      </div>
      <div class="modal-body"></div>
    </div>
  </div>
</div>
{{end}}
{{end}}`

const attachmentHTML = `<div style="text-align: center;" class="bill-proof-container"><img width="100%" src="{{.}}" alt="Bill" data-testid="bill-proof"></div>`
