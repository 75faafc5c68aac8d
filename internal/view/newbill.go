package view

import "github.com/a-h/templ"

var expenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

type newBillData struct {
	PageID string
	Types  []string
}

var newBillTmpl = page(newBillHTML)

// NewBill renders the creation form. pageID ties the form to the controller
// instance holding its staged file.
func NewBill(pageID string) templ.Component {
	return component(newBillTmpl, "layout", layoutData{
		Title:  "Envoyer une note de frais",
		Active: activeNewBill,
		Data:   newBillData{PageID: pageID, Types: expenseTypes},
	})
}

const newBillHTML = `{{define "content"}}
<div class="content-header">
  <div class="content-title">Envoyer une note de frais</div>
</div>
<div class="form-newbill-container content-inner">
<form data-testid="form-new-bill" method="post" action="{{route "newbill"}}" hx-post="{{route "newbill"}}" hx-swap="none">
  <input type="hidden" name="page" value="{{.PageID}}">
  <div class="row">
    <div class="col-md-6">
      <div class="col-half">
        <label for="expense-type" class="bold-label">Type de dépense</label>
        <select required class="form-control blue-border" name="expense-type" data-testid="expense-type">
        {{range .Types}}<option>{{.}}</option>{{end}}
        </select>
      </div>
      <div class="col-half">
        <label for="expense-name" class="bold-label">Nom de la dépense</label>
        <input type="text" class="form-control blue-border" name="expense-name" data-testid="expense-name" placeholder="Vol Paris Londres">
      </div>
      <div class="col-half">
        <label for="datepicker" class="bold-label">Date</label>
        <input required type="date" class="form-control blue-border" name="datepicker" data-testid="datepicker">
      </div>
      <div class="col-half">
        <label for="amount" class="bold-label">Montant TTC</label>
        <input required type="number" class="form-control blue-border input-icon input-icon-right" name="amount" data-testid="amount" placeholder="348">
      </div>
      <div class="col-half-row">
        <div class="flex-col">
          <label for="vat" class="bold-label">TVA</label>
          <input type="number" class="form-control blue-border" name="vat" data-testid="vat" placeholder="70">
        </div>
        <div class="flex-col">
          <input required type="number" class="form-control blue-border" name="pct" data-testid="pct" placeholder="20">
        </div>
      </div>
    </div>
    <div class="col-md-6">
      <div class="col-2">
        <label for="commentary" class="form-check-label bold-label">Commentaire</label>
        <textarea class="form-control blue-border" name="commentary" data-testid="commentary" rows="3"></textarea>
      </div>
      <div class="col-half">
        <label for="file" class="bold-label">Justificatif</label>
        <input required type="file" accept=".jpg,.jpeg,.png" class="form-control blue-border" name="file" data-testid="file"
          hx-post="{{route "billfile"}}" hx-trigger="change" hx-encoding="multipart/form-data" hx-include="[name='page']" hx-swap="none">
      </div>
    </div>
  </div>
  <div class="row">
    <div class="col-md-6">
      <div class="col-2">
        <button type="submit" id="btn-send-bill" class="btn btn-primary">Envoyer</button>
      </div>
    </div>
  </div>
</form>
</div>
{{end}}`
