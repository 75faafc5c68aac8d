package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"billed/internal/model"
	"billed/internal/route"
)

const InvalidFormatMessage = "Invalid format, please choose a .jpg, .jpeg, or .png file"

var allowedExtensions = []string{"jpg", "jpeg", "png"}

type Stage int

const (
	StageIdle Stage = iota
	StageFileStaged
	StageSubmitted
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageFileStaged:
		return "file_staged"
	case StageSubmitted:
		return "submitted"
	}
	return "stage(" + strconv.Itoa(int(s)) + ")"
}

// ChangeFileEvent carries the files chosen in the justificatory input.
type ChangeFileEvent struct {
	Files []model.File
}

// SubmitEvent carries the values of the new bill form, keyed by field name.
type SubmitEvent struct {
	Values url.Values
}

type NewBillConfig struct {
	Store  Store
	User   model.User
	Logger *slog.Logger
	// Rejections counts files refused for their extension. Optional.
	Rejections prometheus.Counter
}

// NewBill is the controller of one new bill form. It lives from the moment
// the form is rendered until the user navigates away.
type NewBill struct {
	store      Store
	user       model.User
	log        *slog.Logger
	rejections prometheus.Counter

	mu       sync.Mutex
	stage    Stage
	billID   string
	fileURL  string
	fileName string
}

func NewNewBill(cfg NewBillConfig) *NewBill {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &NewBill{
		store:      cfg.Store,
		user:       cfg.User,
		log:        logger,
		rejections: cfg.Rejections,
	}
}

func (n *NewBill) Stage() Stage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stage
}

func (n *NewBill) Owner() string {
	return n.user.Email
}

// HandleChangeFile validates the chosen file and uploads it. A file with a
// refused extension never leaves the server. Upload failures are only logged:
// the form stays usable without a staged file.
func (n *NewBill) HandleChangeFile(ctx context.Context, p Page, ev ChangeFileEvent) error {
	if len(ev.Files) == 0 {
		return nil
	}
	file := ev.Files[0]
	name := fileBaseName(file.Name)

	if !allowedFile(name) {
		if n.rejections != nil {
			n.rejections.Inc()
		}
		n.log.Info("rejected justificatory file", "file", name, "email", n.user.Email)
		p.Alert(InvalidFormatMessage)
		p.ClearFileInput()
		return nil
	}

	res, err := n.store.UploadFile(ctx, model.FileUpload{
		File:  model.File{Name: name, Data: file.Data},
		Email: n.user.Email,
	})
	if err != nil {
		n.log.Error("failed to upload justificatory file", "file", name, "email", n.user.Email, "error", err)
		return nil
	}

	staged := res.FileName
	if staged == "" {
		staged = name
	}

	n.mu.Lock()
	n.billID = res.Key
	n.fileURL = res.FileURL
	n.fileName = staged
	n.stage = StageFileStaged
	n.mu.Unlock()

	n.log.Info("justificatory file staged", "file", staged, "key", res.Key)
	return nil
}

// HandleSubmit assembles the bill from the form and the staged file, persists
// it and goes back to the bill list.
func (n *NewBill) HandleSubmit(ctx context.Context, p Page, ev SubmitEvent) error {
	form := readBillForm(ev.Values)
	if err := validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate bill form: %w", err)
		}
		p.Alert(invalidFieldsMessage(verrs))
		return nil
	}

	n.mu.Lock()
	bill := model.Bill{
		ID:         n.billID,
		Email:      n.user.Email,
		Type:       form.Type,
		Name:       form.Name,
		Date:       form.Date,
		Amount:     parseAmount(form.Amount),
		VAT:        form.VAT,
		Pct:        parsePct(form.Pct),
		Status:     model.StatusPending,
		FileURL:    n.fileURL,
		FileName:   n.fileName,
		Commentary: form.Commentary,
	}
	n.stage = StageSubmitted
	n.mu.Unlock()

	if _, err := n.store.CreateBill(ctx, bill); err != nil {
		n.log.Error("failed to create bill", "key", bill.ID, "email", bill.Email, "error", err)
	} else {
		n.log.Info("bill created", "key", bill.ID, "email", bill.Email, "amount", bill.Amount)
	}

	n.reset()
	p.Navigate(route.Bills)
	return nil
}

func (n *NewBill) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stage = StageIdle
	n.billID, n.fileURL, n.fileName = "", "", ""
}

// fileBaseName drops the directory part browsers may send, such as
// C:\fakepath\.
func fileBaseName(name string) string {
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		return name[i+1:]
	}
	return name
}

func allowedFile(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

type billForm struct {
	Type       string `form:"expense-type" validate:"required"`
	Name       string `form:"expense-name"`
	Date       string `form:"datepicker" validate:"required,datetime=2006-01-02"`
	Amount     string `form:"amount" validate:"required,numeric"`
	VAT        string `form:"vat" validate:"omitempty,numeric"`
	Pct        string `form:"pct" validate:"omitempty,numeric"`
	Commentary string `form:"commentary"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

func readBillForm(values url.Values) billForm {
	get := func(key string) string { return strings.TrimSpace(values.Get(key)) }
	return billForm{
		Type:       get("expense-type"),
		Name:       get("expense-name"),
		Date:       get("datepicker"),
		Amount:     get("amount"),
		VAT:        get("vat"),
		Pct:        get("pct"),
		Commentary: values.Get("commentary"),
	}
}

func invalidFieldsMessage(verrs validator.ValidationErrors) string {
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "Please fill in a valid value for: " + strings.Join(fields, ", ")
}

// leadingInt parses the integer s starts with, so "348.99" gives 348.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

func parseAmount(s string) float64 {
	a, _ := leadingInt(s)
	return float64(a)
}

func parsePct(s string) int {
	pct, ok := leadingInt(s)
	if !ok || pct == 0 {
		return model.DefaultPct
	}
	return pct
}
