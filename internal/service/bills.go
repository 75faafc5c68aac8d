package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"billed/internal/model"
)

type BillsGateway struct {
	api   *APIClient
	token string
}

func (g *BillsGateway) List(ctx context.Context) ([]model.Bill, error) {
	var bills []model.Bill
	err := g.api.do(ctx, request{
		op:     "list",
		method: http.MethodGet,
		path:   "/bills",
		token:  g.token,
	}, &bills)
	if err != nil {
		return nil, err
	}
	return bills, nil
}

func (g *BillsGateway) Create(ctx context.Context, bill model.Bill) (model.Bill, error) {
	return g.sendBill(ctx, "create", http.MethodPost, "/bills", bill)
}

func (g *BillsGateway) Update(ctx context.Context, id string, bill model.Bill) (model.Bill, error) {
	if id == "" {
		return model.Bill{}, fmt.Errorf("update bill: empty id")
	}
	return g.sendBill(ctx, "update", http.MethodPatch, "/bills/"+url.PathEscape(id), bill)
}

// CreateBill persists a new bill. Uploading a file already registered a
// record under bill.ID, so in that case the record is completed in place.
func (g *BillsGateway) CreateBill(ctx context.Context, bill model.Bill) (model.Bill, error) {
	if bill.ID != "" {
		return g.Update(ctx, bill.ID, bill)
	}
	return g.Create(ctx, bill)
}

func (g *BillsGateway) UploadFile(ctx context.Context, up model.FileUpload) (model.UploadResult, error) {
	body, contentType, err := encodeUpload(up)
	if err != nil {
		return model.UploadResult{}, fmt.Errorf("encode upload: %w", err)
	}

	var res model.UploadResult
	err = g.api.do(ctx, request{
		op:          "upload",
		method:      http.MethodPost,
		path:        "/bills",
		token:       g.token,
		body:        body,
		contentType: contentType,
	}, &res)
	if err != nil {
		return model.UploadResult{}, err
	}
	return res, nil
}

func (g *BillsGateway) sendBill(ctx context.Context, op, method, path string, bill model.Bill) (model.Bill, error) {
	payload, err := json.Marshal(bill)
	if err != nil {
		return model.Bill{}, fmt.Errorf("encode bill: %w", err)
	}

	var saved model.Bill
	err = g.api.do(ctx, request{
		op:          op,
		method:      method,
		path:        path,
		token:       g.token,
		body:        bytes.NewReader(payload),
		contentType: "application/json",
	}, &saved)
	if err != nil {
		return model.Bill{}, err
	}
	return saved, nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func encodeUpload(up model.FileUpload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(up.File.Name)))
	h.Set("Content-Type", mimetype.Detect(up.File.Data).String())
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(up.File.Data); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("email", up.Email); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
