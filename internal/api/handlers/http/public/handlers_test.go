package public_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/api/handlers/http/public"
	mock_public "github.com/shalinibhavi525-sudo/border-incident-reporter/internal/api/handlers/http/public/mocks"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func newReportRequest(t *testing.T, fields map[string]string, photoName string, photoContent []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if photoName != "" {
		fw, err := w.CreateFormFile("photo", photoName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(photoContent); err != nil {
			t.Fatalf("write photo: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/report", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"type":        "Crossing",
		"severity":    "High",
		"description": "Group spotted near marker 14",
		"latitude":    "48.3794",
		"longitude":   "31.1656",
	}
}

func TestReportSubmit_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	intake := mock_public.NewMockReportSubmitter(ctrl)
	h := public.NewHandler(newTestLogger(), intake, 5<<20)

	var gotReq domain.SubmitReportRequest
	intake.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, req domain.SubmitReportRequest, _ *domain.PhotoUpload) (int64, error) {
			gotReq = req
			return 123, nil
		}).
		Times(1)

	rr := httptest.NewRecorder()
	h.ReportSubmit(rr, newReportRequest(t, validFields(), "", nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d, body=%s", rr.Code, rr.Body.String())
	}

	got := decodeJSON[map[string]any](t, rr)
	if got["success"] != true {
		t.Fatalf("expected success=true, body=%s", rr.Body.String())
	}
	if got["incident_id"] != float64(123) {
		t.Fatalf("expected incident_id=123, body=%s", rr.Body.String())
	}

	if gotReq.Type != "Crossing" || gotReq.Severity != "High" || gotReq.Latitude != "48.3794" {
		t.Fatalf("form fields not forwarded: %+v", gotReq)
	}
}

func TestReportSubmit_PhotoForwarded(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	intake := mock_public.NewMockReportSubmitter(ctrl)
	h := public.NewHandler(newTestLogger(), intake, 5<<20)

	content := []byte{0x89, 'P', 'N', 'G', '\r', '\n'}

	intake.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any(), gomock.Not(gomock.Nil())).
		DoAndReturn(func(_ context.Context, _ domain.SubmitReportRequest, photo *domain.PhotoUpload) (int64, error) {
			if photo.Filename != "evidence.png" {
				t.Errorf("expected filename evidence.png, got %q", photo.Filename)
			}
			data, err := io.ReadAll(photo.File)
			if err != nil {
				t.Errorf("read photo: %v", err)
			}
			if !bytes.Equal(data, content) {
				t.Errorf("photo content mismatch")
			}
			return 5, nil
		}).
		Times(1)

	rr := httptest.NewRecorder()
	h.ReportSubmit(rr, newReportRequest(t, validFields(), "evidence.png", content))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d, body=%s", rr.Code, rr.Body.String())
	}
}

func TestReportSubmit_ValidationError_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	intake := mock_public.NewMockReportSubmitter(ctrl)
	h := public.NewHandler(newTestLogger(), intake, 5<<20)

	intake.EXPECT().
		SubmitReport(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(int64(0), fmt.Errorf("service.ReportIntake.SubmitReport: latitude: %w", e.ErrInvalidInput)).
		Times(1)

	fields := validFields()
	fields["latitude"] = "north-ish"

	rr := httptest.NewRecorder()
	h.ReportSubmit(rr, newReportRequest(t, fields, "", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d, body=%s", rr.Code, rr.Body.String())
	}

	got := decodeJSON[map[string]any](t, rr)
	if got["success"] != false {
		t.Fatalf("expected success=false, body=%s", rr.Body.String())
	}
	if got["message"] == "" || got["message"] == nil {
		t.Fatalf("expected a message, body=%s", rr.Body.String())
	}
}

func TestReportSubmit_OversizedBodyRejected(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no intake expectations: the cap fires before any service logic
	intake := mock_public.NewMockReportSubmitter(ctrl)
	h := public.NewHandler(newTestLogger(), intake, 256)

	rr := httptest.NewRecorder()
	h.ReportSubmit(rr, newReportRequest(t, validFields(), "evidence.png", bytes.Repeat([]byte("a"), 4096)))

	if rr.Code != http.StatusRequestEntityTooLarge && rr.Code != http.StatusBadRequest {
		t.Fatalf("expected rejection, got %d, body=%s", rr.Code, rr.Body.String())
	}

	got := decodeJSON[map[string]any](t, rr)
	if got["success"] != false {
		t.Fatalf("expected success=false, body=%s", rr.Body.String())
	}
}

func TestReportSubmit_NotMultipart_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	intake := mock_public.NewMockReportSubmitter(ctrl)
	h := public.NewHandler(newTestLogger(), intake, 5<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/report", bytes.NewBufferString(`{"type":"Crossing"}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.ReportSubmit(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d, body=%s", rr.Code, rr.Body.String())
	}
}
