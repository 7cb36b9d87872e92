package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/docgen"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
	"github.com/CorretorBrazza/docu-flow-automato/internal/pipeline"
)

// nameClassifier labels uploads by file-name keyword, enough to drive the
// engine without a real backend.
type nameClassifier struct{}

func (nameClassifier) Classify(_ context.Context, doc entity.UploadedDocument) (constants.DocumentKind, error) {
	name := strings.ToLower(doc.FileName)
	switch {
	case strings.Contains(name, "rg"):
		return constants.KindIdentity, nil
	case strings.Contains(name, "holerite"):
		return constants.KindPayslip, nil
	case strings.Contains(name, "conta"):
		return constants.KindAddressProof, nil
	}
	return constants.KindOther, nil
}

type nameBackend struct{}

func (nameBackend) ExtractFields(_ context.Context, doc entity.UploadedDocument, kind constants.DocumentKind) (extract.FieldsResult, error) {
	switch kind {
	case constants.KindIdentity:
		return extract.FieldsResult{Fields: extract.FieldSet{
			extract.FieldFullName: "JOAO DA SILVA",
			extract.FieldTaxID:    "12345678900",
		}}, nil
	case constants.KindPayslip:
		return extract.FieldsResult{Fields: extract.FieldSet{
			extract.FieldEmployer:    "ACME LTDA",
			extract.FieldGrossSalary: "3.000,00",
		}}, nil
	case constants.KindAddressProof:
		return extract.FieldsResult{Fields: extract.FieldSet{
			extract.FieldStreet:     "RUA DAS FLORES, 123",
			extract.FieldCity:       "SAO PAULO",
			extract.FieldPostalCode: "01310100",
		}}, nil
	}
	return extract.FieldsResult{}, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	engine := pipeline.NewEngine(nameClassifier{}, nameBackend{}, nil, pipeline.Options{}, nil)
	h := NewHandler(NewStore(), engine, docgen.NewGenerator(nil), 1<<20, nil)
	return NewRouter(h, nil)
}

func do(t *testing.T, r *gin.Engine, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createCase(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/cases", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	return body.ID
}

func upload(t *testing.T, r *gin.Engine, caseID, fileName string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return do(t, r, http.MethodPost, "/api/v1/cases/"+caseID+"/documents", mw.FormDataContentType(), buf.Bytes())
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCaseLifecycle(t *testing.T) {
	r := newTestRouter(t)
	id := createCase(t, r)

	w := upload(t, r, id, "rg.jpg", []byte("fake-jpeg"))
	require.Equal(t, http.StatusCreated, w.Code)
	w = upload(t, r, id, "holerite.pdf", []byte("fake-pdf"))
	require.Equal(t, http.StatusCreated, w.Code)
	w = upload(t, r, id, "conta.pdf", []byte("fake-pdf"))
	require.Equal(t, http.StatusCreated, w.Code)

	details, _ := json.Marshal(entity.CaseDetails{Development: "Residencial Aurora", Phone: "11 99999-0000"})
	w = do(t, r, http.MethodPut, "/api/v1/cases/"+id+"/details", "application/json", details)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/cases/"+id+"/validate", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result pipeline.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Verdict.OverallValid)
	assert.Equal(t, "JOAO DA SILVA", result.Extraction.Personal.FullName)

	w = do(t, r, http.MethodGet, "/api/v1/cases/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Documents []struct {
			FileName string `json:"file_name"`
		} `json:"documents"`
		Result *pipeline.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view.Documents, 3)
	require.NotNil(t, view.Result)
}

func TestValidateWithoutDocuments(t *testing.T) {
	r := newTestRouter(t)
	id := createCase(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/cases/"+id+"/validate", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	r := newTestRouter(t)
	id := createCase(t, r)

	w := upload(t, r, id, "planilha.xlsx", []byte("zip"))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestUploadRequiresFileField(t *testing.T) {
	r := newTestRouter(t)
	id := createCase(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/cases/"+id+"/documents", "application/json", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadInvalidatesPreviousResult(t *testing.T) {
	r := newTestRouter(t)
	id := createCase(t, r)

	upload(t, r, id, "rg.jpg", []byte("x"))
	w := do(t, r, http.MethodPost, "/api/v1/cases/"+id+"/validate", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	upload(t, r, id, "holerite.pdf", []byte("x"))

	w = do(t, r, http.MethodGet, "/api/v1/cases/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Result *pipeline.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Nil(t, view.Result, "new uploads must invalidate the stored verdict")
}

func TestPaperworkRequiresValidation(t *testing.T) {
	r := newTestRouter(t)
	id := createCase(t, r)
	upload(t, r, id, "rg.jpg", []byte("x"))

	for _, path := range []string{"/coversheet", "/form"} {
		w := do(t, r, http.MethodGet, "/api/v1/cases/"+id+path, "", nil)
		assert.Equal(t, http.StatusConflict, w.Code, path)
	}
}

func TestCoverSheetAndFormAfterValidation(t *testing.T) {
	r := newTestRouter(t)
	id := createCase(t, r)
	upload(t, r, id, "rg.jpg", []byte("x"))

	w := do(t, r, http.MethodPost, "/api/v1/cases/"+id+"/validate", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/coversheet", "/form"} {
		w = do(t, r, http.MethodGet, "/api/v1/cases/"+id+path, "", nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			w.Header().Get("Content-Type"))
		assert.NotEmpty(t, w.Body.Bytes())
	}
}

func TestUnknownCaseIs404(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/cases/00000000-0000-0000-0000-000000000001", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMalformedCaseIDIs400(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/v1/cases/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDossierWithoutDocumentsIs409(t *testing.T) {
	r := newTestRouter(t)
	id := createCase(t, r)

	w := do(t, r, http.MethodGet, "/api/v1/cases/"+id+"/dossier", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
