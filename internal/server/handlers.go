package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"log/slog"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/docgen"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/pipeline"
)

// Handler serves the case workflow.
type Handler struct {
	store     *Store
	engine    *pipeline.Engine
	generator *docgen.Generator
	maxUpload int64
	logger    *slog.Logger
}

func NewHandler(store *Store, engine *pipeline.Engine, generator *docgen.Generator, maxUpload int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:     store,
		engine:    engine,
		generator: generator,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// RegisterRoutes mounts the case endpoints on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	cases := rg.Group("/cases")
	cases.POST("", h.createCase)
	cases.GET("/:id", h.getCase)
	cases.POST("/:id/documents", h.uploadDocument)
	cases.PUT("/:id/details", h.putDetails)
	cases.POST("/:id/validate", h.validate)
	cases.GET("/:id/coversheet", h.coversheet)
	cases.GET("/:id/form", h.form)
	cases.GET("/:id/dossier", h.dossier)
}

func (h *Handler) createCase(c *gin.Context) {
	kase := h.store.Create()
	h.logger.Info("server.case.created", "case_id", kase.ID.String())
	c.JSON(http.StatusCreated, caseView(*kase))
}

func (h *Handler) getCase(c *gin.Context) {
	kase, ok := h.caseFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, caseView(kase))
}

func (h *Handler) uploadDocument(c *gin.Context) {
	id, ok := h.idFromPath(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", "multipart field 'file' is required")
		return
	}
	if fileHeader.Size > h.maxUpload {
		respondError(c, http.StatusRequestEntityTooLarge, "TOO_LARGE",
			fmt.Sprintf("file exceeds %d bytes", h.maxUpload))
		return
	}
	if !constants.IsAllowedExt(filepath.Ext(fileHeader.Filename)) {
		respondError(c, http.StatusUnsupportedMediaType, "UNSUPPORTED_TYPE",
			"accepted extensions: pdf, jpg, jpeg, png")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondAppError(c, err)
		return
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil || int64(len(content)) > h.maxUpload {
		respondError(c, http.StatusRequestEntityTooLarge, "TOO_LARGE", "upload truncated or oversized")
		return
	}

	doc := entity.UploadedDocument{
		FileName:  filepath.Base(fileHeader.Filename),
		MediaType: strings.TrimSpace(fileHeader.Header.Get("Content-Type")),
		Content:   content,
	}
	if err := h.store.Update(id, func(kase *Case) {
		kase.Documents = append(kase.Documents, doc)
		kase.Result = nil // uploads invalidate the previous run
	}); err != nil {
		respondAppError(c, err)
		return
	}

	h.logger.Info("server.document.uploaded", "case_id", id.String(), "file", doc.FileName, "bytes", doc.Size())
	c.JSON(http.StatusCreated, gin.H{"file_name": doc.FileName, "size": doc.Size()})
}

func (h *Handler) putDetails(c *gin.Context) {
	id, ok := h.idFromPath(c)
	if !ok {
		return
	}
	var details entity.CaseDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", "malformed details payload")
		return
	}
	if err := h.store.Update(id, func(kase *Case) {
		kase.Details = details
	}); err != nil {
		respondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) validate(c *gin.Context) {
	kase, ok := h.caseFromPath(c)
	if !ok {
		return
	}
	if len(kase.Documents) == 0 {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", "no documents uploaded")
		return
	}

	start := time.Now()
	result, err := h.engine.Run(c.Request.Context(), kase.Documents)
	if err != nil {
		respondAppError(c, err)
		return
	}
	if err := h.store.Update(kase.ID, func(k *Case) {
		k.Result = &result
	}); err != nil {
		respondAppError(c, err)
		return
	}

	h.logger.Info("server.case.validated",
		"case_id", kase.ID.String(),
		"valid", result.Verdict.OverallValid,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	c.JSON(http.StatusOK, result)
}

func (h *Handler) coversheet(c *gin.Context) {
	kase, ok := h.validatedCase(c)
	if !ok {
		return
	}
	data, err := h.generator.CoverSheet(kase.Result.Extraction, kase.Details, suppliedKinds(kase.Result))
	if err != nil {
		respondAppError(c, err)
		return
	}
	sendWorkbook(c, "capa.xlsx", data)
}

func (h *Handler) form(c *gin.Context) {
	kase, ok := h.validatedCase(c)
	if !ok {
		return
	}
	data, err := h.generator.RegistrationForm(kase.Result.Extraction, kase.Details)
	if err != nil {
		respondAppError(c, err)
		return
	}
	sendWorkbook(c, "ficha_cadastral.xlsx", data)
}

func (h *Handler) dossier(c *gin.Context) {
	kase, ok := h.caseFromPath(c)
	if !ok {
		return
	}
	if len(kase.Documents) == 0 {
		respondError(c, http.StatusConflict, "NO_DOCUMENTS", "upload documents before requesting the dossier")
		return
	}
	data, err := h.generator.Dossier(kase.Documents)
	if err != nil {
		respondAppError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="dossie.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) idFromPath(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_INPUT", "case id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) caseFromPath(c *gin.Context) (Case, bool) {
	id, ok := h.idFromPath(c)
	if !ok {
		return Case{}, false
	}
	kase, err := h.store.Snapshot(id)
	if err != nil {
		respondAppError(c, err)
		return Case{}, false
	}
	return kase, true
}

// validatedCase fetches a case that has a stored validation result.
func (h *Handler) validatedCase(c *gin.Context) (Case, bool) {
	kase, ok := h.caseFromPath(c)
	if !ok {
		return Case{}, false
	}
	if kase.Result == nil {
		respondError(c, http.StatusConflict, "NOT_VALIDATED", "run validation before requesting paperwork")
		return Case{}, false
	}
	return kase, true
}

// caseView is the session snapshot returned by the API: document metadata
// only, never the raw bytes.
func caseView(kase Case) gin.H {
	docs := make([]gin.H, len(kase.Documents))
	for i, d := range kase.Documents {
		docs[i] = gin.H{"file_name": d.FileName, "media_type": d.MediaType, "size": d.Size()}
	}
	return gin.H{
		"id":         kase.ID,
		"created_at": kase.CreatedAt,
		"documents":  docs,
		"details":    kase.Details,
		"result":     kase.Result,
	}
}

// suppliedKinds lists the classified kinds in enum order for the cover-sheet
// checklist.
func suppliedKinds(result *pipeline.Result) []constants.DocumentKind {
	var kinds []constants.DocumentKind
	for _, k := range constants.AllKinds() {
		kind := constants.DocumentKind(k)
		if _, ok := result.Kinds[k]; ok && kind != constants.KindOther {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func sendWorkbook(c *gin.Context, name string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
