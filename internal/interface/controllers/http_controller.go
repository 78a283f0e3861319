package controllers

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/domain/repositories"
	usecases "pdfcompressor/internal/usecase"
)

// UploadFieldName имя поля multipart формы с документом
const UploadFieldName = "file"

// ResultFileName имя файла в заголовке Content-Disposition ответа
const ResultFileName = "optimized.pdf"

// multipartMemory порог, после которого части формы пишутся во временные файлы
const multipartMemory = 32 << 20

//go:embed templates/logs.html
var templatesFS embed.FS

var logsTemplate = template.Must(template.ParseFS(templatesFS, "templates/logs.html"))

// HTTPController контроллер HTTP интерфейса сервиса
type HTTPController struct {
	compressUseCase *usecases.CompressPDFUseCase
	viewLogsUseCase *usecases.ViewLogsUseCase
	maxUploadBytes  int64
	logger          repositories.Logger
}

// NewHTTPController создает новый HTTP контроллер
func NewHTTPController(
	compressUseCase *usecases.CompressPDFUseCase,
	viewLogsUseCase *usecases.ViewLogsUseCase,
	maxUploadBytes int64,
	logger repositories.Logger,
) *HTTPController {
	return &HTTPController{
		compressUseCase: compressUseCase,
		viewLogsUseCase: viewLogsUseCase,
		maxUploadBytes:  maxUploadBytes,
		logger:          logger,
	}
}

// CompressPDF принимает документ в поле file и возвращает оптимизированный PDF.
// Тело ответа при ошибке всегда пустое, подробности только в журнале.
func (c *HTTPController) CompressPDF(w http.ResponseWriter, r *http.Request) {
	if c.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		c.rejectUpload(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(UploadFieldName)
	if err != nil {
		c.rejectUpload(w, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.rejectUpload(w, err)
		return
	}

	output, err := c.compressUseCase.Execute(&entities.Upload{FileName: header.Filename, Data: data})
	if err != nil {
		if errors.Is(err, entities.ErrEmptyUpload) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		c.logError("Ошибка обработки %s: %v", header.Filename, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+ResultFileName)
	w.Header().Set("Content-Length", strconv.Itoa(len(output.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(output.Data); err != nil {
		c.logError("Ошибка отправки ответа: %v", err)
	}
}

// ViewLogs отображает журналы сервиса в HTML странице
func (c *HTTPController) ViewLogs(w http.ResponseWriter, r *http.Request) {
	snapshot, err := c.viewLogsUseCase.Execute()
	if err != nil {
		c.logError("Ошибка чтения журналов: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Рендерим в буфер, чтобы ошибка шаблона не оставила половину страницы
	var buf bytes.Buffer
	if err := logsTemplate.Execute(&buf, snapshot); err != nil {
		c.logError("Ошибка отображения журналов: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Health сообщает о готовности сервиса
func (c *HTTPController) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy","service":"pdf-compressor"}`))
}

// rejectUpload отвечает 413 при превышении лимита и 400 во всех остальных случаях
func (c *HTTPController) rejectUpload(w http.ResponseWriter, err error) {
	if isTooLarge(err) {
		c.logWarning("Загрузка превышает лимит %d байт", c.maxUploadBytes)
		c.compressUseCase.Stats().Reject()
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return
	}

	c.logWarning("Некорректная загрузка: %v", err)
	c.compressUseCase.Stats().Reject()
	w.WriteHeader(http.StatusBadRequest)
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	// multipart иногда теряет исходную ошибку при оборачивании
	return strings.Contains(err.Error(), "request body too large")
}

// Методы для логирования
func (c *HTTPController) logWarning(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Warning(format, args...)
	}
}

func (c *HTTPController) logError(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Error(format, args...)
	}
}
