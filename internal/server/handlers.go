package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tsawler/textable"
	"github.com/tsawler/textable/command"
	"github.com/tsawler/textable/export"
	"github.com/tsawler/textable/fields"
	"github.com/tsawler/textable/htmldoc"
	"github.com/tsawler/textable/ocr"
	"github.com/tsawler/textable/reader"
	"github.com/tsawler/textable/store"
	"github.com/tsawler/textable/table"
)

// ParseResponse is the body returned by POST /v1/parse
type ParseResponse struct {
	DocumentID string             `json:"document_id"`
	Saved      bool               `json:"saved"`
	Command    string             `json:"command"`
	Encoding   string             `json:"encoding,omitempty"`
	Columns    []table.ColumnSpan `json:"columns"`
	Rows       []table.Row        `json:"rows"`
	RowCount   int                `json:"row_count"`
	Records    []table.Row        `json:"records"`
	Warnings   []command.Warning  `json:"warnings"`
}

// DocumentResponse is the body returned by GET /v1/documents/:id
type DocumentResponse struct {
	Document store.DocumentInfo `json:"document"`
	Rows     []table.Row        `json:"rows"`
	Warnings []command.Warning  `json:"warnings"`
}

// parsed is one request body run through a command
type parsed struct {
	doc      *command.Document
	cmd      command.Command
	tbl      *table.Table
	records  []command.Record
	warnings []command.Warning
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCommands(c *gin.Context) {
	type commandInfo struct {
		Name      string         `json:"name"`
		Arguments []string       `json:"arguments"`
		Fields    []fields.Field `json:"fields"`
	}

	names := s.registry.List()
	list := make([]commandInfo, 0, len(names))
	for _, name := range names {
		cmd := s.registry.Get(name)
		info := commandInfo{Name: name, Arguments: cmd.SupportedArguments()}
		if m := cmd.Mapping(); m != nil {
			info.Fields = m.Fields()
		}
		list = append(list, info)
	}
	c.JSON(http.StatusOK, gin.H{"commands": list})
}

// handleParse parses the request body. The capture is either the raw body
// or a multipart "file" field. Query parameters: command selects a
// registered command, name is the capture's file name, save=true stores
// the result.
func (s *Server) handleParse(c *gin.Context) {
	p, ok := s.parseRequest(c)
	if !ok {
		return
	}

	records := make([]table.Row, len(p.records))
	for i, rec := range p.records {
		records[i] = rec.Row()
	}

	resp := ParseResponse{
		DocumentID: p.doc.ID,
		Command:    p.cmd.Name(),
		Encoding:   p.doc.Encoding,
		Columns:    p.tbl.Columns,
		Rows:       p.tbl.Rows,
		RowCount:   len(records),
		Records:    records,
		Warnings:   p.warnings,
	}
	if resp.Rows == nil {
		resp.Rows = []table.Row{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []command.Warning{}
	}

	if save, _ := strconv.ParseBool(c.Query("save")); save {
		if s.store == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no store configured"})
			return
		}
		id, err := s.store.SaveDocument(c.Request.Context(), p.doc, p.cmd.Name(), records, p.warnings)
		if err != nil {
			s.abort(c, err)
			return
		}
		resp.DocumentID = id
		resp.Saved = true
	}

	c.JSON(http.StatusOK, resp)
}

// handleExport parses the request body like handleParse and writes the
// records in the format named by the format query parameter.
func (s *Server) handleExport(c *gin.Context) {
	name := c.DefaultQuery("format", s.config.Output.Format)
	format, err := export.ParseFormat(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, ok := s.parseRequest(c)
	if !ok {
		return
	}

	config := export.ConfigFor(format)
	config.PrettyPrint = s.config.Output.Pretty

	var buf bytes.Buffer
	if err := export.NewExporterWithConfig(config).ExportRecords(p.records, &buf); err != nil {
		s.abort(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+p.cmd.Name()+format.FileExtension()+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) handleListDocuments(c *gin.Context) {
	docs, err := s.store.Documents(c.Request.Context(), c.Query("command"))
	if err != nil {
		s.abort(c, err)
		return
	}
	if docs == nil {
		docs = []store.DocumentInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (s *Server) handleGetDocument(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	info, err := s.store.Document(ctx, id)
	if err != nil {
		s.abort(c, err)
		return
	}
	rows, err := s.store.Rows(ctx, id)
	if err != nil {
		s.abort(c, err)
		return
	}
	warnings, err := s.store.Warnings(ctx, id)
	if err != nil {
		s.abort(c, err)
		return
	}

	resp := DocumentResponse{Document: info, Rows: rows, Warnings: warnings}
	if resp.Rows == nil {
		resp.Rows = []table.Row{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []command.Warning{}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDeleteDocument(c *gin.Context) {
	if err := s.store.DeleteDocument(c.Request.Context(), c.Param("id")); err != nil {
		s.abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseRequest reads the capture from the request and parses it. On
// failure it writes the error response and returns false.
func (s *Server) parseRequest(c *gin.Context) (*parsed, bool) {
	data, name, err := s.readBody(c)
	if err != nil {
		s.abort(c, err)
		return nil, false
	}
	if q := c.Query("name"); q != "" {
		name = q
	}

	ext := textable.FromReader(bytes.NewReader(data), name).
		Config(s.config.TableConfig()).
		ReaderConfig(s.config.ReaderConfig()).
		OCRLanguage(s.config.Input.OCRLang)

	doc, warnings, err := ext.Document()
	if err != nil {
		s.abort(c, err)
		return nil, false
	}

	cmd, err := s.resolveCommand(c.Query("command"), doc.Name)
	if err != nil {
		s.abort(c, err)
		return nil, false
	}

	analyzer := table.NewAnalyzerWithConfig(s.config.TableConfig())
	if a, ok := cmd.(interface{ Analyzer() *table.Analyzer }); ok {
		analyzer = a.Analyzer()
	}
	tbl, err := analyzer.Parse(doc.Lines)
	if err != nil {
		s.abort(c, err)
		return nil, false
	}

	records, parseWarnings, err := cmd.Parse(c.Request.Context(), doc)
	if err != nil {
		s.abort(c, err)
		return nil, false
	}

	return &parsed{
		doc:      doc,
		cmd:      cmd,
		tbl:      tbl,
		records:  records,
		warnings: append(warnings, parseWarnings...),
	}, true
}

// readBody returns the capture bytes and the uploaded file name, if any.
func (s *Server) readBody(c *gin.Context) ([]byte, string, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.Server.MaxBodyBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, "", err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		return data, fh.Filename, err
	}

	data, err := io.ReadAll(c.Request.Body)
	return data, "", err
}

// resolveCommand returns the named command, else the registered command
// matching the capture's name, else a generic table command.
func (s *Server) resolveCommand(name, filename string) (command.Command, error) {
	if name != "" {
		return s.registry.Lookup(name)
	}
	if cmd := s.registry.Match(filename); cmd != nil {
		return cmd, nil
	}
	return command.NewGenericWithConfig("table", nil, s.config.TableConfig()), nil
}

// abort writes an error response with a status derived from err
func (s *Server) abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr), errors.Is(err, reader.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, table.ErrNoHeaderFound), errors.Is(err, htmldoc.ErrNoPreformatted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, command.ErrUnknownCommand), errors.Is(err, reader.ErrEmptyInput),
		errors.Is(err, export.ErrUnsupportedFormat), errors.Is(err, http.ErrMissingFile):
		return http.StatusBadRequest
	case errors.Is(err, textable.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ocr.ErrOCRNotEnabled):
		return http.StatusNotImplemented
	case errors.Is(err, store.ErrDocumentNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
