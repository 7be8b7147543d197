// Package decoder provides the document decoding collaborator for the viewer.
package decoder

import (
	"context"
	"fmt"
	"image"
	_ "image/png" // pdftoppm output format
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"flipbook-viewer/internal/logger"
	"flipbook-viewer/internal/types"
)

// PDFDocument is the PDF implementation of Decoder. Validation and page
// geometry come from pdfcpu, text runs from ledongthuc/pdf, and rasterization
// shells out to poppler's pdftoppm.
type PDFDocument struct {
	path      string
	info      DocumentInfo
	dims      []dim
	file      *os.File
	reader    *pdf.Reader
	spooled   bool // path is a temp file owned by this document
	hasRaster bool // pdftoppm is available

	mu      sync.Mutex // guards reader access and tempDir creation
	tempDir string
}

type dim struct {
	width  float64
	height float64
}

// Open opens and validates a PDF document at the given path.
// A validation or structural failure is fatal to the load and reported as a
// decode error; the caller keeps its previous state.
func Open(path string) (*PDFDocument, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.NewAppError(types.ErrFileNotFound, "document not found", err)
		}
		return nil, types.NewAppError(types.ErrDecode, "cannot access document", err)
	}
	if fileInfo.IsDir() {
		return nil, types.NewAppError(types.ErrDecode, "path is a directory, not a document", nil)
	}

	// Structural validation first: a malformed document must fail the whole
	// load rather than surface later as per-page errors.
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, types.NewAppError(types.ErrDecode, "document is malformed or unsupported", err)
	}

	pageDims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, types.NewAppError(types.ErrDecode, "failed to read page geometry", err)
	}
	if len(pageDims) == 0 {
		return nil, types.NewAppError(types.ErrDecode, "document has no pages", nil)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, types.NewAppError(types.ErrDecode, "failed to open document", err)
	}

	d := &PDFDocument{
		path:      path,
		file:      f,
		reader:    r,
		hasRaster: checkPopplerAvailable(),
	}
	for _, pd := range pageDims {
		d.dims = append(d.dims, dim{width: pd.Width, height: pd.Height})
	}

	d.info = DocumentInfo{
		FilePath:  path,
		FileName:  filepath.Base(path),
		PageCount: len(pageDims),
		FileSize:  fileInfo.Size(),
		HasText:   d.probeText(),
	}

	if !d.hasRaster {
		logger.Warn("pdftoppm not found, pages will render as placeholders",
			logger.String("file", d.info.FileName))
	}

	logger.Info("document opened",
		logger.String("file", d.info.FileName),
		logger.Int("pages", d.info.PageCount),
		logger.Int64("size", d.info.FileSize),
		logger.Bool("hasText", d.info.HasText))

	return d, nil
}

// OpenBytes spools an in-memory document to a temp file and opens it.
// File pickers and URL fetches both collapse to this path.
func OpenBytes(data []byte, workDir string) (*PDFDocument, error) {
	if len(data) == 0 {
		return nil, types.NewAppError(types.ErrDecode, "empty document buffer", nil)
	}

	tmp, err := os.CreateTemp(workDir, "flipbook_*.pdf")
	if err != nil {
		return nil, types.NewAppError(types.ErrIO, "failed to create temp file", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, types.NewAppError(types.ErrIO, "failed to spool document", err)
	}
	tmp.Close()

	d, err := Open(tmp.Name())
	if err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}
	d.spooled = true
	return d, nil
}

// checkPopplerAvailable checks if pdftoppm is on PATH
func checkPopplerAvailable() bool {
	cmd := exec.Command("pdftoppm", "-v")
	return cmd.Run() == nil
}

// Info returns the document metadata
func (d *PDFDocument) Info() DocumentInfo {
	return d.info
}

// PageCount returns the number of pages
func (d *PDFDocument) PageCount() int {
	return d.info.PageCount
}

// PageSize returns the native dimensions in points of the given 1-based page
func (d *PDFDocument) PageSize(page int) (float64, float64, error) {
	if page < 1 || page > len(d.dims) {
		return 0, 0, types.NewAppErrorWithPage(types.ErrDecode, "page index out of range", page, nil)
	}
	pd := d.dims[page-1]
	return pd.width, pd.height, nil
}

// Rasterize renders one page at exactly width×height pixels using pdftoppm.
func (d *PDFDocument) Rasterize(ctx context.Context, page, width, height int) (image.Image, error) {
	if page < 1 || page > d.info.PageCount {
		return nil, types.NewAppErrorWithPage(types.ErrRender, "page index out of range", page, nil)
	}
	if !d.hasRaster {
		return nil, types.NewAppErrorWithPage(types.ErrRender, "no rasterizer available", page, nil)
	}

	tempDir, err := d.ensureTempDir()
	if err != nil {
		return nil, err
	}

	outputPrefix := filepath.Join(tempDir, fmt.Sprintf("page_%d_%dx%d", page, width, height))
	args := []string{
		"-f", fmt.Sprintf("%d", page),
		"-l", fmt.Sprintf("%d", page),
		"-png",
		"-scale-to-x", fmt.Sprintf("%d", width),
		"-scale-to-y", fmt.Sprintf("%d", height),
		"-singlefile",
		d.path,
		outputPrefix,
	}

	cmd := exec.CommandContext(ctx, "pdftoppm", args...)
	hideWindow(cmd)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, types.NewAppErrorWithPage(types.ErrRender,
			fmt.Sprintf("pdftoppm failed: %s", string(output)), page, err)
	}

	imgPath := outputPrefix + ".png"
	img, err := loadImage(imgPath)
	os.Remove(imgPath)
	if err != nil {
		return nil, types.NewAppErrorWithPage(types.ErrRender, "failed to load rasterized page", page, err)
	}

	logger.Debug("page rasterized",
		logger.Int("page", page),
		logger.Int("width", img.Bounds().Dx()),
		logger.Int("height", img.Bounds().Dy()))

	return img, nil
}

// TextRuns extracts the positioned text runs of a page.
// Runs carry native page coordinates; scaling to display space is the
// renderer's concern.
func (d *PDFDocument) TextRuns(page int) ([]TextRun, error) {
	if page < 1 || page > d.info.PageCount {
		return nil, types.NewAppErrorWithPage(types.ErrExtract, "page index out of range", page, nil)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}
	if p.V.Key("Contents").Kind() == pdf.Null {
		return nil, nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, types.NewAppErrorWithPage(types.ErrExtract, "text extraction failed", page, err)
	}

	var runs []TextRun
	for _, row := range rows {
		for _, text := range row.Content {
			if text.S == "" {
				continue
			}
			if isOperatorJunk(text.S) {
				continue
			}
			runs = append(runs, TextRun{
				Text:     text.S,
				X:        text.X,
				Y:        text.Y,
				FontSize: text.FontSize,
				FontName: text.Font,
			})
		}
	}
	return runs, nil
}

// Close releases the underlying file handle and any temp artifacts
func (d *PDFDocument) Close() error {
	d.mu.Lock()
	if d.tempDir != "" {
		os.RemoveAll(d.tempDir)
		d.tempDir = ""
	}
	d.mu.Unlock()

	var err error
	if d.file != nil {
		err = d.file.Close()
		d.file = nil
	}
	if d.spooled {
		os.Remove(d.path)
	}
	return err
}

// ensureTempDir lazily creates the rasterization scratch directory
func (d *PDFDocument) ensureTempDir() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tempDir == "" {
		tempDir, err := os.MkdirTemp("", "flipbook_raster_*")
		if err != nil {
			return "", types.NewAppError(types.ErrIO, "failed to create raster temp dir", err)
		}
		d.tempDir = tempDir
	}
	return d.tempDir, nil
}

// probeText checks the first few pages for extractable text, so the UI can
// tell scanned documents apart from text documents up front.
func (d *PDFDocument) probeText() bool {
	maxPagesToCheck := 3
	if d.reader.NumPage() < maxPagesToCheck {
		maxPagesToCheck = d.reader.NumPage()
	}

	total := 0
	for pageNum := 1; pageNum <= maxPagesToCheck; pageNum++ {
		p := d.reader.Page(pageNum)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, r := range content {
			if !unicode.IsSpace(r) {
				total++
			}
		}
		if total > 50 {
			return true
		}
	}
	return total > 0
}

// isOperatorJunk filters extraction artifacts that are PDF/PostScript operator
// code rather than page text.
func isOperatorJunk(s string) bool {
	if len(s) == 0 {
		return false
	}
	if (strings.Contains(s, " def ") || strings.HasSuffix(s, " def")) && strings.Contains(s, "/") {
		return true
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "null def") {
		return true
	}
	if strings.Contains(s, "@stx") || strings.Contains(s, "@etx") {
		return true
	}
	return strings.Contains(lower, "/burl") || strings.Contains(lower, "burl@")
}

// loadImage loads an image from file
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}
