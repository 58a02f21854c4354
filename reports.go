package reportengine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/reportengine/docstore"
)

// ErrStoreUnavailable is returned when no document store could be opened.
var ErrStoreUnavailable = errors.New("document store not available")

// Submission is a report as received from the client, before normalization.
type Submission struct {
	Title    string
	Category string
	Excerpt  *string
	Content  string
	Image    *UploadedImage
}

// CreatedReport is the outcome of a successful Create.
type CreatedReport struct {
	ID        string
	ImageURL  *string
	ImagePath string // local path the image was written to, empty without an image
}

// ReportWriter validates submissions, stores attached images and inserts
// report documents.
type ReportWriter struct {
	store     docstore.Store
	uploadDir string
	author    string
	now       func() time.Time
}

// NewReportWriter creates a ReportWriter. author is stamped on every report.
func NewReportWriter(store docstore.Store, uploadDir, author string) *ReportWriter {
	return &ReportWriter{
		store:     store,
		uploadDir: uploadDir,
		author:    author,
		now:       time.Now,
	}
}

// Create validates sub and, only if it is valid, writes the image and inserts
// the report. An image written before a failed insert is left in place.
func (w *ReportWriter) Create(ctx context.Context, sub Submission) (CreatedReport, error) {
	report := BlogReport{
		Title:    sub.Title,
		Category: NormalizeCategory(sub.Category),
		Excerpt:  sub.Excerpt,
		Content:  sub.Content,
		Author:   w.author,
		Status:   StatusPublished,
	}

	var safeName string
	if sub.Image != nil {
		safeName = SanitizeFilename(sub.Image.Filename)
		u := ImageURL(safeName)
		report.ImageURL = &u
	}

	if err := ValidateReport(report); err != nil {
		return CreatedReport{}, err
	}

	var created CreatedReport
	if sub.Image != nil {
		path, err := saveImage(w.uploadDir, safeName, sub.Image.Data)
		if err != nil {
			return CreatedReport{}, err
		}
		created.ImagePath = path
	}

	if w.store == nil {
		return CreatedReport{}, ErrStoreUnavailable
	}
	now := w.now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now
	id, err := w.store.InsertOne(ctx, ReportCollection, report)
	if err != nil {
		return CreatedReport{}, fmt.Errorf("insert report: %w", err)
	}
	created.ID = id
	created.ImageURL = report.ImageURL
	return created, nil
}

func (a *App) handleCreateReport(c echo.Context) error {
	sub, err := readSubmission(c.Request())
	if err != nil {
		return err
	}
	created, err := a.Reports.Create(c.Request().Context(), sub)
	if err != nil {
		return err
	}
	a.metrics.reportsCreated.Inc()
	if u := CurrentUser(c); u != nil {
		c.Logger().Infof("report %s created by %s", created.ID, u.Username)
	}
	if sub.Image != nil {
		a.metrics.imagesStored.Inc()
		if info, ok := probeImage(sub.Image.Data); ok {
			c.Logger().Infof("stored image %s (%s, %d bytes)", created.ImagePath, info, len(sub.Image.Data))
		} else {
			c.Logger().Infof("stored upload %s (%d bytes, not a recognized image)", created.ImagePath, len(sub.Image.Data))
		}
	}
	return c.JSON(http.StatusOK, CreateReportResponse{ID: created.ID, ImageURL: created.ImageURL})
}

// readSubmission reads the report fields from a multipart or urlencoded body.
// Multipart parts are walked by hand so the client's filename reaches
// SanitizeFilename unmodified; mime/multipart strips directories from it.
func readSubmission(r *http.Request) (Submission, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get(echo.HeaderContentType))
	if mediaType == echo.MIMEMultipartForm {
		return readMultipartSubmission(r)
	}
	if err := r.ParseForm(); err != nil {
		return Submission{}, echo.NewHTTPError(http.StatusBadRequest, "invalid form body").SetInternal(err)
	}
	return submissionFromValues(r.PostForm, nil), nil
}

func readMultipartSubmission(r *http.Request) (Submission, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return Submission{}, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body").SetInternal(err)
	}
	values := url.Values{}
	var img *UploadedImage
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Submission{}, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body").SetInternal(err)
		}
		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			return Submission{}, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body").SetInternal(err)
		}
		if filename := rawFilename(part); filename != "" {
			if part.FormName() == "image" {
				img = &UploadedImage{Filename: filename, Data: data}
			}
			continue
		}
		values.Add(part.FormName(), string(data))
	}
	return submissionFromValues(values, img), nil
}

// rawFilename returns the filename parameter of a part's Content-Disposition
// exactly as sent.
func rawFilename(p *multipart.Part) string {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return ""
	}
	return params["filename"]
}

func submissionFromValues(values url.Values, img *UploadedImage) Submission {
	sub := Submission{
		Title:    values.Get("title"),
		Category: values.Get("category"),
		Content:  values.Get("content"),
		Image:    img,
	}
	if excerpt := values.Get("excerpt"); excerpt != "" {
		sub.Excerpt = &excerpt
	}
	return sub
}
