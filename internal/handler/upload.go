package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dumichanda/booking-api/internal/config"
	"github.com/dumichanda/booking-api/internal/storage"
)

// maxUploadFiles caps the number of parts a single multipart upload may
// carry, mirroring the limit the client was built against.
const maxUploadFiles = 100

// BlobStore is the slice of the object store the upload handlers need.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// UploadHandler ingests photos: either fetched from a remote link or
// received as multipart parts.  Every object goes to the blob store and a
// copy lands in the local uploads dir, which is served statically as a
// fallback alongside the blob URLs.
type UploadHandler struct {
	Cfg    config.Config
	Store  BlobStore
	Client *http.Client
}

func NewUploadHandler(cfg config.Config, store BlobStore) *UploadHandler {
	if store == nil {
		panic("nil blob store passed to NewUploadHandler")
	}
	return &UploadHandler{
		Cfg:    cfg,
		Store:  store,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadByLinkReq struct {
	Link string `json:"link"`
}

// UploadByLink handles POST /upload-by-link: download the remote resource
// to a transient file, sniff its content type, push it to the blob store
// and return the public URL.
func (h *UploadHandler) UploadByLink(c echo.Context) error {
	var req uploadByLinkReq
	if err := c.Bind(&req); err != nil || req.Link == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "link is required"})
	}

	tmpName := filepath.Join(os.TempDir(), "photo-"+uuid.NewString()+extOf(req.Link))
	if err := h.download(c.Request().Context(), req.Link, tmpName); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image download failed"})
	}
	defer os.Remove(tmpName)

	url, err := h.ingestFile(c.Request().Context(), tmpName, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	return c.JSON(http.StatusOK, url)
}

// UploadFiles handles POST /upload: up to maxUploadFiles multipart parts
// under "photos".  URLs come back in input order.  Failure of any single
// part fails the whole request; partial success is not reported.
func (h *UploadHandler) UploadFiles(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart form required"})
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "photos are required"})
	}
	if len(files) > maxUploadFiles {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("too many files (max %d)", maxUploadFiles)})
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := h.ingestPart(c.Request().Context(), fh)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
		}
		urls = append(urls, url)
	}
	return c.JSON(http.StatusOK, urls)
}

// download fetches the remote resource into dst.
func (h *UploadHandler) download(ctx context.Context, link, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return err
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", link, resp.StatusCode)
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}

// ingestFile pushes a local file to the blob store under a fresh storage
// key, keeps a fallback copy in the uploads dir, and returns the public
// URL.  When contentType is empty it is sniffed from the first bytes.
func (h *UploadHandler) ingestFile(ctx context.Context, localPath, contentType string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if contentType == "" {
		head := make([]byte, 512)
		n, err := f.Read(head)
		if err != nil && err != io.EOF {
			return "", err
		}
		contentType = http.DetectContentType(head[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return "", err
		}
	}

	key := storage.Key(localPath)
	if err := h.keepLocalCopy(localPath, key); err != nil {
		return "", err
	}
	return h.Store.Put(ctx, key, contentType, f)
}

// ingestPart pushes one multipart file to the blob store, preserving the
// original filename extension and the declared content type.
func (h *UploadHandler) ingestPart(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := storage.Key(fh.Filename)

	local, err := os.Create(filepath.Join(h.Cfg.UploadDir, key))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(local, src); err != nil {
		local.Close()
		return "", err
	}
	local.Close()

	f, err := os.Open(filepath.Join(h.Cfg.UploadDir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.Store.Put(ctx, key, contentType, f)
}

func (h *UploadHandler) keepLocalCopy(localPath, key string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(h.Cfg.UploadDir, key))
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// extOf pulls a usable extension from the link path, defaulting to .jpg
// like the photo ingest has always done.
func extOf(link string) string {
	ext := path.Ext(path.Base(link))
	if ext == "" || len(ext) > 5 {
		return ".jpg"
	}
	return ext
}
