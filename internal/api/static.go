package api

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/tphakala/weatherapp/internal/logger"
)

//go:embed web
var webFS embed.FS

// StaticFileServer serves the embedded stylesheet and script under /static/*.
type StaticFileServer struct {
	log  logger.Logger
	fsys fs.FS
}

// NewStaticFileServer creates a static file server for fsys.
func NewStaticFileServer(log logger.Logger, fsys fs.FS) *StaticFileServer {
	return &StaticFileServer{log: log, fsys: fsys}
}

// RegisterRoutes registers the static file serving routes on the Echo instance.
func (sfs *StaticFileServer) RegisterRoutes(e *echo.Echo) {
	e.GET("/static/*", sfs.handleAssetRequest)
}

func (sfs *StaticFileServer) handleAssetRequest(c echo.Context) error {
	return sfs.ServeEmbeddedFS(c, c.Param("*"))
}

// ServeEmbeddedFS serves path from the embedded filesystem.
func (sfs *StaticFileServer) ServeEmbeddedFS(c echo.Context, path string) error {
	if sfs.fsys == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Assets filesystem not available")
	}

	file, err := sfs.fsys.Open(path)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			sfs.log.Warn("Error closing file", logger.String("path", path), logger.Error(closeErr))
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		sfs.log.Error("Failed to stat file from embedded FS", logger.String("path", path), logger.Error(err))
		httpErr := echo.NewHTTPError(http.StatusInternalServerError, "Failed to get file info")
		httpErr.Internal = err
		return httpErr
	}
	if stat.IsDir() {
		return echo.NewHTTPError(http.StatusNotFound, "File not found")
	}

	return sfs.serveFileContent(c, file, stat, path)
}

func (sfs *StaticFileServer) serveFileContent(c echo.Context, file fs.File, stat fs.FileInfo, path string) error {
	contentType := getMIMEType(path)
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().Header().Set("Cache-Control", "public, max-age=3600")

	// embed.FS files implement io.ReadSeeker
	if seeker, ok := file.(io.ReadSeeker); ok {
		http.ServeContent(c.Response(), c.Request(), filepath.Base(path), stat.ModTime(), seeker)
		return nil
	}

	return c.Stream(http.StatusOK, contentType, file)
}

// getMIMEType returns the MIME type for the asset types the page ships.
func getMIMEType(path string) string {
	switch filepath.Ext(path) {
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
