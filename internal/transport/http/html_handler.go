package http

import (
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// ServeUploadPage serves the upload form page. A copy on disk under webDir
// takes precedence so the page can be customized without rebuilding;
// otherwise the embedded copy is used.
func ServeUploadPage(webDir string, embedded fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if webDir != "" {
			diskPath := filepath.Join(webDir, "index.html")
			if _, err := os.Stat(diskPath); err == nil {
				serveHTMLFile(w, r, diskPath)
				return
			}
		}

		f, err := embedded.Open("index.html")
		if err != nil {
			http.Error(w, "Upload page not found", http.StatusNotFound)
			return
		}
		defer f.Close()

		setHTMLHeaders(w)
		io.Copy(w, f)
	}
}

func serveHTMLFile(w http.ResponseWriter, r *http.Request, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, "Error loading page", http.StatusInternalServerError)
		return
	}
	setHTMLHeaders(w)
	w.Write(data)
}

func setHTMLHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}
