package extension

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-web-skeleton/internal/config"
	"github.com/MKhiriev/go-web-skeleton/internal/httperr"
	"github.com/MKhiriev/go-web-skeleton/internal/logger"
)

const immutableCacheControl = "public, max-age=31536000, immutable"

// StaticDigest fingerprints the files of STATIC_DIR with their MD5 digest
// and serves them under STATIC_URL_PREFIX. css/app.css is published as
// css/app-<md5>.css; fingerprinted names are cached forever by clients.
type StaticDigest struct {
	fsys     fs.FS
	prefix   string
	maxAge   time.Duration
	manifest map[string]string
	reverse  map[string]string
}

func NewStaticDigest() *StaticDigest {
	return &StaticDigest{}
}

func (s *StaticDigest) Name() string { return "static_digest" }

// InitApp builds the manifest. A missing STATIC_DIR yields an empty manifest.
func (s *StaticDigest) InitApp(cfg *config.StructuredConfig, log *logger.Logger) error {
	dir := cfg.Assets.Dir

	manifest := make(map[string]string)
	fsys := os.DirFS(dir)

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("dir", dir).Msg("static directory does not exist, serving no static files")
	} else if err != nil {
		return fmt.Errorf("error reading static directory: %w", err)
	} else {
		manifest, err = buildManifest(fsys)
		if err != nil {
			return err
		}
	}

	reverse := make(map[string]string, len(manifest))
	for name, digested := range manifest {
		reverse[digested] = name
	}

	s.fsys = fsys
	s.prefix = cfg.Assets.URLPrefix
	s.maxAge = cfg.App.SendFileMaxAge
	s.manifest = manifest
	s.reverse = reverse

	log.Debug().Int("files", len(manifest)).Msg("static digest initialized")
	return nil
}

// Manifest returns a copy of the logical name to fingerprinted name mapping.
func (s *StaticDigest) Manifest() (map[string]string, error) {
	if s.manifest == nil {
		return nil, ErrNotInitialized
	}

	out := make(map[string]string, len(s.manifest))
	for k, v := range s.manifest {
		out[k] = v
	}
	return out, nil
}

// URLFor returns the public URL of the static file name. Unknown files get
// their plain URL.
func (s *StaticDigest) URLFor(name string) (string, error) {
	if s.manifest == nil {
		return "", ErrNotInitialized
	}

	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if digested, ok := s.manifest[name]; ok {
		name = digested
	}
	return path.Join(s.prefix, name), nil
}

// Mount serves STATIC_DIR under STATIC_URL_PREFIX.
func (s *StaticDigest) Mount(r chi.Router, respond httperr.Responder) {
	if s.manifest == nil {
		return
	}

	r.Get(strings.TrimSuffix(s.prefix, "/")+"/*", func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, respond)
	})
}

func (s *StaticDigest) serve(w http.ResponseWriter, r *http.Request, respond httperr.Responder) {
	name := path.Clean(chi.URLParam(r, "*"))

	cacheControl := "public, max-age=" + strconv.Itoa(int(s.maxAge.Seconds()))
	if logical, ok := s.reverse[name]; ok {
		name = logical
		cacheControl = immutableCacheControl
	}

	if !fs.ValidPath(name) || name == "." {
		respond(w, r, httperr.New(http.StatusNotFound, nil))
		return
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		respond(w, r, httperr.From(err))
		return
	}
	if info.IsDir() {
		respond(w, r, httperr.New(http.StatusNotFound, nil))
		return
	}

	w.Header().Set("Cache-Control", cacheControl)
	http.ServeFileFS(w, r, s.fsys, name)
}

// buildManifest walks fsys and maps every regular file to its fingerprinted
// name.
func buildManifest(fsys fs.FS) (map[string]string, error) {
	manifest := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		sum, err := fileDigest(fsys, name)
		if err != nil {
			return err
		}

		manifest[name] = digestedName(name, sum)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error building static manifest: %w", err)
	}

	return manifest, nil
}

func fileDigest(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// digestedName inserts sum before the extension: css/app.css becomes
// css/app-<sum>.css.
func digestedName(name, sum string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "-" + sum + ext
}
