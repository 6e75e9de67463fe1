// Package fetch makes sure there is a local copy of the flight data archive, fetching it
// at most once. Sources can be http(s):// URLs, or gs://bucket/object paths.
package fetch

import(
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/skypies/routedb"
	"github.com/skypies/routedb/logger"
)

// A Result says where the archive is, and whether this call had to fetch it.
type Result struct {
	Path           string
	AlreadyPresent bool
	Bytes          int64 // how many bytes were transferred; zero if AlreadyPresent
}

// An ObjectOpener opens an object in a GCS bucket for reading.
type ObjectOpener func(ctx context.Context, bucket, object string) (io.ReadCloser, error)

type Fetcher struct {
	Client  *http.Client  // nil means http.DefaultClient
	OpenGCS ObjectOpener  // nil means an unauthenticated cloud storage client
	Logger  *slog.Logger
}

// EnsureLocal is Fetcher{}.EnsureLocal
func EnsureLocal(ctx context.Context, remoteURL, localPath string) (Result, error) {
	return Fetcher{}.EnsureLocal(ctx, remoteURL, localPath)
}

// {{{ f.EnsureLocal

// EnsureLocal returns straight away if something already exists at localPath; it is not
// checked. Otherwise it creates any missing directories and copies remoteURL into
// localPath, returning only once the whole thing has been written. Failures are returned
// as a routedb.TransportError; a partial file may be left behind.
func (f Fetcher)EnsureLocal(ctx context.Context, remoteURL, localPath string) (Result, error) {
	l := logger.Or(f.Logger)
	res := Result{Path:localPath}

	if _,err := os.Stat(localPath); err == nil {
		l.Info("archive already present", "path", localPath)
		res.AlreadyPresent = true
		return res, nil
	}

	if dir := filepath.Dir(localPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return res, routedb.TransportError{URL:remoteURL, Err:err}
		}
	}

	rdr,err := f.open(ctx, remoteURL)
	if err != nil { return res, routedb.TransportError{URL:remoteURL, Err:err} }
	defer rdr.Close()

	out,err := os.Create(localPath)
	if err != nil { return res, routedb.TransportError{URL:remoteURL, Err:err} }

	n,err := io.Copy(out, rdr)
	if closeErr := out.Close(); err == nil { err = closeErr }
	if err != nil {
		return res, routedb.TransportError{URL:remoteURL, Err:fmt.Errorf("writing %s: %v", localPath, err)}
	}

	res.Bytes = n
	l.Info("archive downloaded", "url", remoteURL, "path", localPath, "bytes", n)
	return res, nil
}

// }}}
// {{{ f.open

func (f Fetcher)open(ctx context.Context, remoteURL string) (io.ReadCloser, error) {
	u,err := url.Parse(remoteURL)
	if err != nil { return nil, err }

	switch u.Scheme {
	case "http", "https":
		return f.openHTTP(ctx, remoteURL)
	case "gs":
		opener := f.OpenGCS
		if opener == nil { opener = OpenPublicGCSObject }
		return opener(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	}

	return nil, fmt.Errorf("scheme '%s' not supported", u.Scheme)
}

func (f Fetcher)openHTTP(ctx context.Context, remoteURL string) (io.ReadCloser, error) {
	client := f.Client
	if client == nil { client = http.DefaultClient }

	req,err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil { return nil, err }

	resp,err := client.Do(req)
	if err != nil { return nil, err }
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	return resp.Body, nil
}

// }}}
// {{{ OpenPublicGCSObject

type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r gcsReader)Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil { err = cerr }
	return err
}

// OpenPublicGCSObject reads an object from a public bucket; no credentials are needed.
func OpenPublicGCSObject(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	client,err := storage.NewClient(ctx, option.WithoutAuthentication())
	if err != nil { return nil, err }

	rdr,err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("GCS-Open %s|%s: %v", bucket, object, err)
	}

	return gcsReader{Reader:rdr, client:client}, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
