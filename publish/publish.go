// Package publish writes enriched routes into Cloud Storage as newline delimited JSON,
// and loads them from there into BigQuery.
package publish

import(
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/skypies/util/gcs"

	"github.com/skypies/routedb"
	"github.com/skypies/routedb/config"
	"github.com/skypies/routedb/logger"
)

// The BigQuery dataset can live in an entirely different google cloud project from the
// bucket. The bucket's project needs its service account added as an editor of the
// BigQuery project, so that it can submit load requests; and vice versa, so that the
// load job can read the bucket.

// An ObjectStore is somewhere to write files, like a GCS bucket.
type ObjectStore interface {
	Exists(ctx context.Context, bucket, name string) (bool, error)
	Create(ctx context.Context, bucket, name, contentType string) (io.WriteCloser, error)
}

// {{{ GCS

// GCS is the ObjectStore for Google Cloud Storage, using the default credentials.
type GCS struct{}

type gcsWriter struct {
	io.Writer
	close func() error
}
func (w gcsWriter)Close() error { return w.close() }

func (GCS)Exists(ctx context.Context, bucket, name string) (bool, error) {
	return gcs.Exists(ctx, bucket, name)
}

func (GCS)Create(ctx context.Context, bucket, name, contentType string) (io.WriteCloser, error) {
	h,err := gcs.OpenRW(ctx, bucket, name, contentType)
	if err != nil { return nil, err }
	return gcsWriter{Writer:h.IOWriter(), close:h.Close}, nil
}

// }}}

type Publisher struct {
	Store  ObjectStore
	Logger *slog.Logger
}

func NewPublisher() Publisher { return Publisher{Store:GCS{}} }

// {{{ p.WriteGCSFile

// WriteGCSFile writes one JSON object per route into bucket/name. It returns how many
// routes were written, which is zero if the file already exists; an existing file is
// never rewritten.
func (p Publisher)WriteGCSFile(ctx context.Context, bucket, name string, routes []routedb.EnrichedRoute) (int, error) {
	l := logger.Or(p.Logger)

	if exists,err := p.Store.Exists(ctx, bucket, name); err != nil {
		return 0, err
	} else if exists {
		l.Info("GCS file already exists, not rewriting", "bucket", bucket, "name", name)
		return 0, nil
	}

	w,err := p.Store.Create(ctx, bucket, name, "application/json")
	if err != nil { return 0, err }

	encoder := json.NewEncoder(w)
	n := 0
	for _,er := range routes {
		if err := encoder.Encode(er.ForBigQuery()); err != nil {
			w.Close()
			return 0, fmt.Errorf("encoding route row %d: %v", er.Row, err)
		}
		n++
	}

	if err := w.Close(); err != nil {
		return 0, err
	}

	l.Info("GCS bigquery file successfully written", "bucket", bucket, "name", name, "routes", n)
	return n, nil
}

func WriteGCSFile(ctx context.Context, bucket, name string, routes []routedb.EnrichedRoute) (int, error) {
	return NewPublisher().WriteGCSFile(ctx, bucket, name, routes)
}

// }}}

// {{{ Target

// A Target is where a load job reads from, and what it loads into.
type Target struct {
	Bucket   string
	Object   string

	Project  string
	Dataset  string
	Table    string

	CreateTable bool // if false, the table must already exist
}

func (t Target)String() string {
	return fmt.Sprintf("gs://%s/%s -> %s:%s.%s", t.Bucket, t.Object, t.Project, t.Dataset, t.Table)
}

func (t Target)GCSURI() string { return fmt.Sprintf("gs://%s/%s", t.Bucket, t.Object) }

// TargetFromConfig fills in everything except the object name.
func TargetFromConfig(c *config.Config) Target {
	return Target{
		Bucket: c.Get("gcs.bucket"),
		Project: c.Get("bigquery.project"),
		Dataset: c.Get("bigquery.dataset"),
		Table: c.Get("bigquery.table"),
	}
}

func (t Target)Validate() error {
	for _,f := range []struct{ name, val string }{
		{"gcs.bucket", t.Bucket},
		{"gcs object", t.Object},
		{"bigquery.project", t.Project},
		{"bigquery.dataset", t.Dataset},
		{"bigquery.table", t.Table},
	} {
		if f.val == "" {
			return routedb.ValidationError{Field:f.name, Value:"", Reason:"must be set"}
		}
	}
	return nil
}

// }}}
// {{{ RouteSchema

// RouteSchema matches the JSON written for a RouteForBigQuery.
var RouteSchema = bigquery.Schema{
	{Name:"Airline",    Type:bigquery.StringFieldType,  Required:true},
	{Name:"AirlineID",  Type:bigquery.IntegerFieldType},
	{Name:"Orig",       Type:bigquery.StringFieldType,  Required:true},
	{Name:"Dest",       Type:bigquery.StringFieldType,  Required:true},
	{Name:"OrigID",     Type:bigquery.IntegerFieldType},
	{Name:"DestID",     Type:bigquery.IntegerFieldType},
	{Name:"Codeshare",  Type:bigquery.BooleanFieldType},
	{Name:"Stops",      Type:bigquery.IntegerFieldType},
	{Name:"Equip",      Type:bigquery.StringFieldType,  Repeated:true},
	{Name:"OrigLat",    Type:bigquery.FloatFieldType},
	{Name:"OrigLong",   Type:bigquery.FloatFieldType},
	{Name:"DestLat",    Type:bigquery.FloatFieldType},
	{Name:"DestLong",   Type:bigquery.FloatFieldType},
	{Name:"DistanceKM", Type:bigquery.FloatFieldType},
}

// }}}
// {{{ p.SubmitLoadJob

// SubmitLoadJob asks BigQuery to append the GCS file to the table, and waits for it to
// finish.
// https://cloud.google.com/bigquery/docs/loading-data-cloud-storage#bigquery-import-gcs-file-go
func (p Publisher)SubmitLoadJob(ctx context.Context, t Target) error {
	l := logger.Or(p.Logger)
	if err := t.Validate(); err != nil { return err }
	tStart := time.Now()

	client,err := bigquery.NewClient(ctx, t.Project)
	if err != nil {
		return fmt.Errorf("creating bigquery client: %v", err)
	}
	defer client.Close()

	destTable := client.Dataset(t.Dataset).Table(t.Table)

	gcsSrc := bigquery.NewGCSReference(t.GCSURI())
	gcsSrc.SourceFormat = bigquery.JSON
	gcsSrc.AllowJaggedRows = true

	loader := destTable.LoaderFrom(gcsSrc)
	loader.WriteDisposition = bigquery.WriteAppend
	loader.CreateDisposition = bigquery.CreateNever
	if t.CreateTable {
		gcsSrc.Schema = RouteSchema
		loader.CreateDisposition = bigquery.CreateIfNeeded
	}

	job,err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("submission of load job: %v", err)
	}

	status,err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for load job %s: %v", job.ID(), err)
	} else if err := status.Err(); err != nil {
		detailedErrStr := ""
		for i,innerErr := range status.Errors {
			detailedErrStr += fmt.Sprintf(" [%2d] %v\n", i, innerErr)
		}
		l.Error("BigQuery load job failed", "target", t.String(), "err", err, "details", detailedErrStr)
		return fmt.Errorf("job error: %v\n--\n%s", err, detailedErrStr)
	}

	l.Info("BigQuery load job done", "target", t.String(), "state", status.State, "took", time.Since(tStart))
	return nil
}

func SubmitLoadJob(ctx context.Context, t Target) error {
	return NewPublisher().SubmitLoadJob(ctx, t)
}

// ShouldLoad says whether to submit a load job after WriteGCSFile wrote n routes. Zero
// means the file was already there, and loading it again would append the same rows a
// second time, so only force overrides it.
func ShouldLoad(n int, skipLoad, force bool) bool {
	switch {
	case skipLoad: return false
	case force:    return true
	}
	return n > 0
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
