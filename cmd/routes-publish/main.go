// routes-publish writes the enriched routes into Cloud Storage, and loads them from there
// into BigQuery.
//
//   routes-publish -bucket=my-bucket -project=my-bq-project
//   routes-publish -skipload    (just write the GCS file)
//
// If the GCS file already exists it is left alone, and nothing is loaded (the rows are
// already in BigQuery) unless -force is given.
package main

import(
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/skypies/routedb/config"
	"github.com/skypies/routedb/dataset"
	"github.com/skypies/routedb/logger"
	"github.com/skypies/routedb/publish"
)

var(
	ctx = context.Background()
	fConfig string
	fEnvFile string
	fBucket string
	fProject string
	fObject string
	fSkipLoad bool
	fCreate bool
	fForce bool
)

func init() {
	flag.StringVar(&fConfig, "config", "", "YAML config file")
	flag.StringVar(&fEnvFile, "env", ".env", "env file to load, if it exists")
	flag.StringVar(&fBucket, "bucket", "", "GCS bucket (default from config)")
	flag.StringVar(&fProject, "project", "", "BigQuery project (default from config)")
	flag.StringVar(&fObject, "object", "", "GCS object name (default <gcs.object_prefix><date>.json)")
	flag.BoolVar(&fSkipLoad, "skipload", false, "write the GCS file, but don't load it")
	flag.BoolVar(&fCreate, "create", false, "create the BigQuery table if needed")
	flag.BoolVar(&fForce, "force", false, "load into BigQuery even if the GCS file already existed")
	flag.Parse()
}

func main() {
	tStart := time.Now()
	logger.Setup()

	c,err := config.Load(fConfig, fEnvFile)
	if err != nil { log.Fatal(err) }

	t := publish.TargetFromConfig(c)
	if fBucket != "" { t.Bucket = fBucket }
	if fProject != "" { t.Project = fProject }
	t.Object = fObject
	if t.Object == "" {
		t.Object = config.Get("gcs.object_prefix") + time.Now().Format("2006.01.02") + ".json"
	}
	t.CreateTable = fCreate
	if err := t.Validate(); err != nil { log.Fatal(err) }

	opt,err := dataset.OptionsFromConfig(c)
	if err != nil { log.Fatal(err) }
	ds,err := dataset.Build(ctx, opt)
	if err != nil { log.Fatal(err) }

	n,err := publish.WriteGCSFile(ctx, t.Bucket, t.Object, ds.Routes())
	if err != nil { log.Fatal(err) }

	if publish.ShouldLoad(n, fSkipLoad, fForce) {
		if err := publish.SubmitLoadJob(ctx, t); err != nil {
			log.Fatalf("SubmitLoadJob failed: %v", err)
		}
	}

	fmt.Printf("OK!\n%d routes written to %s - took %s\n", n, t.GCSURI(), time.Since(tStart))
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
