// Package config holds the handful of settings the route database tools need. Values
// are looked up by dotted key (e.g. "archive.url"); they come from built-in defaults,
// then an optional YAML file, then a .env file and the process environment, where
// ROUTEDB_ARCHIVE_URL overrides archive.url.
package config

import(
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/skypies/routedb"
)

const EnvPrefix = "ROUTEDB_"

var defaults = map[string]string{
	"archive.url":              routedb.DefaultArchiveURL,
	"archive.path":             routedb.DefaultArchivePath,
	"archive.timeout":          "0s", // no timeout

	"haul.threshold_km":        strconv.FormatFloat(routedb.DefaultHaulThresholdKM, 'f', -1, 64),
	"haul.train_plane_ratio":   strconv.FormatFloat(routedb.DefaultTrainPlaneRatio, 'f', -1, 64),

	"enrich.workers":           "4",
	"enrich.duplicates":        "first", // or "reject"

	"lookup.endpoint":          "https://api.openai.com/v1/chat/completions",
	"lookup.model":             "gpt-4o-mini",
	"lookup.temperature":       "0.1",
	"lookup.apikey":            "",
	"lookup.rate":              "1", // requests per second

	"redis.addr":               "",   // empty disables the lookup cache
	"redis.password":           "",
	"redis.ttl":                "168h",

	"gcs.bucket":               "",
	"gcs.object_prefix":        "routes-",
	"bigquery.project":         "",
	"bigquery.dataset":         "public",
	"bigquery.table":           "routes",
}

type Config struct {
	values map[string]string
}

var(
	mu      sync.RWMutex
	current = Defaults()
)

// Defaults returns a config holding only the built-in values.
func Defaults() *Config {
	c := Config{values:map[string]string{}}
	for k,v := range defaults { c.values[k] = v }
	return &c
}

// {{{ Load

// Load builds a config from the defaults, the YAML file at path (skipped if path is
// empty), and the environment (after loading any envFiles that exist). The result is
// also installed as the package-level config that Get reads from.
func Load(path string, envFiles ...string) (*Config, error) {
	c := Defaults()

	if path != "" {
		data,err := os.ReadFile(path)
		if err != nil { return nil, fmt.Errorf("config: %v", err) }
		if err := c.mergeYAML(data); err != nil {
			return nil, fmt.Errorf("config %s: %v", path, err)
		}
	}

	for _,f := range envFiles {
		if _,err := os.Stat(f); err != nil { continue }
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("config %s: %v", f, err)
		}
	}
	c.mergeEnv(os.Environ())

	Set(c)
	return c, nil
}

// }}}
// {{{ c.mergeYAML, c.mergeEnv

func (c *Config)mergeYAML(data []byte) error {
	m := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &m); err != nil { return err }
	flatten("", m, c.values)
	return nil
}

func flatten(prefix string, in map[string]interface{}, out map[string]string) {
	for k,v := range in {
		key := k
		if prefix != "" { key = prefix + "." + k }
		switch val := v.(type) {
		case map[string]interface{}: flatten(key, val, out)
		case nil:                    out[key] = ""
		default:                     out[key] = fmt.Sprintf("%v", val)
		}
	}
}

func (c *Config)mergeEnv(environ []string) {
	for _,kv := range environ {
		k,v,found := strings.Cut(kv, "=")
		if !found || !strings.HasPrefix(k, EnvPrefix) { continue }
		key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
		// First underscore separates section from name: ROUTEDB_HAUL_THRESHOLD_KM
		if section,name,ok := strings.Cut(key, "_"); ok {
			key = section + "." + name
		}
		c.values[key] = v
	}
}

// }}}

// {{{ c.Get, c.Float, c.Int, c.Duration

func (c *Config)Get(key string) string { return c.values[key] }

func (c *Config)Float(key string) (float64, error) {
	f,err := strconv.ParseFloat(c.Get(key), 64)
	if err != nil { return 0, fmt.Errorf("config %s: %v", key, err) }
	return f, nil
}

func (c *Config)Int(key string) (int, error) {
	i,err := strconv.Atoi(c.Get(key))
	if err != nil { return 0, fmt.Errorf("config %s: %v", key, err) }
	return i, nil
}

func (c *Config)Duration(key string) (time.Duration, error) {
	d,err := time.ParseDuration(c.Get(key))
	if err != nil { return 0, fmt.Errorf("config %s: %v", key, err) }
	return d, nil
}

// }}}

// {{{ Set, Get

func Set(c *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = c
}

// Get reads from the most recently loaded config.
func Get(key string) string {
	mu.RLock()
	defer mu.RUnlock()
	return current.Get(key)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
