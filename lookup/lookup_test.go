package lookup

import(
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skypies/routedb"
	"github.com/skypies/routedb/config"
	"github.com/skypies/routedb/logger"
)

type fakeData struct{}

func (fakeData)ValidateAircraft(name string) error {
	if name == "Boeing 747-400" { return nil }
	return routedb.NotFoundError{Kind:"aircraft", Value:name, Known:[]string{"Boeing 747-400"}}
}
func (fakeData)ValidateAirportName(name string) error {
	if name == "Munich Airport" { return nil }
	return routedb.NotFoundError{Kind:"airport name", Value:name, Known:[]string{"Munich Airport"}}
}

type fakeLookuper struct {
	prompts []string
	answer  string
	err     error
}

func (f *fakeLookuper)Lookup(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

func TestAircraftInfo(t *testing.T) {
	fl := &fakeLookuper{answer:"The Boeing 747-400 is a wide body airliner. Boeing 747-400s fly far."}
	md,err := AircraftInfo(context.Background(), fakeData{}, fl, "Boeing 747-400")
	require.NoError(t, err)
	assert.Equal(t, "The **Boeing 747-400** is a wide body airliner. **Boeing 747-400**s fly far.", md)
	assert.Equal(t, []string{"Tell me about the airplane Boeing 747-400"}, fl.prompts)

	_,err = AircraftInfo(context.Background(), fakeData{}, fl, "Concorde")
	var nfe routedb.NotFoundError
	require.True(t, errors.As(err, &nfe))
	assert.Contains(t, err.Error(), "Boeing 747-400", "lists what is known")
	assert.Len(t, fl.prompts, 1, "nothing asked for an unknown aircraft")
}

func TestAirportInfo(t *testing.T) {
	fl := &fakeLookuper{answer:"Munich Airport is in Bavaria."}
	md,err := AirportInfo(context.Background(), fakeData{}, fl, "Munich Airport")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(md, "**Munich Airport**"))
	assert.Equal(t, "Tell me about the airport Munich Airport", fl.prompts[0])

	_,err = AirportInfo(context.Background(), fakeData{}, fl, "Tempelhof")
	assert.Error(t, err)

	fl.err = errors.New("boom")
	_,err = AirportInfo(context.Background(), fakeData{}, fl, "Munich Airport")
	assert.ErrorIs(t, err, fl.err)
}

func TestChat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"It is big."}}]}`))
	}))
	defer srv.Close()

	c := Chat{Endpoint:srv.URL, APIKey:"sekrit", Model:"m1", Temperature:0.1}
	s,err := c.Lookup(context.Background(), "Tell me about the airplane Boeing 777")
	require.NoError(t, err)
	assert.Equal(t, "It is big.", s)
	assert.Equal(t, "m1", got.Model)
	assert.Equal(t, 0.1, got.Temperature)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestChatErrors(t *testing.T) {
	tests := []struct{
		Status   int
		Body     string
		Contains string
	}{
		{http.StatusUnauthorized, `{"error":{"message":"Incorrect API key"}}`, "Incorrect API key"},
		{http.StatusInternalServerError, `oops`, "oops"},
		{http.StatusOK, `{"choices":[]}`, "no choices"},
		{http.StatusOK, `not json`, "bad response"},
	}

	for _,test := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(test.Status)
			w.Write([]byte(test.Body))
		}))
		c := Chat{Endpoint:srv.URL}
		_,err := c.Lookup(context.Background(), "hi")
		srv.Close()

		require.Error(t, err, test.Body)
		assert.Contains(t, err.Error(), test.Contains)
	}
}

func TestChatFromConfig(t *testing.T) {
	c := config.Defaults()
	_,err := ChatFromConfig(c)
	assert.ErrorContains(t, err, "ROUTEDB_LOOKUP_APIKEY")
}

func TestCachedWithoutRedis(t *testing.T) {
	fl := &fakeLookuper{answer:"answer"}
	c := Cached{Lookuper:fl, Logger:logger.Discard()}
	s,err := c.Lookup(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "answer", s)
}

func TestCachedRedisDown(t *testing.T) {
	rc := redis.NewClient(&redis.Options{Addr:"127.0.0.1:1", DialTimeout:100*time.Millisecond, MaxRetries:-1})
	defer rc.Close()

	fl := &fakeLookuper{answer:"answer"}
	c := Cached{Lookuper:fl, Redis:rc, TTL:time.Minute, Logger:logger.Discard()}
	s,err := c.Lookup(context.Background(), "q")
	require.NoError(t, err, "cache errors are not fatal")
	assert.Equal(t, "answer", s)
	assert.Len(t, fl.prompts, 1)
}

func TestWithCache(t *testing.T) {
	fl := &fakeLookuper{}
	l,err := WithCache(config.Defaults(), fl)
	require.NoError(t, err)
	assert.Equal(t, fl, l, "no redis configured, no cache")

	assert.True(t, strings.HasPrefix(CacheKey("q"), KeyPrefix))
	assert.NotEqual(t, CacheKey("q"), CacheKey("r"))
}
