package routedb

import(
	"errors"
	"fmt"
	"strings"
)

// ErrNoDistance is returned when a ratio over summed route distances is asked for, but
// no route contributed any distance.
var ErrNoDistance = errors.New("no route distance to compute a ratio over")

// How many of the known values a NotFoundError will list before giving up
const maxKnownListed = 10

// {{{ NotFoundError

// A NotFoundError is returned when an archive path, country, airport code, airport name
// or aircraft name has no match in the data. Known, if set, lists the valid values.
type NotFoundError struct {
	Kind    string // "archive", "country", "airport", "aircraft", ...
	Value   string
	Known []string
}

func (e NotFoundError)Error() string {
	str := fmt.Sprintf("%s '%s' does not exist in the provided data", e.Kind, e.Value)
	if len(e.Known) == 0 { return str }

	n := len(e.Known)
	if n > maxKnownListed { n = maxKnownListed }
	str += "; choose one of: " + strings.Join(e.Known[:n], ", ")
	if len(e.Known) > n {
		str += fmt.Sprintf(" (and %d more)", len(e.Known)-n)
	}
	return str
}

// }}}
// {{{ FormatError

// A FormatError is returned when an archive entry can't be read as tabular data.
type FormatError struct {
	Source string // e.g. "flight_data.zip:airports.csv"
	Line   int    // 0 if not specific to one line
	Err    error
}

func (e FormatError)Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format error in %s, line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("format error in %s: %v", e.Source, e.Err)
}
func (e FormatError)Unwrap() error { return e.Err }

// }}}
// {{{ TransportError

// A TransportError is returned when fetching the archive fails. Nothing is retried, and
// a partially written local file is left where it is.
type TransportError struct {
	URL string
	Err error
}

func (e TransportError)Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e TransportError)Unwrap() error { return e.Err }

// }}}
// {{{ ValidationError

// A ValidationError is returned for inputs that are not numeric, or not in range.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e ValidationError)Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Value, e.Reason)
}

// }}}
// {{{ DuplicateKeyError

// A DuplicateKeyError is returned when a join key that must be unique isn't.
type DuplicateKeyError struct {
	Code string
	Rows []int
}

func (e DuplicateKeyError)Error() string {
	return fmt.Sprintf("IATA code '%s' appears on %d airport rows %v", e.Code, len(e.Rows), e.Rows)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
