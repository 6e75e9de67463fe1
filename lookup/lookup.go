// Package lookup asks a language model to describe an aircraft model or an airport, after
// checking the name against the dataset.
package lookup

import(
	"context"
	"fmt"
	"strings"
)

// A Lookuper answers a free text prompt with markdown.
type Lookuper interface {
	Lookup(ctx context.Context, prompt string) (string, error)
}

// The dataset implements this.
type Validator interface {
	ValidateAircraft(name string) error
	ValidateAirportName(name string) error
}

func AircraftPrompt(name string) string { return fmt.Sprintf("Tell me about the airplane %s", name) }
func AirportPrompt(name string) string  { return fmt.Sprintf("Tell me about the airport %s", name) }

// Embolden marks every mention of name in the markdown as bold.
func Embolden(markdown, name string) string {
	if name == "" { return markdown }
	return strings.ReplaceAll(markdown, name, "**"+name+"**")
}

// AircraftInfo describes the aircraft model. The name must be one the dataset knows, or a
// routedb.NotFoundError listing the ones it does know is returned, and nothing is asked.
func AircraftInfo(ctx context.Context, v Validator, l Lookuper, name string) (string, error) {
	if err := v.ValidateAircraft(name); err != nil { return "", err }
	md,err := l.Lookup(ctx, AircraftPrompt(name))
	if err != nil { return "", fmt.Errorf("aircraft lookup '%s': %w", name, err) }
	return Embolden(md, name), nil
}

// AirportInfo describes the airport, which is named by its full name.
func AirportInfo(ctx context.Context, v Validator, l Lookuper, name string) (string, error) {
	if err := v.ValidateAirportName(name); err != nil { return "", err }
	md,err := l.Lookup(ctx, AirportPrompt(name))
	if err != nil { return "", fmt.Errorf("airport lookup '%s': %w", name, err) }
	return Embolden(md, name), nil
}
