// Package format renders an aggregation result as human-readable text.
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/noblearch/figtotals/internal/pipeline"
)

// NoValuesMessage is the text shown when no color yielded any value. An
// empty result is a valid outcome, not a failure.
const NoValuesMessage = "No colored values detected in image"

// DisplayTitle heads the display rendering.
const DisplayTitle = "FigJam Colour Totals"

// Output is the two renderings of one result: Display for terminals and
// dialogs with a title header, Clipboard as the plain paste-ready blocks.
type Output struct {
	Display   string `json:"display"`
	Clipboard string `json:"clipboard"`
}

// Format renders the result with one block per color, colors sorted
// alphabetically, values joined with " + " in aggregation order, and a
// grand total across all colors. The unit is a suffix like "mm".
func Format(res *pipeline.Result, unit string) Output {
	if res == nil || res.Empty() {
		return Output{
			Display:   DisplayTitle + "\n\n" + NoValuesMessage,
			Clipboard: NoValuesMessage,
		}
	}

	names := make([]string, 0, len(res.PerColor))
	for name, values := range res.PerColor {
		if len(values) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	grand := 0
	for _, name := range names {
		values := res.PerColor[name]
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = strconv.Itoa(v)
		}
		grand += res.Totals[name]

		fmt.Fprintf(&b, "%s:\n", name)
		fmt.Fprintf(&b, "  Values: %s\n", strings.Join(parts, " + "))
		fmt.Fprintf(&b, "  Total: %d %s\n\n", res.Totals[name], unit)
	}
	fmt.Fprintf(&b, "Grand Total: %d %s", grand, unit)

	body := b.String()
	display := DisplayTitle + "\n\n" + body
	if res.Partial {
		display += "\n\n(partial result: processing timed out)"
	}
	return Output{Display: display, Clipboard: body}
}
