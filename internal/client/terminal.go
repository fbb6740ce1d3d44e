package client

import (
	"context"
	"fmt"
	"io"

	"github.com/ukydev/lunch-spot/internal/models"
)

// TerminalView renders lookup states as plain text.
type TerminalView struct {
	out io.Writer

	// RetryOffered reports whether the last error offered a retry.
	RetryOffered bool
}

func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{out: out}
}

func (v *TerminalView) SetTriggerEnabled(bool) {}

func (v *TerminalView) ShowLoading() {
	v.RetryOffered = false
	fmt.Fprintln(v.out, "Looking for a lunch spot...")
}

func (v *TerminalView) ShowSpot(spot models.SpotResult) {
	fmt.Fprintf(v.out, "\n%s\n", spot.Name)
	fmt.Fprintf(v.out, "Rating: %s\n", RatingLabel(spot.Rating))
	fmt.Fprintf(v.out, "Address: %s\n", spot.Address)
	fmt.Fprintln(v.out, "Opening hours:")
	for _, line := range OpeningHoursLines(spot.OpeningHours) {
		fmt.Fprintf(v.out, "  %s\n", line)
	}
	if spot.Website != "" {
		fmt.Fprintf(v.out, "Website: %s\n", spot.Website)
	}
	fmt.Fprintf(v.out, "Photo: %s\n", PhotoSource(spot))
	fmt.Fprintf(v.out, "Map: %s\n", MapURL(spot))
}

func (v *TerminalView) ShowError(message string, retry bool) {
	v.RetryOffered = retry
	fmt.Fprintf(v.out, "Error: %s\n", message)
	if retry {
		fmt.Fprintln(v.out, "Tip: try again without a genre filter.")
	}
}

// FixedLocator reports a preconfigured position. A nil Location means the
// position is unknown and location services are treated as unsupported.
type FixedLocator struct {
	Location *models.Location
}

func (l FixedLocator) Locate(ctx context.Context) (models.Location, error) {
	if err := ctx.Err(); err != nil {
		return models.Location{}, err
	}
	if l.Location == nil {
		return models.Location{}, ErrLocationUnsupported
	}
	return *l.Location, nil
}
