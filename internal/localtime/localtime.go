// FilePath: internal/localtime/localtime.go

// Package localtime converts between the fixed human-entered timestamp
// format used on the wire and absolute UTC instants used in storage.
//
// Every timestamp crossing the HTTP boundary is written and read in the
// display zone; every timestamp in the store is UTC. Comparing a raw
// input string against a stored instant without going through this
// package is a bug.
package localtime

import (
	"fmt"
	"time"
	_ "time/tzdata"

	apierrors "github.com/netcellhq/netcell-hub/internal/errors"
)

// Layout is the fixed wire format: day, month abbreviation, year,
// 12-hour clock with AM/PM.
const Layout = "02 Jan 2006 03:04 PM"

// ZoneName is the fixed display/input timezone.
const ZoneName = "Asia/Beirut"

var displayZone = mustLoadZone()

func mustLoadZone() *time.Location {
	loc, err := time.LoadLocation(ZoneName)
	if err != nil {
		// tzdata is linked in; a missing zone is a build defect.
		panic(fmt.Sprintf("localtime: cannot load zone %s: %v", ZoneName, err))
	}
	return loc
}

// Zone returns the fixed display timezone.
func Zone() *time.Location {
	return displayZone
}

// Parse interprets text in the fixed layout and display zone and returns
// the absolute instant in UTC. Malformed text yields a parse error that
// callers must surface as a client-input failure, never as missing data.
func Parse(text string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, text, displayZone)
	if err != nil {
		return time.Time{}, apierrors.NewParseError(
			fmt.Sprintf("invalid timestamp %q: expected format %q", text, Layout), err)
	}
	return t.UTC(), nil
}

// Format renders an instant in the display zone using the fixed layout.
// It is the exact inverse of Parse at minute granularity.
func Format(t time.Time) string {
	return t.In(displayZone).Format(Layout)
}
