package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-field-survey/models"
)

const listTimeLayout = "2006-01-02 15:04"

func displayID(o models.Observation) string {
	if o.RemoteID != "" {
		return o.RemoteID
	}
	return o.LogicalID
}

func printRow(w io.Writer, o models.Observation) {
	station := o.Payload.String("lieustation")
	if station == "" {
		station = "(sans nom)"
	}
	fmt.Fprintf(w, "%s %s  %s  %s  v%d\n",
		syncBadge(o.Synced),
		idStyle.Render(displayID(o)),
		stationStyle.Render(station),
		o.UpdatedAt.In(time.Local).Format(listTimeLayout),
		o.Version,
	)
}

func printObservation(w io.Writer, o models.Observation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(o)
}
