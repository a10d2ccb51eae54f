package models

// ImportRejection explains why one record of an import was skipped.
type ImportRejection struct {
	// Index is the position of the record in the imported file.
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ImportReport summarizes an import.
type ImportReport struct {
	Imported int               `json:"imported"`
	Rejected []ImportRejection `json:"rejected,omitempty"`
	// LogicalIDs lists the keys the imported records were saved under.
	LogicalIDs []string `json:"logical_ids,omitempty"`
}

// ObservationFilter narrows a listing of observations.
type ObservationFilter struct {
	// Search is matched case-insensitively against the station, date,
	// general impressions and weekday fields of the payload.
	Search string
	// PendingOnly keeps only records that are not synced.
	PendingOnly bool
}
