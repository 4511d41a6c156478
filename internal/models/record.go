package models

import "strconv"

// Record is one driver entry/exit log row (table "registros").
type Record struct {
	ID               int64  `json:"id" example:"1"`
	DriverName       string `json:"driver_name" example:"Ana"`
	Kind             string `json:"kind" example:"entry"`
	Destination      string `json:"destination" example:"Sede central"`
	Errand           string `json:"errand" example:"Entrega de documentos"`
	Justification    string `json:"justification" example:"Oficio 123"`
	RequestReason    string `json:"request_reason" example:"Pedido de gerencia"`
	ResponsibleParty string `json:"responsible_party" example:"Jefe de area"`
	EventTimestamp   string `json:"event_timestamp" example:"2025-01-15 10:00:00"`
	RecordedAt       string `json:"recorded_at" example:"2025-01-15 10:00:05"`
}

// RecordInput is the request body for create and update.
// id and recorded_at are owned by the service and never read from callers.
type RecordInput struct {
	DriverName       string `json:"driver_name" validate:"required" example:"Ana"`
	Kind             string `json:"kind" validate:"required" example:"entry"`
	Destination      string `json:"destination" validate:"required" example:"Sede central"`
	Errand           string `json:"errand" validate:"required" example:"Entrega de documentos"`
	Justification    string `json:"justification" validate:"required" example:"Oficio 123"`
	RequestReason    string `json:"request_reason" validate:"required" example:"Pedido de gerencia"`
	ResponsibleParty string `json:"responsible_party" validate:"required" example:"Jefe de area"`
	// optional; defaults to the current local time on create
	EventTimestamp string `json:"event_timestamp,omitempty" example:"2025-01-15 10:00:00"`
}

// Columns is the column order used by the table, the CSV export and dumps.
var Columns = []string{
	"id",
	"driver_name",
	"kind",
	"destination",
	"errand",
	"justification",
	"request_reason",
	"responsible_party",
	"event_timestamp",
	"recorded_at",
}

// Row renders r in Columns order.
func (r Record) Row() []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.DriverName,
		r.Kind,
		r.Destination,
		r.Errand,
		r.Justification,
		r.RequestReason,
		r.ResponsibleParty,
		r.EventTimestamp,
		r.RecordedAt,
	}
}
