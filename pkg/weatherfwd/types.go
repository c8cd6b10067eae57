package weatherfwd

import (
	"github.com/Phongsakorn0/Weather-data-processor/internal/app/pipeline"
	"github.com/Phongsakorn0/Weather-data-processor/internal/domain"
	"github.com/Phongsakorn0/Weather-data-processor/internal/ports"
)

// Record is one parsed weather reading as sent to the endpoint.
type Record = domain.Record

// Cursor is the tracker position: active file and last consumed line.
type Cursor = domain.Cursor

// Report summarises one ingest cycle.
type Report = pipeline.Report

// Forwarder delivers records to a destination.
type Forwarder = ports.Forwarder

// Scanner picks the file to ingest.
type Scanner = ports.Scanner

// LineReader loads a file as lines.
type LineReader = ports.LineReader

// FileInfo describes a candidate source file.
type FileInfo = ports.FileInfo

// RecordQueue buffers records between parsing and forwarding.
type RecordQueue = ports.RecordQueue

// QueuedRecord is a record with its source line index.
type QueuedRecord = ports.QueuedRecord

// Checkpoint persists the tracker cursor.
type Checkpoint = ports.Checkpoint

// Observability emits logs and metrics.
type Observability = ports.Observability

// Field is a structured log field.
type Field = ports.Field
