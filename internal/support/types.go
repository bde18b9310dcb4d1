// Package support builds diagnostic log archives: it stages the application's log
// files together with an environment snapshot and compresses them into one zip.
package support

import (
	"time"

	"github.com/wallyouneed/wallyouneed/internal/conf"
	"github.com/wallyouneed/wallyouneed/internal/errors"
)

// File and directory naming.
const (
	ArchivePrefix    = "WallYouNeed_Logs_"
	ArchiveExt       = ".zip"
	PartialExt       = ".partial"
	ScratchPrefix    = "WYN_LogExport_"
	SnapshotFileName = "system_info.txt"
	LogFileExt       = conf.LogFileExt

	// TimestampLayout is the yyyyMMdd_HHmmss token shared by the archive and scratch names
	TimestampLayout = "20060102_150405"
)

// ErrExportFailed is matched by every error returned from Exporter.Export.
var ErrExportFailed = errors.NewStd("log export failed")

// unknownValue is rendered for any environment fact that could not be probed
const unknownValue = "unknown"

// SystemInfo contains host and runtime facts written to the environment snapshot.
// Empty strings and negative numbers mean the probe failed.
type SystemInfo struct {
	Timestamp       time.Time
	OSVersion       string
	RuntimeVersion  string
	Is64BitProcess  bool
	Is64BitOS       bool
	MachineName     string
	ProcessorCount  int
	SystemDirectory string
	UserDomain      string
	UserName        string
	WorkingSet      int64 // resident set size in bytes
}

// Report describes a completed export.
type Report struct {
	ID       string        // correlation id, also logged as export_id
	Path     string        // archive path
	Files    int           // archive entries, including the snapshot
	Bytes    int64         // archive size
	Duration time.Duration // wall time of the export
}
