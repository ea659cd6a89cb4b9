package domain

import (
	"fmt"
	"time"
)

type SourceType string

const (
	SourceLocal  SourceType = "local"
	SourceRemote SourceType = "remote"
)

// ResizeRequest describes one inbound request. A Width or Height of zero
// means the caller did not ask for that dimension.
type ResizeRequest struct {
	Path   string
	Width  int
	Height int
}

type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Timings holds the elapsed wall time of each pipeline stage.
type Timings struct {
	Fetch  time.Duration
	Decode time.Duration
	Resize time.Duration
	Encode time.Duration
}

// Result carries the facts of one pipeline run. On failure the fields
// populated up to the failing stage are still valid, the rest are zero.
type Result struct {
	Path     string
	Source   SourceType
	FileType string
	Original Size
	Target   Size
	Image    []byte
	Timings  Timings
}

type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeSourceNotFound Outcome = "source_not_found"
	OutcomeDecodeFailed   Outcome = "decode_failed"
	OutcomeResizeFailed   Outcome = "resize_failed"
)
