// Package pipeline provides the data carried through the request processing stages and the error taxonomy they report.
package pipeline

import (
	"log/slog"
	"time"

	"github.com/sootra/accessibility-app/internal/models"
)

// Stage is a step of the linear request processing state machine.
type Stage int

const (
	Received Stage = iota
	HeaderChecked
	ContentTypeChecked
	NonEmptyChecked
	Parsed
	SizeChecked
	Dispatched
	Responded
	Rejected
)

var stageNames = [...]string{
	Received:           "received",
	HeaderChecked:      "header-checked",
	ContentTypeChecked: "content-type-checked",
	NonEmptyChecked:    "non-empty-checked",
	Parsed:             "parsed",
	SizeChecked:        "size-checked",
	Dispatched:         "dispatched",
	Responded:          "responded",
	Rejected:           "rejected",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// Bus represents the central data structure for processing a request through the stages.
type Bus struct {
	Request  models.Request
	Stage    Stage
	Received time.Time

	ContentType     string
	RequirementsDoc string
	Payload         *models.Payload
	Text            string
	Results         models.Results

	Response models.Response
	Error    error
}

// NewBus creates a bus for the given request in the Received stage.
func NewBus(req models.Request) *Bus {
	return &Bus{Request: req, Stage: Received, Received: time.Now()}
}

// Advance moves the bus to the next stage. Stages never move backwards.
func (b *Bus) Advance(s Stage) {
	if s > b.Stage {
		b.Stage = s
	}
}

// LogValue returns the structured log attributes of the bus.
func (b *Bus) LogValue() slog.Value {
	logAttr := make([]slog.Attr, 2, 6)
	logAttr[0] = slog.String("requestID", b.Request.ID)
	logAttr[1] = slog.String("stage", b.Stage.String())
	if b.ContentType != "" {
		logAttr = append(logAttr, slog.String("contentType", b.ContentType))
	}
	if b.RequirementsDoc != "" {
		logAttr = append(logAttr, slog.String("requirementsDoc", b.RequirementsDoc))
	}
	if b.Payload != nil {
		logAttr = append(logAttr, slog.String("payload", b.Payload.Kind.String()))
	}
	logAttr = append(logAttr, slog.Int("bytes", len(b.Request.Body)))
	return slog.GroupValue(logAttr...)
}
