package processor

import (
	"context"

	"fjacquet/stmt-ingest/internal/logging"
)

// CitiProcessor handles Citi credit card statements. It delegates wholesale
// to the generic table-extraction path, which handles Citi layouts well.
// The type exists to route Citi statements explicitly and to leave room for
// a Citi-specific grammar later.
type CitiProcessor struct {
	generic *GenericProcessor
	logger  logging.Logger
}

var citiFilenamePatterns = compilePatterns(
	`citi`,
	`thankyou`,
	`costco.?visa`,
	`double.?cash`,
)

// NewCitiProcessor creates a Citi processor delegating to the given generic processor.
func NewCitiProcessor(generic *GenericProcessor, logger logging.Logger) *CitiProcessor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &CitiProcessor{generic: generic, logger: logger}
}

// Name implements Processor.
func (p *CitiProcessor) Name() string {
	return "citi"
}

// CanProcess implements Processor.
func (p *CitiProcessor) CanProcess(pdfPath string) bool {
	return matchesFilename(pdfPath, citiFilenamePatterns)
}

// Extract implements Processor.
func (p *CitiProcessor) Extract(ctx context.Context, pdfPath, outputDir string) (string, error) {
	p.logger.Info("Processing Citi PDF via generic table extraction",
		logging.Field{Key: "file", Value: pdfPath})
	return p.generic.Extract(ctx, pdfPath, outputDir)
}
