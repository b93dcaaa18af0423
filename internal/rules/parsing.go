package rules

import (
	"github.com/pthm/csquid/internal/visit"
)

// ParsingErrorCheck reports files that fail to preprocess or parse. The
// analyzer raises it directly since no tree is walked for such files.
type ParsingErrorCheck struct{}

func (c *ParsingErrorCheck) Name() string {
	return "parsing-error"
}

func (c *ParsingErrorCheck) Description() string {
	return "Files should be syntactically valid"
}

func (c *ParsingErrorCheck) Config() CheckConfig {
	return CheckConfig{Severity: Critical}
}

func (c *ParsingErrorCheck) Configure(params Params) error {
	return nil
}

func (c *ParsingErrorCheck) NewVisitor(id string) visit.Visitor {
	return nil
}
