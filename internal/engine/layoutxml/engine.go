// SPDX-License-Identifier: MPL-2.0

package layoutxml

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/databinder/databinder/internal/engine"
)

// Engine implements engine.Engine.
type Engine struct {
	logger *log.Logger
}

// New returns the built-in engine.
func New(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{logger: logger}
}

// NewLayoutProcessor implements engine.Engine.
func (e *Engine) NewLayoutProcessor(cfg engine.ProcessorConfig) engine.LayoutProcessor {
	return &processor{cfg: cfg, logger: e.logger.WithPrefix("layout-processor")}
}

// NewBaseClassGenerator implements engine.Engine.
func (e *Engine) NewBaseClassGenerator(args engine.LayoutInfoArgs) engine.BaseClassGenerator {
	return &generator{args: args, logger: e.logger.WithPrefix("base-class-generator")}
}
