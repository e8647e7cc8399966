package container

import (
	"github.com/rs/zerolog"

	app "guardian-epi/internal/application"
	"guardian-epi/internal/domain/entity"
	"guardian-epi/internal/domain/port"
)

// Container wires the application services for one inspection profile.
type Container struct {
	Compliance *app.ComplianceService
	Line       *app.LineService // nil for entry-gate profiles
	Operators  *app.OperatorService
	Classifier port.Classifier
}

func New(profile entity.InspectionProfile, classifier port.Classifier, recorder port.IncidentRecorder, notifier port.Notifier, operatorRepo port.OperatorRepository, log zerolog.Logger) *Container {
	compliance := app.NewComplianceService(profile, classifier, recorder, notifier, log)

	c := &Container{
		Compliance: compliance,
		Classifier: classifier,
	}
	if profile.Conveyor {
		c.Line = app.NewLineService(compliance, log)
	}
	if operatorRepo != nil {
		c.Operators = app.NewOperatorService(operatorRepo)
	}
	return c
}

// Close releases the loaded model.
func (c *Container) Close() error {
	if c.Classifier == nil {
		return nil
	}
	return c.Classifier.Close()
}
