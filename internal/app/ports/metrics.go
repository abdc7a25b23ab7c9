package ports

// StepMetrics receives simulation KPI events from the step use case.
type StepMetrics interface {
	RecordStep(collected, infeasible, respawned int)
	RecordReset()
	RecordEpisodeDone(elapsedSteps int)
}
