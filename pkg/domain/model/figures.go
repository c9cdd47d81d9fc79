package model

// File names of the generated figures. These are fixed output paths that
// downstream reports reference by name.
const (
	FigureSeverityDistribution = "severity_distribution.png"
	FigureSeverityVsStatus     = "severity_vs_status.png"
	FigureSeverityVsProject    = "severity_vs_component_top.png"
	FigureDescLength           = "desc_length_by_severity.png"
)
