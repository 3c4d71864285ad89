package config

// Version is the current module version.
var Version = "0.1.0"

// IsTestMode makes cmd/tacheck print a fixed elapsed-time placeholder
// instead of a wall-clock duration, so its output is deterministic for
// golden tests.
var IsTestMode = false

// Recognized query option names (spec §6).
const (
	OptDiagnostic     = "--diagnostic"
	OptTrackResources = "--track-resources"
	OptLearningRuns   = "--learning-runs"
	OptDiscretization = "--discretization"
)

// RecognizedQueryOptions lists every option name the checker accepts without
// flagging BadQuery. Anything else beginning with "--" is a backend-specific
// pass-through and is preserved verbatim (spec §6).
var RecognizedQueryOptions = map[string]bool{
	OptDiagnostic:     true,
	OptTrackResources: true,
	OptLearningRuns:   true,
	OptDiscretization: true,
}

// Qualifier names, used as the prefix strings when printing a type
// (ir.Type.String); qualifier validity is checked on the bit values, not
// these names (spec §3 "Type").
const (
	QualConst     = "const"
	QualUrgent    = "urgent"
	QualBroadcast = "broadcast"
	QualCommitted = "committed"
	QualMeta      = "meta"
	QualHybrid    = "hybrid"
)

// Channel-priority separator kinds (spec §3 "Channel priority").
const (
	PrioritySeparatorTie   = ","
	PrioritySeparatorLevel = "<"
)
