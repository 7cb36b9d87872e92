package constants

// CheckStatus is the severity of one verdict check.
type CheckStatus string

// Stable values (these exact strings travel over the API).
const (
	CheckSuccess CheckStatus = "success"
	CheckWarning CheckStatus = "warning"
	CheckError   CheckStatus = "error"
)

// RunState tracks a validation run through the engine.
type RunState string

const (
	RunIdle        RunState = "IDLE"
	RunClassifying RunState = "CLASSIFYING"
	RunExtracting  RunState = "EXTRACTING"
	RunReconciling RunState = "RECONCILING"
	RunDone        RunState = "DONE"
	RunFailed      RunState = "FAILED"
)

// MaritalStatus values, as printed on Brazilian identity documents.
const (
	MaritalSingle   = "SOLTEIRO"
	MaritalMarried  = "CASADO"
	MaritalDivorced = "DIVORCIADO"
	MaritalWidowed  = "VIUVO"
)
