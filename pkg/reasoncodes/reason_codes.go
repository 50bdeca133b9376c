package reasoncodes

type ReasonCode string

const (
	ErrUnmarshal           ReasonCode = "UnmarshalError"
	ErrValidation          ReasonCode = "ValidationError"
	ErrPolicy              ReasonCode = "PolicyError"
	ErrCryptographic       ReasonCode = "CryptographicError"
	ErrReplay              ReasonCode = "ReplayError"
	ErrUpstreamUnavailable ReasonCode = "UpstreamUnavailable"
	ErrProofGeneration     ReasonCode = "ProofGenerationError"
	ErrPersistence         ReasonCode = "PersistenceError"
)
