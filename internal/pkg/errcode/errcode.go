package errcode

// Outcome labels reported to metrics and logs for a /prompt request.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeInference = "inference_error"
	OutcomeParse     = "parse_error"
	OutcomeNoStock   = "no_stock"
	OutcomeThrottled = "throttled"
	OutcomeInternal  = "internal"
)
