package connection

// Result is how a single /ask exchange resolved. Exactly one is produced per Ask call.
type Result interface {
	isResult()
}

// Success carries the answer returned by the server
type Success struct {
	Answer string
}

func (Success) isResult() {}

// Failure carries the reason an exchange did not produce an answer
type Failure struct {
	Err error
}

func (Failure) isResult() {}
