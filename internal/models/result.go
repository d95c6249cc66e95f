package models

type ResultKind int

const (
	ResultText ResultKind = iota
	ResultVector
	ResultError
)

// Result is the outcome of one façade call as the views render it.
type Result struct {
	Kind   ResultKind
	Text   string
	Vector []float32
	Err    *Error
}

func TextResult(text string) Result {
	return Result{Kind: ResultText, Text: text}
}

func VectorResult(vector []float32) Result {
	return Result{Kind: ResultVector, Vector: vector}
}

func ErrorResult(op string, err error) Result {
	return Result{Kind: ResultError, Err: Classify(op, err)}
}

func (r Result) IsError() bool {
	return r.Kind == ResultError
}
