package rle565

// Pipeline stages, in the order they run.
const (
	StageRead    = "read"
	StageOpen    = "open"
	StageDecode  = "decode"
	StageReduce  = "reduce"
	StageConvert = "convert"
	StageEncode  = "encode"
	StageWrite   = "write"
)

// StageError records the pipeline stage that failed and why. No later stage
// runs once one has failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// FileError records which file failed during a batch conversion.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return e.File + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}
