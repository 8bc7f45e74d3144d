package models

// Record is a single consumed record as handed to a processor. It is not
// retained after the processor returns.
type Record struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int32
	Offset    int64
}
