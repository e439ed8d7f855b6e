package serialization

import (
	"time"
)

// Format constants.
const (
	MagicBytes      = "MNET"
	FormatVersion   = 1
	HeaderAlignment = 64   // Tensor data starts on a 64-byte boundary
	FixedHeaderSize = 48   // magic + version + checksum + header size
	ChecksumSize    = 32   // SHA-256 checksum size (32 bytes)
	ChecksumOffset  = 0x08 // Checksum offset in the fixed header
	headerSizeAt    = ChecksumOffset + ChecksumSize
)

// ModelTypeNetwork is the model type recorded for nn.Network checkpoints.
const ModelTypeNetwork = "Network"

// Header represents the JSON header of a .mnet file.
type Header struct {
	FormatVersion int               `json:"format_version"`       // Version of the .mnet format
	MinnetVersion string            `json:"minnet_version"`       // Version of minnet that created this file
	ModelType     string            `json:"model_type"`           // Type of model ("Network")
	DType         string            `json:"dtype"`                // Element type of every tensor
	CreatedAt     time.Time         `json:"created_at"`           // When the file was created
	Tensors       []TensorMeta      `json:"tensors"`              // Tensor metadata
	Metadata      map[string]string `json:"metadata,omitempty"`   // Custom metadata
	Checkpoint    *CheckpointMeta   `json:"checkpoint,omitempty"` // Training state (optional)
}

// CheckpointMeta records where in a training run the parameters were taken.
type CheckpointMeta struct {
	Epoch         int     `json:"epoch"`          // Completed epochs
	Iteration     int     `json:"iteration"`      // Completed optimizer steps
	Loss          float64 `json:"loss"`           // Last reported mean loss
	Accuracy      float64 `json:"accuracy"`       // Last measured accuracy
	OptimizerType string  `json:"optimizer_type"` // Optimizer kind ("sgd", "adam")
	LearningRate  float64 `json:"learning_rate"`  // Optimizer learning rate
}

// TensorMeta describes a tensor in the .mnet file.
type TensorMeta struct {
	Name   string `json:"name"`   // Parameter name (e.g., "0.weight")
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section (bytes from start of tensor data)
	Size   int64  `json:"size"`   // Size in bytes
}

// dataOffset returns the file offset of the tensor data for a header of the
// given JSON size.
func dataOffset(headerSize int) int {
	end := FixedHeaderSize + headerSize
	return (end + HeaderAlignment - 1) / HeaderAlignment * HeaderAlignment
}
