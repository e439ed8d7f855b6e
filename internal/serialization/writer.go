package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/tensor"
)

// Options carries the optional header fields of a checkpoint.
type Options struct {
	MinnetVersion string            // Recorded as-is in the header
	Metadata      map[string]string // Free-form key/value pairs
	Checkpoint    *CheckpointMeta   // Training state, nil for a bare model
}

// namedTensor is one parameter region of a network.
type namedTensor[T tensor.Float] struct {
	name  string
	shape tensor.Shape
	data  []T
}

// networkTensors lists the parameters of net in layer order, named the way
// Network.StateDict names them.
func networkTensors[T tensor.Float](net *nn.Network[T]) []namedTensor[T] {
	var out []namedTensor[T]
	for i := 0; i < net.Len(); i++ {
		tl, ok := net.Layer(i).(nn.Trainable[T])
		if !ok {
			continue
		}
		p, _ := tl.ParamsAndGrads()
		out = append(out,
			namedTensor[T]{name: fmt.Sprintf("%d.weight", i), shape: p.Weight.Shape(), data: p.Weight.Data()},
			namedTensor[T]{name: fmt.Sprintf("%d.bias", i), shape: p.Bias.Shape(), data: p.Bias.Data()},
		)
	}
	return out
}

// Write encodes the parameters of net to w.
func Write[T tensor.Float](w io.Writer, net *nn.Network[T], opts Options) error {
	var data bytes.Buffer
	tensors := networkTensors(net)
	metas := make([]TensorMeta, 0, len(tensors))
	for _, t := range tensors {
		offset := int64(data.Len())
		if err := binary.Write(&data, binary.LittleEndian, t.data); err != nil {
			return fmt.Errorf("failed to encode tensor %s: %w", t.name, err)
		}
		metas = append(metas, TensorMeta{
			Name:   t.name,
			Shape:  t.shape.Clone(),
			Offset: offset,
			Size:   int64(data.Len()) - offset,
		})
	}

	header := Header{
		FormatVersion: FormatVersion,
		MinnetVersion: opts.MinnetVersion,
		ModelType:     ModelTypeNetwork,
		DType:         tensor.DTypeOf[T]().String(),
		CreatedAt:     time.Now().UTC(),
		Tensors:       metas,
		Metadata:      opts.Metadata,
		Checkpoint:    opts.Checkpoint,
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	// Body = header JSON + alignment padding + tensor data; the checksum covers all of it.
	padding := dataOffset(len(headerJSON)) - FixedHeaderSize - len(headerJSON)
	body := make([]byte, 0, len(headerJSON)+padding+data.Len())
	body = append(body, headerJSON...)
	body = append(body, make([]byte, padding)...)
	body = append(body, data.Bytes()...)
	checksum := ComputeChecksum(body)

	var fixed [FixedHeaderSize]byte
	copy(fixed[:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:ChecksumOffset], FormatVersion)
	copy(fixed[ChecksumOffset:headerSizeAt], checksum[:])
	binary.LittleEndian.PutUint64(fixed[headerSizeAt:], uint64(len(headerJSON)))

	if _, err := w.Write(fixed[:]); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}

// Save writes a checkpoint of net to path, replacing any existing file.
func Save[T tensor.Float](path string, net *nn.Network[T], opts Options) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return Write(file, net, opts)
}
