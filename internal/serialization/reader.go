package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/tensor"
)

// decode reads a whole .mnet stream, verifies its checksum and header, and
// returns the header with the tensor data section.
func decode(r io.Reader) (*Header, []byte, error) {
	var fixed [FixedHeaderSize]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return nil, nil, fmt.Errorf("failed to read fixed header: %w", err)
	}
	if string(fixed[:4]) != MagicBytes {
		return nil, nil, ErrInvalidMagic
	}
	if version := binary.LittleEndian.Uint32(fixed[4:ChecksumOffset]); version != FormatVersion {
		return nil, nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}
	var stored [ChecksumSize]byte
	copy(stored[:], fixed[ChecksumOffset:headerSizeAt])

	headerSize := binary.LittleEndian.Uint64(fixed[headerSizeAt:])
	if headerSize > MaxHeaderSize {
		return nil, nil, ErrHeaderTooLarge
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read body: %w", err)
	}
	start := dataOffset(int(headerSize)) - FixedHeaderSize
	if len(body) < start {
		return nil, nil, fmt.Errorf("failed to read header: %w", io.ErrUnexpectedEOF)
	}
	if err := ValidateChecksum(ComputeChecksum(body), stored); err != nil {
		return nil, nil, err
	}

	var header Header
	if err := json.Unmarshal(body[:headerSize], &header); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}
	data := body[start:]
	if err := ValidateHeader(&header, int64(len(data))); err != nil {
		return nil, nil, fmt.Errorf("validation failed: %w", err)
	}
	return &header, data, nil
}

// ReadHeader decodes and validates a checkpoint without loading it.
func ReadHeader(r io.Reader) (*Header, error) {
	header, _, err := decode(r)
	return header, err
}

// Read decodes a checkpoint from r into net.
//
// The checkpoint must hold exactly the parameters of net, with the same
// shapes and element type. net is left untouched when any check fails.
func Read[T tensor.Float](r io.Reader, net *nn.Network[T]) (*Header, error) {
	header, data, err := decode(r)
	if err != nil {
		return nil, err
	}
	if want := tensor.DTypeOf[T]().String(); header.DType != want {
		return nil, fmt.Errorf("%w: file holds %s, network uses %s", ErrDTypeMismatch, header.DType, want)
	}

	params := networkTensors(net)
	expected := make(map[string]tensor.Shape, len(params))
	for _, t := range params {
		expected[t.name] = t.shape
	}

	state := make(map[string][]T, len(header.Tensors))
	for _, meta := range header.Tensors {
		shape, ok := expected[meta.Name]
		if !ok {
			return nil, &ValidationError{Type: "unexpected_tensor", Tensor: meta.Name, Details: "network has no such parameter"}
		}
		if !shape.Equal(meta.Shape) {
			return nil, &ValidationError{
				Type:    "shape_mismatch",
				Tensor:  meta.Name,
				Details: fmt.Sprintf("file %v, network %v", meta.Shape, shape),
			}
		}
		values := make([]T, shape.NumElements())
		region := bytes.NewReader(data[meta.Offset : meta.Offset+meta.Size])
		if err := binary.Read(region, binary.LittleEndian, values); err != nil {
			return nil, fmt.Errorf("failed to decode tensor %s: %w", meta.Name, err)
		}
		state[meta.Name] = values
	}
	for _, t := range params {
		if _, ok := state[t.name]; !ok {
			return nil, &ValidationError{Type: "missing_tensor", Tensor: t.name, Details: "checkpoint has no such parameter"}
		}
	}

	if err := net.LoadStateDict(state); err != nil {
		return nil, fmt.Errorf("failed to load parameters: %w", err)
	}
	return header, nil
}

// Load reads the checkpoint at path into net.
func Load[T tensor.Float](path string, net *nn.Network[T]) (*Header, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file, net)
}
