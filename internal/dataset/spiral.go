package dataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/born-ml/minnet/internal/tensor"
)

// SpiralConfig configures the spiral generator.
type SpiralConfig struct {
	BatchSize      int     // Examples per mini-batch (default: 30)
	Classes        int     // Number of spiral arms (default: 3)
	PointsPerClass int     // Points sampled per arm (default: 100)
	MaxAngle       float64 // Angle swept by each arm in radians (default: π)
	Seed           uint64  // Seed for sampling and shuffling (default: 0, a random seed)
}

// DefaultSpiralConfig returns the classic 3-class, 300-point setup.
func DefaultSpiralConfig() SpiralConfig {
	return SpiralConfig{
		BatchSize:      30,
		Classes:        3,
		PointsPerClass: 100,
		MaxAngle:       math.Pi,
	}
}

// withDefaults fills zero fields from DefaultSpiralConfig.
func (c SpiralConfig) withDefaults() SpiralConfig {
	d := DefaultSpiralConfig()
	if c.BatchSize == 0 {
		c.BatchSize = d.BatchSize
	}
	if c.Classes == 0 {
		c.Classes = d.Classes
	}
	if c.PointsPerClass == 0 {
		c.PointsPerClass = d.PointsPerClass
	}
	if c.MaxAngle == 0 {
		c.MaxAngle = d.MaxAngle
	}
	return c
}

// Validate checks the configuration.
func (c SpiralConfig) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive (got %d)", c.BatchSize)
	}
	if c.Classes <= 0 {
		return fmt.Errorf("classes must be positive (got %d)", c.Classes)
	}
	if c.PointsPerClass <= 0 {
		return fmt.Errorf("points per class must be positive (got %d)", c.PointsPerClass)
	}
	if c.BatchSize > c.Classes*c.PointsPerClass {
		return errors.New("batch size exceeds the number of points")
	}
	return nil
}

// Point is a labelled 2-D sample.
type Point struct {
	X, Y  float64
	Class int
}

// Spiral is a synthetic classification dataset of interleaved spiral arms.
//
// Point i of class c (n points per class) is placed at
//
//	radius = i / n
//	angle  = i/n * MaxAngle + c/Classes * 2π + U[0, 1)
//	(x, y) = (radius cos(angle), radius sin(angle))
//
// The test set is every point; training batches walk the points in the
// current shuffled order.
type Spiral[T tensor.Float] struct {
	points    []Point
	classes   int
	batchSize int
	cursor    int
	rng       *rand.Rand
}

// NewSpiral samples a spiral dataset.
//
// Zero fields of cfg take their DefaultSpiralConfig values.
func NewSpiral[T tensor.Float](cfg SpiralConfig) (*Spiral[T], error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("spiral: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64() //nolint:gosec // G404: sampling, not security
	}
	rng := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // G404: sampling, not security

	n := float64(cfg.PointsPerClass)
	points := make([]Point, 0, cfg.Classes*cfg.PointsPerClass)
	for class := 0; class < cfg.Classes; class++ {
		for i := 0; i < cfg.PointsPerClass; i++ {
			radius := float64(i) / n
			angle := float64(i)/n*cfg.MaxAngle +
				float64(class)/float64(cfg.Classes)*2*math.Pi +
				rng.Float64()
			points = append(points, Point{
				X:     radius * math.Cos(angle),
				Y:     radius * math.Sin(angle),
				Class: class,
			})
		}
	}

	return &Spiral[T]{
		points:    points,
		classes:   cfg.Classes,
		batchSize: cfg.BatchSize,
		rng:       rng,
	}, nil
}

// Shuffle reorders the points and rewinds the cursor.
func (s *Spiral[T]) Shuffle() {
	s.rng.Shuffle(len(s.points), func(i, j int) {
		s.points[i], s.points[j] = s.points[j], s.points[i]
	})
	s.cursor = 0
}

// Next returns the next full mini-batch.
func (s *Spiral[T]) Next() (MiniBatch[T], bool) {
	if len(s.points)-s.cursor < s.batchSize {
		return MiniBatch[T]{}, false
	}
	batch := s.batch(s.points[s.cursor : s.cursor+s.batchSize])
	s.cursor += s.batchSize
	return batch, true
}

// Len returns the number of full mini-batches per epoch.
func (s *Spiral[T]) Len() int {
	return len(s.points) / s.batchSize
}

// TestData returns all points as one batch.
func (s *Spiral[T]) TestData() MiniBatch[T] {
	return s.batch(s.points)
}

// Classes returns the number of classes.
func (s *Spiral[T]) Classes() int {
	return s.classes
}

// Points returns the sampled coordinates grouped by class.
func (s *Spiral[T]) Points() map[int][]Point {
	byClass := make(map[int][]Point, s.classes)
	for _, p := range s.points {
		byClass[p.Class] = append(byClass[p.Class], p)
	}
	return byClass
}

func (s *Spiral[T]) batch(points []Point) MiniBatch[T] {
	inputs := tensor.Zeros[T](len(points), 2)
	labels := tensor.Zeros[T](len(points), s.classes)
	for i, p := range points {
		inputs.Set(T(p.X), i, 0)
		inputs.Set(T(p.Y), i, 1)
		labels.Set(1, i, p.Class)
	}
	return MiniBatch[T]{Inputs: inputs, Labels: labels}
}

var _ Dataset[float32] = (*Spiral[float32])(nil)
