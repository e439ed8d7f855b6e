// Package main provides the minnet CLI: train a small classifier on the
// spiral dataset.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/minnet/internal/config"
	"github.com/born-ml/minnet/internal/dataset"
	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/optim"
	"github.com/born-ml/minnet/internal/parallel"
	"github.com/born-ml/minnet/internal/serialization"
	"github.com/born-ml/minnet/internal/tensor"
	"github.com/born-ml/minnet/internal/trainer"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("minnet %s\n", version)
	case "config":
		out, err := config.Default().Marshal()
		if err != nil {
			log.Fatalf("render config: %v", err)
		}
		os.Stdout.Write(out)
	case "train":
		if err := train(os.Args[2:]); err != nil {
			log.Fatalf("training failed: %v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf("minnet %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Train a classifier on the spiral dataset")
	fmt.Println("  config     Print the default run config as YAML")
	fmt.Println("  version    Show version")
}

func train(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (default: built-in spiral run)")
	maxEpoch := fs.Int("epochs", 0, "Number of training epochs")
	evalInterval := fs.Int("eval-interval", 0, "Iterations per reported loss sample")
	batchSize := fs.Int("batch-size", 0, "Batch size")
	lr := fs.Float64("lr", 0, "Learning rate")
	seed := fs.Uint64("seed", 0, "PRNG seed for data and weights")
	activation := fs.String("activation", "", "Hidden activation: sigmoid or relu")
	optimizer := fs.String("optimizer", "", "Optimizer: sgd or adam")
	precision := fs.String("precision", "", "Element type: float32 or float64")
	workers := fs.Int("workers", 0, "Row-parallel workers (default: physical cores)")
	loadPath := fs.String("load", "", "Initialize weights from a .mnet checkpoint")
	savePath := fs.String("save", "", "Write the trained weights to a .mnet checkpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.ApplyOverrides(config.Overrides{
		MaxEpoch:     *maxEpoch,
		EvalInterval: *evalInterval,
		BatchSize:    *batchSize,
		LR:           *lr,
		Seed:         *seed,
		Activation:   *activation,
		Optimizer:    *optimizer,
		Precision:    *precision,
		Workers:      *workers,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	pcfg := parallel.DefaultConfig()
	if cfg.Train.Workers > 0 {
		pcfg.NumWorkers = cfg.Train.Workers
	}
	tensor.SetParallelConfig(pcfg)
	log.Printf("precision=%s workers=%d hidden=%v activation=%s optimizer=%s lr=%g",
		cfg.Network.Precision, pcfg.NumWorkers, cfg.Network.HiddenSizes,
		cfg.Network.Activation, cfg.Optimizer.Kind, cfg.Optimizer.LR)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		history *trainer.History
		err     error
	)
	switch cfg.Network.Precision {
	case "float32":
		history, err = run[float32](ctx, cfg, *loadPath, *savePath)
	default:
		history, err = run[float64](ctx, cfg, *loadPath, *savePath)
	}
	if errors.Is(err, context.Canceled) {
		log.Printf("interrupted after %d loss samples", len(history.Losses))
		return nil
	}
	if err != nil {
		return err
	}

	log.Printf("final accuracy=%.5f", history.FinalAccuracy())
	return nil
}

func run[T tensor.Float](ctx context.Context, cfg *config.Config, loadPath, savePath string) (*trainer.History, error) {
	ds, err := dataset.NewSpiral[T](dataset.SpiralConfig{
		BatchSize:      cfg.Dataset.BatchSize,
		Classes:        cfg.Dataset.Classes,
		PointsPerClass: cfg.Dataset.PointsPerClass,
		MaxAngle:       cfg.Dataset.MaxAngle,
		Seed:           cfg.Dataset.Seed,
	})
	if err != nil {
		return nil, err
	}

	act, err := nn.ParseActivation(cfg.Network.Activation)
	if err != nil {
		return nil, err
	}
	net, err := nn.NewNetwork[T](2, cfg.Network.HiddenSizes, ds.Classes(), act, nn.Config{
		WeightInitMean:   cfg.Network.WeightInitMean,
		WeightInitStdDev: cfg.Network.WeightInitStdDev,
		Seed:             cfg.Network.Seed,
	})
	if err != nil {
		return nil, err
	}

	if loadPath != "" {
		header, err := serialization.Load(loadPath, net)
		if err != nil {
			return nil, fmt.Errorf("failed to load checkpoint: %w", err)
		}
		log.Printf("loaded %d tensors from %s (minnet %s)", len(header.Tensors), loadPath, header.MinnetVersion)
	}

	opt, err := optim.New[T](optim.Kind(cfg.Optimizer.Kind), cfg.Optimizer.LR)
	if err != nil {
		return nil, err
	}

	tr, err := trainer.New(net, opt, trainer.Config{
		EvalInterval: cfg.Train.EvalInterval,
		Logger:       log.New(os.Stdout, "", 0),
	})
	if err != nil {
		return nil, err
	}

	history, err := tr.Fit(ctx, ds, cfg.Train.MaxEpoch)
	if err != nil || savePath == "" {
		return history, err
	}

	meta := &serialization.CheckpointMeta{
		Accuracy:      history.FinalAccuracy(),
		OptimizerType: cfg.Optimizer.Kind,
		LearningRate:  float64(opt.LR()),
	}
	if n := len(history.Accuracies); n > 0 {
		meta.Epoch = history.Accuracies[n-1].Epoch
	}
	if n := len(history.Losses); n > 0 {
		meta.Iteration = history.Losses[n-1].Iteration
		meta.Loss = history.Losses[n-1].Loss
	}
	err = serialization.Save(savePath, net, serialization.Options{
		MinnetVersion: version,
		Metadata:      map[string]string{"dataset": "spiral", "activation": cfg.Network.Activation},
		Checkpoint:    meta,
	})
	if err != nil {
		return history, fmt.Errorf("failed to save checkpoint: %w", err)
	}
	log.Printf("saved checkpoint to %s", savePath)
	return history, nil
}
