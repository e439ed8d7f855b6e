// Package serialization saves and restores the parameters of a minnet
// Network in the .mnet checkpoint format.
//
//	Format Structure:
//	  [4 bytes: Magic "MNET"]
//	  [4 bytes: Version (uint32 LE)]
//	  [32 bytes: SHA-256 of everything after the fixed header]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON metadata]
//	  [Padding: zeros up to the next 64-byte boundary]
//	  [Tensor data: little-endian values, one region per parameter]
//
// Each trainable layer contributes two tensors named after its position in
// the network ("0.weight", "0.bias", "2.weight", ...). The element type of the
// file must match the element type of the network it is loaded into.
//
// Example usage:
//
//	if err := serialization.Save("spiral.mnet", net, serialization.Options{}); err != nil {
//	    log.Fatal(err)
//	}
//
//	restored, _ := nn.NewNetwork[float64](2, []int{10}, 3, nn.ActivationSigmoid, nn.DefaultConfig())
//	header, err := serialization.Load("spiral.mnet", restored)
package serialization
