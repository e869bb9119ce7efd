// genesis_info.go prints the genesis block hash, merkle root, and time for
// every supported network.
// Usage: go run scripts/genesis_info.go
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/stonebridge-tech/bedrock/config"
	"github.com/stonebridge-tech/bedrock/pkg/block"
)

func main() {
	for _, network := range config.Networks() {
		params, err := config.Params(network)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		var buf bytes.Buffer
		if err := params.GenesisBlock.Serialize(&buf); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		blk, err := block.ParseBlock(buf.Bytes(), true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", network, err)
			os.Exit(1)
		}

		fmt.Printf("%s\n", network)
		fmt.Printf("  hash:   %s\n", blk.BlockHash())
		fmt.Printf("  merkle: %s\n", blk.Header.MerkleRoot)
		fmt.Printf("  time:   %s\n", blk.Header.Timestamp().Format("2006-01-02 15:04:05 UTC"))
		fmt.Printf("  bits:   %08x\n", blk.Header.Bits)
	}
}
