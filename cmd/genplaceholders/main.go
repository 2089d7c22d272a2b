package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"chosenoffset.com/spacetaxi/internal/assets"
	"chosenoffset.com/spacetaxi/internal/placeholders"
)

func main() {
	root := flag.String("out", ".", "asset root to write img/, snd/, voices/ and levels/ into")
	flag.Parse()

	fmt.Println("Space Taxi Placeholder Asset Generator")
	fmt.Println("======================================")
	fmt.Println()

	written, err := placeholders.GenerateAndSave(*root, assets.DefaultCatalog())
	sort.Strings(written)
	for _, path := range written {
		fmt.Printf("  wrote %s\n", path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Done! %d placeholder files are ready to use.\n", len(written))
	fmt.Println("Run the game to see your placeholders in action!")
}
