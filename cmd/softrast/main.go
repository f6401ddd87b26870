// Command softrast renders scene files with the softrast pipeline.
//
// Usage:
//
//	softrast render scene.toml -o out.png
//	softrast render scene.toml -o out.tiff --depth depth.png -v
//	softrast demo -o demo.png
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
