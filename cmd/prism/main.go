// prism - flat-shaded 3D model viewer.
// Renders OBJ and glTF models lit by a single directional light, either to
// a PNG or live in the terminal.
//
// Commands:
//
//	info   - Print vertex and triangle counts, bounds and load warnings
//	shade  - Render a model to a PNG, optionally re-rendering on change
//	spin   - Spin a model with a coasting impulse and write the frames
//	fly    - Explore a model in the terminal with an orbit or free camera
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
