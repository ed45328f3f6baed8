// Command qtictl is the operator tool for the render service: it renders item
// markup offline and issues access tokens.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
