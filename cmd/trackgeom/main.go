package main

import "github.com/tsawler/trackgeom/internal/cli"

func main() {
	cli.Execute()
}
