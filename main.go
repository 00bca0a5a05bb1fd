package main

import "github.com/flext/flext-db-oracle/cmd"

func main() {
	cmd.Execute()
}
