package main

import "github.com/diewo77/go-crm/cmd/crm/cmd"

func main() {
	cmd.Execute()
}
