package main

import "github.com/OpenTraceLab/OpenTraceDSN/cmd/dsn/cmd"

func main() {
	cmd.Execute()
}
