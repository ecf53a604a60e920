package main

import (
	"github.com/ssorent/rowbin/cmd/rowbin/cmd"
)

func main() {
	cmd.Execute()
}
