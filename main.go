package main

import "github.com/fracpete/goweka/cmd"

func main() {
	cmd.Execute()
}
