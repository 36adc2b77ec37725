package main

import "github.com/ayusman/sigil/cmd"

func main() {
	cmd.Execute()
}
