package main

import "github.com/theirongolddev/upsell/cmd"

func main() {
	cmd.Execute()
}
